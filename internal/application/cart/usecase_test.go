package cart_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/portal-pedidos-api/internal/application/cart"
	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	apppricing "github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// memStore implementa cart.Store em memória.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, id string) ([]byte, error) { return m.data[id], nil }
func (m *memStore) Set(_ context.Context, id string, d []byte) error { m.data[id] = d; return nil }
func (m *memStore) Delete(_ context.Context, id string) error        { delete(m.data, id); return nil }

// fakeTables/fakeProducts são o mínimo para o catálogo resolver uma tabela
// vigente com dois itens.
type fakeTables struct {
	tables []*entity.PriceTable
	items  []*entity.PriceTableItem
}

func (f *fakeTables) Create(context.Context, *entity.PriceTable) error { return nil }
func (f *fakeTables) GetByID(context.Context, string) (*entity.PriceTable, error) {
	return nil, nil
}
func (f *fakeTables) Update(context.Context, *entity.PriceTable) error { return nil }
func (f *fakeTables) ListByClient(context.Context, string) ([]*entity.PriceTable, error) {
	return f.tables, nil
}
func (f *fakeTables) ListActiveByClient(context.Context, string) ([]*entity.PriceTable, error) {
	var out []*entity.PriceTable
	for _, t := range f.tables {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeTables) List(context.Context, string, int, int) ([]*entity.PriceTable, error) {
	return nil, nil
}
func (f *fakeTables) DeactivateAllByClient(context.Context, string) error { return nil }
func (f *fakeTables) SetActive(context.Context, string, bool) error       { return nil }
func (f *fakeTables) Delete(context.Context, string) error                { return nil }
func (f *fakeTables) CreateItem(context.Context, *entity.PriceTableItem) error {
	return nil
}
func (f *fakeTables) GetItem(context.Context, string) (*entity.PriceTableItem, error) {
	return nil, nil
}
func (f *fakeTables) UpdateItem(context.Context, *entity.PriceTableItem) error { return nil }
func (f *fakeTables) ListItems(context.Context, string) ([]*entity.PriceTableItem, error) {
	return f.items, nil
}
func (f *fakeTables) DeleteItem(context.Context, string) error { return nil }

type fakeProducts struct {
	products map[string]*entity.Product
}

func (f *fakeProducts) Create(context.Context, *entity.Product) error { return nil }
func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProducts) GetBySKU(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProducts) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
func (f *fakeProducts) Update(context.Context, *entity.Product) error { return nil }
func (f *fakeProducts) List(context.Context, bool, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProducts) Delete(context.Context, string) error { return nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func buildCartUC(store cart.Store, minOrder decimal.Decimal) *cart.UseCase {
	tables := &fakeTables{
		tables: []*entity.PriceTable{{ID: "t1", ClientID: "c1", Active: true, MinOrder: minOrder}},
		items: []*entity.PriceTableItem{
			{ID: "i1", PriceTableID: "t1", ProductID: "p1", PriceType: entity.PriceTypeDesconto, Value: dec("90"), MinQuantity: 6},
			{ID: "i2", PriceTableID: "t1", ProductID: "p2", PriceType: entity.PriceTypeBase, MinQuantity: 1},
		},
	}
	products := &fakeProducts{products: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "CAFE-500", Name: "Café 500g", BasePrice: dec("100"), Status: entity.ProductActive},
		"p2": {ID: "p2", SKU: "ACUCAR-1K", Name: "Açúcar 1kg", BasePrice: dec("8.50"), Status: entity.ProductActive},
	}}
	catalog := apppricing.NewCatalogUseCase(tables, products, func() time.Time { return fixedNow })
	return cart.NewUseCase(store, catalog, func() time.Time { return fixedNow })
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// A quantidade nunca cai abaixo do piso do item, qualquer que seja o valor
// pedido; na adição e na atualização.
func TestCart_PisoDeQuantidade(t *testing.T) {
	uc := buildCartUC(newMemStore(), dec("0"))
	ctx := context.Background()

	out, err := uc.AddItem(ctx, "perfil-1", "c1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 6, out.Items[0].Quantity, "pedido de 2 sobe para o piso 6")

	out, err = uc.UpdateQuantity(ctx, "perfil-1", "c1", "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 6, out.Items[0].Quantity, "atualização abaixo do piso trava no piso")

	out, err = uc.UpdateQuantity(ctx, "perfil-1", "c1", "p1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Items[0].Quantity, "subir é livre")
}

// Trava de pedido mínimo inclusiva: bloqueado enquanto total < mínimo,
// liberado quando o total alcança exatamente o mínimo.
func TestCart_PedidoMinimoFronteiraInclusiva(t *testing.T) {
	uc := buildCartUC(newMemStore(), dec("540"))
	ctx := context.Background()

	out, err := uc.AddItem(ctx, "perfil-1", "c1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	// piso 6 → 6 * 90 = 540, exatamente o mínimo
	assert.True(t, out.Total.Equal(dec("540")))
	assert.True(t, out.MeetsMinOrder, "total igual ao mínimo libera")
	assert.True(t, out.Gap.IsZero())

	out, err = uc.RemoveItem(ctx, "perfil-1", "c1", "p1")
	require.NoError(t, err)
	assert.False(t, out.MeetsMinOrder)
	assert.True(t, out.Gap.Equal(dec("540")), "falta exibida: %s", out.Gap)
}

func TestCart_AddForaDaTabelaVigente(t *testing.T) {
	uc := buildCartUC(newMemStore(), dec("0"))
	_, err := uc.AddItem(context.Background(), "perfil-1", "c1", dto.AddCartItemRequest{ProductID: "desconhecido", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}

// O carrinho serializado e reidratado reproduz itens, quantidades e total.
func TestCart_RoundTripJSON(t *testing.T) {
	original := cart.Cart{
		Items: []cart.Item{
			{ProductID: "p1", SKU: "CAFE-500", Name: "Café 500g", UnitPrice: dec("90"), Quantity: 6, MinQuantity: 6},
			{ProductID: "p2", SKU: "ACUCAR-1K", Name: "Açúcar 1kg", UnitPrice: dec("8.50"), Quantity: 12, MinQuantity: 1},
		},
		UpdatedAt: fixedNow,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	reloaded := cart.Decode(data)
	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, original.Items[0].ProductID, reloaded.Items[0].ProductID)
	assert.Equal(t, original.Items[0].Quantity, reloaded.Items[0].Quantity)
	assert.Equal(t, original.Items[1].Quantity, reloaded.Items[1].Quantity)
	assert.True(t, reloaded.Total().Equal(original.Total()),
		"total preservado no round-trip: %s vs %s", reloaded.Total(), original.Total())
	assert.True(t, reloaded.Total().Equal(dec("642")), "6*90 + 12*8,50 = 642")
}

// Payload corrompido degrada para carrinho vazio, sem erro fatal.
func TestDecode_PayloadCorrompido(t *testing.T) {
	c := cart.Decode([]byte(`{"items": [{`))
	assert.Empty(t, c.Items)
	assert.True(t, c.Total().IsZero())

	assert.Empty(t, cart.Decode(nil).Items)
	assert.Empty(t, cart.Decode([]byte{}).Items)
}

// Carrinho persistido sobrevive ao ciclo completo via store e some no Clear.
func TestCart_PersisteEEsvazia(t *testing.T) {
	store := newMemStore()
	uc := buildCartUC(store, dec("0"))
	ctx := context.Background()

	_, err := uc.AddItem(ctx, "perfil-1", "c1", dto.AddCartItemRequest{ProductID: "p2", Quantity: 3})
	require.NoError(t, err)

	// nova leitura reidrata do store
	out, err := uc.Get(ctx, "perfil-1", "c1")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Subtotal.Equal(dec("25.50")))

	require.NoError(t, uc.Clear(ctx, "perfil-1"))
	out, err = uc.Get(ctx, "perfil-1", "c1")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}
