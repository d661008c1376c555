package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/portal-pedidos-api/internal/application/cart"
	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/application/orders"
	apppricing "github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct{ data map[string][]byte }

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, id string) ([]byte, error) { return m.data[id], nil }
func (m *memStore) Set(_ context.Context, id string, d []byte) error { m.data[id] = d; return nil }
func (m *memStore) Delete(_ context.Context, id string) error        { delete(m.data, id); return nil }

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	items  map[string][]entity.OrderItem
	// failCreateItems simula queda no meio da transação
	failCreateItems bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*entity.Order{}, items: map[string][]entity.OrderItem{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	cp := *o
	cp.Items = nil
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) CreateItems(_ context.Context, items []entity.OrderItem) error {
	if f.failCreateItems {
		return errors.New("falha simulada")
	}
	if len(items) > 0 {
		f.items[items[0].OrderID] = append(f.items[items[0].OrderID], items...)
	}
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.StatusHistory = append([]entity.StatusChange(nil), o.StatusHistory...)
	cp.Items = append([]entity.OrderItem(nil), f.items[id]...)
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	stored, ok := f.orders[o.ID]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	stored.Status = o.Status
	stored.StatusHistory = append([]entity.StatusChange(nil), o.StatusHistory...)
	stored.UpdatedAt = o.UpdatedAt
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, flt repository.OrderFilter, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if flt.ClientID != "" && o.ClientID != flt.ClientID {
			continue
		}
		if flt.Status != "" && o.Status != flt.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

type fakeOrderTx struct{ repo *fakeOrderRepo }

func (f *fakeOrderTx) RunOrders(ctx context.Context, fn func(repo repository.OrderRepository) error) error {
	headers := map[string]entity.Order{}
	for id, o := range f.repo.orders {
		headers[id] = *o
	}
	if err := fn(f.repo); err != nil {
		f.repo.orders = map[string]*entity.Order{}
		for id := range headers {
			o := headers[id]
			f.repo.orders[id] = &o
		}
		return err
	}
	return nil
}

type fakeTables struct {
	tables []*entity.PriceTable
	items  []*entity.PriceTableItem
}

func (f *fakeTables) Create(context.Context, *entity.PriceTable) error          { return nil }
func (f *fakeTables) GetByID(context.Context, string) (*entity.PriceTable, error) { return nil, nil }
func (f *fakeTables) Update(context.Context, *entity.PriceTable) error          { return nil }
func (f *fakeTables) ListByClient(context.Context, string) ([]*entity.PriceTable, error) {
	return f.tables, nil
}
func (f *fakeTables) ListActiveByClient(context.Context, string) ([]*entity.PriceTable, error) {
	return f.tables, nil
}
func (f *fakeTables) List(context.Context, string, int, int) ([]*entity.PriceTable, error) {
	return nil, nil
}
func (f *fakeTables) DeactivateAllByClient(context.Context, string) error      { return nil }
func (f *fakeTables) SetActive(context.Context, string, bool) error            { return nil }
func (f *fakeTables) Delete(context.Context, string) error                     { return nil }
func (f *fakeTables) CreateItem(context.Context, *entity.PriceTableItem) error { return nil }
func (f *fakeTables) GetItem(context.Context, string) (*entity.PriceTableItem, error) {
	return nil, nil
}
func (f *fakeTables) UpdateItem(context.Context, *entity.PriceTableItem) error { return nil }
func (f *fakeTables) ListItems(context.Context, string) ([]*entity.PriceTableItem, error) {
	return f.items, nil
}
func (f *fakeTables) DeleteItem(context.Context, string) error { return nil }

type fakeProducts struct{ products map[string]*entity.Product }

func (f *fakeProducts) Create(context.Context, *entity.Product) error { return nil }
func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProducts) GetBySKU(context.Context, string) (*entity.Product, error) { return nil, nil }
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

type fakeClients struct{ clients map[string]*entity.Client }

func (f *fakeClients) Create(context.Context, *entity.Client) error { return nil }
func (f *fakeClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return f.clients[id], nil
}
func (f *fakeClients) Update(context.Context, *entity.Client) error { return nil }
func (f *fakeClients) List(context.Context, string, int, int) ([]*entity.Client, error) {
	return nil, nil
}
func (f *fakeClients) Delete(context.Context, string) error { return nil }

type fakeProfiles struct{ profiles map[string]*entity.Profile }

func (f *fakeProfiles) Create(context.Context, *entity.Profile) error { return nil }
func (f *fakeProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	return f.profiles[id], nil
}
func (f *fakeProfiles) GetByEmail(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (f *fakeProfiles) Update(context.Context, *entity.Profile) error          { return nil }
func (f *fakeProfiles) UpdatePassword(context.Context, string, string) error   { return nil }
func (f *fakeProfiles) List(context.Context, int, int) ([]*entity.Profile, error) {
	return nil, nil
}
func (f *fakeProfiles) Delete(context.Context, string) error { return nil }

// fakeMailer sinaliza no canal quando o e-mail sai, para o teste esperar a
// goroutine de notificação.
type fakeMailer struct{ sent chan string }

func (f *fakeMailer) OrderCreated(_ context.Context, to string, _ *entity.Order, _ *entity.Client) error {
	f.sent <- to
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type harness struct {
	uc     *orders.UseCase
	cartUC *cart.UseCase
	repo   *fakeOrderRepo
	store  *memStore
	mailer *fakeMailer
	nowRef *time.Time
}

func build(t *testing.T, minOrder decimal.Decimal) *harness {
	t.Helper()
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
	clients := &fakeClients{clients: map[string]*entity.Client{
		"c1": {ID: "c1", RazaoSocial: "Distribuidora Alfa LTDA", VendedorID: "vend-1"},
	}}
	profiles := &fakeProfiles{profiles: map[string]*entity.Profile{
		"vend-1": {ID: "vend-1", Email: "vendedor@exemplo.com.br", Role: entity.RoleVendedor},
	}}

	now := fixedNow
	nowFn := func() time.Time { return now }

	store := newMemStore()
	catalog := apppricing.NewCatalogUseCase(tables, products, nowFn)
	cartUC := cart.NewUseCase(store, catalog, nowFn)
	repo := newFakeOrderRepo()
	mailer := &fakeMailer{sent: make(chan string, 1)}
	uc := orders.NewUseCase(repo, clients, profiles, cartUC, catalog, &fakeOrderTx{repo: repo}, mailer, nowFn)

	return &harness{uc: uc, cartUC: cartUC, repo: repo, store: store, mailer: mailer, nowRef: &now}
}

var clienteActor = orders.Actor{ProfileID: "perfil-1", Role: entity.RoleCliente, ClientID: "c1"}

func (h *harness) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := h.cartUC.AddItem(ctx, clienteActor.ProfileID, "c1", dto.AddCartItemRequest{ProductID: "p1", Quantity: 6})
	require.NoError(t, err)
	_, err = h.cartUC.AddItem(ctx, clienteActor.ProfileID, "c1", dto.AddCartItemRequest{ProductID: "p2", Quantity: 12})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_FechaCarrinhoEmPedido(t *testing.T) {
	h := build(t, dec("100"))
	h.fillCart(t)
	ctx := context.Background()

	out, err := h.uc.Create(ctx, clienteActor, dto.CreateOrderRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderEnviado, out.Status, "pedido nasce enviado")
	assert.True(t, out.TotalAmount.Equal(dec("642")), "6*90 + 12*8,50 = 642, veio %s", out.TotalAmount)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "CAFE-500", out.Items[0].ProductSKU, "retrato do produto gravado no item")

	assert.Empty(t, h.store.data, "carrinho esvaziado após o commit")

	select {
	case to := <-h.mailer.sent:
		assert.Equal(t, "vendedor@exemplo.com.br", to)
	case <-time.After(2 * time.Second):
		t.Fatal("notificação do vendedor não saiu")
	}
}

func TestCreate_CarrinhoVazio(t *testing.T) {
	h := build(t, dec("0"))
	_, err := h.uc.Create(context.Background(), clienteActor, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrCarrinhoVazio)
}

// Trava de pedido mínimo: abaixo do mínimo nada é gravado e o erro carrega a
// falta exata; no limite exato o pedido passa.
func TestCreate_PedidoMinimo(t *testing.T) {
	h := build(t, dec("700"))
	h.fillCart(t) // total 642
	ctx := context.Background()

	_, err := h.uc.Create(ctx, clienteActor, dto.CreateOrderRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPedidoMinimo)

	var minErr *orders.MinOrderError
	require.ErrorAs(t, err, &minErr)
	assert.True(t, minErr.Gap.Equal(dec("58")), "falta 700-642=58, veio %s", minErr.Gap)

	assert.Empty(t, h.repo.orders, "nada persistido abaixo do mínimo")
	assert.NotEmpty(t, h.store.data, "carrinho preservado para o cliente completar")

	// mínimo exatamente igual ao total libera
	h2 := build(t, dec("642"))
	h2.fillCart(t)
	_, err = h2.uc.Create(ctx, clienteActor, dto.CreateOrderRequest{})
	assert.NoError(t, err, "fronteira inclusiva")
}

// Queda na gravação dos itens reverte a cabeça: nunca fica pedido sem itens.
func TestCreate_FalhaNaoDeixaCabecaOrfa(t *testing.T) {
	h := build(t, dec("0"))
	h.fillCart(t)
	h.repo.failCreateItems = true

	_, err := h.uc.Create(context.Background(), clienteActor, dto.CreateOrderRequest{})
	require.Error(t, err)
	assert.Empty(t, h.repo.orders, "rollback descarta a cabeça do pedido")
	assert.NotEmpty(t, h.store.data, "carrinho intacto quando a transação falha")
}

// O histórico exibido começa com a entrada sintetizada da criação e cresce a
// cada transição, com timestamps não decrescentes. O array armazenado guarda
// apenas as transições.
func TestHistory_AppendOnlyComEntradaSintetizada(t *testing.T) {
	h := build(t, dec("0"))
	h.fillCart(t)
	ctx := context.Background()

	created, err := h.uc.Create(ctx, clienteActor, dto.CreateOrderRequest{})
	require.NoError(t, err)
	require.Len(t, created.History, 1, "recém-criado: só a entrada sintetizada")
	assert.Equal(t, "Pedido Enviado", created.History[0].Label)
	assert.Equal(t, created.CreatedAt, created.History[0].UpdatedAt)

	admin := orders.Actor{ProfileID: "adm-1", Role: entity.RoleAdmin}

	*h.nowRef = fixedNow.Add(1 * time.Hour)
	_, err = h.uc.UpdateStatus(ctx, admin, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderAprovado})
	require.NoError(t, err)

	*h.nowRef = fixedNow.Add(2 * time.Hour)
	out, err := h.uc.UpdateStatus(ctx, admin, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderFaturado})
	require.NoError(t, err)

	require.Len(t, out.History, 3)
	assert.Equal(t, entity.OrderEnviado, out.History[0].Status)
	assert.Equal(t, entity.OrderAprovado, out.History[1].Status)
	assert.Equal(t, entity.OrderFaturado, out.History[2].Status)
	for i := 1; i < len(out.History); i++ {
		assert.False(t, out.History[i].UpdatedAt.Before(out.History[i-1].UpdatedAt),
			"timestamps não decrescentes")
	}

	stored := h.repo.orders[created.ID]
	assert.Len(t, stored.StatusHistory, 2, "a criação nunca entra no array armazenado")
	assert.Equal(t, entity.OrderFaturado, stored.Status)
}

func TestUpdateStatus_EscopoDePapel(t *testing.T) {
	h := build(t, dec("0"))
	h.fillCart(t)
	ctx := context.Background()

	created, err := h.uc.Create(ctx, clienteActor, dto.CreateOrderRequest{})
	require.NoError(t, err)

	// cliente não troca status
	_, err = h.uc.UpdateStatus(ctx, clienteActor, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCancelado})
	assert.ErrorIs(t, err, domain.ErrAcessoNegado)

	// vendedor de outra carteira não enxerga o pedido
	outro := orders.Actor{ProfileID: "vend-2", Role: entity.RoleVendedor}
	_, err = h.uc.UpdateStatus(ctx, outro, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderAprovado})
	assert.ErrorIs(t, err, domain.ErrAcessoNegado)

	// o vendedor responsável pode
	dono := orders.Actor{ProfileID: "vend-1", Role: entity.RoleVendedor}
	out, err := h.uc.UpdateStatus(ctx, dono, created.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderAprovado})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAprovado, out.Status)
}

func TestList_ClienteVeSomenteOsSeus(t *testing.T) {
	h := build(t, dec("0"))
	h.repo.orders["o1"] = &entity.Order{ID: "o1", ClientID: "c1", Status: entity.OrderEnviado}
	h.repo.orders["o2"] = &entity.Order{ID: "o2", ClientID: "c2", Status: entity.OrderEnviado}

	out, err := h.uc.List(context.Background(), clienteActor, repository.OrderFilter{ClientID: "c2"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "o filtro por outro cliente é ignorado para papel cliente")
	assert.Equal(t, "o1", out.Items[0].ID)
}
