package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppricing "github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeTableRepo struct {
	tables map[string]*entity.PriceTable
	items  map[string]*entity.PriceTableItem
	// failSetActive força erro no meio da "transação" para testar atomicidade
	failSetActive bool
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{
		tables: map[string]*entity.PriceTable{},
		items:  map[string]*entity.PriceTableItem{},
	}
}

func (f *fakeTableRepo) Create(_ context.Context, t *entity.PriceTable) error {
	cp := *t
	f.tables[t.ID] = &cp
	return nil
}

func (f *fakeTableRepo) GetByID(_ context.Context, id string) (*entity.PriceTable, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTableRepo) Update(_ context.Context, t *entity.PriceTable) error {
	cp := *t
	f.tables[t.ID] = &cp
	return nil
}

func (f *fakeTableRepo) ListByClient(_ context.Context, clientID string) ([]*entity.PriceTable, error) {
	var out []*entity.PriceTable
	for _, t := range f.tables {
		if t.ClientID == clientID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) ListActiveByClient(_ context.Context, clientID string) ([]*entity.PriceTable, error) {
	var out []*entity.PriceTable
	for _, t := range f.tables {
		if t.ClientID == clientID && t.Active {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.PriceTable, error) {
	return nil, nil
}

func (f *fakeTableRepo) DeactivateAllByClient(_ context.Context, clientID string) error {
	for _, t := range f.tables {
		if t.ClientID == clientID {
			t.Active = false
		}
	}
	return nil
}

func (f *fakeTableRepo) SetActive(_ context.Context, id string, active bool) error {
	if f.failSetActive {
		return errors.New("falha simulada")
	}
	t, ok := f.tables[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	t.Active = active
	return nil
}

func (f *fakeTableRepo) Delete(_ context.Context, id string) error {
	delete(f.tables, id)
	return nil
}

func (f *fakeTableRepo) CreateItem(_ context.Context, item *entity.PriceTableItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeTableRepo) GetItem(_ context.Context, id string) (*entity.PriceTableItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeTableRepo) UpdateItem(_ context.Context, item *entity.PriceTableItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeTableRepo) ListItems(_ context.Context, tableID string) ([]*entity.PriceTableItem, error) {
	var out []*entity.PriceTableItem
	for _, it := range f.items {
		if it.PriceTableID == tableID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) DeleteItem(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
func (f *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (f *fakeProductRepo) List(_ context.Context, _ bool, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (f *fakeClientRepo) Create(_ context.Context, _ *entity.Client) error { return nil }
func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return f.clients[id], nil
}
func (f *fakeClientRepo) Update(_ context.Context, _ *entity.Client) error { return nil }
func (f *fakeClientRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}
func (f *fakeClientRepo) Delete(_ context.Context, _ string) error { return nil }

// fakeTx roda o callback direto no repo; erro no callback descarta o estado
// intermediário restaurando um snapshot (simula rollback).
type fakeTx struct {
	repo *fakeTableRepo
}

func (f *fakeTx) RunPricing(ctx context.Context, fn func(repo repository.PriceTableRepository) error) error {
	snapshot := map[string]entity.PriceTable{}
	for id, t := range f.repo.tables {
		snapshot[id] = *t
	}
	if err := fn(f.repo); err != nil {
		for id := range f.repo.tables {
			t := snapshot[id]
			f.repo.tables[id] = &t
		}
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func nowFn() time.Time { return fixedNow }

func buildUC(repo *fakeTableRepo, products *fakeProductRepo) *apppricing.PriceTableUseCase {
	if products == nil {
		products = &fakeProductRepo{products: map[string]*entity.Product{}}
	}
	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		"c1": {ID: "c1", RazaoSocial: "Distribuidora Alfa LTDA"},
	}}
	return apppricing.NewPriceTableUseCase(repo, products, clients, &fakeTx{repo: repo}, nowFn)
}

// Ativar a tabela B quando A estava ativa deixa exatamente uma tabela do
// cliente com active=true.
func TestActivate_DesativaDemaisDoCliente(t *testing.T) {
	repo := newFakeTableRepo()
	repo.tables["a"] = &entity.PriceTable{ID: "a", ClientID: "c1", Active: true}
	repo.tables["b"] = &entity.PriceTable{ID: "b", ClientID: "c1", Active: false}
	repo.tables["x"] = &entity.PriceTable{ID: "x", ClientID: "c2", Active: true}

	uc := buildUC(repo, nil)
	out, err := uc.Activate(context.Background(), "b")
	require.NoError(t, err)
	assert.True(t, out.Active)

	assert.False(t, repo.tables["a"].Active, "A deve ter sido desativada")
	assert.True(t, repo.tables["b"].Active, "B deve estar ativa")
	assert.True(t, repo.tables["x"].Active, "tabelas de outros clientes não são tocadas")

	ativas := 0
	for _, tb := range repo.tables {
		if tb.ClientID == "c1" && tb.Active {
			ativas++
		}
	}
	assert.Equal(t, 1, ativas, "exatamente uma tabela ativa por cliente após a ativação")
}

// Falha no meio da ativação não deixa estado parcial: a transação reverte e
// a tabela anterior continua ativa.
func TestActivate_FalhaNaoDeixaEstadoParcial(t *testing.T) {
	repo := newFakeTableRepo()
	repo.tables["a"] = &entity.PriceTable{ID: "a", ClientID: "c1", Active: true}
	repo.tables["b"] = &entity.PriceTable{ID: "b", ClientID: "c1", Active: false}
	repo.failSetActive = true

	uc := buildUC(repo, nil)
	_, err := uc.Activate(context.Background(), "b")
	require.Error(t, err)

	assert.True(t, repo.tables["a"].Active, "rollback preserva a tabela anterior ativa")
	assert.False(t, repo.tables["b"].Active)
}

func TestCreate_NasceDesativada(t *testing.T) {
	uc := buildUC(newFakeTableRepo(), nil)
	out, err := uc.Create(context.Background(), "v1", dto.CreatePriceTableRequest{
		ClientID: "c1",
		Name:     "Tabela Junho",
		MinOrder: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.False(t, out.Active)
	assert.Equal(t, "INATIVA", out.Status)
}

func TestCreate_JanelaInvertidaRejeitada(t *testing.T) {
	uc := buildUC(newFakeTableRepo(), nil)
	from := fixedNow
	until := fixedNow.AddDate(0, 0, -1)
	_, err := uc.Create(context.Background(), "v1", dto.CreatePriceTableRequest{
		ClientID:   "c1",
		Name:       "Janela invertida",
		ValidFrom:  &from,
		ValidUntil: &until,
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// Item tipo desconto grava o preço final calculado; a resposta expõe o
// percentual equivalente para exibição.
func TestAddItem_CalculaValorFinal(t *testing.T) {
	repo := newFakeTableRepo()
	repo.tables["t1"] = &entity.PriceTable{ID: "t1", ClientID: "c1"}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "CAFE-500", Name: "Café 500g", BasePrice: decimal.NewFromInt(100), Status: entity.ProductActive},
	}}
	uc := buildUC(repo, products)

	out, err := uc.AddItem(context.Background(), "t1", dto.AddPriceTableItemRequest{
		ProductID:     "p1",
		PriceType:     entity.PriceTypeDesconto,
		DiscountValue: decimal.NewFromInt(10),
		MinQuantity:   6,
	})
	require.NoError(t, err)
	assert.True(t, out.Value.Equal(decimal.NewFromInt(90)), "100 - 10%% = 90, veio %s", out.Value)
	assert.Equal(t, 6, out.MinQuantity)

	// Modo fixo: 100 - 15 = 85, equivalente a 15%
	out, err = uc.AddItem(context.Background(), "t1", dto.AddPriceTableItemRequest{
		ProductID:     "p1",
		PriceType:     entity.PriceTypeFixo,
		DiscountValue: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.True(t, out.Value.Equal(decimal.NewFromInt(85)), "100 - 15 = 85, veio %s", out.Value)
	assert.True(t, out.EquivalentPercent.Equal(decimal.NewFromInt(15)), "equivalente: %s", out.EquivalentPercent)
}

func TestPreviewDiscount_NaoGrava(t *testing.T) {
	repo := newFakeTableRepo()
	uc := buildUC(repo, nil)

	out := uc.PreviewDiscount(dto.DiscountPreviewRequest{
		BasePrice: decimal.NewFromInt(100),
		Mode:      "percent",
		Value:     decimal.NewFromInt(10),
	})
	assert.True(t, out.FinalPrice.Equal(decimal.NewFromInt(90)))
	assert.Empty(t, repo.items, "a prévia nunca persiste item")
}
