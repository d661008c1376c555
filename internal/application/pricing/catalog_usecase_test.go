package pricing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppricing "github.com/rmacedo/portal-pedidos-api/internal/application/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// Cliente sem tabela vigente: erro terminal explícito, zero itens, sem pânico.
func TestGetCatalog_SemTabelaVigente(t *testing.T) {
	repo := newFakeTableRepo()
	// tabela existente porém expirada
	until := fixedNow.AddDate(0, 0, -1)
	repo.tables["t1"] = &entity.PriceTable{ID: "t1", ClientID: "c1", Active: true, ValidUntil: &until}

	uc := apppricing.NewCatalogUseCase(repo, &fakeProductRepo{products: map[string]*entity.Product{}}, nowFn)
	out, err := uc.GetCatalog(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrSemTabelaVigente)
	assert.Nil(t, out)
}

func TestGetCatalog_TabelaVigenteComItens(t *testing.T) {
	repo := newFakeTableRepo()
	repo.tables["t1"] = &entity.PriceTable{
		ID: "t1", ClientID: "c1", Active: true,
		Name: "Tabela Padrão", MinOrder: decimal.NewFromInt(150),
	}
	repo.items["i1"] = &entity.PriceTableItem{
		ID: "i1", PriceTableID: "t1", ProductID: "p1",
		PriceType: entity.PriceTypeDesconto, Value: decimal.NewFromInt(90), MinQuantity: 6,
	}
	repo.items["i2"] = &entity.PriceTableItem{
		ID: "i2", PriceTableID: "t1", ProductID: "p2",
		PriceType: entity.PriceTypeBase, MinQuantity: 0,
	}
	repo.items["i3"] = &entity.PriceTableItem{
		ID: "i3", PriceTableID: "t1", ProductID: "inexistente",
		PriceType: entity.PriceTypeBase,
	}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", SKU: "CAFE-500", Name: "Café 500g", BasePrice: decimal.NewFromInt(100), Status: entity.ProductActive},
		"p2": {ID: "p2", SKU: "ACUCAR-1K", Name: "Açúcar 1kg", BasePrice: decimal.NewFromInt(8), Status: entity.ProductActive},
	}}

	uc := apppricing.NewCatalogUseCase(repo, products, nowFn)
	out, err := uc.GetCatalog(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "t1", out.PriceTableID)
	assert.True(t, out.MinOrder.Equal(decimal.NewFromInt(150)))
	require.Len(t, out.Items, 2, "item de produto inexistente é descartado")

	byID := map[string]bool{}
	for _, it := range out.Items {
		byID[it.ProductID] = true
		switch it.ProductID {
		case "p1":
			assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(90)), "tipo desconto usa o valor gravado")
			assert.Equal(t, 6, it.MinQuantity)
		case "p2":
			assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(8)), "tipo base usa o preço do produto")
			assert.Equal(t, 1, it.MinQuantity, "piso mínimo é 1")
		}
	}
	assert.True(t, byID["p1"] && byID["p2"])
}

// Duas tabelas vigentes (invariante violada por dados legados): o catálogo
// ainda resolve um único vencedor, o de criação mais recente.
func TestGetCatalog_EscolheVencedorUnico(t *testing.T) {
	repo := newFakeTableRepo()
	repo.tables["antiga"] = &entity.PriceTable{ID: "antiga", ClientID: "c1", Active: true, CreatedAt: fixedNow.AddDate(0, -2, 0)}
	repo.tables["recente"] = &entity.PriceTable{ID: "recente", ClientID: "c1", Active: true, CreatedAt: fixedNow.AddDate(0, -1, 0)}

	uc := apppricing.NewCatalogUseCase(repo, &fakeProductRepo{products: map[string]*entity.Product{}}, nowFn)
	out, err := uc.GetCatalog(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "recente", out.PriceTableID)
}
