package pricing

import (
	"context"
	"time"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	domainpricing "github.com/rmacedo/portal-pedidos-api/internal/domain/pricing"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// CatalogUseCase resolve o catálogo personalizado de um cliente: a tabela
// vigente mais seus itens unidos aos dados de produto.
type CatalogUseCase struct {
	tableRepo   repository.PriceTableRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewCatalogUseCase constrói o caso de uso. nowFn nil usa time.Now.
func NewCatalogUseCase(tableRepo repository.PriceTableRepository, productRepo repository.ProductRepository, nowFn func() time.Time) *CatalogUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &CatalogUseCase{tableRepo: tableRepo, productRepo: productRepo, now: nowFn}
}

// EffectiveCatalog é a tabela vigente do cliente com itens já precificados,
// indexados por produto. Reutilizada pelo fluxo de pedido para precificar e
// validar o carrinho no servidor.
type EffectiveCatalog struct {
	Table *entity.PriceTable
	Items map[string]dto.CatalogItemResponse // chave: product_id
	order []string                           // ordem de apresentação
}

// Resolve devolve o catálogo efetivo do cliente ou ErrSemTabelaVigente.
// O banco filtra apenas active=true; a janela de datas é avaliada em código
// e um único vencedor é escolhido mesmo se a invariante estiver violada
// (condição terminal visível ao usuário, não repetida).
func (uc *CatalogUseCase) Resolve(ctx context.Context, clientID string) (*EffectiveCatalog, error) {
	tables, err := uc.tableRepo.ListActiveByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	table := domainpricing.ResolveEffective(tables, uc.now())
	if table == nil {
		return nil, domain.ErrSemTabelaVigente
	}

	items, err := uc.tableRepo.ListItems(ctx, table.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cat := &EffectiveCatalog{
		Table: table,
		Items: make(map[string]dto.CatalogItemResponse, len(items)),
	}
	for _, it := range items {
		product := products[it.ProductID]
		if product == nil || product.Status != entity.ProductActive {
			continue // produto removido ou desativado não aparece no catálogo
		}
		minQty := it.MinQuantity
		if minQty < 1 {
			minQty = 1
		}
		cat.Items[product.ID] = dto.CatalogItemResponse{
			ProductID:   product.ID,
			SKU:         product.SKU,
			Name:        product.Name,
			Description: product.Description,
			ImageURL:    product.ImageURL,
			UnitPrice:   domainpricing.UnitPrice(it, product.BasePrice),
			MinQuantity: minQty,
		}
		cat.order = append(cat.order, product.ID)
	}
	return cat, nil
}

// GetCatalog devolve o catálogo completo do cliente autenticado.
func (uc *CatalogUseCase) GetCatalog(ctx context.Context, clientID string) (*dto.CatalogResponse, error) {
	cat, err := uc.Resolve(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogItemResponse, 0, len(cat.order))
	for _, id := range cat.order {
		items = append(items, cat.Items[id])
	}
	return &dto.CatalogResponse{
		PriceTableID: cat.Table.ID,
		TableName:    cat.Table.Name,
		MinOrder:     cat.Table.MinOrder,
		PaymentTerms: cat.Table.PaymentTerms,
		ValidUntil:   cat.Table.ValidUntil,
		Items:        items,
	}, nil
}
