package repository

import (
	"context"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// PriceTableRepository define a porta de persistência para PriceTable e seus itens.
type PriceTableRepository interface {
	Create(ctx context.Context, t *entity.PriceTable) error
	GetByID(ctx context.Context, id string) (*entity.PriceTable, error)
	Update(ctx context.Context, t *entity.PriceTable) error
	ListByClient(ctx context.Context, clientID string) ([]*entity.PriceTable, error)
	ListActiveByClient(ctx context.Context, clientID string) ([]*entity.PriceTable, error)
	List(ctx context.Context, vendedorID string, limit, offset int) ([]*entity.PriceTable, error)
	// DeactivateAllByClient desativa todas as tabelas do cliente. Usado pela
	// ativação dentro de uma transação para preservar a invariante de no
	// máximo uma tabela ativa por cliente.
	DeactivateAllByClient(ctx context.Context, clientID string) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error

	CreateItem(ctx context.Context, item *entity.PriceTableItem) error
	GetItem(ctx context.Context, id string) (*entity.PriceTableItem, error)
	UpdateItem(ctx context.Context, item *entity.PriceTableItem) error
	ListItems(ctx context.Context, priceTableID string) ([]*entity.PriceTableItem, error)
	DeleteItem(ctx context.Context, id string) error
}
