package repository

import (
	"context"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// ProductRepository define a porta de persistência para Product.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
