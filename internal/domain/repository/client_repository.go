package repository

import (
	"context"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// ClientRepository define a porta de persistência para Client.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	List(ctx context.Context, vendedorID string, limit, offset int) ([]*entity.Client, error)
	// Delete remove o cliente. Retorna domain.ErrConflito quando existem
	// pedidos referenciando o cliente (violação de FK), para que o chamador
	// ofereça a desativação como alternativa.
	Delete(ctx context.Context, id string) error
}
