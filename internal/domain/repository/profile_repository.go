package repository

import (
	"context"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// ProfileRepository define a porta de persistência para Profile (DIP).
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Profile, error)
	Delete(ctx context.Context, id string) error
}
