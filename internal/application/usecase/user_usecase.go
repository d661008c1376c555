package usecase

import (
	"context"
	"time"

	"github.com/rmacedo/portal-pedidos-api/internal/application/auth"
	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// UserUseCase administração de perfis (listagem, edição, remoção).
// O cadastro em si fica no caso de uso de auth, que cuida do hash de senha.
type UserUseCase struct {
	repo repository.ProfileRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(repo repository.ProfileRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtém um perfil por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.ProfileResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return auth.ToProfileResponse(p), nil
}

// Update atualização parcial de um perfil (admin).
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.ClientID != nil {
		p.ClientID = *in.ClientID
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return auth.ToProfileResponse(p), nil
}

// List lista perfis com paginação.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.ProfileListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *auth.ToProfileResponse(p))
	}
	return &dto.ProfileListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete remove um perfil.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
