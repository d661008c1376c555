package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase constrói o caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create cria um novo cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	now := time.Now()
	client := &entity.Client{
		ID:           uuid.New().String(),
		RazaoSocial:  in.RazaoSocial,
		NomeFantasia: in.NomeFantasia,
		CNPJ:         in.CNPJ,
		VendedorID:   in.VendedorID,
		Status:       entity.ClientActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtém um cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// Update atualiza um cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.RazaoSocial != nil {
		client.RazaoSocial = *in.RazaoSocial
	}
	if in.NomeFantasia != nil {
		client.NomeFantasia = *in.NomeFantasia
	}
	if in.CNPJ != nil {
		client.CNPJ = *in.CNPJ
	}
	if in.VendedorID != nil {
		client.VendedorID = *in.VendedorID
	}
	if in.Status != nil {
		client.Status = *in.Status
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes, opcionalmente restritos a um vendedor.
func (uc *ClientUseCase) List(ctx context.Context, vendedorID string, limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(ctx, vendedorID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete remove o cliente. ErrConflito quando existem pedidos vinculados;
// o chamador então oferece a desativação (Deactivate) como alternativa.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Deactivate marca o cliente como inativo (alternativa ao delete bloqueado por FK).
func (uc *ClientUseCase) Deactivate(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNaoEncontrado
	}
	client.Status = entity.ClientInactive
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:           c.ID,
		RazaoSocial:  c.RazaoSocial,
		NomeFantasia: c.NomeFantasia,
		CNPJ:         c.CNPJ,
		VendedorID:   c.VendedorID,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
