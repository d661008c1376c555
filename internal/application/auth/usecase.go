package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmacedo/portal-pedidos-api/internal/application/dto"
	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
	"github.com/rmacedo/portal-pedidos-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: cadastro, login e troca de senha.
type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	clientRepo  repository.ClientRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(profileRepo repository.ProfileRepository, clientRepo repository.ClientRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profileRepo: profileRepo, clientRepo: clientRepo, jwtCfg: jwtCfg}
}

// Register cria um perfil: hasheia a senha com bcrypt e persiste. Perfis com
// papel cliente exigem vínculo com um cliente existente.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.ProfileResponse, error) {
	existing, _ := uc.profileRepo.GetByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailJaCadastrado
	}
	if in.Role == entity.RoleCliente {
		client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrNaoEncontrado // cliente vinculado não existe
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		ClientID:     in.ClientID,
		Phone:        in.Phone,
		Address:      in.Address,
		Status:       entity.ProfileActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return ToProfileResponse(profile), nil
}

// Login verifica email/senha, gera JWT e retorna token + perfil.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profileRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUsuarioNaoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNaoAutorizado
	}
	if profile.Status != entity.ProfileActive {
		return nil, domain.ErrAcessoNegado
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.Role, profile.ClientID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Profile: *ToProfileResponse(profile),
	}, nil
}

// UpdatePassword troca a senha do próprio perfil após conferir a atual.
func (uc *AuthUseCase) UpdatePassword(ctx context.Context, profileID string, in dto.UpdatePasswordRequest) error {
	profile, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile == nil {
		return domain.ErrUsuarioNaoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrNaoAutorizado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.profileRepo.UpdatePassword(ctx, profileID, string(hash))
}

// ToProfileResponse converte a entidade em DTO de saída.
func ToProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		ClientID:  p.ClientID,
		Phone:     p.Phone,
		Address:   p.Address,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
