package dto

import "time"

// RegisterRequest entrada para cadastro de usuário (operação de admin).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin vendedor cliente"`
	ClientID string `json:"client_id" validate:"required_if=Role cliente,omitempty,uuid4"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest troca de senha do próprio usuário.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ProfileResponse saída de um perfil.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	ClientID  string    `json:"client_id,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + perfil autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// UpdateProfileRequest atualização parcial de um perfil.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=200"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
	ClientID *string `json:"client_id" validate:"omitempty,uuid4"`
}

// ProfileListResponse lista paginada de perfis.
type ProfileListResponse struct {
	Items []ProfileResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
