package entity

import "time"

// Papéis válidos para Profile.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleCliente  = "cliente"
)

// Status de Profile.
const (
	ProfileActive   = "active"
	ProfileInactive = "inactive"
)

// Profile representa um usuário do portal. Perfis com papel "cliente"
// carregam o vínculo com a empresa cliente via ClientID.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em texto plano após persistir
	FullName     string
	Role         string // admin, vendedor, cliente
	ClientID     string // vazio exceto para papel cliente
	Phone        string
	Address      string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
