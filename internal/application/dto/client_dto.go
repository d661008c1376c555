package dto

import "time"

// CreateClientRequest entrada para criar um cliente.
type CreateClientRequest struct {
	RazaoSocial  string `json:"razao_social" validate:"required,min=2,max=200"`
	NomeFantasia string `json:"nome_fantasia" validate:"max=200"`
	CNPJ         string `json:"cnpj" validate:"omitempty,len=14"`
	VendedorID   string `json:"vendedor_id" validate:"omitempty,uuid4"`
}

// UpdateClientRequest atualização parcial de um cliente.
type UpdateClientRequest struct {
	RazaoSocial  *string `json:"razao_social" validate:"omitempty,min=2,max=200"`
	NomeFantasia *string `json:"nome_fantasia" validate:"omitempty,max=200"`
	CNPJ         *string `json:"cnpj" validate:"omitempty,len=14"`
	VendedorID   *string `json:"vendedor_id"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ClientResponse saída de um cliente.
type ClientResponse struct {
	ID           string    `json:"id"`
	RazaoSocial  string    `json:"razao_social"`
	NomeFantasia string    `json:"nome_fantasia,omitempty"`
	CNPJ         string    `json:"cnpj,omitempty"`
	VendedorID   string    `json:"vendedor_id,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
