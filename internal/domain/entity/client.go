package entity

import "time"

// Status de Client.
const (
	ClientActive   = "active"
	ClientInactive = "inactive"
)

// Client representa uma empresa cliente do portal (compradora).
// Cada cliente pertence a no máximo um vendedor (VendedorID).
type Client struct {
	ID           string
	RazaoSocial  string
	NomeFantasia string
	CNPJ         string
	VendedorID   string // perfil do vendedor responsável; vazio se não atribuído
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
