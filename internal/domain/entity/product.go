package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de Product.
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product representa um produto do catálogo. BasePrice é o preço cheio;
// o preço efetivo por cliente vem da tabela de preço vigente.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	ImageURL    string
	BasePrice   decimal.Decimal
	Status      string // active, inactive
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
