package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItemResponse item do catálogo do cliente: produto + regra de preço
// da tabela vigente.
type CatalogItemResponse struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	MinQuantity int             `json:"min_quantity"`
}

// CatalogResponse catálogo resolvido para o cliente autenticado.
type CatalogResponse struct {
	PriceTableID string                `json:"price_table_id"`
	TableName    string                `json:"table_name"`
	MinOrder     decimal.Decimal       `json:"min_order"`
	PaymentTerms string                `json:"payment_terms,omitempty"`
	ValidUntil   *time.Time            `json:"valid_until,omitempty"`
	Items        []CatalogItemResponse `json:"items"`
}
