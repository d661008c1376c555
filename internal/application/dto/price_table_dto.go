package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceTableRequest entrada para criar uma tabela de preço.
type CreatePriceTableRequest struct {
	ClientID     string          `json:"client_id" validate:"required,uuid4"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	MinOrder     decimal.Decimal `json:"min_order"`
	ValidFrom    *time.Time      `json:"valid_from"`
	ValidUntil   *time.Time      `json:"valid_until"`
	PaymentTerms string          `json:"payment_terms"`
	Notes        string          `json:"notes"`
}

// UpdatePriceTableRequest atualização parcial das configurações da tabela.
// A ativação tem operação própria (ver ActivatePriceTable).
type UpdatePriceTableRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	MinOrder     *decimal.Decimal `json:"min_order"`
	ValidFrom    *time.Time       `json:"valid_from"`
	ValidUntil   *time.Time       `json:"valid_until"`
	ClearWindow  bool             `json:"clear_window"` // true remove as duas datas
	PaymentTerms *string          `json:"payment_terms"`
	Notes        *string          `json:"notes"`
}

// PriceTableResponse saída de uma tabela de preço. Status é derivado no
// momento da leitura, nunca armazenado. PausedSchedule sinaliza datas
// definidas com a tabela desativada, para alerta na UI de administração.
type PriceTableResponse struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	VendedorID     string          `json:"vendedor_id,omitempty"`
	Name           string          `json:"name"`
	Active         bool            `json:"active"`
	Status         string          `json:"status"` // INATIVA | AGENDADA | EXPIRADA | VIGENTE
	PausedSchedule bool            `json:"paused_schedule,omitempty"`
	MinOrder       decimal.Decimal `json:"min_order"`
	ValidFrom      *time.Time      `json:"valid_from,omitempty"`
	ValidUntil     *time.Time      `json:"valid_until,omitempty"`
	PaymentTerms   string          `json:"payment_terms,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PriceTableListResponse lista paginada de tabelas.
type PriceTableListResponse struct {
	Items []PriceTableResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// AddPriceTableItemRequest entrada para adicionar um produto à tabela.
// DiscountMode/DiscountValue alimentam a calculadora; o valor final gravado
// é o preço resultante.
type AddPriceTableItemRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid4"`
	PriceType     string          `json:"price_type" validate:"required,oneof=base desconto fixo"`
	DiscountValue decimal.Decimal `json:"discount_value"` // pct (desconto) ou valor (fixo); ignorado para base
	MinQuantity   int             `json:"min_quantity" validate:"omitempty,min=1"`
}

// UpdatePriceTableItemRequest atualização de um item da tabela.
type UpdatePriceTableItemRequest struct {
	PriceType     *string          `json:"price_type" validate:"omitempty,oneof=base desconto fixo"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	MinQuantity   *int             `json:"min_quantity" validate:"omitempty,min=1"`
}

// PriceTableItemResponse item da tabela com o resultado da calculadora.
type PriceTableItemResponse struct {
	ID                string          `json:"id"`
	PriceTableID      string          `json:"price_table_id"`
	ProductID         string          `json:"product_id"`
	ProductSKU        string          `json:"product_sku,omitempty"`
	ProductName       string          `json:"product_name,omitempty"`
	PriceType         string          `json:"price_type"`
	Value             decimal.Decimal `json:"value"`
	BasePrice         decimal.Decimal `json:"base_price"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	EquivalentPercent decimal.Decimal `json:"equivalent_percent"`
	MinQuantity       int             `json:"min_quantity"`
}

// DiscountPreviewRequest entrada da prévia da calculadora (recalculada a cada
// tecla na UI; nunca grava nada).
type DiscountPreviewRequest struct {
	BasePrice decimal.Decimal `json:"base_price"`
	Mode      string          `json:"mode" validate:"required,oneof=percent fixed"`
	Value     decimal.Decimal `json:"value"`
}

// DiscountPreviewResponse saída da prévia da calculadora.
type DiscountPreviewResponse struct {
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	FinalPrice        decimal.Decimal `json:"final_price"`
	EquivalentPercent decimal.Decimal `json:"equivalent_percent"`
}
