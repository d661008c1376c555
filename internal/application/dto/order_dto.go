package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada de criação de pedido. O conteúdo vem do
// carrinho persistido do perfil; o corpo só carrega observações.
type CreateOrderRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

// UpdateOrderStatusRequest troca direta de status (admin/vendedor).
// Qualquer status a partir de qualquer status; não há grafo imposto.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=rascunho enviado aprovado faturado entregue cancelado"`
}

// OrderItemResponse item do pedido (retrato imutável).
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// StatusChangeResponse entrada do histórico de status.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Label     string    `json:"label"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderResponse saída de um pedido. History inclui a entrada sintetizada de
// criação ("Pedido Enviado", CreatedAt) seguida das transições armazenadas.
type OrderResponse struct {
	ID          string                 `json:"id"`
	ClientID    string                 `json:"client_id"`
	Status      string                 `json:"status"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Notes       string                 `json:"notes,omitempty"`
	Items       []OrderItemResponse    `json:"items,omitempty"`
	History     []StatusChangeResponse `json:"history,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
