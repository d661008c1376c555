package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// OrderFilter são os filtros de listagem e relatório de pedidos.
// Campos zerados não filtram.
type OrderFilter struct {
	ClientID   string
	VendedorID string // via vínculo do cliente com o vendedor
	Status     string
	From       time.Time
	To         time.Time
}

// OrderRepository define a porta de persistência para Order e OrderItem.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	CreateItems(ctx context.Context, items []entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus grava o novo status e o histórico completo (append feito
	// pelo caso de uso; o array armazenado nunca é reescrito, só cresce).
	UpdateStatus(ctx context.Context, o *entity.Order) error
	List(ctx context.Context, f OrderFilter, limit, offset int) ([]*entity.Order, error)
}

// ReportOrder é a linha desnormalizada usada por relatórios e exportações:
// pedido mais os nomes do cliente e do vendedor já resolvidos.
type ReportOrder struct {
	ID           string
	CreatedAt    time.Time
	ClientID     string
	ClientName   string
	VendedorID   string
	VendedorName string
	Status       string
	Total        decimal.Decimal
	Items        []ReportOrderItem
}

// ReportOrderItem é o item de pedido na visão de relatório.
type ReportOrderItem struct {
	ProductSKU  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReportRepository busca pedidos enriquecidos para agregação em memória.
// A busca é limitada (cap); fronteira de escala explícita do relatório.
type ReportRepository interface {
	FetchOrders(ctx context.Context, f OrderFilter, limit int) ([]ReportOrder, error)
}
