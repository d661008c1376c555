package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de Order. Não há grafo de transição imposto: admin e vendedor podem
// definir qualquer status a partir de qualquer status; apenas o histórico
// append-only é garantido.
const (
	OrderRascunho  = "rascunho"
	OrderEnviado   = "enviado"
	OrderAprovado  = "aprovado"
	OrderFaturado  = "faturado"
	OrderEntregue  = "entregue"
	OrderCancelado = "cancelado"
)

// ValidOrderStatus informa se s é um status de pedido conhecido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderRascunho, OrderEnviado, OrderAprovado, OrderFaturado, OrderEntregue, OrderCancelado:
		return true
	}
	return false
}

// StatusChange é uma entrada do histórico de status de um pedido.
type StatusChange struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order representa a cabeça de um pedido. StatusHistory é um log append-only
// de transições; a criação do pedido NÃO entra no array armazenado; o leitor
// sintetiza a primeira entrada a partir de CreatedAt (ver orders.History).
type Order struct {
	ID            string
	ClientID      string
	Status        string
	TotalAmount   decimal.Decimal
	Notes         string
	StatusHistory []StatusChange
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem é o retrato imutável do preço no momento do pedido; desacoplado
// de PriceTableItem para que mudanças de preço posteriores não alterem
// pedidos históricos.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductSKU  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
