package dto

import "github.com/shopspring/decimal"

// ReportRequest filtros de relatório de vendas.
type ReportRequest struct {
	From       string `query:"from"`   // YYYY-MM-DD
	To         string `query:"to"`     // YYYY-MM-DD
	ClientID   string `query:"client_id"`
	VendedorID string `query:"vendedor_id"`
	Status     string `query:"status" validate:"omitempty,oneof=rascunho enviado aprovado faturado entregue cancelado"`
	TopN       int    `query:"top_n" validate:"omitempty,min=1,max=200"`
}

// SellerBreakdownDTO receita e contagem por vendedor.
type SellerBreakdownDTO struct {
	VendedorID   string          `json:"vendedor_id"`
	VendedorName string          `json:"vendedor_name"`
	OrderCount   int             `json:"order_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopProductDTO ranking de produtos por quantidade vendida.
type TopProductDTO struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SalesReportDTO agregação em memória sobre os pedidos filtrados.
// Truncated indica que o teto de pedidos do relatório foi atingido e os
// números cobrem apenas a amostra carregada.
type SalesReportDTO struct {
	OrderCount    int                  `json:"order_count"`
	TotalRevenue  decimal.Decimal      `json:"total_revenue"`
	AverageTicket decimal.Decimal      `json:"average_ticket"`
	BySeller      []SellerBreakdownDTO `json:"by_seller"`
	TopProducts   []TopProductDTO      `json:"top_products"`
	Truncated     bool                 `json:"truncated,omitempty"`
}
