package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest adiciona um produto ao carrinho.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateCartItemRequest altera a quantidade de um item (sujeita ao piso).
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// CartItemResponse item do carrinho.
type CartItemResponse struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrinho com totais e a situação da trava de pedido mínimo.
type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	MinOrder      decimal.Decimal    `json:"min_order"`
	MeetsMinOrder bool               `json:"meets_min_order"`
	// Gap é quanto falta para liberar o envio; zero quando liberado.
	Gap decimal.Decimal `json:"gap"`
}
