package postgres

import (
	"context"
	"fmt"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo busca pedidos desnormalizados para os relatórios: cabeça do
// pedido com nomes de cliente e vendedor resolvidos, mais os itens em uma
// segunda consulta em lote.
type ReportRepo struct {
	q Querier
}

// NewReportRepository constrói o adaptador de leitura para relatórios.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// FetchOrders busca até limit pedidos filtrados, mais antigos primeiro, com
// os itens anexados. O chamador decide o teto e trata o truncamento.
func (r *ReportRepo) FetchOrders(ctx context.Context, f repository.OrderFilter, limit int) ([]repository.ReportOrder, error) {
	query := `
		SELECT o.id, o.created_at, o.client_id, c.razao_social,
		       COALESCE(c.vendedor_id::text, ''), COALESCE(v.full_name, ''),
		       o.status, o.total_amount
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		LEFT JOIN profiles v ON v.id = c.vendedor_id
		WHERE ($1 = '' OR o.client_id = $1)
		  AND ($2 = '' OR c.vendedor_id = $2)
		  AND ($3 = '' OR o.status = $3)
		  AND ($4::timestamptz IS NULL OR o.created_at >= $4)
		  AND ($5::timestamptz IS NULL OR o.created_at < $5)
		ORDER BY o.created_at LIMIT $6`
	rows, err := r.q.Query(ctx, query,
		f.ClientID, f.VendedorID, f.Status, nullTime(f.From), nullTime(f.To), limit)
	if err != nil {
		return nil, fmt.Errorf("fetch report orders: %w", err)
	}
	defer rows.Close()

	var orders []repository.ReportOrder
	index := map[string]int{}
	var ids []string
	for rows.Next() {
		var o repository.ReportOrder
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.ClientID, &o.ClientName,
			&o.VendedorID, &o.VendedorName, &o.Status, &o.Total); err != nil {
			return nil, fmt.Errorf("scan report order: %w", err)
		}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.q.Query(ctx,
		`SELECT order_id, product_sku, product_name, quantity, unit_price, subtotal
		 FROM order_items WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch report order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var it repository.ReportOrderItem
		if err := itemRows.Scan(&orderID, &it.ProductSKU, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan report order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, itemRows.Err()
}
