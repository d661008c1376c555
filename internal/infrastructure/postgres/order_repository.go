package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementação do porto OrderRepository sobre PostgreSQL.
// StatusHistory vive numa coluna JSONB: o caso de uso anexa a transição e o
// array inteiro é regravado; nunca editado entrada a entrada.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository constrói o adaptador de persistência de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, client_id, status, total_amount, notes, status_history, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var history []byte
	err := row.Scan(&o.ID, &o.ClientID, &o.Status, &o.TotalAmount, &o.Notes,
		&history, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
			return nil, fmt.Errorf("decode status history: %w", err)
		}
	}
	return &o, nil
}

// Create persiste a cabeça do pedido. StatusHistory nasce como array vazio:
// a entrada de criação é sempre sintetizada na leitura.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	history, err := json.Marshal(o.StatusHistory)
	if err != nil {
		return fmt.Errorf("encode status history: %w", err)
	}
	if o.StatusHistory == nil {
		history = []byte("[]")
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.ClientID, o.Status, o.TotalAmount, o.Notes, history, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflito
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItems persiste os itens do pedido (retratos imutáveis de preço).
func (r *OrderRepo) CreateItems(ctx context.Context, items []entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_sku, product_name, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, it.OrderID, it.ProductID, it.ProductSKU, it.ProductName,
			it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID devolve o pedido com seus itens, ou nil se não existir.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, product_sku, product_name, quantity, unit_price, subtotal
		 FROM order_items WHERE order_id = $1 ORDER BY product_name`, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductSKU,
			&it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// UpdateStatus grava o status corrente e o histórico completo.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	history, err := json.Marshal(o.StatusHistory)
	if err != nil {
		return fmt.Errorf("encode status history: %w", err)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, status_history = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, history, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

// List lista pedidos filtrados, mais recente primeiro. O filtro por vendedor
// passa pelo vínculo do cliente.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + prefixColumns("o", orderColumns) + `
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE ($1 = '' OR o.client_id = $1)
		  AND ($2 = '' OR c.vendedor_id = $2)
		  AND ($3 = '' OR o.status = $3)
		  AND ($4::timestamptz IS NULL OR o.created_at >= $4)
		  AND ($5::timestamptz IS NULL OR o.created_at < $5)
		ORDER BY o.created_at DESC LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query,
		f.ClientID, f.VendedorID, f.Status, nullTime(f.From), nullTime(f.To), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
