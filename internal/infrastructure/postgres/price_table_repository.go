package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

var _ repository.PriceTableRepository = (*PriceTableRepo)(nil)

// PriceTableRepo implementação do porto PriceTableRepository sobre PostgreSQL.
// O índice único parcial em (client_id) WHERE active garante no banco a
// invariante de no máximo uma tabela ativa por cliente.
type PriceTableRepo struct {
	q Querier
}

// NewPriceTableRepository constrói o adaptador de persistência de tabelas de preço.
func NewPriceTableRepository(q Querier) *PriceTableRepo {
	return &PriceTableRepo{q: q}
}

const priceTableColumns = `id, client_id, vendedor_id, name, active, min_order, valid_from, valid_until, payment_terms, notes, created_at, updated_at`

func scanPriceTable(row pgx.Row) (*entity.PriceTable, error) {
	var t entity.PriceTable
	var vendedorID *string
	err := row.Scan(&t.ID, &t.ClientID, &vendedorID, &t.Name, &t.Active, &t.MinOrder,
		&t.ValidFrom, &t.ValidUntil, &t.PaymentTerms, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if vendedorID != nil {
		t.VendedorID = *vendedorID
	}
	return &t, nil
}

// Create persiste uma nova tabela de preço.
func (r *PriceTableRepo) Create(ctx context.Context, t *entity.PriceTable) error {
	query := `
		INSERT INTO price_tables (` + priceTableColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ClientID, t.VendedorID, t.Name, t.Active, t.MinOrder,
		t.ValidFrom, t.ValidUntil, t.PaymentTerms, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflito
		}
		return fmt.Errorf("insert price table: %w", err)
	}
	return nil
}

// GetByID devolve a tabela ou nil se não existir.
func (r *PriceTableRepo) GetByID(ctx context.Context, id string) (*entity.PriceTable, error) {
	row := r.q.QueryRow(ctx, `SELECT `+priceTableColumns+` FROM price_tables WHERE id = $1`, id)
	t, err := scanPriceTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price table: %w", err)
	}
	return t, nil
}

// Update atualiza os campos editáveis da tabela. O flag active tem caminho
// próprio (SetActive) para passar pela transação de ativação.
func (r *PriceTableRepo) Update(ctx context.Context, t *entity.PriceTable) error {
	query := `
		UPDATE price_tables
		SET name = $2, min_order = $3, valid_from = $4, valid_until = $5,
		    payment_terms = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.MinOrder, t.ValidFrom, t.ValidUntil, t.PaymentTerms, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update price table: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

func (r *PriceTableRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PriceTable, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price tables: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceTable
	for rows.Next() {
		t, err := scanPriceTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price table: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListByClient lista todas as tabelas de um cliente, mais recente primeiro.
func (r *PriceTableRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.PriceTable, error) {
	return r.list(ctx,
		`SELECT `+priceTableColumns+` FROM price_tables WHERE client_id = $1 ORDER BY created_at DESC`,
		clientID)
}

// ListActiveByClient lista as tabelas ativas de um cliente. A vigência por
// janela de datas é avaliada em código, nunca no banco.
func (r *PriceTableRepo) ListActiveByClient(ctx context.Context, clientID string) ([]*entity.PriceTable, error) {
	return r.list(ctx,
		`SELECT `+priceTableColumns+` FROM price_tables WHERE client_id = $1 AND active ORDER BY created_at DESC`,
		clientID)
}

// List lista tabelas com paginação, opcionalmente restritas à carteira de um
// vendedor (via vínculo do cliente).
func (r *PriceTableRepo) List(ctx context.Context, vendedorID string, limit, offset int) ([]*entity.PriceTable, error) {
	query := `
		SELECT ` + prefixColumns("t", priceTableColumns) + `
		FROM price_tables t
		JOIN clients c ON c.id = t.client_id
		WHERE ($1 = '' OR c.vendedor_id = $1)
		ORDER BY t.created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, vendedorID, limit, offset)
}

// DeactivateAllByClient desativa todas as tabelas do cliente. Chamado dentro
// da transação de ativação, antes do SetActive da escolhida.
func (r *PriceTableRepo) DeactivateAllByClient(ctx context.Context, clientID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE price_tables SET active = false, updated_at = now() WHERE client_id = $1 AND active`,
		clientID)
	if err != nil {
		return fmt.Errorf("deactivate price tables: %w", err)
	}
	return nil
}

// SetActive liga ou desliga o flag de uma tabela.
func (r *PriceTableRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE price_tables SET active = $2, updated_at = now() WHERE id = $1`,
		id, active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflito
		}
		return fmt.Errorf("set price table active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

// Delete remove a tabela e seus itens (ON DELETE CASCADE).
func (r *PriceTableRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM price_tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete price table: %w", err)
	}
	return nil
}

// CreateItem persiste um item de tabela. O par (tabela, produto) é único.
func (r *PriceTableRepo) CreateItem(ctx context.Context, item *entity.PriceTableItem) error {
	query := `
		INSERT INTO price_table_items (id, price_table_id, product_id, price_type, value, min_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.PriceTableID, item.ProductID, item.PriceType,
		item.Value, item.MinQuantity, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert price table item: %w", err)
	}
	return nil
}

// GetItem devolve um item ou nil se não existir.
func (r *PriceTableRepo) GetItem(ctx context.Context, id string) (*entity.PriceTableItem, error) {
	var it entity.PriceTableItem
	err := r.q.QueryRow(ctx,
		`SELECT id, price_table_id, product_id, price_type, value, min_quantity, created_at
		 FROM price_table_items WHERE id = $1`, id).
		Scan(&it.ID, &it.PriceTableID, &it.ProductID, &it.PriceType, &it.Value, &it.MinQuantity, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price table item: %w", err)
	}
	return &it, nil
}

// UpdateItem atualiza a regra de preço/quantidade de um item.
func (r *PriceTableRepo) UpdateItem(ctx context.Context, item *entity.PriceTableItem) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE price_table_items SET price_type = $2, value = $3, min_quantity = $4 WHERE id = $1`,
		item.ID, item.PriceType, item.Value, item.MinQuantity,
	)
	if err != nil {
		return fmt.Errorf("update price table item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

// ListItems lista os itens de uma tabela.
func (r *PriceTableRepo) ListItems(ctx context.Context, priceTableID string) ([]*entity.PriceTableItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, price_table_id, product_id, price_type, value, min_quantity, created_at
		 FROM price_table_items WHERE price_table_id = $1 ORDER BY created_at`, priceTableID)
	if err != nil {
		return nil, fmt.Errorf("list price table items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceTableItem
	for rows.Next() {
		var it entity.PriceTableItem
		if err := rows.Scan(&it.ID, &it.PriceTableID, &it.ProductID, &it.PriceType,
			&it.Value, &it.MinQuantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price table item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// DeleteItem remove um item da tabela.
func (r *PriceTableRepo) DeleteItem(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM price_table_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete price table item: %w", err)
	}
	return nil
}
