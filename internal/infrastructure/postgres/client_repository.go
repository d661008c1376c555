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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementação do porto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository constrói o adaptador de persistência de clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, razao_social, nome_fantasia, cnpj, vendedor_id, status, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var vendedorID *string
	err := row.Scan(&c.ID, &c.RazaoSocial, &c.NomeFantasia, &c.CNPJ,
		&vendedorID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if vendedorID != nil {
		c.VendedorID = *vendedorID
	}
	return &c, nil
}

// Create persiste um novo cliente. CNPJ duplicado vira ErrDuplicado.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RazaoSocial, c.NomeFantasia, c.CNPJ, c.VendedorID,
		c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID devolve o cliente ou nil se não existir.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	row := r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// Update atualiza um cliente existente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET razao_social = $2, nome_fantasia = $3, cnpj = $4,
		    vendedor_id = NULLIF($5, ''), status = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.RazaoSocial, c.NomeFantasia, c.CNPJ, c.VendedorID, c.Status, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

// List lista clientes, opcionalmente filtrados pela carteira de um vendedor.
func (r *ClientRepo) List(ctx context.Context, vendedorID string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE ($1 = '' OR vendedor_id = $1)
		ORDER BY razao_social LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, vendedorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete remove o cliente. Pedidos existentes referenciam o cliente por FK;
// nesse caso devolve ErrConflito e o chamador oferece a desativação.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflito
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
