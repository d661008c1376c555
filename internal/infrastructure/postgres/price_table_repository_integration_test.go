//go:build integration

package postgres_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
	"github.com/rmacedo/portal-pedidos-api/internal/infrastructure/postgres"
	"github.com/rmacedo/portal-pedidos-api/pkg/config"
)

// startPostgres sobe um PostgreSQL efêmero com o esquema aplicado e devolve
// um pool conectado.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithInitScripts(filepath.Join("..", "..", "..", "migrations", "0001_init.sql")),
		tcpostgres.WithDatabase("portal_pedidos_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{
		DatabaseURL:    connStr,
		ConnectRetries: 5,
		ConnectBackoff: 1,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedClient(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO clients (id, razao_social, cnpj) VALUES ($1, $2, $3)`,
		id, "Distribuidora Alfa LTDA", uuid.NewString())
	require.NoError(t, err)
	return id
}

func newTable(clientID, name string) *entity.PriceTable {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.PriceTable{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Name:      name,
		MinOrder:  decimal.NewFromInt(300),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPriceTableRepo_CRUD(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewPriceTableRepository(pool)
	ctx := context.Background()
	clientID := seedClient(t, pool)

	table := newTable(clientID, "Tabela Junho")
	until := time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Microsecond)
	table.ValidUntil = &until
	require.NoError(t, repo.Create(ctx, table))

	got, err := repo.GetByID(ctx, table.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tabela Junho", got.Name)
	assert.False(t, got.Active, "tabela nasce desativada")
	assert.True(t, got.MinOrder.Equal(decimal.NewFromInt(300)), "NUMERIC volta como decimal: %s", got.MinOrder)
	require.NotNil(t, got.ValidUntil)
	assert.True(t, got.ValidUntil.Equal(until))

	got.Name = "Tabela Junho v2"
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.ListByClient(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tabela Junho v2", list[0].Name)

	require.NoError(t, repo.Delete(ctx, table.ID))
	gone, err := repo.GetByID(ctx, table.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// O índice único parcial bloqueia a segunda tabela ativa do mesmo cliente
// fora do caminho transacional.
func TestPriceTableRepo_IndiceUnicoDeAtiva(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewPriceTableRepository(pool)
	ctx := context.Background()
	clientID := seedClient(t, pool)

	a := newTable(clientID, "A")
	b := newTable(clientID, "B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.SetActive(ctx, a.ID, true))
	err := repo.SetActive(ctx, b.ID, true)
	assert.ErrorIs(t, err, domain.ErrConflito, "segunda ativa viola o índice parcial")
}

// A ativação transacional troca a tabela ativa sem janela de estado parcial.
func TestTxRunner_AtivacaoTransacional(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewPriceTableRepository(pool)
	runner := postgres.NewTxRunner(pool)
	ctx := context.Background()
	clientID := seedClient(t, pool)

	a := newTable(clientID, "A")
	b := newTable(clientID, "B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.SetActive(ctx, a.ID, true))

	err := runner.RunPricing(ctx, func(txRepo repository.PriceTableRepository) error {
		if err := txRepo.DeactivateAllByClient(ctx, clientID); err != nil {
			return err
		}
		return txRepo.SetActive(ctx, b.ID, true)
	})
	require.NoError(t, err)

	ativas, err := repo.ListActiveByClient(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, ativas, 1)
	assert.Equal(t, b.ID, ativas[0].ID)
}

func TestPriceTableRepo_ItemDuplicadoPorProduto(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewPriceTableRepository(pool)
	ctx := context.Background()
	clientID := seedClient(t, pool)

	table := newTable(clientID, "Tabela")
	require.NoError(t, repo.Create(ctx, table))

	productID := uuid.NewString()
	_, err := pool.Exec(ctx,
		`INSERT INTO products (id, sku, name, base_price) VALUES ($1, $2, $3, $4)`,
		productID, "CAFE-500", "Café 500g", decimal.NewFromInt(100))
	require.NoError(t, err)

	item := &entity.PriceTableItem{
		ID:           uuid.NewString(),
		PriceTableID: table.ID,
		ProductID:    productID,
		PriceType:    entity.PriceTypeDesconto,
		Value:        decimal.NewFromInt(90),
		MinQuantity:  6,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateItem(ctx, item))

	dup := *item
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, repo.CreateItem(ctx, &dup), domain.ErrDuplicado,
		"mesmo produto duas vezes na mesma tabela")

	// apagar a tabela leva os itens junto
	require.NoError(t, repo.Delete(ctx, table.ID))
	gone, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
