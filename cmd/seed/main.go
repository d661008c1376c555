// seed cria o usuário admin inicial do portal se ainda não existir.
//
// Uso: go run ./cmd/seed
// Lê ADMIN_EMAIL, ADMIN_PASSWORD e ADMIN_NAME do ambiente, além da
// configuração de banco padrão (DATABASE_URL ou DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/infrastructure/postgres"
	"github.com/rmacedo/portal-pedidos-api/pkg/config"
)

func main() {
	email := getenv("ADMIN_EMAIL", "admin@localhost")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD é obrigatório")
		os.Exit(1)
	}
	name := getenv("ADMIN_NAME", "Administrador")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexão ao PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewProfileRepository(pool)
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "consultar perfil: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Printf("admin %s já existe (id %s); nada a fazer\n", email, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de senha: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         entity.RoleAdmin,
		Status:       entity.ProfileActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, profile); err != nil {
		fmt.Fprintf(os.Stderr, "criar admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin %s criado (id %s)\n", email, profile.ID)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
