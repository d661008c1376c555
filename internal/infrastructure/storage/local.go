// Package storage grava imagens de produto em disco local, servidas depois
// pelo handler estático do servidor HTTP.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmacedo/portal-pedidos-api/internal/application/usecase"
	"github.com/rmacedo/portal-pedidos-api/pkg/config"
)

var _ usecase.ImageStore = (*LocalStore)(nil)

// LocalStore implementa usecase.ImageStore sobre o sistema de arquivos.
type LocalStore struct {
	dir       string
	publicURL string
}

// NewLocalStore garante o diretório de destino e constrói o store.
func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}
	return &LocalStore{
		dir:       cfg.Dir,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Save grava o arquivo e devolve a URL pública. O nome já vem sanitizado e
// único (o caso de uso prefixa com o ID do produto).
func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	name = filepath.Base(name) // nunca aceitar componentes de caminho
	dest := filepath.Join(s.dir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("gravar imagem: %w", err)
	}
	return s.publicURL + "/" + name, nil
}
