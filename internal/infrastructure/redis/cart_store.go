// Package redis guarda o carrinho de cada perfil como um documento JSON sob
// uma chave fixa, com TTL para carrinhos abandonados.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rmacedo/portal-pedidos-api/internal/application/cart"
	"github.com/rmacedo/portal-pedidos-api/pkg/config"
)

var _ cart.Store = (*CartStore)(nil)

// cartTTL: carrinho sem toque por 30 dias é descartado.
const cartTTL = 30 * 24 * time.Hour

// CartStore implementa cart.Store sobre Redis.
type CartStore struct {
	client *redis.Client
}

// NewClient conecta ao Redis e valida com um ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewCartStore constrói o store sobre um cliente já conectado.
func NewCartStore(client *redis.Client) *CartStore {
	return &CartStore{client: client}
}

func cartKey(profileID string) string {
	return "cart:" + profileID
}

// Get devolve o documento do carrinho ou nil se não existir.
func (s *CartStore) Get(ctx context.Context, profileID string) ([]byte, error) {
	data, err := s.client.Get(ctx, cartKey(profileID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return data, nil
}

// Set grava o documento e renova o TTL.
func (s *CartStore) Set(ctx context.Context, profileID string, data []byte) error {
	if err := s.client.Set(ctx, cartKey(profileID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("set cart: %w", err)
	}
	return nil
}

// Delete remove o carrinho.
func (s *CartStore) Delete(ctx context.Context, profileID string) error {
	if err := s.client.Del(ctx, cartKey(profileID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
