package pricing

import (
	"context"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// TxRunner executa um callback com o repositório de tabelas atado a uma
// transação. A ativação de tabela usa isso para que "desativar as demais" e
// "ativar a alvo" sejam um único commit; a invariante de no máximo uma
// tabela ativa por cliente nunca fica quebrada entre escritas.
type TxRunner interface {
	RunPricing(ctx context.Context, fn func(repo repository.PriceTableRepository) error) error
}
