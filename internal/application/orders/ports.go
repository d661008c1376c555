package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/portal-pedidos-api/internal/domain"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
	"github.com/rmacedo/portal-pedidos-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação: cabeça e itens do pedido são
// gravados juntos ou nenhum dos dois.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(repo repository.OrderRepository) error) error
}

// Mailer notifica o vendedor responsável sobre um pedido novo. Implementações
// desabilitadas devem devolver nil silenciosamente.
type Mailer interface {
	OrderCreated(ctx context.Context, to string, order *entity.Order, client *entity.Client) error
}

// MinOrderError carrega o detalhe da trava de pedido mínimo para a resposta
// HTTP. errors.Is(err, domain.ErrPedidoMinimo) continua funcionando.
type MinOrderError struct {
	MinOrder decimal.Decimal
	Total    decimal.Decimal
	Gap      decimal.Decimal
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("pedido mínimo não atingido: faltam %s", e.Gap.StringFixed(2))
}

func (e *MinOrderError) Is(target error) bool {
	return target == domain.ErrPedidoMinimo
}
