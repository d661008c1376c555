package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/entity"
)

// ResolveEffective escolhe a única tabela efetiva do cliente entre as
// candidatas: ativa e dentro da janela no instante now. A unicidade é
// garantida pela transação de ativação mais o índice parcial, mas dados
// legados podem violá-la; por isso a resolução escolhe defensivamente um
// único vencedor (o de CreatedAt mais recente) em vez de assumir unicidade.
//
// Zero candidatas vigentes é condição terminal visível ao usuário
// (catálogo vazio), não uma falha a ser repetida.
func ResolveEffective(tables []*entity.PriceTable, now time.Time) *entity.PriceTable {
	var winner *entity.PriceTable
	for _, t := range tables {
		if Status(t, now) != StatusVigente {
			continue
		}
		if winner == nil || t.CreatedAt.After(winner.CreatedAt) {
			winner = t
		}
	}
	return winner
}

// UnitPrice calcula o preço unitário de um item de tabela. Para o tipo base
// o preço vem do produto no momento da leitura; para desconto e fixo o valor
// final já foi calculado e gravado no item.
func UnitPrice(item *entity.PriceTableItem, productBase decimal.Decimal) decimal.Decimal {
	if item.PriceType == entity.PriceTypeBase {
		return productBase
	}
	return item.Value
}

// ClampQuantity aplica o piso de quantidade mínima do item: a quantidade
// pode subir livremente, mas nunca ficar abaixo de minQuantity.
func ClampQuantity(requested, minQuantity int) int {
	if minQuantity < 1 {
		minQuantity = 1
	}
	if requested < minQuantity {
		return minQuantity
	}
	return requested
}

// MinOrderGap devolve quanto falta para o total atingir o pedido mínimo da
// tabela. Zero ou negativo significa liberado; a fronteira é inclusiva:
// total igual ao mínimo passa.
func MinOrderGap(total, minOrder decimal.Decimal) decimal.Decimal {
	return minOrder.Sub(total)
}

// MeetsMinOrder informa se o total satisfaz o pedido mínimo (inclusivo).
func MeetsMinOrder(total, minOrder decimal.Decimal) bool {
	return total.GreaterThanOrEqual(minOrder)
}
