package pricing

import "github.com/shopspring/decimal"

// Modos de desconto aceitos pela calculadora.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

var hundred = decimal.NewFromInt(100)

// DiscountResult é o resultado puro da calculadora de desconto.
type DiscountResult struct {
	DiscountAmount    decimal.Decimal
	FinalPrice        decimal.Decimal // nunca negativo
	EquivalentPercent decimal.Decimal // % equivalente quando o modo é fixo (para exibição)
}

// CalculateDiscount aplica um desconto percentual ou em valor fixo sobre
// basePrice. FinalPrice é truncado em zero mesmo para percentuais acima de
// 100 ou valor fixo maior que o preço base.
func CalculateDiscount(basePrice decimal.Decimal, mode string, amount decimal.Decimal) DiscountResult {
	var res DiscountResult
	switch mode {
	case DiscountPercent:
		res.DiscountAmount = basePrice.Mul(amount).Div(hundred)
		res.EquivalentPercent = amount
	case DiscountFixed:
		res.DiscountAmount = amount
		if basePrice.IsPositive() {
			res.EquivalentPercent = amount.Div(basePrice).Mul(hundred)
		}
	default:
		res.FinalPrice = basePrice
		return res
	}
	res.FinalPrice = basePrice.Sub(res.DiscountAmount)
	if res.FinalPrice.IsNegative() {
		res.FinalPrice = decimal.Zero
	}
	return res
}
