package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rmacedo/portal-pedidos-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateDiscount_Percentual(t *testing.T) {
	res := pricing.CalculateDiscount(dec("100"), pricing.DiscountPercent, dec("10"))

	assert.True(t, res.FinalPrice.Equal(dec("90")), "preço final: %s", res.FinalPrice)
	assert.True(t, res.DiscountAmount.Equal(dec("10")))
	assert.True(t, res.EquivalentPercent.Equal(dec("10")))
}

func TestCalculateDiscount_FixoComPercentualEquivalente(t *testing.T) {
	res := pricing.CalculateDiscount(dec("100"), pricing.DiscountFixed, dec("15"))

	assert.True(t, res.FinalPrice.Equal(dec("85")), "preço final: %s", res.FinalPrice)
	assert.True(t, res.DiscountAmount.Equal(dec("15")))
	assert.True(t, res.EquivalentPercent.Equal(dec("15")))
}

// O preço final nunca é negativo, mesmo com percentual acima de 100 ou
// desconto fixo maior que o preço base.
func TestCalculateDiscount_TravaEmZero(t *testing.T) {
	res := pricing.CalculateDiscount(dec("50"), pricing.DiscountPercent, dec("150"))
	assert.True(t, res.FinalPrice.IsZero(), "pct > 100 deve travar em zero, veio %s", res.FinalPrice)

	res = pricing.CalculateDiscount(dec("50"), pricing.DiscountFixed, dec("80"))
	assert.True(t, res.FinalPrice.IsZero(), "fixo > base deve travar em zero, veio %s", res.FinalPrice)
}

func TestCalculateDiscount_PercentuaisDiversos(t *testing.T) {
	// finalPrice = basePrice * (1 - pct/100) para 0..100
	cases := []struct{ base, pct, want string }{
		{"100", "0", "100"},
		{"100", "100", "0"},
		{"200", "25", "150"},
		{"99.90", "10", "89.91"},
		{"0", "50", "0"},
	}
	for _, c := range cases {
		res := pricing.CalculateDiscount(dec(c.base), pricing.DiscountPercent, dec(c.pct))
		assert.True(t, res.FinalPrice.Equal(dec(c.want)),
			"base=%s pct=%s: esperado %s, veio %s", c.base, c.pct, c.want, res.FinalPrice)
	}
}

func TestCalculateDiscount_FixoComBaseZero(t *testing.T) {
	// Sem divisão por zero: percentual equivalente fica em zero.
	res := pricing.CalculateDiscount(decimal.Zero, pricing.DiscountFixed, dec("10"))
	assert.True(t, res.FinalPrice.IsZero())
	assert.True(t, res.EquivalentPercent.IsZero())
}

func TestCalculateDiscount_ModoDesconhecido(t *testing.T) {
	res := pricing.CalculateDiscount(dec("42"), "cupom", dec("10"))
	assert.True(t, res.FinalPrice.Equal(dec("42")), "modo desconhecido preserva o preço base")
	assert.True(t, res.DiscountAmount.IsZero())
}
