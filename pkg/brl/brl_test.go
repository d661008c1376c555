package brl_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rmacedo/portal-pedidos-api/pkg/brl"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", brl.Format(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 0,00", brl.Format(decimal.Zero))
	assert.Equal(t, "R$ 150,00", brl.Format(decimal.NewFromInt(150)))
}

func TestFormatPlain(t *testing.T) {
	assert.Equal(t, "1.234,50", brl.FormatPlain(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "99,90", brl.FormatPlain(decimal.RequireFromString("99.9")))
}
