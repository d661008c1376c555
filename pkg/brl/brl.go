// Package brl formata valores monetários em real brasileiro para as saídas
// de apresentação (PDF e CSV). O domínio opera sempre em decimal cru; a
// formatação acontece apenas na borda.
package brl

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format formata o valor como "R$ 1.234,56" (duas casas, separadores pt-BR).
func Format(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("R$ %.2f", f)
}

// FormatPlain formata o valor como "1.234,56", sem o símbolo de moeda.
func FormatPlain(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}
