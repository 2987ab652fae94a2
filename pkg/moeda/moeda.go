// Package moeda formata valores monetários em real brasileiro para DTOs de
// resumo de caixa e consulta de cupom.
package moeda

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatarBRL devolve o valor no formato "R$ 1.234,56".
// O decimal é arredondado para 2 casas antes da formatação.
func FormatarBRL(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprintf("R$ %v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
