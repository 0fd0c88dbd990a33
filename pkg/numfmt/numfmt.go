// Package numfmt formatea cantidades y precios para la consola y invctl.
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Quantity agrupa miles y deja hasta 2 decimales: 1234.5 -> "1,234.5".
func Quantity(n float64) string {
	return printer.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
}

// Money precio unitario con 2 decimales fijos: 5 -> "5.00".
func Money(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
