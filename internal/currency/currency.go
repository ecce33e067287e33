// Package currency parses and formats Brazilian-locale monetary values.
// Exports from the back office carry values like "R$ 1.234,56"; the
// aggregation pipeline works on plain float64 and only formats back to
// pt-BR strings at the artifact boundary.
package currency

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Parse converts a raw cell value to a float64. The currency symbol and
// surrounding whitespace are stripped, thousands separators removed and
// the decimal comma replaced before parsing. Empty or malformed input
// degrades to 0 rather than failing the row.
func Parse(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.TrimSpace(strings.Replace(raw, "R$", "", 1))
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Format renders a value as a pt-BR currency string ("R$ 1.234,56").
func Format(v float64) string {
	return printer.Sprintf("R$ %v",
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatPercent renders a ratio already scaled to percent with two
// decimal places and a comma separator ("25,00%").
func FormatPercent(p float64) string {
	return strings.Replace(strconv.FormatFloat(p, 'f', 2, 64), ".", ",", 1) + "%"
}
