// Package currency converts between the store's integer-cents representation
// and the display representation. Amounts are persisted as cents, always; the
// conversion to dollars happens only here, at the presentation boundary.
package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders integer cents as a US-locale currency string,
// e.g. 105000 -> "$1,050.00".
func FormatUSD(cents int64) string {
	return printer.Sprintf("$%v", number.Decimal(float64(cents)/100,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ToCents converts a decimal dollar amount from form input into cents,
// rounding to the nearest cent to absorb binary float noise.
func ToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// ToDollars converts stored cents back to decimal dollars for form prefill.
func ToDollars(cents int64) float64 {
	return float64(cents) / 100
}
