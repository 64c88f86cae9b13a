package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Price of zero is a sentinel meaning "quote pending": the receipt and the
// caption show a status-only headline instead of a currency value.

// IsSentinelPrice reports whether the price means "no price set"
func IsSentinelPrice(price decimal.Decimal) bool {
	return price.IsZero()
}

// FormatBRL renders a decimal as pt-BR currency, e.g. 150.5 -> "R$ 150,50".
// Thousands are not grouped; the original receipt never grouped them either.
func FormatBRL(price decimal.Decimal) string {
	return "R$ " + strings.Replace(price.StringFixed(2), ".", ",", 1)
}

// ParsePrice normalizes a raw form value into a two-decimal price. Empty or
// unparsable input collapses to the zero sentinel rather than erroring, since
// an absent price is a valid "quote pending" state.
func ParsePrice(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}
