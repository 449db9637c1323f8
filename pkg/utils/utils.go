package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundCents rounds a monetary amount to the smallest currency unit.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatRand renders an amount in South African display convention,
// e.g. "R 1 234 567.89". Used for the label/value rows returned to the UI.
func FormatRand(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("R ")
	b.WriteString(grouped)
	b.WriteString(".")
	b.WriteString(parts[1])
	return b.String()
}

// FormatPercent renders a percentage value, e.g. "11.25%".
func FormatPercent(d decimal.Decimal) string {
	return d.String() + "%"
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
