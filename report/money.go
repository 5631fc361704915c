package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money formats an amount as pounds with thousands separators and two
// decimal places, e.g. -£1,234.50.
func Money(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]
	return sign + "£" + groupThousands(whole) + frac
}

// Percent formats a percentage with two decimal places.
func Percent(pct float64) string {
	return decimal.NewFromFloat(pct).Round(2).StringFixed(2) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
