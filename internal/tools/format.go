package tools

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatUSD renders a dollar amount with grouping, e.g. "$1,234.50".
func FormatUSD(v float64) string {
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + group(d.StringFixed(2))
}

// FormatKRW renders a won amount, no decimals, e.g. "₩1,234,567".
func FormatKRW(v float64) string {
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "₩" + group(d.StringFixed(0))
}

// FormatSignedUSD prefixes non-negative amounts with a plus, the way
// the realized-profit card shows them.
func FormatSignedUSD(v float64) string {
	if v >= 0 {
		return "+" + FormatUSD(v)
	}
	return FormatUSD(v)
}

// FormatSignedPercent renders a profit rate like "+1.23%" or "-0.40%".
func FormatSignedPercent(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return d.StringFixed(2) + "%"
	}
	return "+" + d.StringFixed(2) + "%"
}

// FormatClock renders a log timestamp as local wall-clock time.
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// group inserts thousands separators into the integer part of a plain
// non-negative decimal string.
func group(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	n := len(intPart)
	if n <= 3 {
		if hasFrac {
			return intPart + "." + fracPart
		}
		return intPart
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
