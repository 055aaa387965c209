package output

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	r := amount.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	fixed := r.StringFixed(2)
	cents := fixed[strings.IndexByte(fixed, '.'):]
	return sign + "$" + humanize.Comma(r.IntPart()) + cents
}

// FormatWholeCurrency formats a decimal as USD rounded to whole dollars.
func FormatWholeCurrency(amount decimal.Decimal) string {
	r := amount.Round(0)
	if r.IsNegative() {
		return "-$" + humanize.Comma(r.Abs().IntPart())
	}
	return "$" + humanize.Comma(r.IntPart())
}

// FormatPercentage formats a decimal already expressed in percent with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func money2(d decimal.Decimal) string { return d.StringFixed(2) }

var hundred = decimal.NewFromInt(100)
