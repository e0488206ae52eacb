package handoff

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₦"

var amountPattern = regexp.MustCompile(`^-?₦\d{1,3}(,\d{3})*(\.\d{2})?$`)

// FormatAmount renders an amount for display: "₦1,000" for whole amounts and
// "₦1,000.50" otherwise. Amounts are rounded to kobo first.
func FormatAmount(amount decimal.Decimal) string {
	amount = amount.Round(2)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole := amount.Truncate(0)
	out := sign + CurrencySymbol + formatWhole(whole)
	if !amount.Equal(whole) {
		// "0.50" -> ".50"
		out += amount.Sub(whole).StringFixed(2)[1:]
	}
	return out
}

// formatWhole groups a non-negative integer amount in thousands. Values past
// int64 are grouped from their decimal string.
func formatWhole(whole decimal.Decimal) string {
	n := whole.BigInt()
	if n.IsInt64() {
		return message.NewPrinter(language.English).Sprintf("%d", n.Int64())
	}

	digits := n.String()
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseAmount accepts exactly the strings FormatAmount produces.
func ParseAmount(formatted string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(formatted) {
		return decimal.Zero, fmt.Errorf("%w: amount %q", ErrMalformedPayload, formatted)
	}

	raw := strings.Replace(formatted, CurrencySymbol, "", 1)
	raw = strings.ReplaceAll(raw, ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", ErrMalformedPayload, formatted, err)
	}
	return amount, nil
}
