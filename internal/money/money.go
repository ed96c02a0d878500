package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// ParseAmount parses a whole-dong amount from its request string form.
// Fund amounts are non-negative integers; decimals and signs are rejected.
func ParseAmount(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrInvalidAmount
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if value.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if !value.IsInteger() {
		return 0, ErrInvalidAmount
	}
	return value.IntPart(), nil
}

// FormatVND renders an amount the way the dashboard shows it: dot-grouped
// thousands with the currency suffix, e.g. 1250000 -> "1.250.000 đ".
func FormatVND(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	digits := decimal.NewFromInt(value).String()
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	out := b.String() + " đ"
	if negative {
		return "-" + out
	}
	return out
}
