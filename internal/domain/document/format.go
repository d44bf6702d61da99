package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

func CurrencySymbol(c Currency) string {
	if c == USD {
		return "$"
	}
	return "€"
}

// FormatMoney renders a currency symbol and exactly two decimals.
func FormatMoney(c Currency, amount float64) string {
	return CurrencySymbol(c) + decimal.NewFromFloat(Round2(amount)).StringFixed(2)
}

func FormatQuantity(q Number) string {
	return strconv.FormatFloat(q.Float(), 'f', -1, 64)
}

// FormatPercent prints a VAT rate the way users type it: 20, 22.5.
func FormatPercent(rate Number) string {
	return strconv.FormatFloat(rate.Float(), 'f', -1, 64)
}

// FormatDateEU turns 2024-03-05 into 05/03/2024. Blank input yields "N/A";
// anything unparsable is returned unchanged.
func FormatDateEU(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("02/01/2006")
}

func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
