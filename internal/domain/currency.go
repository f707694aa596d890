package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one row of the user's selection.
type Currency struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Value  decimal.Decimal `json:"value"`
}

type CatalogEntry struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Flag returns the regional indicator pair for the first two letters of the code
// ("USD" -> US flag, "EUR" -> EU flag).
func (e CatalogEntry) Flag() string {
	if len(e.Code) < 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(e.Code[:2]) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

// NewCurrency builds a zero-valued selection entry from a catalog entry.
func (e CatalogEntry) NewCurrency() Currency {
	return Currency{Code: e.Code, Name: e.Name, Symbol: e.Symbol, Value: decimal.Zero}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
