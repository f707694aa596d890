package domain

import (
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is a snapshot of rates quoted against Base: rates[code] is the price
// of one unit of Base in code. Tables are replaced on refresh, never edited.
type RateTable struct {
	Base  string
	AsOf  time.Time
	rates map[string]decimal.Decimal
}

// NewRateTable validates and copies raw provider rates. An entry for the base
// itself is dropped since it is implicitly 1.
func NewRateTable(base string, asOf time.Time, raw map[string]float64) (RateTable, error) {
	base = NormalizeCode(base)
	if len(base) != 3 {
		return RateTable{}, fmt.Errorf("%w: bad base code %q", ErrInvalidRateTable, base)
	}
	rates := make(map[string]decimal.Decimal, len(raw))
	for code, v := range raw {
		code = NormalizeCode(code)
		if code == base {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return RateTable{}, fmt.Errorf("%w: non-positive rate %v for %s", ErrInvalidRateTable, v, code)
		}
		rates[code] = decimal.NewFromFloat(v)
	}
	return RateTable{Base: base, AsOf: asOf, rates: rates}, nil
}

// Rate reports the rate for code; the base is always present with rate 1.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	if code == t.Base && t.Base != "" {
		return decimal.NewFromInt(1), true
	}
	r, ok := t.rates[code]
	return r, ok
}

func (t RateTable) IsZero() bool { return t.Base == "" }

func (t RateTable) Len() int { return len(t.rates) }

// Rates returns a copy of the quoted rates (base excluded).
func (t RateTable) Rates() map[string]decimal.Decimal {
	return maps.Clone(t.rates)
}

type HistoricalRate struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}
