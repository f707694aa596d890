package conversion

import (
	"curex/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// StoredPlaces is the precision kept for converted values.
	StoredPlaces = 4
	// DisplayPlaces is the precision used when values are shown.
	DisplayPlaces = 2
)

// Convert prices amount of from in to using table. Pairs that don't touch the
// table's base go through the base as a hub. A missing rate yields zero, which
// callers treat as "unavailable".
func Convert(amount decimal.Decimal, from, to string, table domain.RateTable) decimal.Decimal {
	if from == to {
		return amount
	}

	fromRate, okFrom := table.Rate(from)
	toRate, okTo := table.Rate(to)
	if !okFrom || !okTo {
		return decimal.Zero
	}

	var result decimal.Decimal
	switch {
	case from == table.Base:
		result = amount.Mul(toRate)
	case to == table.Base:
		result = amount.Div(fromRate)
	default:
		result = amount.Mul(decimal.NewFromInt(1).Div(fromRate)).Mul(toRate)
	}
	return result.Round(StoredPlaces)
}

// ConvertAll converts amount of source into every target. It has no side effects.
func ConvertAll(amount decimal.Decimal, source string, table domain.RateTable, targets []string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(targets))
	for _, target := range targets {
		out[target] = Convert(amount, source, target, table)
	}
	return out
}

// Display rounds a stored value for presentation.
func Display(v decimal.Decimal) decimal.Decimal {
	return v.Round(DisplayPlaces)
}
