package conversion

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount turns user input into a non-negative amount. Empty, non-numeric
// and negative input all read as zero so the active row clears the others
// instead of failing.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	// "12." is a half-typed number, treat it as "12"
	cleaned = strings.TrimSuffix(cleaned, ".")
	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}
	if strings.ContainsAny(cleaned, "eE") {
		return decimal.Zero
	}

	v, err := decimal.NewFromString(cleaned)
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	return v
}
