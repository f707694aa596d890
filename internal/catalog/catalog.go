package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"curex/internal/domain"
)

var (
	ErrCodeRequired = errors.New("currency code is required")
	ErrCodeFormat   = errors.New("currency code must be three uppercase letters")
	ErrSameCodes    = errors.New("from and to must be different")
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Catalog is the read-only list of currencies a user may select.
type Catalog struct {
	byCode  map[string]domain.CatalogEntry // read only copy
	ordered []domain.CatalogEntry          // read only copy
}

func New(entries []domain.CatalogEntry) (*Catalog, error) {
	byCode := make(map[string]domain.CatalogEntry, len(entries))
	ordered := make([]domain.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		e.Code = domain.NormalizeCode(e.Code)
		if err := ValidateCode(e.Code); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.Code, err)
		}
		if _, dup := byCode[e.Code]; dup {
			return nil, fmt.Errorf("catalog entry %q: %w", e.Code, domain.ErrDuplicateCurrency)
		}
		byCode[e.Code] = e
		ordered = append(ordered, e)
	}
	return &Catalog{byCode: byCode, ordered: ordered}, nil
}

func (c *Catalog) Lookup(code string) (domain.CatalogEntry, error) {
	e, ok := c.byCode[code]
	if !ok {
		return domain.CatalogEntry{}, fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, code)
	}
	return e, nil
}

func (c *Catalog) Contains(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

func (c *Catalog) All() []domain.CatalogEntry {
	return slices.Clone(c.ordered)
}

func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.ordered))
	for _, e := range c.ordered {
		codes = append(codes, e.Code)
	}
	return codes
}

// ValidatePair checks a conversion request. Either side may be any well-formed
// code; whether a rate exists is decided by the rate table.
func (c *Catalog) ValidatePair(from, to string) error {
	if err := ValidateCode(from); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if err := ValidateCode(to); err != nil {
		return fmt.Errorf("to: %w", err)
	}
	return nil
}

// ValidateHistoryPair is stricter: a time series of a currency against itself is useless.
func (c *Catalog) ValidateHistoryPair(base, quote string) error {
	if err := c.ValidatePair(base, quote); err != nil {
		return err
	}
	if base == quote {
		return ErrSameCodes
	}
	return nil
}

func ValidateCode(code string) error {
	if code == "" {
		return ErrCodeRequired
	}
	if !codePattern.MatchString(code) {
		return ErrCodeFormat
	}
	return nil
}

// Defaults is the catalog used when none is configured.
func Defaults() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
		{Code: "GBP", Name: "British Pound", Symbol: "£"},
		{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
		{Code: "PLN", Name: "Polish Zloty", Symbol: "zł"},
		{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
		{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
		{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
		{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr"},
		{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	}
}
