package selection

import (
	"fmt"
	"slices"
	"sync"

	"curex/internal/conversion"
	"curex/internal/domain"

	"github.com/shopspring/decimal"
)

// MinCurrencies is the smallest selection the store accepts.
const MinCurrencies = 2

// Store is the ordered list of currencies on screen. All mutations hold one
// lock, so concurrent edits serialize and the last pivot written wins.
type Store struct {
	mu    sync.RWMutex
	items []domain.Currency
	pivot string
}

func New(initial []domain.Currency) (*Store, error) {
	if len(initial) < MinCurrencies {
		return nil, fmt.Errorf("%w: got %d", domain.ErrMinimumSelection, len(initial))
	}
	seen := make(map[string]struct{}, len(initial))
	items := make([]domain.Currency, 0, len(initial))
	for _, c := range initial {
		if _, dup := seen[c.Code]; dup {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCurrency, c.Code)
		}
		seen[c.Code] = struct{}{}
		items = append(items, c)
	}
	return &Store{items: items}, nil
}

// Add appends c with a zero value. It reports false when c.Code is already selected.
func (s *Store) Add(c domain.Currency) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(c.Code) >= 0 {
		return false
	}
	c.Value = decimal.Zero
	s.items = append(s.items, c)
	return true
}

func (s *Store) Remove(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) <= MinCurrencies {
		return domain.ErrMinimumSelection
	}
	i := s.indexOf(code)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrCurrencyNotSelected, code)
	}
	s.items = slices.Delete(s.items, i, i+1)
	if s.pivot == code {
		s.pivot = ""
	}
	return nil
}

// Reorder replaces the order wholesale. codes must be a permutation of the
// current selection.
func (s *Store) Reorder(codes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(codes) != len(s.items) {
		return domain.ErrInvalidOrder
	}
	byCode := make(map[string]domain.Currency, len(s.items))
	for _, c := range s.items {
		byCode[c.Code] = c
	}
	reordered := make([]domain.Currency, 0, len(codes))
	for _, code := range codes {
		c, ok := byCode[code]
		if !ok {
			return domain.ErrInvalidOrder
		}
		delete(byCode, code)
		reordered = append(reordered, c)
	}
	s.items = reordered
	return nil
}

// SetActiveAmount makes code the pivot, stores the parsed amount on it and
// recomputes every other entry from table.
func (s *Store) SetActiveAmount(code, raw string, table domain.RateTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(code)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrCurrencyNotSelected, code)
	}
	s.items[i].Value = conversion.ParseAmount(raw)
	s.pivot = code
	s.recompute(table)
	return nil
}

// Recompute re-derives every non-pivot value from the pivot's amount, e.g.
// after the rate table was replaced. Without a pivot it is a no-op.
func (s *Store) Recompute(table domain.RateTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(s.pivot) < 0 {
		return
	}
	s.recompute(table)
}

// ClearValues zeroes every entry and forgets the pivot.
func (s *Store) ClearValues() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].Value = decimal.Zero
	}
	s.pivot = ""
}

func (s *Store) Snapshot() []domain.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) Codes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.items))
	for _, c := range s.items {
		codes = append(codes, c.Code)
	}
	return codes
}

func (s *Store) Pivot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pivot
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) recompute(table domain.RateTable) {
	src := s.items[s.indexOf(s.pivot)]
	targets := make([]string, 0, len(s.items)-1)
	for _, c := range s.items {
		if c.Code != src.Code {
			targets = append(targets, c.Code)
		}
	}
	converted := conversion.ConvertAll(src.Value, src.Code, table, targets)
	for i := range s.items {
		if v, ok := converted[s.items[i].Code]; ok {
			s.items[i].Value = v
		}
	}
}

func (s *Store) indexOf(code string) int {
	return slices.IndexFunc(s.items, func(c domain.Currency) bool { return c.Code == code })
}
