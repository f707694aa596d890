package converter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"curex/internal/catalog"
	"curex/internal/conversion"
	"curex/internal/domain"
	"curex/internal/rates"
	"curex/internal/selection"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type RateReader interface {
	Current() (domain.RateTable, rates.Status)
}

type SelectionRepository interface {
	Save(ctx context.Context, currencies []domain.Currency) error
	Load(ctx context.Context) ([]domain.Currency, bool, error)
	Clear(ctx context.Context) error
}

// View is what the converter screen renders.
type View struct {
	Pivot      string            `json:"pivot,omitempty"`
	Base       string            `json:"base,omitempty"`
	AsOf       time.Time         `json:"as_of,omitzero"`
	Currencies []domain.Currency `json:"currencies"`
}

// Conversion is the result of a one-off conversion.
type Conversion struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Result    decimal.Decimal `json:"result"`
	Display   decimal.Decimal `json:"display"`
	Base      string          `json:"base"`
	RatesAsOf time.Time       `json:"rates_as_of"`
}

// Service owns the selection and keeps it in step with the applied rate table.
// Every structural change is persisted; a failed save is logged and the
// in-memory selection stays authoritative.
type Service struct {
	catalog  *catalog.Catalog
	rates    RateReader
	repo     SelectionRepository
	defaults []string

	mu    sync.RWMutex
	store *selection.Store
}

func (s *Service) Selection() View {
	table, _ := s.rates.Current()
	st := s.current()
	return View{Pivot: st.Pivot(), Base: table.Base, AsOf: table.AsOf, Currencies: st.Snapshot()}
}

// Add selects code. It reports false when code was already selected.
func (s *Service) Add(ctx context.Context, code string) (bool, error) {
	code = domain.NormalizeCode(code)
	entry, err := s.catalog.Lookup(code)
	if err != nil {
		return false, err
	}
	st := s.current()
	if !st.Add(entry.NewCurrency()) {
		return false, nil
	}
	table, _ := s.rates.Current()
	st.Recompute(table)
	s.persist(ctx, st)
	return true, nil
}

func (s *Service) Remove(ctx context.Context, code string) error {
	st := s.current()
	if err := st.Remove(domain.NormalizeCode(code)); err != nil {
		return err
	}
	s.persist(ctx, st)
	return nil
}

func (s *Service) Reorder(ctx context.Context, codes []string) error {
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		normalized = append(normalized, domain.NormalizeCode(c))
	}
	st := s.current()
	if err := st.Reorder(normalized); err != nil {
		return err
	}
	s.persist(ctx, st)
	return nil
}

// SetAmount makes code the active currency with the raw typed amount and
// recomputes the rest. Values are not persisted.
func (s *Service) SetAmount(code, raw string) (View, error) {
	table, _ := s.rates.Current()
	if err := s.current().SetActiveAmount(domain.NormalizeCode(code), raw, table); err != nil {
		return View{}, err
	}
	return s.Selection(), nil
}

// Recompute re-applies the active amount against the latest table.
func (s *Service) Recompute() {
	table, _ := s.rates.Current()
	s.current().Recompute(table)
}

// ClearValues zeroes every amount and leaves the selection itself as is.
// Values are never persisted, so nothing is saved.
func (s *Service) ClearValues() View {
	s.current().ClearValues()
	return s.Selection()
}

// Reset forgets the saved selection and starts over from the defaults.
func (s *Service) Reset(ctx context.Context) error {
	st, err := s.defaultStore()
	if err != nil {
		return err
	}
	if err = s.repo.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.store = st
	s.mu.Unlock()
	return nil
}

// Convert is a one-off conversion that leaves the selection untouched.
func (s *Service) Convert(rawAmount, from, to string) (Conversion, error) {
	from, to = domain.NormalizeCode(from), domain.NormalizeCode(to)
	if err := s.catalog.ValidatePair(from, to); err != nil {
		return Conversion{}, err
	}
	table, _ := s.rates.Current()
	if table.IsZero() {
		return Conversion{}, domain.ErrNoRates
	}
	for _, code := range []string{from, to} {
		if _, ok := table.Rate(code); !ok {
			return Conversion{}, fmt.Errorf("%w for %s against %s", domain.ErrNoRates, code, table.Base)
		}
	}

	amount := conversion.ParseAmount(rawAmount)
	result := conversion.Convert(amount, from, to, table)
	return Conversion{
		From:      from,
		To:        to,
		Amount:    amount,
		Result:    result,
		Display:   conversion.Display(result),
		Base:      table.Base,
		RatesAsOf: table.AsOf,
	}, nil
}

func (s *Service) current() *selection.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

func (s *Service) persist(ctx context.Context, st *selection.Store) {
	if err := s.repo.Save(ctx, st.Snapshot()); err != nil {
		logrus.WithError(err).WithField("codes", st.Codes()).Warn("Failed to persist selection")
	}
}

func (s *Service) defaultStore() (*selection.Store, error) {
	initial := make([]domain.Currency, 0, len(s.defaults))
	for _, code := range s.defaults {
		entry, err := s.catalog.Lookup(domain.NormalizeCode(code))
		if err != nil {
			return nil, fmt.Errorf("default selection: %w", err)
		}
		initial = append(initial, entry.NewCurrency())
	}
	return selection.New(initial)
}

// restore loads the saved selection, dropping entries the catalog no longer
// knows. It returns nil when nothing usable was saved.
func (s *Service) restore(ctx context.Context) *selection.Store {
	saved, found, err := s.repo.Load(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load saved selection, using defaults")
		return nil
	}
	if !found {
		return nil
	}

	initial := make([]domain.Currency, 0, len(saved))
	for _, c := range saved {
		entry, lookupErr := s.catalog.Lookup(domain.NormalizeCode(c.Code))
		if lookupErr != nil {
			logrus.WithField("code", c.Code).Warn("Dropping saved currency missing from catalog")
			continue
		}
		initial = append(initial, entry.NewCurrency())
	}
	st, err := selection.New(initial)
	if err != nil {
		logrus.WithError(err).Warn("Saved selection unusable, using defaults")
		return nil
	}
	return st
}

// NewService restores the saved selection or falls back to defaultCodes.
func NewService(ctx context.Context, cat *catalog.Catalog, rr RateReader, repo SelectionRepository, defaultCodes []string) (*Service, error) {
	s := &Service{catalog: cat, rates: rr, repo: repo, defaults: defaultCodes}

	if st := s.restore(ctx); st != nil {
		s.store = st
		return s, nil
	}
	st, err := s.defaultStore()
	if err != nil {
		return nil, err
	}
	s.store = st
	return s, nil
}
