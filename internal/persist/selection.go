package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"curex/internal/adapters"
	"curex/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	SelectionKey = "selected_currencies"
	QuotaKey     = "api_quota"
)

// SelectionRepository stores which currencies are selected and in what order.
// Values are session state: they are written as zero and loaded as zero.
type SelectionRepository struct {
	kv adapters.KVStore
}

func (r *SelectionRepository) Save(ctx context.Context, currencies []domain.Currency) error {
	toSave := make([]domain.Currency, 0, len(currencies))
	for _, c := range currencies {
		c.Value = decimal.Zero
		toSave = append(toSave, c)
	}
	blob, err := json.Marshal(toSave)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err = r.kv.Set(ctx, SelectionKey, string(blob)); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// Load returns found=false when nothing was saved yet.
func (r *SelectionRepository) Load(ctx context.Context) ([]domain.Currency, bool, error) {
	blob, found, err := r.kv.Get(ctx, SelectionKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load selection: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var currencies []domain.Currency
	if err = json.Unmarshal([]byte(blob), &currencies); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	for i := range currencies {
		currencies[i].Value = decimal.Zero
	}
	return currencies, true, nil
}

func (r *SelectionRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, SelectionKey); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}

func NewSelectionRepository(kv adapters.KVStore) *SelectionRepository {
	return &SelectionRepository{kv: kv}
}
