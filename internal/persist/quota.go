package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"curex/internal/adapters"
	"curex/internal/domain"
)

type QuotaRepository struct {
	kv adapters.KVStore
}

func (r *QuotaRepository) SaveQuota(ctx context.Context, state domain.QuotaState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal quota: %w", err)
	}
	if err = r.kv.Set(ctx, QuotaKey, string(blob)); err != nil {
		return fmt.Errorf("failed to save quota: %w", err)
	}
	return nil
}

func (r *QuotaRepository) LoadQuota(ctx context.Context) (*domain.QuotaState, error) {
	blob, found, err := r.kv.Get(ctx, QuotaKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load quota: %w", err)
	}
	if !found {
		return nil, nil
	}
	var state domain.QuotaState
	if err = json.Unmarshal([]byte(blob), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quota: %w", err)
	}
	return &state, nil
}

func NewQuotaRepository(kv adapters.KVStore) *QuotaRepository {
	return &QuotaRepository{kv: kv}
}
