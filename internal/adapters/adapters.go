package adapters

import (
	"context"
	"time"

	"curex/internal/domain"
)

type RateSource interface {
	FetchRates(ctx context.Context, base string) (domain.RateTable, error)
}

type HistorySource interface {
	FetchHistory(ctx context.Context, base, quote string, start, end time.Time) ([]domain.HistoricalRate, error)
}

// KVStore is a string key-value store. Get reports found=false for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type RateTableCache interface {
	Get(base string) (domain.RateTable, bool)
	Set(table domain.RateTable)
}
