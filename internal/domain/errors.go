package domain

import "errors"

var (
	ErrCurrencyNotSelected = errors.New("currency not selected")
	ErrMinimumSelection    = errors.New("at least two currencies must stay selected")
	ErrInvalidOrder        = errors.New("new order must be a permutation of the selected currencies")
	ErrDuplicateCurrency   = errors.New("duplicate currency in selection")
	ErrUnknownCurrency     = errors.New("currency not in catalog")
	ErrInvalidRateTable    = errors.New("invalid rate table")
	ErrNoRates             = errors.New("no rates loaded yet")
	ErrQuotaExceeded       = errors.New("daily api quota exceeded")
	ErrFetchSuperseded     = errors.New("rate fetch superseded by a newer request")
)
