package domain

import "time"

// QuotaState is the locally tracked daily request counter for the rate provider.
type QuotaState struct {
	DailyUsed     int       `json:"daily_used"`
	DailyLimit    int       `json:"daily_limit"`
	LastResetDate time.Time `json:"last_reset_date"`
}
