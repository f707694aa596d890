package quota

import (
	"math"
	"time"

	"curex/internal/domain"
)

const (
	nearLimitRatio = 0.8

	atLimitRefresh     = 24 * time.Hour
	nearLimitRefresh   = 8 * time.Hour
	normalRefreshEvery = 4 * time.Hour
)

// Policy holds the provider's limits. MonthlyLimit and ResetDay are only
// reported, the daily counter is what gates requests.
type Policy struct {
	DailyLimit   int
	MonthlyLimit int
	ResetDay     int
}

type Status struct {
	DailyUsed       int           `json:"daily_used"`
	DailyLimit      int           `json:"daily_limit"`
	Remaining       int           `json:"remaining"`
	UsagePercent    int           `json:"usage_percent"`
	NearLimit       bool          `json:"near_limit"`
	AtLimit         bool          `json:"at_limit"`
	MonthlyLimit    int           `json:"monthly_limit"`
	DaysUntilReset  int           `json:"days_until_reset"`
	RefreshInterval time.Duration `json:"refresh_interval"`
}

func CanMakeRequest(state domain.QuotaState) bool {
	return state.DailyUsed < state.DailyLimit
}

// RecordRequest counts one request made on today. A new calendar day starts
// the counter over at 1.
func RecordRequest(state domain.QuotaState, today time.Time) domain.QuotaState {
	if !sameDay(today, state.LastResetDate) {
		return domain.QuotaState{DailyUsed: 1, DailyLimit: state.DailyLimit, LastResetDate: dateOf(today)}
	}
	state.DailyUsed++
	return state
}

// Rollover returns state as it reads on today: a stale date means nothing has
// been used yet today.
func Rollover(state domain.QuotaState, today time.Time) domain.QuotaState {
	if sameDay(today, state.LastResetDate) {
		return state
	}
	return domain.QuotaState{DailyUsed: 0, DailyLimit: state.DailyLimit, LastResetDate: dateOf(today)}
}

// DaysUntilMonthlyReset counts calendar days from today to the next resetDay.
// A reset day past the end of a month falls on that month's last day.
func DaysUntilMonthlyReset(today time.Time, resetDay int) int {
	if resetDay < 1 {
		resetDay = 1
	}
	y, m, d := today.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if d >= clampDay(y, m, resetDay) {
		m++
	}
	next := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	ny, nm, _ := next.Date()
	next = time.Date(ny, nm, clampDay(ny, nm, resetDay), 0, 0, 0, 0, time.UTC)

	return int(next.Sub(from).Hours() / 24)
}

func Summarize(state domain.QuotaState, today time.Time, p Policy) Status {
	state = Rollover(state, today)

	st := Status{
		DailyUsed:      state.DailyUsed,
		DailyLimit:     state.DailyLimit,
		Remaining:      max(0, state.DailyLimit-state.DailyUsed),
		AtLimit:        !CanMakeRequest(state),
		MonthlyLimit:   p.MonthlyLimit,
		DaysUntilReset: DaysUntilMonthlyReset(today, p.ResetDay),
	}
	if state.DailyLimit > 0 {
		ratio := float64(state.DailyUsed) / float64(state.DailyLimit)
		st.UsagePercent = int(math.Round(ratio * 100))
		st.NearLimit = ratio >= nearLimitRatio
	}

	switch {
	case st.AtLimit:
		st.RefreshInterval = atLimitRefresh
	case st.NearLimit:
		st.RefreshInterval = nearLimitRefresh
	default:
		st.RefreshInterval = normalRefreshEvery
	}
	return st
}

func clampDay(y int, m time.Month, day int) int {
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return min(day, last)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
