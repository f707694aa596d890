package handler

import (
	"net/http"
)

type QuotaResponse struct {
	DailyUsed              int  `json:"daily_used" example:"12"`
	DailyLimit             int  `json:"daily_limit" example:"48"`
	Remaining              int  `json:"remaining" example:"36"`
	UsagePercent           int  `json:"usage_percent" example:"25"`
	NearLimit              bool `json:"near_limit"`
	AtLimit                bool `json:"at_limit"`
	MonthlyLimit           int  `json:"monthly_limit" example:"1500"`
	DaysUntilReset         int  `json:"days_until_reset" example:"9"`
	RefreshIntervalSeconds int  `json:"refresh_interval_seconds" example:"14400"`
}

// GetQuota godoc
// @Summary API quota usage
// @Description Daily request budget of the rates provider and the refresh cadence it implies
// @Tags Quota
// @Produce json
// @Success 200 {object} QuotaResponse
// @Router /quota [get]
func (h *Handler) GetQuota(w http.ResponseWriter, _ *http.Request) {
	s := h.quota.Status()
	writeJSON(w, http.StatusOK, QuotaResponse{
		DailyUsed:              s.DailyUsed,
		DailyLimit:             s.DailyLimit,
		Remaining:              s.Remaining,
		UsagePercent:           s.UsagePercent,
		NearLimit:              s.NearLimit,
		AtLimit:                s.AtLimit,
		MonthlyLimit:           s.MonthlyLimit,
		DaysUntilReset:         s.DaysUntilReset,
		RefreshIntervalSeconds: int(s.RefreshInterval.Seconds()),
	})
}
