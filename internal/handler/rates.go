package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"curex/internal/catalog"
	"curex/internal/domain"
	"curex/internal/rates"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type RatesResponse struct {
	Base   string                     `json:"base" example:"USD"`
	AsOf   time.Time                  `json:"as_of,omitzero" example:"2025-01-02T15:04:05Z"`
	Rates  map[string]decimal.Decimal `json:"rates"`
	Status rates.Status               `json:"status"`
}

type RefreshRatesRequest struct {
	Base string `json:"base" example:"EUR"`
}

type HistoryPoint struct {
	Date  string          `json:"date" example:"2025-01-02"`
	Value decimal.Decimal `json:"value" example:"0.9231"`
}

type HistoryResponse struct {
	Base   string         `json:"base" example:"USD"`
	Quote  string         `json:"quote" example:"EUR"`
	Range  string         `json:"range" example:"30d"`
	Points []HistoryPoint `json:"points"`
}

// GetRates godoc
// @Summary Current rate table
// @Description The applied table and the outcome of the latest refresh. After a failed refresh the previous table is still served.
// @Tags Rates
// @Produce json
// @Success 200 {object} RatesResponse
// @Router /rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, _ *http.Request) {
	table, status := h.rates.Current()
	writeJSON(w, http.StatusOK, newRatesResponse(table, status))
}

// RefreshRates godoc
// @Summary Refresh rates now
// @Description Fetches a new table, optionally switching the base currency. A newer refresh started meanwhile wins.
// @Tags Rates
// @Accept json
// @Produce json
// @Param request body RefreshRatesRequest false "New base currency"
// @Success 200 {object} RatesResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "superseded by a newer refresh"
// @Failure 429 {object} errorResponse "daily quota exhausted or too many refreshes"
// @Failure 502 {object} errorResponse
// @Router /rates/refresh [post]
func (h *Handler) RefreshRates(w http.ResponseWriter, r *http.Request) {
	var req RefreshRatesRequest
	if r.ContentLength > 0 && !decodeBody(w, r, 256, &req) {
		return
	}

	base := domain.NormalizeCode(req.Base)
	if base == "" {
		base = h.rates.Base()
	}
	if err := catalog.ValidateCode(base); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// an unknown base would spend quota on a provider error
	if !h.catalog.Contains(base) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", domain.ErrUnknownCurrency, base))
		return
	}

	if _, err := h.rates.Refresh(r.Context(), base); err != nil {
		switch {
		case errors.Is(err, domain.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, domain.ErrFetchSuperseded):
			writeError(w, http.StatusConflict, err.Error())
		default:
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "RefreshRates", "base": base}).Warn("rates refresh failed")
			writeError(w, http.StatusBadGateway, "failed to refresh rates, previous rates are kept")
		}
		return
	}

	table, status := h.rates.Current()
	writeJSON(w, http.StatusOK, newRatesResponse(table, status))
}

// GetHistory godoc
// @Summary Rate history for a pair
// @Description Daily rates of quote against base, oldest first
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency code"
// @Param quote path string true "Quote currency code"
// @Param range query string false "7d, 30d, 90d or 1y" default(30d)
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} errorResponse
// @Failure 501 {object} errorResponse "provider has no history"
// @Failure 502 {object} errorResponse
// @Router /rates/history/{base}/{quote} [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	base := domain.NormalizeCode(chi.URLParam(r, "base"))
	quote := domain.NormalizeCode(chi.URLParam(r, "quote"))
	rng := r.URL.Query().Get("range")

	if err := h.catalog.ValidateHistoryPair(base, quote); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := rates.ParseRange(rng); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rng == "" {
		rng = "30d"
	}

	points, err := h.rates.History(r.Context(), base, quote, rng)
	if err != nil {
		if errors.Is(err, rates.ErrHistoryUnavailable) {
			writeError(w, http.StatusNotImplemented, err.Error())
			return
		}
		msg := "couldn't load rate history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "base": base, "quote": quote}).Error(msg)
		writeError(w, http.StatusBadGateway, msg)
		return
	}

	res := HistoryResponse{Base: base, Quote: quote, Range: rng, Points: make([]HistoryPoint, 0, len(points))}
	for _, p := range points {
		res.Points = append(res.Points, HistoryPoint{Date: p.Date.Format(time.DateOnly), Value: p.Value})
	}
	writeJSON(w, http.StatusOK, res)
}

func newRatesResponse(table domain.RateTable, status rates.Status) RatesResponse {
	res := RatesResponse{Base: table.Base, AsOf: table.AsOf, Rates: table.Rates(), Status: status}
	if res.Rates == nil {
		res.Rates = map[string]decimal.Decimal{}
	}
	return res
}
