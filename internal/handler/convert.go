package handler

import (
	"errors"
	"net/http"

	"curex/internal/catalog"
	"curex/internal/domain"
)

// Convert godoc
// @Summary Convert an amount between two currencies
// @Description One-off conversion against the current rate table; the selection is not touched
// @Tags Convert
// @Produce json
// @Param amount query string true "Amount, e.g. 1,000.50"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} converter.Conversion
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse "rates unavailable"
// @Router /convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.converter.Convert(q.Get("amount"), q.Get("from"), q.Get("to"))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCodeRequired), errors.Is(err, catalog.ErrCodeFormat):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNoRates):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			h.internalError(w, err, "Convert", "couldn't convert")
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}
