package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"curex/internal/converter"
	"curex/internal/domain"
	"curex/internal/quota"
	"curex/internal/rates"
)

type Catalog interface {
	All() []domain.CatalogEntry
	Contains(code string) bool
	ValidateHistoryPair(base, quote string) error
}

type Converter interface {
	Selection() converter.View
	Add(ctx context.Context, code string) (bool, error)
	Remove(ctx context.Context, code string) error
	Reorder(ctx context.Context, codes []string) error
	SetAmount(code, raw string) (converter.View, error)
	ClearValues() converter.View
	Reset(ctx context.Context) error
	Convert(rawAmount, from, to string) (converter.Conversion, error)
}

type Rates interface {
	Current() (domain.RateTable, rates.Status)
	Base() string
	Refresh(ctx context.Context, base string) (domain.RateTable, error)
	History(ctx context.Context, base, quote, rng string) ([]domain.HistoricalRate, error)
}

type Quota interface {
	Status() quota.Status
}

type Handler struct {
	catalog   Catalog
	converter Converter
	rates     Rates
	quota     Quota
}

func NewHandler(catalog Catalog, converter Converter, rates Rates, quota Quota) *Handler {
	return &Handler{catalog: catalog, converter: converter, rates: rates, quota: quota}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody reads a small JSON body, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
