package handler

import (
	"errors"
	"net/http"

	"curex/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type AddCurrencyRequest struct {
	Code string `json:"code" example:"JPY"`
}

type ReorderRequest struct {
	Codes []string `json:"codes" example:"EUR,USD,GBP"`
}

type SetAmountRequest struct {
	Amount string `json:"amount" example:"1,250.50"`
}

// GetSelection godoc
// @Summary Get the converter selection
// @Description Selected currencies in display order with their current values
// @Tags Selection
// @Produce json
// @Success 200 {object} converter.View
// @Router /selection [get]
func (h *Handler) GetSelection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.converter.Selection())
}

// AddCurrency godoc
// @Summary Add a currency to the selection
// @Description Appends a catalog currency; adding an already selected one changes nothing
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body AddCurrencyRequest true "Currency code"
// @Success 201 {object} converter.View "added"
// @Success 200 {object} converter.View "already selected"
// @Failure 400 {object} errorResponse
// @Router /selection [post]
func (h *Handler) AddCurrency(w http.ResponseWriter, r *http.Request) {
	var req AddCurrencyRequest
	if !decodeBody(w, r, 256, &req) {
		return
	}

	added, err := h.converter.Add(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, err, "AddCurrency", "couldn't add currency")
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, h.converter.Selection())
}

// RemoveCurrency godoc
// @Summary Remove a currency from the selection
// @Tags Selection
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} converter.View
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse "at least two currencies must stay selected"
// @Router /selection/{code} [delete]
func (h *Handler) RemoveCurrency(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.converter.Remove(r.Context(), code); err != nil {
		h.selectionError(w, err, "RemoveCurrency")
		return
	}
	writeJSON(w, http.StatusOK, h.converter.Selection())
}

// ReorderSelection godoc
// @Summary Reorder the selection
// @Description The new order must contain exactly the selected codes
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body ReorderRequest true "Codes in the new order"
// @Success 200 {object} converter.View
// @Failure 400 {object} errorResponse
// @Router /selection/order [put]
func (h *Handler) ReorderSelection(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeBody(w, r, 1024, &req) {
		return
	}
	if err := h.converter.Reorder(r.Context(), req.Codes); err != nil {
		h.selectionError(w, err, "ReorderSelection")
		return
	}
	writeJSON(w, http.StatusOK, h.converter.Selection())
}

// SetAmount godoc
// @Summary Type an amount into one currency
// @Description Makes the currency active and converts the amount into every other selected currency.
// @Description Empty, negative or non-numeric input counts as zero.
// @Tags Selection
// @Accept json
// @Produce json
// @Param code path string true "Currency code"
// @Param request body SetAmountRequest true "Raw amount as typed"
// @Success 200 {object} converter.View
// @Failure 404 {object} errorResponse
// @Router /selection/{code}/amount [put]
func (h *Handler) SetAmount(w http.ResponseWriter, r *http.Request) {
	var req SetAmountRequest
	if !decodeBody(w, r, 256, &req) {
		return
	}
	view, err := h.converter.SetAmount(chi.URLParam(r, "code"), req.Amount)
	if err != nil {
		h.selectionError(w, err, "SetAmount")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ClearValues godoc
// @Summary Clear all amounts
// @Description Zeroes every value in the selection. The selected currencies and their order are kept.
// @Tags Selection
// @Produce json
// @Success 200 {object} converter.View
// @Router /selection/values [delete]
func (h *Handler) ClearValues(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.converter.ClearValues())
}

// ResetSelection godoc
// @Summary Reset the selection to the defaults
// @Tags Selection
// @Produce json
// @Success 200 {object} converter.View
// @Failure 500 {object} errorResponse
// @Router /selection [delete]
func (h *Handler) ResetSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.converter.Reset(r.Context()); err != nil {
		h.internalError(w, err, "ResetSelection", "couldn't reset selection")
		return
	}
	writeJSON(w, http.StatusOK, h.converter.Selection())
}

func (h *Handler) selectionError(w http.ResponseWriter, err error, handler string) {
	switch {
	case errors.Is(err, domain.ErrCurrencyNotSelected):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrMinimumSelection):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.internalError(w, err, handler, "couldn't update selection")
	}
}

func (h *Handler) internalError(w http.ResponseWriter, err error, handler, msg string) {
	msg = "ups, " + msg + " this time"
	logrus.WithError(err).WithField("handler", handler).Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
}
