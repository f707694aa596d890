package handler

import (
	"net/http"
)

type CatalogEntryResponse struct {
	Code   string `json:"code" example:"EUR"`
	Name   string `json:"name" example:"Euro"`
	Symbol string `json:"symbol" example:"€"`
	Flag   string `json:"flag" example:"🇪🇺"`
}

type GetCatalogResponse struct {
	Currencies []CatalogEntryResponse `json:"currencies"`
}

// GetCatalog godoc
// @Summary List selectable currencies
// @Description Currencies a user may add to the converter, in display order
// @Tags Catalog
// @Produce json
// @Success 200 {object} GetCatalogResponse
// @Router /catalog [get]
func (h *Handler) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	entries := h.catalog.All()
	res := GetCatalogResponse{Currencies: make([]CatalogEntryResponse, 0, len(entries))}
	for _, e := range entries {
		res.Currencies = append(res.Currencies, CatalogEntryResponse{Code: e.Code, Name: e.Name, Symbol: e.Symbol, Flag: e.Flag()})
	}
	writeJSON(w, http.StatusOK, res)
}
