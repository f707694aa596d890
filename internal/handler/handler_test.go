package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"curex/internal/catalog"
	"curex/internal/converter"
	"curex/internal/domain"
	"curex/internal/quota"
	"curex/internal/rates"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) All() []domain.CatalogEntry {
	entries, _ := m.Called().Get(0).([]domain.CatalogEntry)
	return entries
}

func (m *MockCatalog) Contains(code string) bool {
	return m.Called(code).Bool(0)
}

func (m *MockCatalog) ValidateHistoryPair(base, quote string) error {
	return m.Called(base, quote).Error(0)
}

type MockConverter struct{ mock.Mock }

func (m *MockConverter) Selection() converter.View {
	v, _ := m.Called().Get(0).(converter.View)
	return v
}

func (m *MockConverter) Add(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockConverter) Remove(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockConverter) Reorder(ctx context.Context, codes []string) error {
	return m.Called(ctx, codes).Error(0)
}

func (m *MockConverter) SetAmount(code, raw string) (converter.View, error) {
	args := m.Called(code, raw)
	v, _ := args.Get(0).(converter.View)
	return v, args.Error(1)
}

func (m *MockConverter) ClearValues() converter.View {
	v, _ := m.Called().Get(0).(converter.View)
	return v
}

func (m *MockConverter) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockConverter) Convert(rawAmount, from, to string) (converter.Conversion, error) {
	args := m.Called(rawAmount, from, to)
	c, _ := args.Get(0).(converter.Conversion)
	return c, args.Error(1)
}

type MockRates struct{ mock.Mock }

func (m *MockRates) Current() (domain.RateTable, rates.Status) {
	args := m.Called()
	t, _ := args.Get(0).(domain.RateTable)
	s, _ := args.Get(1).(rates.Status)
	return t, s
}

func (m *MockRates) Base() string {
	return m.Called().String(0)
}

func (m *MockRates) Refresh(ctx context.Context, base string) (domain.RateTable, error) {
	args := m.Called(ctx, base)
	t, _ := args.Get(0).(domain.RateTable)
	return t, args.Error(1)
}

func (m *MockRates) History(ctx context.Context, base, quote, rng string) ([]domain.HistoricalRate, error) {
	args := m.Called(ctx, base, quote, rng)
	points, _ := args.Get(0).([]domain.HistoricalRate)
	return points, args.Error(1)
}

type MockQuota struct{ mock.Mock }

func (m *MockQuota) Status() quota.Status {
	s, _ := m.Called().Get(0).(quota.Status)
	return s
}

type errorJSON struct {
	Error string `json:"error"`
}

type mocks struct {
	catalog   *MockCatalog
	converter *MockConverter
	rates     *MockRates
	quota     *MockQuota
}

func newTestHandler() (*Handler, mocks) {
	m := mocks{new(MockCatalog), new(MockConverter), new(MockRates), new(MockQuota)}
	return NewHandler(m.catalog, m.converter, m.rates, m.quota), m
}

func newRequest(method, target string, body any, params map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	require.Equal(t, code, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Contains(t, ej.Error, msg)
}

func sampleView() converter.View {
	return converter.View{
		Pivot: "USD",
		Base:  "USD",
		Currencies: []domain.Currency{
			{Code: "USD", Name: "US Dollar", Symbol: "$", Value: decimal.NewFromInt(100)},
			{Code: "EUR", Name: "Euro", Symbol: "€", Value: decimal.RequireFromString("90")},
		},
	}
}

// --- Catalog ---

func TestHandler_GetCatalog(t *testing.T) {
	h, m := newTestHandler()
	m.catalog.On("All").Return([]domain.CatalogEntry{{Code: "EUR", Name: "Euro", Symbol: "€"}}).Once()

	rr := httptest.NewRecorder()
	h.GetCatalog(rr, newRequest(http.MethodGet, "/api/v1/catalog", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetCatalogResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Currencies, 1)
	require.Equal(t, "EUR", res.Currencies[0].Code)
	require.Equal(t, "🇪🇺", res.Currencies[0].Flag)
}

// --- Selection ---

func TestHandler_GetSelection(t *testing.T) {
	h, m := newTestHandler()
	m.converter.On("Selection").Return(sampleView()).Once()

	rr := httptest.NewRecorder()
	h.GetSelection(rr, newRequest(http.MethodGet, "/api/v1/selection", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{
		"pivot":"USD","base":"USD",
		"currencies":[
			{"code":"USD","name":"US Dollar","symbol":"$","value":"100"},
			{"code":"EUR","name":"Euro","symbol":"€","value":"90"}
		]}`, rr.Body.String())
}

func TestHandler_AddCurrency(t *testing.T) {
	cases := []struct {
		name     string
		added    bool
		err      error
		wantCode int
	}{
		{name: "added", added: true, wantCode: http.StatusCreated},
		{name: "already selected", added: false, wantCode: http.StatusOK},
		{name: "unknown", err: fmt.Errorf("%w: XYZ", domain.ErrUnknownCurrency), wantCode: http.StatusBadRequest},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.converter.On("Add", mock.Anything, "jpy").Return(tc.added, tc.err).Once()
			m.converter.On("Selection").Return(sampleView()).Maybe()

			rr := httptest.NewRecorder()
			h.AddCurrency(rr, newRequest(http.MethodPost, "/api/v1/selection", AddCurrencyRequest{Code: "jpy"}, nil))

			require.Equal(t, tc.wantCode, rr.Code)
			m.converter.AssertExpectations(t)
		})
	}
}

func TestHandler_AddCurrency_InvalidBody(t *testing.T) {
	h, m := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/selection", bytes.NewBufferString(`{"code":"JPY","extra":1}`))
	rr := httptest.NewRecorder()
	h.AddCurrency(rr, req)

	requireError(t, rr, http.StatusBadRequest, "invalid request body")
	m.converter.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestHandler_RemoveCurrency(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "removed", wantCode: http.StatusOK},
		{name: "minimum", err: domain.ErrMinimumSelection, wantCode: http.StatusConflict},
		{name: "not selected", err: fmt.Errorf("%w: CHF", domain.ErrCurrencyNotSelected), wantCode: http.StatusNotFound},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.converter.On("Remove", mock.Anything, "CHF").Return(tc.err).Once()
			m.converter.On("Selection").Return(sampleView()).Maybe()

			rr := httptest.NewRecorder()
			h.RemoveCurrency(rr, newRequest(http.MethodDelete, "/api/v1/selection/CHF", nil, map[string]string{"code": "CHF"}))

			require.Equal(t, tc.wantCode, rr.Code)
		})
	}
}

func TestHandler_ReorderSelection(t *testing.T) {
	h, m := newTestHandler()
	m.converter.On("Reorder", mock.Anything, []string{"EUR", "USD"}).Return(nil).Once()
	m.converter.On("Reorder", mock.Anything, []string{"EUR"}).Return(domain.ErrInvalidOrder).Once()
	m.converter.On("Selection").Return(sampleView()).Once()

	rr := httptest.NewRecorder()
	h.ReorderSelection(rr, newRequest(http.MethodPut, "/api/v1/selection/order", ReorderRequest{Codes: []string{"EUR", "USD"}}, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ReorderSelection(rr, newRequest(http.MethodPut, "/api/v1/selection/order", ReorderRequest{Codes: []string{"EUR"}}, nil))
	requireError(t, rr, http.StatusBadRequest, domain.ErrInvalidOrder.Error())
}

func TestHandler_SetAmount(t *testing.T) {
	h, m := newTestHandler()
	m.converter.On("SetAmount", "usd", "100").Return(sampleView(), nil).Once()
	m.converter.On("SetAmount", "CHF", "1").Return(converter.View{}, domain.ErrCurrencyNotSelected).Once()

	rr := httptest.NewRecorder()
	h.SetAmount(rr, newRequest(http.MethodPut, "/api/v1/selection/usd/amount", SetAmountRequest{Amount: "100"}, map[string]string{"code": "usd"}))
	require.Equal(t, http.StatusOK, rr.Code)
	var view converter.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Equal(t, "90", view.Currencies[1].Value.String())

	rr = httptest.NewRecorder()
	h.SetAmount(rr, newRequest(http.MethodPut, "/api/v1/selection/CHF/amount", SetAmountRequest{Amount: "1"}, map[string]string{"code": "CHF"}))
	requireError(t, rr, http.StatusNotFound, domain.ErrCurrencyNotSelected.Error())
}

func TestHandler_ResetSelection(t *testing.T) {
	h, m := newTestHandler()
	m.converter.On("Reset", mock.Anything).Return(nil).Once()
	m.converter.On("Reset", mock.Anything).Return(errors.New("db down")).Once()
	m.converter.On("Selection").Return(sampleView()).Once()

	rr := httptest.NewRecorder()
	h.ResetSelection(rr, newRequest(http.MethodDelete, "/api/v1/selection", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ResetSelection(rr, newRequest(http.MethodDelete, "/api/v1/selection", nil, nil))
	requireError(t, rr, http.StatusInternalServerError, "couldn't reset selection")
}

func TestHandler_ClearValues(t *testing.T) {
	h, m := newTestHandler()
	cleared := sampleView()
	cleared.Pivot = ""
	for i := range cleared.Currencies {
		cleared.Currencies[i].Value = decimal.Zero
	}
	m.converter.On("ClearValues").Return(cleared).Once()

	rr := httptest.NewRecorder()
	h.ClearValues(rr, newRequest(http.MethodDelete, "/api/v1/selection/values", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var view converter.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Empty(t, view.Pivot)
	require.Len(t, view.Currencies, 2)
	require.True(t, view.Currencies[1].Value.IsZero())
	m.converter.AssertExpectations(t)
}

// --- Convert ---

func TestHandler_Convert(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "ok", wantCode: http.StatusOK},
		{name: "bad code", err: fmt.Errorf("from: %w", catalog.ErrCodeFormat), wantCode: http.StatusBadRequest},
		{name: "missing code", err: fmt.Errorf("to: %w", catalog.ErrCodeRequired), wantCode: http.StatusBadRequest},
		{name: "no rates", err: domain.ErrNoRates, wantCode: http.StatusServiceUnavailable},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestHandler()
			res := converter.Conversion{From: "USD", To: "EUR", Amount: decimal.NewFromInt(100), Result: decimal.NewFromInt(90)}
			m.converter.On("Convert", "100", "usd", "eur").Return(res, tc.err).Once()

			rr := httptest.NewRecorder()
			h.Convert(rr, newRequest(http.MethodGet, "/api/v1/convert?amount=100&from=usd&to=eur", nil, nil))

			require.Equal(t, tc.wantCode, rr.Code)
			if tc.err == nil {
				var got converter.Conversion
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				require.True(t, got.Result.Equal(decimal.NewFromInt(90)))
			}
		})
	}
}

// --- Rates ---

func mustTable(t *testing.T) domain.RateTable {
	t.Helper()
	table, err := domain.NewRateTable("USD", time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC), map[string]float64{"EUR": 0.9})
	require.NoError(t, err)
	return table
}

func TestHandler_GetRates(t *testing.T) {
	h, m := newTestHandler()
	m.rates.On("Current").Return(mustTable(t), rates.Status{Base: "USD"}).Once()

	rr := httptest.NewRecorder()
	h.GetRates(rr, newRequest(http.MethodGet, "/api/v1/rates", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res RatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "USD", res.Base)
	require.Equal(t, "0.9", res.Rates["EUR"].String())
}

func TestHandler_GetRates_BeforeFirstRefresh(t *testing.T) {
	h, m := newTestHandler()
	m.rates.On("Current").Return(domain.RateTable{}, rates.Status{Base: "USD", Failed: true, LastError: "offline"}).Once()

	rr := httptest.NewRecorder()
	h.GetRates(rr, newRequest(http.MethodGet, "/api/v1/rates", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, map[string]any{}, res["rates"])
	require.NotContains(t, res, "as_of")
}

func TestHandler_RefreshRates_DefaultsToCurrentBase(t *testing.T) {
	h, m := newTestHandler()
	m.rates.On("Base").Return("USD").Once()
	m.catalog.On("Contains", "USD").Return(true).Once()
	m.rates.On("Refresh", mock.Anything, "USD").Return(mustTable(t), nil).Once()
	m.rates.On("Current").Return(mustTable(t), rates.Status{Base: "USD"}).Once()

	rr := httptest.NewRecorder()
	h.RefreshRates(rr, newRequest(http.MethodPost, "/api/v1/rates/refresh", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	m.rates.AssertExpectations(t)
}

func TestHandler_RefreshRates_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "quota", err: domain.ErrQuotaExceeded, wantCode: http.StatusTooManyRequests, wantMsg: domain.ErrQuotaExceeded.Error()},
		{name: "superseded", err: domain.ErrFetchSuperseded, wantCode: http.StatusConflict, wantMsg: domain.ErrFetchSuperseded.Error()},
		{name: "upstream", err: errors.New("timeout"), wantCode: http.StatusBadGateway, wantMsg: "previous rates are kept"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestHandler()
			m.catalog.On("Contains", "EUR").Return(true).Once()
			m.rates.On("Refresh", mock.Anything, "EUR").Return(domain.RateTable{}, tc.err).Once()

			rr := httptest.NewRecorder()
			h.RefreshRates(rr, newRequest(http.MethodPost, "/api/v1/rates/refresh", RefreshRatesRequest{Base: " eur"}, nil))

			requireError(t, rr, tc.wantCode, tc.wantMsg)
			m.rates.AssertNotCalled(t, "Base")
		})
	}
}

func TestHandler_RefreshRates_InvalidBase(t *testing.T) {
	h, m := newTestHandler()

	rr := httptest.NewRecorder()
	h.RefreshRates(rr, newRequest(http.MethodPost, "/api/v1/rates/refresh", RefreshRatesRequest{Base: "EU1"}, nil))

	requireError(t, rr, http.StatusBadRequest, catalog.ErrCodeFormat.Error())
	m.rates.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestHandler_RefreshRates_BaseOutsideCatalog(t *testing.T) {
	h, m := newTestHandler()
	m.catalog.On("Contains", "XYZ").Return(false).Once()

	rr := httptest.NewRecorder()
	h.RefreshRates(rr, newRequest(http.MethodPost, "/api/v1/rates/refresh", RefreshRatesRequest{Base: "xyz"}, nil))

	requireError(t, rr, http.StatusBadRequest, domain.ErrUnknownCurrency.Error())
	m.rates.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
	m.catalog.AssertExpectations(t)
}

func TestHandler_GetHistory(t *testing.T) {
	h, m := newTestHandler()
	points := []domain.HistoricalRate{
		{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("0.91")},
		{Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("0.92")},
	}
	m.catalog.On("ValidateHistoryPair", "USD", "EUR").Return(nil).Once()
	m.rates.On("History", mock.Anything, "USD", "EUR", "7d").Return(points, nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, newRequest(http.MethodGet, "/api/v1/rates/history/usd/eur?range=7d", nil, map[string]string{"base": "usd", "quote": "eur"}))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"base":"USD","quote":"EUR","range":"7d","points":[
		{"date":"2025-03-03","value":"0.91"},
		{"date":"2025-03-04","value":"0.92"}]}`, rr.Body.String())
}

func TestHandler_GetHistory_Errors(t *testing.T) {
	t.Run("same codes", func(t *testing.T) {
		h, m := newTestHandler()
		m.catalog.On("ValidateHistoryPair", "USD", "USD").Return(catalog.ErrSameCodes).Once()

		rr := httptest.NewRecorder()
		h.GetHistory(rr, newRequest(http.MethodGet, "/api/v1/rates/history/USD/USD", nil, map[string]string{"base": "USD", "quote": "USD"}))
		requireError(t, rr, http.StatusBadRequest, catalog.ErrSameCodes.Error())
	})

	t.Run("bad range", func(t *testing.T) {
		h, m := newTestHandler()
		m.catalog.On("ValidateHistoryPair", "USD", "EUR").Return(nil).Once()

		rr := httptest.NewRecorder()
		h.GetHistory(rr, newRequest(http.MethodGet, "/api/v1/rates/history/USD/EUR?range=2w", nil, map[string]string{"base": "USD", "quote": "EUR"}))
		requireError(t, rr, http.StatusBadRequest, rates.ErrInvalidRange.Error())
		m.rates.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		h, m := newTestHandler()
		m.catalog.On("ValidateHistoryPair", "USD", "EUR").Return(nil).Once()
		m.rates.On("History", mock.Anything, "USD", "EUR", "30d").Return(nil, rates.ErrHistoryUnavailable).Once()

		rr := httptest.NewRecorder()
		h.GetHistory(rr, newRequest(http.MethodGet, "/api/v1/rates/history/USD/EUR", nil, map[string]string{"base": "USD", "quote": "EUR"}))
		requireError(t, rr, http.StatusNotImplemented, rates.ErrHistoryUnavailable.Error())
	})

	t.Run("upstream", func(t *testing.T) {
		h, m := newTestHandler()
		m.catalog.On("ValidateHistoryPair", "USD", "EUR").Return(nil).Once()
		m.rates.On("History", mock.Anything, "USD", "EUR", "90d").Return(nil, errors.New("timeout")).Once()

		rr := httptest.NewRecorder()
		h.GetHistory(rr, newRequest(http.MethodGet, "/api/v1/rates/history/USD/EUR?range=90d", nil, map[string]string{"base": "USD", "quote": "EUR"}))
		requireError(t, rr, http.StatusBadGateway, "couldn't load rate history")
	})
}

// --- Quota ---

func TestHandler_GetQuota(t *testing.T) {
	h, m := newTestHandler()
	m.quota.On("Status").Return(quota.Status{
		DailyUsed: 40, DailyLimit: 48, Remaining: 8, UsagePercent: 83, NearLimit: true,
		MonthlyLimit: 1500, DaysUntilReset: 9, RefreshInterval: 8 * time.Hour,
	}).Once()

	rr := httptest.NewRecorder()
	h.GetQuota(rr, newRequest(http.MethodGet, "/api/v1/quota", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res QuotaResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, 8, res.Remaining)
	require.True(t, res.NearLimit)
	require.Equal(t, 28800, res.RefreshIntervalSeconds)
}
