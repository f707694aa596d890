package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"curex/internal/domain"
)

// ExchangeRateClient talks to exchangerate-api.com style endpoints:
// GET {baseURL}/{code} where baseURL already carries the api key.
type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	now     func() time.Time
}

type apiResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

func (c *ExchangeRateClient) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to create request for currency %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to execute request for currency %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.RateTable{}, fmt.Errorf("unexpected status code %d for currency %q: %s", resp.StatusCode, base, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to decode response for currency %q: %w", base, err)
	}

	if body.Result != "success" {
		return domain.RateTable{}, fmt.Errorf("api returned non-success result for currency %q: %s", base, strings.TrimSpace(body.Result+" "+body.ErrorType))
	}

	code := body.BaseCode
	if code == "" {
		code = base
	}
	table, err := domain.NewRateTable(code, c.now(), body.ConversionRates)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("bad rates for currency %q: %w", base, err)
	}
	return table, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, now: time.Now}
}
