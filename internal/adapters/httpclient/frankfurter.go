package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"curex/internal/domain"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// FrankfurterClient reads ECB reference rates from a Frankfurter API instance.
// It needs no key and also serves time series.
type FrankfurterClient struct {
	http    *http.Client
	baseURL string
	now     func() time.Time
}

type frankfurterLatest struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

type frankfurterSeries struct {
	Base  string                        `json:"base"`
	Rates map[string]map[string]float64 `json:"rates"`
}

func (c *FrankfurterClient) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	var body frankfurterLatest
	if err := c.get(ctx, "latest", url.Values{"from": {base}}, &body); err != nil {
		return domain.RateTable{}, fmt.Errorf("latest rates for currency %q: %w", base, err)
	}

	code := body.Base
	if code == "" {
		code = base
	}
	table, err := domain.NewRateTable(code, c.now(), body.Rates)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("bad rates for currency %q: %w", base, err)
	}
	return table, nil
}

// FetchHistory returns one point per published day in [start, end], oldest first.
func (c *FrankfurterClient) FetchHistory(ctx context.Context, base, quote string, start, end time.Time) ([]domain.HistoricalRate, error) {
	path := start.Format(dateLayout) + ".." + end.Format(dateLayout)

	var body frankfurterSeries
	if err := c.get(ctx, path, url.Values{"from": {base}, "to": {quote}}, &body); err != nil {
		return nil, fmt.Errorf("history for %s/%s: %w", base, quote, err)
	}

	points := make([]domain.HistoricalRate, 0, len(body.Rates))
	for rawDate, rates := range body.Rates {
		v, ok := rates[quote]
		if !ok || v <= 0 {
			continue
		}
		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("history for %s/%s: bad date %q: %w", base, quote, rawDate, err)
		}
		points = append(points, domain.HistoricalRate{Date: date, Value: decimal.NewFromFloat(v)})
	}
	slices.SortFunc(points, func(a, b domain.HistoricalRate) int { return a.Date.Compare(b.Date) })
	return points, nil
}

func (c *FrankfurterClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func NewFrankfurterClient(httpClient *http.Client, baseURL string) *FrankfurterClient {
	return &FrankfurterClient{http: httpClient, baseURL: baseURL, now: time.Now}
}
