package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/wonhee/golddash/backend/internal/gold"
	"github.com/wonhee/golddash/backend/pkg/httputil"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// requestsPerSecond bounds calls to the public chart API; it has no
// published quota but throttles aggressive clients with 429s
const requestsPerSecond = 5

// Client fetches daily OHLCV history from the Yahoo Finance chart API
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance chart client. Upstream failures
// surface to the caller; there is no retry (single try per request).
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient.DisableRetry().WithRateLimit(requestsPerSecond)
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// chartResponse is the response structure from the Yahoo Finance chart API.
// Null entries appear for holidays and half-days.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDaily fetches daily bars for symbol over [from, to] inclusive.
// The chart API treats period2 as exclusive, so one day is added.
func (c *Client) FetchDaily(ctx context.Context, symbol string, from, to time.Time) ([]gold.PricePoint, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(symbol), from.Unix(), to.AddDate(0, 0, 1).Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}

	bars, err := parseChart(body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(bars),
	}).Debug("Fetched chart bars")

	return bars, nil
}

// parseChart decodes a chart API body into ascending daily bars
func parseChart(body []byte) ([]gold.PricePoint, error) {
	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data returned")
	}
	quote := result.Indicators.Quote[0]

	bars := make([]gold.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		open := deref(quote.Open, i)
		high := deref(quote.High, i)
		low := deref(quote.Low, i)
		closePrice := deref(quote.Close, i)

		// Skip null bars (holidays etc.)
		if open == 0 && high == 0 && low == 0 && closePrice == 0 {
			continue
		}

		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}

		bars = append(bars, gold.PricePoint{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	return bars, nil
}

func deref(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
