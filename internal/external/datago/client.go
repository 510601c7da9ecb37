package datago

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/wonhee/golddash/backend/internal/gold"
	"github.com/wonhee/golddash/backend/pkg/httputil"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

const (
	defaultBaseURL = "https://apis.data.go.kr/1160100/service/GetGeneralProductInfoService"
	defaultTimeout = 10 * time.Second
	maxRows        = 1000

	// requestsPerSecond stays inside the open-data portal's per-key quota
	requestsPerSecond = 2
)

// Client fetches KRX gold spot prices from the data.go.kr open API
// ⭐ SSOT: 공공데이터포털 금시세 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a data.go.kr gold price client. The API key is
// required configuration; there is no built-in default.
func NewClient(apiKey string, log *logger.Logger, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := httputil.NewWithTimeout(log, timeout)
	httpClient.DisableRetry().WithRateLimit(requestsPerSecond)
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// goldPriceItem carries the fields this client consumes. The upstream
// serializes every value as a string.
type goldPriceItem struct {
	BasDt string `json:"basDt"` // 기준일자 YYYYMMDD
	Clpr  string `json:"clpr"`  // 종가
	Mkp   string `json:"mkp"`   // 시가
	Hipr  string `json:"hipr"`  // 고가
	Lopr  string `json:"lopr"`  // 저가
	Trqu  string `json:"trqu"`  // 거래량
}

type goldPriceResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []goldPriceItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// FetchGoldPrices fetches daily KRX gold prices over [from, to] inclusive.
// endBasDt is exclusive upstream, so one day is added.
func (c *Client) FetchGoldPrices(ctx context.Context, from, to time.Time) ([]gold.PricePoint, error) {
	params := url.Values{}
	params.Set("serviceKey", c.apiKey)
	params.Set("resultType", "json")
	params.Set("beginBasDt", from.Format("20060102"))
	params.Set("endBasDt", to.AddDate(0, 0, 1).Format("20060102"))
	params.Set("numOfRows", strconv.Itoa(maxRows))

	fullURL := fmt.Sprintf("%s/getGoldPriceInfo?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datago fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("datago read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datago: status %d", resp.StatusCode)
	}

	points, err := parseItems(body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"from":  from.Format("2006-01-02"),
		"to":    to.Format("2006-01-02"),
		"count": len(points),
	}).Debug("Fetched KRX gold prices")

	return points, nil
}

// parseItems decodes an open-API body into ascending daily points.
// The upstream returns items newest-first.
func parseItems(body []byte) ([]gold.PricePoint, error) {
	var decoded goldPriceResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("datago decode: %w", err)
	}

	if code := decoded.Response.Header.ResultCode; code != "" && code != "00" {
		return nil, fmt.Errorf("datago api error %s: %s", code, decoded.Response.Header.ResultMsg)
	}

	items := decoded.Response.Body.Items.Item
	if len(items) == 0 {
		return nil, fmt.Errorf("datago: no items returned")
	}

	points := make([]gold.PricePoint, 0, len(items))
	for _, item := range items {
		point, err := item.toPricePoint()
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

func (it goldPriceItem) toPricePoint() (gold.PricePoint, error) {
	if len(it.BasDt) != 8 {
		return gold.PricePoint{}, fmt.Errorf("datago: malformed basDt %q", it.BasDt)
	}
	date := fmt.Sprintf("%s-%s-%s", it.BasDt[:4], it.BasDt[4:6], it.BasDt[6:8])

	open, err := parsePrice("mkp", it.Mkp)
	if err != nil {
		return gold.PricePoint{}, err
	}
	high, err := parsePrice("hipr", it.Hipr)
	if err != nil {
		return gold.PricePoint{}, err
	}
	low, err := parsePrice("lopr", it.Lopr)
	if err != nil {
		return gold.PricePoint{}, err
	}
	closePrice, err := parsePrice("clpr", it.Clpr)
	if err != nil {
		return gold.PricePoint{}, err
	}

	var volume int64
	if it.Trqu != "" {
		volume, err = strconv.ParseInt(it.Trqu, 10, 64)
		if err != nil {
			return gold.PricePoint{}, fmt.Errorf("datago: malformed trqu %q: %w", it.Trqu, err)
		}
	}

	return gold.PricePoint{
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}

func parsePrice(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("datago: malformed %s %q: %w", field, raw, err)
	}
	return v, nil
}
