package gold

import (
	"context"
	"fmt"
	"time"

	"github.com/wonhee/golddash/backend/pkg/logger"
)

// Upstream symbols on the chart provider
const (
	SymbolGoldFutures = "GC=F"  // 국제 금 선물
	SymbolUSDKRW      = "KRW=X" // 원/달러 환율
)

// ChartFetcher fetches daily OHLCV bars from a Yahoo-class chart provider.
// The implementation must return bars in ascending date order.
type ChartFetcher interface {
	FetchDaily(ctx context.Context, symbol string, from, to time.Time) ([]PricePoint, error)
}

// GoldPriceAPI fetches domestic gold bars from the open-data API,
// ascending by date.
type GoldPriceAPI interface {
	FetchGoldPrices(ctx context.Context, from, to time.Time) ([]PricePoint, error)
}

// Config holds cache TTLs per logical key family
type Config struct {
	IntlTTL time.Duration // international / premium / recommendation
	KRXTTL  time.Duration // domestic
}

// DefaultConfig returns the production TTLs
func DefaultConfig() Config {
	return Config{
		IntlTTL: 300 * time.Second,
		KRXTTL:  3600 * time.Second,
	}
}

// Service computes the gold-data results behind the /api/gold endpoints.
// Every operation probes the TTL cache first, fetches and composes upstream
// data on a miss, and fills the cache with the computed result. Fetchers run
// sequentially; there is no single-flight on concurrent misses.
type Service struct {
	chart  ChartFetcher
	krx    GoldPriceAPI
	cache  *Cache
	config Config
	logger *logger.Logger
}

// NewService creates a gold data service
func NewService(chart ChartFetcher, krx GoldPriceAPI, cache *Cache, cfg Config, log *logger.Logger) *Service {
	if cfg.IntlTTL == 0 {
		cfg.IntlTTL = DefaultConfig().IntlTTL
	}
	if cfg.KRXTTL == 0 {
		cfg.KRXTTL = DefaultConfig().KRXTTL
	}
	return &Service{
		chart:  chart,
		krx:    krx,
		cache:  cache,
		config: cfg,
		logger: log,
	}
}

// International returns the international gold price series (GC=F) in USD/oz
func (s *Service) International(ctx context.Context, period string) (*PriceSeries, error) {
	cacheKey := "intl_gold_" + period
	if cached, ok := s.cache.Get(cacheKey, s.config.IntlTTL); ok {
		return cached.(*PriceSeries), nil
	}

	start, end := PeriodRange(period)
	bars, err := s.chart.FetchDaily(ctx, SymbolGoldFutures, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: error fetching international gold data: %v", ErrUnavailable, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: failed to fetch international gold data", ErrUnavailable)
	}

	series := &PriceSeries{
		Data:     bars,
		Currency: "USD",
		Unit:     "oz",
	}

	s.cache.Set(cacheKey, series)
	return series, nil
}

// KRX returns the domestic gold price series in KRW/g. Any upstream failure
// (transport, non-2xx, empty items) is absorbed: the series is replaced by
// synthetic data and tagged SourceSynthetic instead of surfacing an error.
func (s *Service) KRX(ctx context.Context, period string) (*PriceSeries, error) {
	cacheKey := "krx_gold_" + period
	if cached, ok := s.cache.Get(cacheKey, s.config.KRXTTL); ok {
		return cached.(*PriceSeries), nil
	}

	days := PeriodDays(period)
	end := time.Now()
	begin := end.AddDate(0, 0, -days)

	points, err := s.krx.FetchGoldPrices(ctx, begin, end)
	source := SourceReal
	if err != nil || len(points) == 0 {
		if err != nil {
			s.logger.WithError(err).WithField("period", period).
				Warn("KRX gold fetch failed, falling back to synthetic data")
		} else {
			s.logger.WithField("period", period).
				Warn("KRX gold fetch returned no data, falling back to synthetic data")
		}
		points = syntheticSeries(begin, days)
		source = SourceSynthetic
	}

	series := &PriceSeries{
		Data:     points,
		Currency: "KRW",
		Unit:     "g",
		Source:   source,
	}

	s.cache.Set(cacheKey, series)
	return series, nil
}

// krxFetchPeriods widens short premium windows so the date join has domestic
// candidates even when the requested period spans only a few trading days
var krxFetchPeriods = map[string]string{
	"1d": "1m",
	"1w": "1m",
	"1m": "1m",
	"1y": "1y",
	"3y": "3y",
	"5y": "5y",
}

// Premium returns the 김치 프리미엄 series for the period
func (s *Service) Premium(ctx context.Context, period string) (*PremiumSeries, error) {
	cacheKey := "gold_premium_" + period
	if cached, ok := s.cache.Get(cacheKey, s.config.IntlTTL); ok {
		return cached.(*PremiumSeries), nil
	}

	start, end := PeriodRange(period)

	intl, err := s.chart.FetchDaily(ctx, SymbolGoldFutures, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: error calculating kimchi premium: %v", ErrUnavailable, err)
	}

	fx, err := s.chart.FetchDaily(ctx, SymbolUSDKRW, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: error calculating kimchi premium: %v", ErrUnavailable, err)
	}

	krxPeriod, ok := krxFetchPeriods[period]
	if !ok {
		krxPeriod = period
	}
	krxSeries, err := s.KRX(ctx, krxPeriod)
	if err != nil {
		return nil, fmt.Errorf("%w: error calculating kimchi premium: %v", ErrUnavailable, err)
	}

	points, err := computePremium(intl, fx, krxSeries.Data)
	if err != nil {
		return nil, err
	}

	series := &PremiumSeries{Data: points}
	s.cache.Set(cacheKey, series)
	return series, nil
}

// Recommendation returns a buy/sell/hold signal from the moving averages of
// the international series and the latest 1-day premium. The premium sub-call
// always uses period 1d; if it fails the premium defaults to 0.0 rather than
// failing the recommendation.
func (s *Service) Recommendation(ctx context.Context, period string) (*Recommendation, error) {
	cacheKey := "gold_rec_" + period
	if cached, ok := s.cache.Get(cacheKey, s.config.IntlTTL); ok {
		return cached.(*Recommendation), nil
	}

	start, end := PeriodRange(period)
	intl, err := s.chart.FetchDaily(ctx, SymbolGoldFutures, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: error generating recommendation: %v", ErrUnavailable, err)
	}
	if len(intl) < minRecommendPoints {
		return nil, fmt.Errorf("%w: insufficient data for recommendation analysis (got %d bars, need %d)",
			ErrInsufficientData, len(intl), minRecommendPoints)
	}

	premiumPct := 0.0
	if premium, err := s.Premium(ctx, "1d"); err == nil && len(premium.Data) > 0 {
		premiumPct = premium.Data[len(premium.Data)-1].PremiumPct
	} else if err != nil {
		s.logger.WithError(err).Debug("Premium lookup failed, defaulting to 0.0")
	}

	rec := newRecommendation(intl, premiumPct)

	s.cache.Set(cacheKey, rec)
	return rec, nil
}
