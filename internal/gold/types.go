package gold

// PricePoint is a single daily OHLCV bar
type PricePoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Source tags for domestic price series
const (
	SourceReal      = "real"
	SourceSynthetic = "synthetic"
)

// PriceSeries is an ascending-by-date OHLCV series with its currency and unit.
// Source is set on domestic series only: the KRX fetcher silently substitutes
// synthetic data when the upstream fails, and the tag is the one place where
// that substitution stays visible.
type PriceSeries struct {
	Data     []PricePoint `json:"data"`
	Currency string       `json:"currency"` // USD | KRW
	Unit     string       `json:"unit"`     // oz | g
	Source   string       `json:"source,omitempty"`
}

// PremiumPoint is one day of the 김치 프리미엄 series
type PremiumPoint struct {
	Date         string  `json:"date"`
	PremiumPct   float64 `json:"premium_pct"`
	KRXPrice     float64 `json:"krx_price"`
	IntlPriceKRW float64 `json:"intl_price_krw"`
}

// PremiumSeries is the premium endpoint response body
type PremiumSeries struct {
	Data []PremiumPoint `json:"data"`
}

// Signal is a discrete trading signal
type Signal string

const (
	SignalBuy  Signal = "buy"
	SignalSell Signal = "sell"
	SignalHold Signal = "hold"
)

// Recommendation is the recommendation endpoint response body
type Recommendation struct {
	Signal         Signal   `json:"signal"`
	Reasons        []string `json:"reasons"`
	MA5            float64  `json:"ma5"`
	MA20           float64  `json:"ma20"`
	PremiumPct     float64  `json:"premium_pct"`
	CurrentPrice   float64  `json:"current_price"`
	PriceChangePct float64  `json:"price_change_pct"`
}
