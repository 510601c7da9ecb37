package gold

import (
	"strings"
	"testing"
)

func TestDecideSignal(t *testing.T) {
	tests := []struct {
		name       string
		ma5        float64
		ma20       float64
		premiumPct float64
		want       Signal
	}{
		{"uptrend with adequate premium", 110, 100, 2, SignalBuy},
		{"downtrend", 90, 100, 2, SignalSell},
		{"uptrend but overheated premium", 110, 100, 6, SignalSell},
		{"uptrend with moderate premium", 110, 105, 4, SignalHold},
		{"flat averages", 100, 100, 2, SignalHold},
		{"premium exactly at adequate bound", 110, 100, 3, SignalHold},
		{"premium exactly at overheated bound", 110, 100, 5, SignalHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decideSignal(tt.ma5, tt.ma20, tt.premiumPct); got != tt.want {
				t.Errorf("decideSignal(%v, %v, %v) = %s, want %s",
					tt.ma5, tt.ma20, tt.premiumPct, got, tt.want)
			}
		})
	}
}

func TestBuildReasons(t *testing.T) {
	tests := []struct {
		name       string
		ma5        float64
		ma20       float64
		premiumPct float64
		wantMA     string
		wantLevel  string
	}{
		{"uptrend adequate", 110, 100, 2, "상회", "적정 수준"},
		{"downtrend moderate", 90, 100, 4, "하회", "보통"},
		{"uptrend overheated", 110, 100, 6, "상회", "과열"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := buildReasons(tt.ma5, tt.ma20, tt.premiumPct)

			if len(reasons) != 2 {
				t.Fatalf("got %d reasons, want 2", len(reasons))
			}
			if !strings.Contains(reasons[0], tt.wantMA) {
				t.Errorf("MA reason %q does not contain %q", reasons[0], tt.wantMA)
			}
			if !strings.Contains(reasons[1], tt.wantLevel) {
				t.Errorf("premium reason %q does not contain %q", reasons[1], tt.wantLevel)
			}
		})
	}
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}

	if got := sma(values, 5); got != 4 {
		t.Errorf("sma(period=5) = %v, want 4", got)
	}
	if got := sma(values, 6); got != 3.5 {
		t.Errorf("sma(period=6) = %v, want 3.5", got)
	}
}

func TestNewRecommendationRisingSeries(t *testing.T) {
	// 25 strictly rising closes: MA5 > MA20, positive price change
	intl := make([]PricePoint, 25)
	for i := range intl {
		intl[i] = PricePoint{
			Date:  "2026-08-28",
			Close: 100 + float64(i),
		}
	}

	rec := newRecommendation(intl, 1.0)

	if rec.Signal != SignalBuy {
		t.Errorf("signal = %s, want buy", rec.Signal)
	}
	if rec.MA5 <= rec.MA20 {
		t.Errorf("ma5 (%v) should exceed ma20 (%v) for a rising series", rec.MA5, rec.MA20)
	}
	if rec.PriceChangePct <= 0 {
		t.Errorf("price change = %v, want positive", rec.PriceChangePct)
	}
	if rec.CurrentPrice != 124 {
		t.Errorf("current price = %v, want 124", rec.CurrentPrice)
	}
	if len(rec.Reasons) != 2 {
		t.Errorf("got %d reasons, want 2", len(rec.Reasons))
	}
}
