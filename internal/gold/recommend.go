package gold

import "fmt"

// minRecommendPoints is the minimum international series length for the
// moving-average analysis
const minRecommendPoints = 20

// premiumThresholds holds the premium boundaries (percent) shared by the
// signal rule and the reason text
// ⭐ SSOT: 프리미엄 경계값은 이 테이블에서만
var premiumThresholds = struct {
	Adequate   float64 // below: 적정 수준
	Overheated float64 // above: 과열
}{
	Adequate:   3.0,
	Overheated: 5.0,
}

// decideSignal applies the decision rule in fixed order:
// buy iff MA5 > MA20 and premium below the adequate bound, else sell iff
// MA5 < MA20 or premium above the overheated bound, else hold.
func decideSignal(ma5, ma20, premiumPct float64) Signal {
	switch {
	case ma5 > ma20 && premiumPct < premiumThresholds.Adequate:
		return SignalBuy
	case ma5 < ma20 || premiumPct > premiumThresholds.Overheated:
		return SignalSell
	default:
		return SignalHold
	}
}

// buildReasons produces the two human-readable reason strings: the MA
// comparison and the premium-level categorization.
func buildReasons(ma5, ma20, premiumPct float64) []string {
	reasons := make([]string, 0, 2)

	if ma5 > ma20 {
		reasons = append(reasons, "5일 이동평균이 20일 이동평균을 상회")
	} else {
		reasons = append(reasons, "5일 이동평균이 20일 이동평균을 하회")
	}

	switch {
	case premiumPct < premiumThresholds.Adequate:
		reasons = append(reasons, fmt.Sprintf("김치 프리미엄 %.1f%% (적정 수준)", premiumPct))
	case premiumPct > premiumThresholds.Overheated:
		reasons = append(reasons, fmt.Sprintf("김치 프리미엄 %.1f%% (과열)", premiumPct))
	default:
		reasons = append(reasons, fmt.Sprintf("김치 프리미엄 %.1f%% (보통)", premiumPct))
	}

	return reasons
}

// newRecommendation computes the recommendation from an international series
// with at least minRecommendPoints bars (validated by the caller) and the
// latest premium value.
func newRecommendation(intl []PricePoint, premiumPct float64) *Recommendation {
	closes := make([]float64, len(intl))
	for i, bar := range intl {
		closes[i] = bar.Close
	}

	ma5 := sma(closes, 5)
	ma20 := sma(closes, 20)

	current := closes[len(closes)-1]
	previous := current
	if len(closes) > 1 {
		previous = closes[len(closes)-2]
	}
	priceChangePct := ((current - previous) / previous) * 100

	return &Recommendation{
		Signal:         decideSignal(ma5, ma20, premiumPct),
		Reasons:        buildReasons(ma5, ma20, premiumPct),
		MA5:            round2(ma5),
		MA20:           round2(ma20),
		PremiumPct:     round2(premiumPct),
		CurrentPrice:   round2(current),
		PriceChangePct: round2(priceChangePct),
	}
}

// sma computes the simple moving average over the last period values
func sma(values []float64, period int) float64 {
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period)
}
