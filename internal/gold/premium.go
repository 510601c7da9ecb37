package gold

import (
	"fmt"
	"math"
)

const (
	// 1 troy ounce = 31.1035 g
	gramsPerOunce = 31.1035

	// Hardcoded fallbacks for dates with no joinable data at all
	fallbackUSDKRW   = 1300.0
	fallbackKRXPrice = 95000.0
)

// computePremium joins the international series (USD/oz), the USD/KRW rate
// series and the domestic series (KRW/g) by date and computes the percentage
// spread of the domestic price over the internationally-implied price.
//
// Dates missing from the rate or domestic series fall back to the last
// available value in that series, not the nearest by date.
func computePremium(intl, fx, krx []PricePoint) ([]PremiumPoint, error) {
	if len(intl) == 0 || len(fx) == 0 {
		return nil, fmt.Errorf("%w: failed to fetch required data for premium calculation", ErrUnavailable)
	}

	fxByDate := make(map[string]float64, len(fx))
	for _, p := range fx {
		fxByDate[p.Date] = p.Close
	}

	krxByDate := make(map[string]float64, len(krx))
	for _, p := range krx {
		krxByDate[p.Date] = p.Close
	}

	points := make([]PremiumPoint, 0, len(intl))

	for _, bar := range intl {
		rate, ok := fxByDate[bar.Date]
		if !ok {
			// Most recent available rate; series is ascending
			rate = fx[len(fx)-1].Close
		}
		if rate == 0 {
			rate = fallbackUSDKRW
		}

		// USD/oz → KRW/g
		intlPriceKRW := (bar.Close / gramsPerOunce) * rate

		krxPrice, ok := krxByDate[bar.Date]
		if !ok {
			if len(krx) > 0 {
				krxPrice = krx[len(krx)-1].Close
			} else {
				krxPrice = fallbackKRXPrice
			}
		}

		premiumPct := ((krxPrice / intlPriceKRW) - 1) * 100

		points = append(points, PremiumPoint{
			Date:         bar.Date,
			PremiumPct:   round2(premiumPct),
			KRXPrice:     math.Round(krxPrice),
			IntlPriceKRW: math.Round(intlPriceKRW),
		})
	}

	return points, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
