package gold

import "time"

// periodDays maps period codes to day counts
// ⭐ SSOT: 기간 코드 해석은 이 테이블에서만
var periodDays = map[string]int{
	"1d": 1,
	"1w": 7,
	"1m": 30,
	"1y": 365,
	"3y": 1095,
	"5y": 1825,
}

// PeriodDays converts a period code to a number of days.
// Unrecognized codes behave as 1d.
func PeriodDays(period string) int {
	if days, ok := periodDays[period]; ok {
		return days
	}
	return 1
}

// PeriodRange returns the absolute (start, end) date range for a period code,
// with end = now.
func PeriodRange(period string) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -PeriodDays(period))
	return start, end
}
