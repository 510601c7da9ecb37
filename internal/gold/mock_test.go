package gold

import (
	"testing"
	"time"
)

func TestSyntheticSeriesShape(t *testing.T) {
	begin := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	days := 30

	points := syntheticSeries(begin, days)

	if len(points) != days {
		t.Fatalf("got %d points, want one per day in range (%d)", len(points), days)
	}

	for i, p := range points {
		wantDate := begin.AddDate(0, 0, i).Format("2006-01-02")
		if p.Date != wantDate {
			t.Errorf("point %d: date = %s, want %s", i, p.Date, wantDate)
		}

		if p.Open <= 0 || p.High <= 0 || p.Low <= 0 || p.Close <= 0 {
			t.Errorf("point %d: non-positive OHLC values: %+v", i, p)
		}

		// Generator bounds
		if p.Open < mockBasePrice-mockFluctuation-1 || p.Open > mockBasePrice+mockFluctuation+1 {
			t.Errorf("point %d: open %f outside random walk bounds", i, p.Open)
		}
		if p.High < p.Open-1 {
			t.Errorf("point %d: high %f below open %f", i, p.High, p.Open)
		}
		if p.Low > p.Open+1 {
			t.Errorf("point %d: low %f above open %f", i, p.Low, p.Open)
		}
		if p.Close < p.Low-1 || p.Close > p.High+1 {
			t.Errorf("point %d: close %f outside [low, high]", i, p.Close)
		}

		if p.Volume < mockMinVolume || p.Volume > mockMaxVolume {
			t.Errorf("point %d: volume %d outside [%d, %d]", i, p.Volume, mockMinVolume, mockMaxVolume)
		}
	}
}

func TestSyntheticSeriesSingleDay(t *testing.T) {
	begin := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	points := syntheticSeries(begin, 1)

	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].Date != "2026-08-28" {
		t.Errorf("date = %s, want 2026-08-28", points[0].Date)
	}
}
