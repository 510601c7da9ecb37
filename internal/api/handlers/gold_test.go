package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonhee/golddash/backend/internal/gold"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

type fakeGoldService struct {
	err        error
	lastPeriod string
}

func (f *fakeGoldService) International(_ context.Context, period string) (*gold.PriceSeries, error) {
	f.lastPeriod = period
	if f.err != nil {
		return nil, f.err
	}
	return &gold.PriceSeries{
		Data:     []gold.PricePoint{{Date: "2026-08-28", Close: 2000}},
		Currency: "USD",
		Unit:     "oz",
	}, nil
}

func (f *fakeGoldService) KRX(_ context.Context, period string) (*gold.PriceSeries, error) {
	f.lastPeriod = period
	return &gold.PriceSeries{
		Data:     []gold.PricePoint{{Date: "2026-08-28", Close: 95000}},
		Currency: "KRW",
		Unit:     "g",
		Source:   gold.SourceSynthetic,
	}, nil
}

func (f *fakeGoldService) Premium(_ context.Context, period string) (*gold.PremiumSeries, error) {
	f.lastPeriod = period
	if f.err != nil {
		return nil, f.err
	}
	return &gold.PremiumSeries{
		Data: []gold.PremiumPoint{{Date: "2026-08-28", PremiumPct: 1.69, KRXPrice: 85000, IntlPriceKRW: 83592}},
	}, nil
}

func (f *fakeGoldService) Recommendation(_ context.Context, period string) (*gold.Recommendation, error) {
	f.lastPeriod = period
	if f.err != nil {
		return nil, f.err
	}
	return &gold.Recommendation{Signal: gold.SignalBuy, Reasons: []string{"a", "b"}}, nil
}

func newGoldHandler(svc GoldService) *GoldHandler {
	return NewGoldHandler(svc, logger.NewWithWriter(io.Discard))
}

func TestInternationalEndpoint(t *testing.T) {
	svc := &fakeGoldService{}
	h := newGoldHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/gold/international?period=1w", nil)
	rr := httptest.NewRecorder()
	h.International(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1w", svc.lastPeriod)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var series gold.PriceSeries
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &series))
	assert.Equal(t, "USD", series.Currency)
	assert.Len(t, series.Data, 1)
}

func TestPeriodDefaults(t *testing.T) {
	svc := &fakeGoldService{}
	h := newGoldHandler(svc)

	rr := httptest.NewRecorder()
	h.International(rr, httptest.NewRequest(http.MethodGet, "/api/gold/international", nil))
	assert.Equal(t, "1d", svc.lastPeriod, "price endpoints default to 1d")

	rr = httptest.NewRecorder()
	h.Recommendation(rr, httptest.NewRequest(http.MethodGet, "/api/gold/recommendation", nil))
	assert.Equal(t, "1m", svc.lastPeriod, "recommendation defaults to 1m")
}

func TestKRXEndpointCarriesSourceTag(t *testing.T) {
	h := newGoldHandler(&fakeGoldService{})

	rr := httptest.NewRecorder()
	h.KRX(rr, httptest.NewRequest(http.MethodGet, "/api/gold/krx", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "synthetic", body["source"])
}

func TestGoldErrorsMapTo503(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{
			name:     "upstream unavailable",
			err:      fmt.Errorf("%w: error generating recommendation", gold.ErrUnavailable),
			wantBody: "unavailable",
		},
		{
			name:     "not enough history",
			err:      fmt.Errorf("%w: got 19 bars, need 20", gold.ErrInsufficientData),
			wantBody: "insufficient data",
		},
		{
			name:     "unexpected failure",
			err:      errors.New("context deadline exceeded"),
			wantBody: "deadline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newGoldHandler(&fakeGoldService{err: tt.err})

			rr := httptest.NewRecorder()
			h.Recommendation(rr, httptest.NewRequest(http.MethodGet, "/api/gold/recommendation", nil))
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

			// The body carries the cause, not a fixed generic string
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.wantBody)

			rr = httptest.NewRecorder()
			h.Premium(rr, httptest.NewRequest(http.MethodGet, "/api/gold/premium", nil))
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		})
	}
}
