package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/wonhee/golddash/backend/internal/gold"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// GoldService is the price/analysis surface the gold endpoints expose.
type GoldService interface {
	International(ctx context.Context, period string) (*gold.PriceSeries, error)
	KRX(ctx context.Context, period string) (*gold.PriceSeries, error)
	Premium(ctx context.Context, period string) (*gold.PremiumSeries, error)
	Recommendation(ctx context.Context, period string) (*gold.Recommendation, error)
}

// GoldHandler handles gold price API endpoints
// ⭐ SSOT: 금 시세 API 핸들러는 이 구조체에서만
type GoldHandler struct {
	service GoldService
	logger  *logger.Logger
}

// NewGoldHandler creates a new gold handler
func NewGoldHandler(service GoldService, log *logger.Logger) *GoldHandler {
	return &GoldHandler{
		service: service,
		logger:  log,
	}
}

// International returns international gold futures prices (USD/oz)
// GET /api/gold/international?period=1d
func (h *GoldHandler) International(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r, "1d")

	series, err := h.service.International(r.Context(), period)
	if err != nil {
		h.goldError(w, err, "Failed to fetch international gold prices")
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// KRX returns domestic KRX gold prices (KRW/g)
// GET /api/gold/krx?period=1d
func (h *GoldHandler) KRX(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r, "1d")

	series, err := h.service.KRX(r.Context(), period)
	if err != nil {
		h.goldError(w, err, "Failed to fetch KRX gold prices")
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// Premium returns the kimchi premium series
// GET /api/gold/premium?period=1d
func (h *GoldHandler) Premium(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r, "1d")

	series, err := h.service.Premium(r.Context(), period)
	if err != nil {
		h.goldError(w, err, "Failed to compute gold premium")
		return
	}

	respondJSON(w, http.StatusOK, series)
}

// Recommendation returns the MA-based trading signal. The default window
// is a month so the long moving average has enough points.
// GET /api/gold/recommendation?period=1m
func (h *GoldHandler) Recommendation(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r, "1m")

	rec, err := h.service.Recommendation(r.Context(), period)
	if err != nil {
		h.goldError(w, err, "Failed to compute recommendation")
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

func periodParam(r *http.Request, fallback string) string {
	if period := r.URL.Query().Get("period"); period != "" {
		return period
	}
	return fallback
}

// Every failure behind these endpoints is a data availability issue, not
// a server bug: all of them map to 503 with the cause in the body.
func (h *GoldHandler) goldError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, gold.ErrUnavailable) || errors.Is(err, gold.ErrInsufficientData) {
		h.logger.WithError(err).Warn(message)
	} else {
		h.logger.WithError(err).Error(message)
	}
	respondError(w, http.StatusServiceUnavailable, err.Error())
}
