package jobs

import (
	"context"
	"fmt"

	"github.com/wonhee/golddash/backend/internal/gold"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// PrefetchJob keeps the gold caches warm so interactive requests rarely
// pay the upstream latency.
// ⭐ SSOT: 금 시세 프리페치 스케줄은 이 Job에서만
type PrefetchJob struct {
	service *gold.Service
	period  string
	logger  *logger.Logger
}

// NewPrefetchJob creates a new prefetch job for the given period.
func NewPrefetchJob(service *gold.Service, period string, log *logger.Logger) *PrefetchJob {
	return &PrefetchJob{
		service: service,
		period:  period,
		logger:  log,
	}
}

// Name returns the job name
func (j *PrefetchJob) Name() string {
	return "gold_prefetch"
}

// Schedule runs every 5 minutes, inside the shortest cache TTL
func (j *PrefetchJob) Schedule() string {
	return "0 */5 * * * *"
}

// Run warms the international, premium and recommendation caches. The
// KRX and FX series are filled as a side effect of the premium pass.
func (j *PrefetchJob) Run(ctx context.Context) error {
	if _, err := j.service.International(ctx, j.period); err != nil {
		return fmt.Errorf("prefetch international: %w", err)
	}

	if _, err := j.service.Premium(ctx, j.period); err != nil {
		return fmt.Errorf("prefetch premium: %w", err)
	}

	if _, err := j.service.Recommendation(ctx, j.period); err != nil {
		return fmt.Errorf("prefetch recommendation: %w", err)
	}

	j.logger.WithField("period", j.period).Info("Gold caches warmed")
	return nil
}
