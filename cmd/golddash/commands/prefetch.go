package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonhee/golddash/backend/internal/external/datago"
	"github.com/wonhee/golddash/backend/internal/external/yahoo"
	"github.com/wonhee/golddash/backend/internal/gold"
	"github.com/wonhee/golddash/backend/internal/scheduler/jobs"
	"github.com/wonhee/golddash/backend/pkg/config"
	"github.com/wonhee/golddash/backend/pkg/httputil"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// prefetchCmd represents the prefetch command
var prefetchCmd = &cobra.Command{
	Use:   "prefetch",
	Short: "금 시세 캐시 워밍 1회 실행",
	Long: `국제 금 시세, 김치 프리미엄, 매매 추천을 한 번 조회해서
업스트림 연결과 응답 형태를 점검합니다.

API 서버 없이 단독으로 실행할 수 있습니다.

Example:
  go run ./cmd/golddash prefetch
  go run ./cmd/golddash prefetch --period 1y`,
	RunE: runPrefetch,
}

var prefetchPeriod string

func init() {
	rootCmd.AddCommand(prefetchCmd)

	prefetchCmd.Flags().StringVar(&prefetchPeriod, "period", "", "조회 기간 (기본: GOLD_PREFETCH_PERIOD)")
}

func runPrefetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	yahooClient := yahoo.NewClient(httputil.New(log), log, cfg.Yahoo.BaseURL)
	datagoClient := datago.NewClient(cfg.DataGoKr.APIKey, log, cfg.DataGoKr.BaseURL, cfg.DataGoKr.Timeout)

	goldService := gold.NewService(yahooClient, datagoClient, gold.NewCache(), gold.Config{
		IntlTTL: cfg.Gold.IntlTTL,
		KRXTTL:  cfg.Gold.KRXTTL,
	}, log)

	period := prefetchPeriod
	if period == "" {
		period = cfg.Gold.PrefetchPeriod
	}

	job := jobs.NewPrefetchJob(goldService, period, log)
	if err := job.Run(cmd.Context()); err != nil {
		return fmt.Errorf("prefetch: %w", err)
	}

	fmt.Printf("✅ Caches warmed for period %s\n", period)
	return nil
}
