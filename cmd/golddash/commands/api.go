package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonhee/golddash/backend/internal/api"
	"github.com/wonhee/golddash/backend/internal/api/handlers"
	"github.com/wonhee/golddash/backend/internal/auth"
	"github.com/wonhee/golddash/backend/internal/external/datago"
	"github.com/wonhee/golddash/backend/internal/external/yahoo"
	"github.com/wonhee/golddash/backend/internal/gold"
	"github.com/wonhee/golddash/backend/internal/scheduler"
	"github.com/wonhee/golddash/backend/internal/scheduler/jobs"
	"github.com/wonhee/golddash/backend/internal/user"
	"github.com/wonhee/golddash/backend/internal/widget"
	"github.com/wonhee/golddash/backend/pkg/config"
	"github.com/wonhee/golddash/backend/pkg/database"
	"github.com/wonhee/golddash/backend/pkg/httputil"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 금 시세/프리미엄/추천 엔드포인트 제공
- 사용자 인증과 위젯 API 제공
- 5분 주기 캐시 프리페치 스케줄러 실행

Endpoints:
  GET  /health                    - Health check
  POST /api/auth/register         - 회원 가입
  POST /api/auth/login            - 로그인 (access token 발급)
  GET  /api/auth/me               - 내 정보 조회
  GET  /api/widgets               - 위젯 목록
  GET  /api/gold/international    - 국제 금 시세
  GET  /api/gold/krx              - 국내(KRX) 금 시세
  GET  /api/gold/premium          - 김치 프리미엄
  GET  /api/gold/recommendation   - 매매 추천

Example:
  go run ./cmd/golddash api
  go run ./cmd/golddash api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort         string
	disablePrefetch bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
	apiCmd.Flags().BoolVar(&disablePrefetch, "no-prefetch", false, "캐시 프리페치 스케줄러 비활성화")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Golddash API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database and ensure schema
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	log.Info("Connected to database")

	// 4. Create external API clients
	yahooClient := yahoo.NewClient(httputil.New(log), log, cfg.Yahoo.BaseURL)
	datagoClient := datago.NewClient(cfg.DataGoKr.APIKey, log, cfg.DataGoKr.BaseURL, cfg.DataGoKr.Timeout)

	// 5. Create gold service
	goldService := gold.NewService(yahooClient, datagoClient, gold.NewCache(), gold.Config{
		IntlTTL: cfg.Gold.IntlTTL,
		KRXTTL:  cfg.Gold.KRXTTL,
	}, log)

	// 6. Create repositories and token manager
	userRepo := user.NewRepository(db.Pool)
	widgetRepo := widget.NewRepository(db.Pool)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireMinutes)*time.Minute)

	// 7. Create handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokens, log)
	widgetHandler := handlers.NewWidgetHandler(widgetRepo, log)
	goldHandler := handlers.NewGoldHandler(goldService, log)
	authMiddleware := handlers.NewAuthMiddleware(tokens, userRepo, log)

	// 8. Create router and server
	router := api.NewRouter(authHandler, widgetHandler, goldHandler, authMiddleware, log)
	server := api.New(cfg, log, router)

	// 9. Start the prefetch scheduler
	var sched *scheduler.Scheduler
	if !disablePrefetch {
		sched = scheduler.New(log)
		if err := sched.AddJob(jobs.NewPrefetchJob(goldService, cfg.Gold.PrefetchPeriod, log)); err != nil {
			return fmt.Errorf("register prefetch job: %w", err)
		}
		sched.Start()
	}

	// 10. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
