package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonhee/golddash/backend/pkg/config"
	"github.com/wonhee/golddash/backend/pkg/database"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "DB 스키마 적용",
	Long: `users / widgets 테이블을 생성합니다.

스키마 적용은 멱등적이라 반복 실행해도 안전합니다.

Example:
  go run ./cmd/golddash migrate`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	log.Info("Schema migration complete")
	fmt.Println("✅ Schema applied")
	return nil
}
