package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "golddash",
	Short: "골드 대시보드 백엔드",
	Long: `Golddash Backend CLI

금 시세 대시보드 백엔드.
국제/국내 금 시세 집계, 김치 프리미엄 계산, 매매 추천과
사용자/위젯 API를 제공합니다.

Usage:
  go run ./cmd/golddash [command]

Examples:
  go run ./cmd/golddash api
  go run ./cmd/golddash migrate
  go run ./cmd/golddash prefetch`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
