package main

import (
	"os"

	"github.com/wonhee/golddash/backend/cmd/golddash/commands"
)

// main is the entry point for the golddash CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/golddash [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
