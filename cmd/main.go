package main

import (
	"os"

	"github.com/joho/godotenv"

	"MerchantReports/internal/commands"
)

func main() {
	// Load .env for local dev; a missing file is fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
