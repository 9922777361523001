package main

import (
	"fmt"
	"os"

	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/config"
	"github.com/de-tools/stat-atlas/pkg/terminal"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("STAT_ATLAS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Client: analysis.NewClient(analysis.Config{
			BaseURL: cfg.BackendURL,
			Timeout: cfg.HTTPTimeout,
		}),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
