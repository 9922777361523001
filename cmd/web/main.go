package main

import (
	"fmt"
	"os"

	"github.com/de-tools/stat-atlas/pkg/server"
	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the dashboard gateway for Stat Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the gateway config file (defaults and STAT_ATLAS_* env vars apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := analysis.NewClient(analysis.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.HTTPTimeout,
	})

	logger.Info().Str("backend", cfg.BackendURL).Msg("analysis service configured")

	api := server.NewWebAPI(logger, server.Config{
		Addr: cfg.ListenAddr,
		Dependencies: server.Dependencies{
			Analysis: client,
			Logger:   logger,
		},
	})

	return api.Start()
}
