package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/folio/internal/config"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio site with a built-in content dashboard",
	Long: `Folio serves a portfolio (topics, news, contact page) and an admin
dashboard to edit it. Content lives in a hosted Redis store when
FOLIO_STORE_URL and FOLIO_STORE_KEY are set, and in a local SQLite file
otherwise.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd, exportCmd, versionCmd)
}

// setup loads the environment configuration and builds the logger.
func setup() (*config.Config, logger.Logger) {
	cfg := config.Load()
	return cfg, logger.New(cfg.LogLevel, cfg.PrettyLog)
}
