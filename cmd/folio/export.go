package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/folio/internal/app"
	"github.com/MrSnakeDoc/folio/internal/content"
	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/sources/seed"
	"github.com/MrSnakeDoc/folio/internal/utils"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the whole portfolio document",
	Long: `Export reads every record, drafts included, and prints it as YAML in
the seed format (re-importable with "folio seed") or as JSON.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if exportFormat != "yaml" && exportFormat != "json" {
			return fmt.Errorf("unknown format %q (want yaml or json)", exportFormat)
		}

		cfg, log := setup()
		defer func() { _ = log.Sync() }()

		stores, err := app.OpenStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer stores.Close()

		doc, err := stores.Facade.FetchAll(cmd.Context())
		var fallback *content.FallbackError
		switch {
		case errors.As(err, &fallback):
			log.Warn("hosted store unavailable, exporting the local copy", logger.Error(err))
		case err != nil:
			return err
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer utils.MustClose(f)
			out = f
		}

		return writeExport(out, exportFormat, doc)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
}

func writeExport(w io.Writer, format string, doc domain.PortfolioData) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	data, err := seed.Marshal(seed.FromPortfolio(doc))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
