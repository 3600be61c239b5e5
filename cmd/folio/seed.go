package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/folio/internal/app"
	"github.com/MrSnakeDoc/folio/internal/scheduler"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a YAML seed file into the content store",
	Long: `Seed reads a YAML document (hero_words, profile_image, topics, news,
activities) and writes every record through the content store. Records
with the same id are replaced, so a seed can be imported repeatedly.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log := setup()
		defer func() { _ = log.Sync() }()

		file := seedFile
		if file == "" {
			file = cfg.SeedFile
		}
		if file == "" {
			return fmt.Errorf("no seed file: pass --file or set FOLIO_SEED_FILE")
		}

		stores, err := app.OpenStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer stores.Close()

		n, err := scheduler.NewSeedImporter(file, stores.Facade, log).Import(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ imported %d records into the %s store\n", n, stores.Facade.Mode())
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed file (default: FOLIO_SEED_FILE)")
}
