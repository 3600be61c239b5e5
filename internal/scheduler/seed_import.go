package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/sources/seed"
)

// Importer writes a document through the content facade.
type Importer interface {
	FetchAll(ctx context.Context) (domain.PortfolioData, error)
	Import(ctx context.Context, doc domain.PortfolioData) (int, error)
}

// SeedImporter fills the content store from a YAML seed file
type SeedImporter struct {
	loader   *seed.Loader
	mapper   *seed.Mapper
	importer Importer
	logger   logger.Logger
}

// NewSeedImporter creates a new seed importer
func NewSeedImporter(seedFile string, importer Importer, log logger.Logger) *SeedImporter {
	return &SeedImporter{
		loader:   seed.NewLoader(seedFile),
		mapper:   seed.NewMapper(),
		importer: importer,
		logger:   log,
	}
}

// Import loads the seed file and writes every record it holds. Records
// already stored under the same id are replaced.
func (si *SeedImporter) Import(ctx context.Context) (int, error) {
	si.logger.Info("importing seed file")

	raw, err := si.loader.Load()
	if err != nil {
		return 0, err
	}

	doc, err := si.mapper.Map(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to map seed: %w", err)
	}

	n, err := si.importer.Import(ctx, doc)
	if err != nil {
		return n, fmt.Errorf("failed to import seed: %w", err)
	}

	si.logger.Info("seed imported", logger.Int("count", n))
	return n, nil
}

// ImportIfEmpty imports the seed only when the store holds no record yet.
func (si *SeedImporter) ImportIfEmpty(ctx context.Context) (int, error) {
	current, err := si.importer.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect store: %w", err)
	}

	if len(current.Topics)+len(current.News)+len(current.Activities) > 0 {
		si.logger.Info("store already has content, skipping seed",
			logger.Int("topics", len(current.Topics)),
			logger.Int("news", len(current.News)),
			logger.Int("activities", len(current.Activities)))
		return 0, nil
	}

	return si.Import(ctx)
}
