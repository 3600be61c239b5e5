package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/store/sqlite"
)

// SlotKey is the name of the local document slot.
const SlotKey = "portfolio_data"

// maxWriteAttempts bounds the read-modify-write retries on version conflicts.
const maxWriteAttempts = 3

// Slot is a single versioned value, as provided by sqlite.Store.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, int64, error)
	Put(ctx context.Context, key string, value []byte, expected int64) (int64, error)
}

// LocalBackend keeps the whole document in one slot. Every mutation reads
// the document, edits a copy and writes it back whole. Writers inside the
// process are serialized; writers in other processes are caught by the
// slot version and retried.
type LocalBackend struct {
	slot Slot
	log  logger.Logger
	mu   sync.Mutex
}

// NewLocalBackend creates a backend over slot.
func NewLocalBackend(slot Slot, log logger.Logger) *LocalBackend {
	return &LocalBackend{slot: slot, log: log}
}

func (b *LocalBackend) Mode() Mode { return ModeFallback }

// FetchAll returns the stored document, or the default one when the slot
// was never written. Records come back in the same order as the hosted
// store returns them.
func (b *LocalBackend) FetchAll(ctx context.Context) (domain.PortfolioData, error) {
	doc, _, err := b.load(ctx)
	if err != nil {
		return domain.PortfolioData{}, err
	}
	domain.SortTopics(doc.Topics)
	domain.SortNews(doc.News)
	domain.SortActivities(doc.Activities)
	return doc, nil
}

func (b *LocalBackend) load(ctx context.Context) (domain.PortfolioData, int64, error) {
	raw, version, err := b.slot.Get(ctx, SlotKey)
	if err != nil {
		return domain.PortfolioData{}, 0, fmt.Errorf("read local document: %w", err)
	}
	if raw == nil {
		return domain.DefaultPortfolio(), 0, nil
	}

	var doc domain.PortfolioData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.PortfolioData{}, 0, fmt.Errorf("decode local document: %w", err)
	}
	return domain.NormalizePortfolio(doc), version, nil
}

// mutate applies edit to a copy of the document and persists the result.
func (b *LocalBackend) mutate(ctx context.Context, edit func(doc *domain.PortfolioData)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		doc, version, err := b.load(ctx)
		if err != nil {
			return err
		}

		next := doc.Clone()
		edit(&next)

		raw, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode local document: %w", err)
		}

		_, err = b.slot.Put(ctx, SlotKey, raw, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sqlite.ErrVersionConflict) {
			return fmt.Errorf("write local document: %w", err)
		}

		b.log.Warn("local document changed during write, retrying",
			logger.Int("attempt", attempt),
			logger.Int64("version", version))
	}

	return ErrConflict
}

func (b *LocalBackend) Upsert(ctx context.Context, table Table, record domain.Record) error {
	if err := checkRecord(table, record); err != nil {
		return err
	}
	return b.mutate(ctx, func(doc *domain.PortfolioData) {
		switch r := record.(type) {
		case domain.Topic:
			doc.Topics = domain.UpsertByID(doc.Topics, r)
		case domain.NewsItem:
			doc.News = domain.UpsertByID(doc.News, r)
		case domain.Activity:
			doc.Activities = domain.UpsertByID(doc.Activities, r)
		}
	})
}

func (b *LocalBackend) Delete(ctx context.Context, table Table, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	return b.mutate(ctx, func(doc *domain.PortfolioData) {
		switch table {
		case TableTopics:
			doc.Topics = domain.RemoveByID(doc.Topics, id)
		case TableNews:
			doc.News = domain.RemoveByID(doc.News, id)
		case TableActivities:
			doc.Activities = domain.RemoveByID(doc.Activities, id)
		}
	})
}

func (b *LocalBackend) UpdateSetting(ctx context.Context, key Setting, value any) error {
	if err := checkSetting(key, value); err != nil {
		return err
	}
	return b.mutate(ctx, func(doc *domain.PortfolioData) {
		switch key {
		case SettingHeroWords:
			doc.HeroWords = append([]string(nil), value.([]string)...)
		case SettingProfileImage:
			doc.ProfileImage = value.(string)
		}
	})
}

// Replace overwrites the whole document in one write.
func (b *LocalBackend) Replace(ctx context.Context, doc domain.PortfolioData) error {
	doc = domain.NormalizePortfolio(doc)
	return b.mutate(ctx, func(current *domain.PortfolioData) {
		*current = doc
	})
}
