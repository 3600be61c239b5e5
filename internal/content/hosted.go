package content

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
	storeredis "github.com/MrSnakeDoc/folio/internal/store/redis"
)

// HostedBackend reads and writes the Redis tables.
type HostedBackend struct {
	store *storeredis.Store
	log   logger.Logger
}

// NewHostedBackend creates a backend over the hosted store.
func NewHostedBackend(store *storeredis.Store, log logger.Logger) *HostedBackend {
	return &HostedBackend{store: store, log: log}
}

func (b *HostedBackend) Mode() Mode { return ModeHosted }

// FetchAll pings the store, then reads the four slices concurrently.
// An unreachable store fails the whole fetch; a failing slice is logged
// and left empty.
func (b *HostedBackend) FetchAll(ctx context.Context) (domain.PortfolioData, error) {
	if err := b.store.Ping(ctx); err != nil {
		return domain.PortfolioData{}, fmt.Errorf("hosted store unreachable: %w", err)
	}

	var (
		wg       sync.WaitGroup
		topics   []domain.Topic
		news     []domain.NewsItem
		acts     []domain.Activity
		settings map[string]json.RawMessage
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		topics = loadSlice[domain.Topic](ctx, b, TableTopics)
		slices.SortFunc(topics, domain.CompareTopics)
	}()
	go func() {
		defer wg.Done()
		news = loadSlice[domain.NewsItem](ctx, b, TableNews)
		slices.SortFunc(news, domain.CompareNews)
	}()
	go func() {
		defer wg.Done()
		acts = loadSlice[domain.Activity](ctx, b, TableActivities)
		slices.SortFunc(acts, domain.CompareActivities)
	}()
	go func() {
		defer wg.Done()
		var err error
		settings, err = b.store.Settings(ctx)
		if err != nil {
			b.log.Warn("settings read failed, using defaults", logger.Error(err))
		}
	}()
	wg.Wait()

	doc := domain.PortfolioData{
		Topics:     topics,
		News:       news,
		Activities: acts,
	}
	b.applySettings(&doc, settings)

	return domain.NormalizePortfolio(doc), nil
}

func loadSlice[T any](ctx context.Context, b *HostedBackend, table Table) []T {
	items, err := storeredis.LoadTable[T](ctx, b.store, string(table))
	if err != nil {
		b.log.Warn("content read failed, treating as empty",
			logger.String("table", string(table)),
			logger.Error(err))
		return []T{}
	}
	return items
}

func (b *HostedBackend) applySettings(doc *domain.PortfolioData, settings map[string]json.RawMessage) {
	if raw, ok := settings[string(SettingHeroWords)]; ok {
		if err := json.Unmarshal(raw, &doc.HeroWords); err != nil {
			b.log.Warn("invalid hero_words setting", logger.Error(err))
			doc.HeroWords = nil
		}
	}
	if raw, ok := settings[string(SettingProfileImage)]; ok {
		if err := json.Unmarshal(raw, &doc.ProfileImage); err != nil {
			b.log.Warn("invalid profile_image setting", logger.Error(err))
			doc.ProfileImage = ""
		}
	}
}

// Upsert writes one record. Failures are returned as is, never retried.
func (b *HostedBackend) Upsert(ctx context.Context, table Table, record domain.Record) error {
	if err := checkRecord(table, record); err != nil {
		return err
	}
	return b.store.SaveRecord(ctx, string(table), record.RecordID(), record)
}

func (b *HostedBackend) Delete(ctx context.Context, table Table, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	return b.store.DeleteRecord(ctx, string(table), id)
}

func (b *HostedBackend) UpdateSetting(ctx context.Context, key Setting, value any) error {
	if err := checkSetting(key, value); err != nil {
		return err
	}
	return b.store.SetSetting(ctx, string(key), value)
}
