package content

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
	storeredis "github.com/MrSnakeDoc/folio/internal/store/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newHostedBackend(t *testing.T) (*HostedBackend, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return NewHostedBackend(storeredis.NewStore(client), logger.Nop()), s
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
}

func TestFacadeUpsertTopicScenario(t *testing.T) {
	local := newLocalBackend(t)
	f := NewFacade(local, local, logger.Nop())
	f.now = fixedNow
	ctx := context.Background()

	before, _ := f.FetchAll(ctx)

	stored, err := f.UpsertTopic(ctx, domain.Topic{
		Title:    "Demo",
		Slug:     "demo",
		Category: domain.CategoryProjects,
		Media:    []string{},
	})
	if err != nil {
		t.Fatalf("UpsertTopic failed: %v", err)
	}
	if stored.ID == "" {
		t.Error("UpsertTopic should assign an id")
	}
	if stored.Status != domain.StatusPublished || stored.PublishedAt != "2026-10-15" {
		t.Errorf("defaults not applied: %+v", stored)
	}

	after, _ := f.FetchAll(ctx)
	if len(after.Topics) != len(before.Topics)+1 {
		t.Errorf("topics grew from %d to %d, want +1", len(before.Topics), len(after.Topics))
	}

	// Same record again: idempotent.
	if _, err := f.UpsertTopic(ctx, stored); err != nil {
		t.Fatalf("UpsertTopic failed: %v", err)
	}
	again, _ := f.FetchAll(ctx)
	if !reflect.DeepEqual(after, again) {
		t.Errorf("second identical upsert changed the document")
	}
}

func TestFacadeModes(t *testing.T) {
	local := newLocalBackend(t)
	hosted, _ := newHostedBackend(t)

	if got := NewFacade(local, local, logger.Nop()).Mode(); got != ModeFallback {
		t.Errorf("local Mode() = %s", got)
	}
	if got := NewFacade(hosted, local, logger.Nop()).Mode(); got != ModeHosted {
		t.Errorf("hosted Mode() = %s", got)
	}
}

func TestFacadeFallsBackWhenHostedUnreachable(t *testing.T) {
	local := newLocalBackend(t)
	hosted, s := newHostedBackend(t)
	ctx := context.Background()

	if err := local.UpdateSetting(ctx, SettingProfileImage, "/local.png"); err != nil {
		t.Fatalf("UpdateSetting failed: %v", err)
	}
	s.Close()

	f := NewFacade(hosted, local, logger.Nop())
	doc, err := f.FetchAll(ctx)

	var fb *FallbackError
	if !errors.As(err, &fb) {
		t.Fatalf("expected a FallbackError, got %v", err)
	}
	if doc.ProfileImage != "/local.png" {
		t.Errorf("expected the local document, got %+v", doc)
	}
}

func TestFacadeHostedMutationErrorsPropagate(t *testing.T) {
	hosted, s := newHostedBackend(t)
	f := NewFacade(hosted, nil, logger.Nop())
	s.Close()

	if _, err := f.UpsertNews(context.Background(), domain.NewsItem{Title: "x"}); err == nil {
		t.Error("expected an error from an unreachable hosted store")
	}
	if _, err := f.FetchAll(context.Background()); err == nil {
		t.Error("expected an error without a fallback")
	}
}

func TestFacadeImportMerges(t *testing.T) {
	local := newLocalBackend(t)
	f := NewFacade(local, local, logger.Nop())
	ctx := context.Background()

	_, _ = f.UpsertTopic(ctx, domain.Topic{ID: "keep", Title: "Keep"})

	n, err := f.Import(ctx, domain.PortfolioData{
		Topics:    []domain.Topic{{ID: "keep", Title: "Replaced"}, {Title: "New"}},
		News:      []domain.NewsItem{{Title: "Hello"}},
		HeroWords: []string{"Seeded."},
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Import() = %d records, want 3", n)
	}

	doc, _ := f.FetchAll(ctx)
	if len(doc.Topics) != 2 || doc.Topics[0].Title != "Replaced" {
		t.Errorf("unexpected topics %+v", doc.Topics)
	}
	if doc.Topics[1].ID == "" || doc.News[0].ID == "" {
		t.Error("imported records should get ids")
	}
	if doc.HeroWords[0] != "Seeded." {
		t.Errorf("hero words not imported: %v", doc.HeroWords)
	}
}
