package content

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/store/sqlite"
)

func newLocalBackend(t *testing.T) *LocalBackend {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "folio.db"))
	if err != nil {
		t.Fatalf("sqlite.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewLocalBackend(store, logger.Nop())
}

func TestLocalFetchAllDefaults(t *testing.T) {
	b := newLocalBackend(t)

	doc, err := b.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	want := domain.PortfolioData{
		Topics:       []domain.Topic{},
		News:         []domain.NewsItem{},
		Activities:   []domain.Activity{},
		HeroWords:    []string{"Complex Systems into Elegant Motion."},
		ProfileImage: "./profile.png",
	}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("FetchAll() = %+v, want %+v", doc, want)
	}
}

func TestLocalUpsertReplacesOrAppends(t *testing.T) {
	b := newLocalBackend(t)
	ctx := context.Background()

	if err := b.Upsert(ctx, TableTopics, domain.Topic{ID: "a", Title: "A"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := b.Upsert(ctx, TableTopics, domain.Topic{ID: "b", Title: "B"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := b.Upsert(ctx, TableTopics, domain.Topic{ID: "a", Title: "A2"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	doc, _ := b.FetchAll(ctx)
	if len(doc.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(doc.Topics))
	}
	if doc.Topics[0].ID != "a" || doc.Topics[0].Title != "A2" {
		t.Errorf("topic a not replaced in place: %+v", doc.Topics)
	}
}

func TestLocalDeleteUnknownIsNoop(t *testing.T) {
	b := newLocalBackend(t)
	ctx := context.Background()

	_ = b.Upsert(ctx, TableNews, domain.NewsItem{ID: "n1"})
	before, _ := b.FetchAll(ctx)

	if err := b.Delete(ctx, TableNews, "missing"); err != nil {
		t.Fatalf("Delete(missing) failed: %v", err)
	}
	after, _ := b.FetchAll(ctx)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Delete(missing) changed the document: %+v -> %+v", before, after)
	}

	if err := b.Delete(ctx, TableNews, "n1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	after, _ = b.FetchAll(ctx)
	if len(after.News) != 0 {
		t.Errorf("news not deleted: %+v", after.News)
	}
}

func TestLocalUpdateSettings(t *testing.T) {
	b := newLocalBackend(t)
	ctx := context.Background()

	if err := b.UpdateSetting(ctx, SettingHeroWords, []string{"x", "y"}); err != nil {
		t.Fatalf("UpdateSetting failed: %v", err)
	}
	if err := b.UpdateSetting(ctx, SettingProfileImage, "/me.png"); err != nil {
		t.Fatalf("UpdateSetting failed: %v", err)
	}
	if err := b.UpdateSetting(ctx, "theme", "dark"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}

	doc, _ := b.FetchAll(ctx)
	if !reflect.DeepEqual(doc.HeroWords, []string{"x", "y"}) || doc.ProfileImage != "/me.png" {
		t.Errorf("settings not applied: %+v", doc)
	}
}

func TestLocalRejectsWrongTable(t *testing.T) {
	b := newLocalBackend(t)
	err := b.Upsert(context.Background(), TableNews, domain.Topic{ID: "t"})
	if !errors.Is(err, ErrRecordType) {
		t.Errorf("expected ErrRecordType, got %v", err)
	}
}

func TestLocalConcurrentUpsertsKeepEveryRecord(t *testing.T) {
	b := newLocalBackend(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := b.Upsert(ctx, TableActivities, domain.Activity{ID: fmt.Sprintf("a%d", i)}); err != nil {
				t.Errorf("Upsert failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	doc, _ := b.FetchAll(ctx)
	if len(doc.Activities) != 20 {
		t.Errorf("lost updates: got %d activities, want 20", len(doc.Activities))
	}
}

// racingSlot lets another writer bump the version between a read and a
// write, a fixed number of times.
type racingSlot struct {
	inner  *sqlite.Store
	races  int
	writes int
}

func (s *racingSlot) Get(ctx context.Context, key string) ([]byte, int64, error) {
	return s.inner.Get(ctx, key)
}

func (s *racingSlot) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	s.writes++
	if s.races > 0 {
		s.races--
		// Another process writes first.
		if _, err := s.inner.Put(ctx, key, value, expected); err != nil {
			return 0, err
		}
	}
	return s.inner.Put(ctx, key, value, expected)
}

func TestLocalRetriesOnVersionConflict(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "folio.db"))
	if err != nil {
		t.Fatalf("sqlite.Open failed: %v", err)
	}
	defer store.Close()

	slot := &racingSlot{inner: store, races: 1}
	b := NewLocalBackend(slot, logger.Nop())

	if err := b.Upsert(context.Background(), TableTopics, domain.Topic{ID: "a"}); err != nil {
		t.Fatalf("Upsert should succeed after one retry, got %v", err)
	}
	if slot.writes != 2 {
		t.Errorf("expected 2 write attempts, got %d", slot.writes)
	}

	slot.races = maxWriteAttempts
	if err := b.Upsert(context.Background(), TableTopics, domain.Topic{ID: "b"}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict after %d lost races, got %v", maxWriteAttempts, err)
	}
}
