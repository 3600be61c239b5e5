package content

import (
	"context"
	"testing"

	"github.com/MrSnakeDoc/folio/internal/domain"
	storeredis "github.com/MrSnakeDoc/folio/internal/store/redis"
)

func TestHostedFetchAllEmptyUsesDefaults(t *testing.T) {
	b, _ := newHostedBackend(t)

	doc, err := b.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(doc.Topics) != 0 || doc.Topics == nil {
		t.Errorf("Topics = %#v, want empty", doc.Topics)
	}
	if doc.HeroWords[0] != domain.DefaultHeroWord || doc.ProfileImage != domain.DefaultProfileImage {
		t.Errorf("defaults missing: %+v", doc)
	}
}

func TestHostedFetchAllOrdersSlices(t *testing.T) {
	b, _ := newHostedBackend(t)
	ctx := context.Background()

	_ = b.Upsert(ctx, TableTopics, domain.Topic{ID: "second", Order: 2})
	_ = b.Upsert(ctx, TableTopics, domain.Topic{ID: "first", Order: 1})
	_ = b.Upsert(ctx, TableNews, domain.NewsItem{ID: "old", Date: "2024-01-01"})
	_ = b.Upsert(ctx, TableNews, domain.NewsItem{ID: "new", Date: "2026-01-01"})
	_ = b.Upsert(ctx, TableActivities, domain.Activity{ID: "a-old", Date: "2023-05-01"})
	_ = b.Upsert(ctx, TableActivities, domain.Activity{ID: "a-new", Date: "2025-05-01"})
	_ = b.UpdateSetting(ctx, SettingHeroWords, []string{"One.", "Two."})

	doc, err := b.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if doc.Topics[0].ID != "first" {
		t.Errorf("topics not ordered ascending: %+v", doc.Topics)
	}
	if doc.News[0].ID != "new" || doc.Activities[0].ID != "a-new" {
		t.Errorf("news/activities not newest first")
	}
	if len(doc.HeroWords) != 2 {
		t.Errorf("HeroWords = %v", doc.HeroWords)
	}
}

func TestHostedFetchAllTiesAreDeterministic(t *testing.T) {
	b, _ := newHostedBackend(t)
	ctx := context.Background()

	for _, id := range []string{"d", "b", "a", "c"} {
		_ = b.Upsert(ctx, TableTopics, domain.Topic{ID: id, PublishedAt: "2025-01-01"})
	}
	_ = b.Upsert(ctx, TableTopics, domain.Topic{ID: "z", PublishedAt: "2026-01-01"})

	want := []string{"z", "a", "b", "c", "d"}
	for range 5 {
		doc, err := b.FetchAll(ctx)
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}
		for i, id := range want {
			if doc.Topics[i].ID != id {
				t.Fatalf("Topics[%d] = %s, want %s (order %v)", i, doc.Topics[i].ID, id, doc.Topics)
			}
		}
	}
}

func TestHostedUpsertReservedLookingIDKeepsTable(t *testing.T) {
	b, _ := newHostedBackend(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "all", "ids"} {
		if err := b.Upsert(ctx, TableTopics, domain.Topic{ID: id}); err != nil {
			t.Fatalf("Upsert(%q) failed: %v", id, err)
		}
	}

	doc, err := b.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(doc.Topics) != 4 {
		t.Errorf("expected 4 topics, got %+v", doc.Topics)
	}
}

func TestHostedFetchAllPartialFailure(t *testing.T) {
	b, s := newHostedBackend(t)
	ctx := context.Background()

	_ = b.Upsert(ctx, TableTopics, domain.Topic{ID: "t1"})
	_ = b.Upsert(ctx, TableNews, domain.NewsItem{ID: "n1"})

	// Corrupt one news record: the news slice fails, topics survive.
	_ = s.Set(storeredis.RecordKey("news", "n1"), "{broken")

	doc, err := b.FetchAll(ctx)
	if err != nil {
		t.Fatalf("a failing slice must not fail the fetch: %v", err)
	}
	if len(doc.Topics) != 1 {
		t.Errorf("topics lost: %+v", doc.Topics)
	}
	if len(doc.News) != 0 {
		t.Errorf("failing slice should be empty, got %+v", doc.News)
	}
}

func TestHostedDeleteUnknownIsNoop(t *testing.T) {
	b, _ := newHostedBackend(t)
	if err := b.Delete(context.Background(), TableTopics, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}
