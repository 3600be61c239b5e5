package domain

import (
	"testing"
)

func TestUpsertByID(t *testing.T) {
	items := []Topic{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}

	replaced := UpsertByID(items, Topic{ID: "a", Title: "A2"})
	if len(replaced) != 2 {
		t.Fatalf("replace grew the list to %d", len(replaced))
	}
	if replaced[0].Title != "A2" {
		t.Errorf("replace did not happen in place: %+v", replaced)
	}
	if items[0].Title != "A" {
		t.Error("UpsertByID() mutated its input")
	}

	appended := UpsertByID(items, Topic{ID: "c", Title: "C"})
	if len(appended) != 3 || appended[2].ID != "c" {
		t.Errorf("append failed: %+v", appended)
	}

	twice := UpsertByID(UpsertByID(items, Topic{ID: "c"}), Topic{ID: "c"})
	if len(twice) != 3 {
		t.Errorf("upserting the same record twice gave %d items, want 3", len(twice))
	}
}

func TestRemoveByID(t *testing.T) {
	items := []NewsItem{{ID: "a"}, {ID: "b"}}

	if got := RemoveByID(items, "a"); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("RemoveByID(a) = %+v", got)
	}
	if got := RemoveByID(items, "missing"); len(got) != 2 {
		t.Errorf("RemoveByID(missing) changed the list: %+v", got)
	}
}

func TestFindTopicBySlug(t *testing.T) {
	topics := []Topic{
		{ID: "1", Slug: "demo", Status: StatusDraft},
		{ID: "2", Slug: "demo", Status: StatusPublished},
		{ID: "3", Slug: "demo", Status: StatusPublished},
	}

	got, ok := FindTopicBySlug(topics, "demo")
	if !ok || got.ID != "2" {
		t.Errorf("FindTopicBySlug() = %+v, %v; want first published", got, ok)
	}
	if _, ok := FindTopicBySlug(topics, "nope"); ok {
		t.Error("FindTopicBySlug() found an unknown slug")
	}
}

func TestFilterTopics(t *testing.T) {
	topics := []Topic{
		{ID: "1", Category: CategoryProjects, Status: StatusPublished},
		{ID: "2", Category: CategoryWorks, Status: StatusPublished},
		{ID: "3", Category: CategoryWorks, Status: StatusDraft},
	}

	tests := []struct {
		category Category
		want     int
	}{
		{"", 2},
		{CategoryProjects, 1},
		{CategoryWorks, 1},
		{CategoryOthers, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := FilterTopics(topics, tt.category); len(got) != tt.want {
				t.Errorf("FilterTopics(%q) = %d topics, want %d", tt.category, len(got), tt.want)
			}
		})
	}
}

func TestFeaturedTopic(t *testing.T) {
	topics := []Topic{
		{ID: "1", Status: StatusPublished},
		{ID: "2", Status: StatusPublished, Featured: true},
	}
	if got, _ := FeaturedTopic(topics); got.ID != "2" {
		t.Errorf("FeaturedTopic() = %s, want 2", got.ID)
	}
	if got, _ := FeaturedTopic(topics[:1]); got.ID != "1" {
		t.Errorf("FeaturedTopic() without featured = %s, want 1", got.ID)
	}
	if _, ok := FeaturedTopic(nil); ok {
		t.Error("FeaturedTopic(nil) should report false")
	}
}

func TestSorting(t *testing.T) {
	topics := []Topic{{ID: "b", Order: 2}, {ID: "a", Order: 1}, {ID: "c", Order: 2}}
	SortTopics(topics)
	if topics[0].ID != "a" || topics[1].ID != "b" || topics[2].ID != "c" {
		t.Errorf("SortTopics() = %v", topics)
	}

	news := []NewsItem{{ID: "old", Date: "2024-01-01"}, {ID: "new", Date: "2025-06-01"}}
	SortNews(news)
	if news[0].ID != "new" {
		t.Errorf("SortNews() should put newest first, got %v", news)
	}
}

func TestPublishedDropsDraftsAndActivities(t *testing.T) {
	doc := PortfolioData{
		Topics:     []Topic{{ID: "1", Status: StatusPublished}, {ID: "2", Status: StatusDraft}},
		News:       []NewsItem{{ID: "n", Status: StatusDraft}},
		Activities: []Activity{{ID: "a", Status: StatusPublished}},
	}

	got := Published(doc)
	if len(got.Topics) != 1 || len(got.News) != 0 || len(got.Activities) != 0 {
		t.Errorf("Published() = %+v", got)
	}
	if len(doc.Topics) != 2 {
		t.Error("Published() mutated its input")
	}
}

func TestCompareTopics(t *testing.T) {
	tests := []struct {
		name string
		a, b Topic
		want int
	}{
		{"order first", Topic{ID: "z", Order: 1}, Topic{ID: "a", Order: 2}, -1},
		{"newest published next", Topic{ID: "z", PublishedAt: "2026-01-01"}, Topic{ID: "a", PublishedAt: "2025-01-01"}, -1},
		{"id breaks ties", Topic{ID: "a"}, Topic{ID: "b"}, -1},
		{"same record", Topic{ID: "a"}, Topic{ID: "a"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareTopics(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareTopics() = %d, want %d", got, tt.want)
			}
			if got := CompareTopics(tt.b, tt.a); got != -tt.want {
				t.Errorf("CompareTopics() reversed = %d, want %d", got, -tt.want)
			}
		})
	}
}
