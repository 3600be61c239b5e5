package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeTopicDefaults(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	got := NormalizeTopic(Topic{Title: "Demo", Slug: " demo ", Category: CategoryProjects}, now)

	if got.ID == "" {
		t.Error("NormalizeTopic() should generate an id")
	}
	if got.Status != StatusPublished {
		t.Errorf("Status = %q, want %q", got.Status, StatusPublished)
	}
	if got.PublishedAt != "2026-10-15" {
		t.Errorf("PublishedAt = %q, want 2026-10-15", got.PublishedAt)
	}
	if got.Slug != "demo" {
		t.Errorf("Slug = %q, want trimmed slug", got.Slug)
	}
	if got.Media == nil || got.Tags == nil || got.Links == nil {
		t.Error("NormalizeTopic() should replace nil lists with empty ones")
	}
}

func TestNormalizeTopicKeepsExplicitValues(t *testing.T) {
	now := time.Now()
	in := Topic{
		ID:          "fixed",
		Category:    CategoryWorks,
		Status:      StatusDraft,
		PublishedAt: "2024-01-02",
	}

	got := NormalizeTopic(in, now)

	if got.ID != "fixed" || got.Category != CategoryWorks || got.Status != StatusDraft || got.PublishedAt != "2024-01-02" {
		t.Errorf("NormalizeTopic() overwrote explicit values: %+v", got)
	}
}

func TestNormalizeTopicDefaultCategory(t *testing.T) {
	got := NormalizeTopic(Topic{Title: "x"}, time.Now())
	if got.Category != CategoryProjects {
		t.Errorf("Category = %q, want %q", got.Category, CategoryProjects)
	}
}

func TestNormalizeNewsAndActivity(t *testing.T) {
	now := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	n := NormalizeNews(NewsItem{Title: "launch"}, now)
	if n.ID == "" || n.Status != StatusPublished || n.Date != "2025-03-04" {
		t.Errorf("NormalizeNews() = %+v", n)
	}

	a := NormalizeActivity(Activity{Title: "talk"}, now)
	if a.ID == "" || a.Status != StatusPublished || a.Date != "2025-03-04" {
		t.Errorf("NormalizeActivity() = %+v", a)
	}
	if a.Links == nil || a.Media == nil || a.Tags == nil {
		t.Error("NormalizeActivity() should replace nil lists with empty ones")
	}
}

func TestNormalizePortfolio(t *testing.T) {
	got := NormalizePortfolio(PortfolioData{})
	want := DefaultPortfolio()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizePortfolio(empty) = %+v, want %+v", got, want)
	}

	kept := NormalizePortfolio(PortfolioData{HeroWords: []string{"a"}, ProfileImage: "/me.jpg"})
	if kept.HeroWords[0] != "a" || kept.ProfileImage != "/me.jpg" {
		t.Errorf("NormalizePortfolio() replaced set values: %+v", kept)
	}
}

func TestSplitHelpers(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) []string
		input string
		want  []string
	}{
		{"lines", SplitLines, "one\n\n  two  \n", []string{"one", "two"}},
		{"lines empty", SplitLines, "", []string{}},
		{"list", SplitList, "go, redis ,,zap", []string{"go", "redis", "zap"}},
		{"list empty", SplitList, " , ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
