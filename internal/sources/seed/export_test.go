package seed

import (
	"strings"
	"testing"

	"github.com/MrSnakeDoc/folio/internal/domain"
)

func TestExportReimports(t *testing.T) {
	stored := domain.PortfolioData{
		HeroWords:    []string{"First", "Second"},
		ProfileImage: "/me.png",
		Topics: []domain.Topic{{
			ID: "t1", Category: domain.CategoryWorks, Title: "Demo", Slug: "demo",
			Body: "line one\nline two", Links: []domain.Link{{Label: "Repo", URL: "https://example.com"}},
			PublishedAt: "2025-01-02", Status: domain.StatusDraft, Media: []string{"/a.png"},
		}},
		News:       []domain.NewsItem{{ID: "n1", Title: "Launch", Date: "2025-02-03", Status: domain.StatusPublished}},
		Activities: []domain.Activity{{ID: "a1", Title: "Talk", Date: "2025-03-04", Status: domain.StatusPublished}},
	}

	out, err := Marshal(FromPortfolio(stored))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), "published_at:") || !strings.Contains(string(out), "2025-01-02") {
		t.Errorf("unexpected YAML:\n%s", out)
	}

	doc, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := newTestMapper().Map(doc)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}

	topic := got.Topics[0]
	if topic.ID != "t1" || topic.Category != domain.CategoryWorks || topic.Status != domain.StatusDraft {
		t.Errorf("topic = %+v", topic)
	}
	if topic.Body != "line one\nline two" || topic.Links[0].URL != "https://example.com" {
		t.Errorf("topic content lost: %+v", topic)
	}
	if got.News[0].ID != "n1" || got.Activities[0].ID != "a1" {
		t.Errorf("ids not kept: %+v %+v", got.News, got.Activities)
	}
	if len(got.HeroWords) != 2 || got.ProfileImage != "/me.png" {
		t.Errorf("settings = %v %q", got.HeroWords, got.ProfileImage)
	}
}
