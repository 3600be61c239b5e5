package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the storage format of every date field.
const DateLayout = "2006-01-02"

// Today formats now as a storage date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// NewID returns a random record identifier.
func NewID() string {
	return uuid.NewString()
}

// NormalizeTopic fills the defaults a dashboard submission relies on:
// a generated id, the Projects category, published status and today's date.
func NormalizeTopic(t Topic, now time.Time) Topic {
	if strings.TrimSpace(t.ID) == "" {
		t.ID = NewID()
	}
	if t.Category == "" {
		t.Category = CategoryProjects
	}
	if t.Status == "" {
		t.Status = StatusPublished
	}
	if t.PublishedAt == "" {
		t.PublishedAt = Today(now)
	}
	t.Slug = strings.TrimSpace(t.Slug)
	t.Tags = nonNil(t.Tags)
	t.Media = nonNil(t.Media)
	if t.Links == nil {
		t.Links = []Link{}
	}
	return t
}

// NormalizeNews applies the same defaults to a news item.
func NormalizeNews(n NewsItem, now time.Time) NewsItem {
	if strings.TrimSpace(n.ID) == "" {
		n.ID = NewID()
	}
	if n.Status == "" {
		n.Status = StatusPublished
	}
	if n.Date == "" {
		n.Date = Today(now)
	}
	return n
}

// NormalizeActivity applies the same defaults to an activity.
func NormalizeActivity(a Activity, now time.Time) Activity {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = NewID()
	}
	if a.Status == "" {
		a.Status = StatusPublished
	}
	if a.Date == "" {
		a.Date = Today(now)
	}
	a.Links = nonNil(a.Links)
	a.Media = nonNil(a.Media)
	a.Tags = nonNil(a.Tags)
	return a
}

// NormalizePortfolio makes a fetched document safe to render: nil lists
// become empty and missing settings take their defaults.
func NormalizePortfolio(p PortfolioData) PortfolioData {
	if p.Topics == nil {
		p.Topics = []Topic{}
	}
	if p.News == nil {
		p.News = []NewsItem{}
	}
	if p.Activities == nil {
		p.Activities = []Activity{}
	}
	if len(p.HeroWords) == 0 {
		p.HeroWords = []string{DefaultHeroWord}
	}
	if p.ProfileImage == "" {
		p.ProfileImage = DefaultProfileImage
	}
	return p
}

// SplitLines splits a textarea value into trimmed, non-empty lines.
func SplitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SplitList splits a comma separated input into trimmed, non-empty values.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
