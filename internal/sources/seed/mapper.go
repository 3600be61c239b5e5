package seed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/folio/internal/domain"
)

// Mapper converts a seed document to the portfolio document
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new mapper
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// Map validates doc and converts it. Records without an id get a stable
// one derived from their content, so importing the same file twice
// replaces records instead of duplicating them.
func (m *Mapper) Map(doc Document) (domain.PortfolioData, error) {
	now := m.now()
	out := domain.PortfolioData{
		Topics:       make([]domain.Topic, 0, len(doc.Topics)),
		News:         make([]domain.NewsItem, 0, len(doc.News)),
		Activities:   make([]domain.Activity, 0, len(doc.Activities)),
		HeroWords:    trimAll(doc.HeroWords),
		ProfileImage: strings.TrimSpace(doc.ProfileImage),
	}

	slugs := make(map[string]int)
	for i, e := range doc.Topics {
		t, err := mapTopic(e)
		if err != nil {
			return domain.PortfolioData{}, fmt.Errorf("topic #%d: %w", i+1, err)
		}
		if t.Slug != "" {
			if prev, dup := slugs[t.Slug]; dup {
				return domain.PortfolioData{}, fmt.Errorf("topic #%d: slug %q already used by topic #%d", i+1, t.Slug, prev)
			}
			slugs[t.Slug] = i + 1
		}
		out.Topics = append(out.Topics, domain.NormalizeTopic(t, now))
	}

	for i, e := range doc.News {
		n, err := mapNews(e)
		if err != nil {
			return domain.PortfolioData{}, fmt.Errorf("news #%d: %w", i+1, err)
		}
		out.News = append(out.News, domain.NormalizeNews(n, now))
	}

	for i, e := range doc.Activities {
		a, err := mapActivity(e)
		if err != nil {
			return domain.PortfolioData{}, fmt.Errorf("activity #%d: %w", i+1, err)
		}
		out.Activities = append(out.Activities, domain.NormalizeActivity(a, now))
	}

	return out, nil
}

func mapTopic(e TopicEntry) (domain.Topic, error) {
	if strings.TrimSpace(e.Title) == "" {
		return domain.Topic{}, fmt.Errorf("title is required")
	}

	category := domain.Category(strings.TrimSpace(e.Category))
	if category != "" && !category.Valid() {
		return domain.Topic{}, fmt.Errorf("unknown category %q", e.Category)
	}
	status, err := parseStatus(e.Status)
	if err != nil {
		return domain.Topic{}, err
	}
	if err := checkDate(e.PublishedAt); err != nil {
		return domain.Topic{}, err
	}

	links := make([]domain.Link, 0, len(e.Links))
	for _, l := range e.Links {
		if l.URL == "" {
			continue
		}
		links = append(links, domain.Link{Label: l.Label, URL: l.URL})
	}

	id := e.ID
	if id == "" {
		id = stableID("topic", e.Slug, e.Title)
	}

	return domain.Topic{
		ID:          id,
		Category:    category,
		Title:       strings.TrimSpace(e.Title),
		Slug:        e.Slug,
		Summary:     e.Summary,
		Body:        e.Body,
		Tags:        trimAll(e.Tags),
		Role:        e.Role,
		Links:       links,
		Featured:    e.Featured,
		Order:       e.Order,
		PublishedAt: e.PublishedAt,
		Status:      status,
		Media:       trimAll(e.Media),
	}, nil
}

func mapNews(e NewsEntry) (domain.NewsItem, error) {
	if strings.TrimSpace(e.Title) == "" {
		return domain.NewsItem{}, fmt.Errorf("title is required")
	}
	status, err := parseStatus(e.Status)
	if err != nil {
		return domain.NewsItem{}, err
	}
	if err := checkDate(e.Date); err != nil {
		return domain.NewsItem{}, err
	}

	id := e.ID
	if id == "" {
		id = stableID("news", e.Date, e.Title)
	}

	return domain.NewsItem{
		ID:        id,
		Title:     strings.TrimSpace(e.Title),
		Category:  e.Category,
		ShortText: e.ShortText,
		Body:      e.Body,
		Date:      e.Date,
		Status:    status,
	}, nil
}

func mapActivity(e ActivityEntry) (domain.Activity, error) {
	if strings.TrimSpace(e.Title) == "" {
		return domain.Activity{}, fmt.Errorf("title is required")
	}
	status, err := parseStatus(e.Status)
	if err != nil {
		return domain.Activity{}, err
	}
	if err := checkDate(e.Date); err != nil {
		return domain.Activity{}, err
	}

	id := e.ID
	if id == "" {
		id = stableID("activity", e.Date, e.Title)
	}

	return domain.Activity{
		ID:       id,
		Date:     e.Date,
		Title:    strings.TrimSpace(e.Title),
		Summary:  e.Summary,
		Body:     e.Body,
		Links:    trimAll(e.Links),
		Media:    trimAll(e.Media),
		Tags:     trimAll(e.Tags),
		Featured: e.Featured,
		Order:    e.Order,
		Status:   status,
	}, nil
}

func parseStatus(s string) (domain.Status, error) {
	status := domain.Status(strings.ToLower(strings.TrimSpace(s)))
	if status != "" && !status.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return status, nil
}

func checkDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return nil
}

// stableID derives a short id from the record kind and its key fields.
func stableID(kind string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(strings.TrimSpace(p)))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
