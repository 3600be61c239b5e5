package seed

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/folio/internal/domain"
)

// FromPortfolio converts a stored document back into seed form so it can
// be edited and imported again. Ids are kept.
func FromPortfolio(p domain.PortfolioData) Document {
	doc := Document{
		HeroWords:    p.HeroWords,
		ProfileImage: p.ProfileImage,
		Topics:       make([]TopicEntry, 0, len(p.Topics)),
		News:         make([]NewsEntry, 0, len(p.News)),
		Activities:   make([]ActivityEntry, 0, len(p.Activities)),
	}

	for _, t := range p.Topics {
		links := make([]LinkEntry, 0, len(t.Links))
		for _, l := range t.Links {
			links = append(links, LinkEntry{Label: l.Label, URL: l.URL})
		}
		doc.Topics = append(doc.Topics, TopicEntry{
			ID:          t.ID,
			Category:    string(t.Category),
			Title:       t.Title,
			Slug:        t.Slug,
			Summary:     t.Summary,
			Body:        t.Body,
			Tags:        t.Tags,
			Role:        t.Role,
			Links:       links,
			Featured:    t.Featured,
			Order:       t.Order,
			PublishedAt: t.PublishedAt,
			Status:      string(t.Status),
			Media:       t.Media,
		})
	}

	for _, n := range p.News {
		doc.News = append(doc.News, NewsEntry{
			ID:        n.ID,
			Title:     n.Title,
			Category:  n.Category,
			ShortText: n.ShortText,
			Body:      n.Body,
			Date:      n.Date,
			Status:    string(n.Status),
		})
	}

	for _, a := range p.Activities {
		doc.Activities = append(doc.Activities, ActivityEntry{
			ID:       a.ID,
			Date:     a.Date,
			Title:    a.Title,
			Summary:  a.Summary,
			Body:     a.Body,
			Links:    a.Links,
			Media:    a.Media,
			Tags:     a.Tags,
			Featured: a.Featured,
			Order:    a.Order,
			Status:   string(a.Status),
		})
	}

	return doc
}

// Marshal encodes doc as YAML with two-space indentation.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode seed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode seed: %w", err)
	}
	return buf.Bytes(), nil
}
