package domain

import (
	"cmp"
	"slices"
)

// SortTopics orders topics by their explicit sort order, ascending.
// The sort is stable so equal orders keep their stored sequence.
func SortTopics(topics []Topic) {
	slices.SortStableFunc(topics, func(a, b Topic) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

// SortNews orders news items newest first.
func SortNews(items []NewsItem) {
	slices.SortStableFunc(items, func(a, b NewsItem) int {
		return cmp.Compare(b.Date, a.Date)
	})
}

// SortActivities orders activities newest first.
func SortActivities(items []Activity) {
	slices.SortStableFunc(items, func(a, b Activity) int {
		return cmp.Compare(b.Date, a.Date)
	})
}

// CompareTopics orders topics by sort order, then newest PublishedAt, then
// id. No two distinct records compare equal, so stores that return rows in
// arbitrary order still yield the same sequence on every read.
func CompareTopics(a, b Topic) int {
	return cmp.Or(
		cmp.Compare(a.Order, b.Order),
		cmp.Compare(b.PublishedAt, a.PublishedAt),
		cmp.Compare(a.ID, b.ID),
	)
}

// CompareNews orders news items newest first, then by id.
func CompareNews(a, b NewsItem) int {
	return cmp.Or(cmp.Compare(b.Date, a.Date), cmp.Compare(a.ID, b.ID))
}

// CompareActivities orders activities newest first, then by id.
func CompareActivities(a, b Activity) int {
	return cmp.Or(cmp.Compare(b.Date, a.Date), cmp.Compare(a.ID, b.ID))
}

// FindTopicBySlug returns the first published topic carrying slug.
func FindTopicBySlug(topics []Topic, slug string) (Topic, bool) {
	for _, t := range topics {
		if t.Slug == slug && t.Status == StatusPublished {
			return t, true
		}
	}
	return Topic{}, false
}

// FilterTopics keeps published topics of the given category.
// An empty category keeps every published topic.
func FilterTopics(topics []Topic, category Category) []Topic {
	out := make([]Topic, 0, len(topics))
	for _, t := range topics {
		if t.Status != StatusPublished {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FeaturedTopic picks the first featured published topic, falling back to
// the first published one.
func FeaturedTopic(topics []Topic) (Topic, bool) {
	published := FilterTopics(topics, "")
	for _, t := range published {
		if t.Featured {
			return t, true
		}
	}
	if len(published) > 0 {
		return published[0], true
	}
	return Topic{}, false
}

// PublishedNews keeps published news items.
func PublishedNews(items []NewsItem) []NewsItem {
	out := make([]NewsItem, 0, len(items))
	for _, n := range items {
		if n.Status == StatusPublished {
			out = append(out, n)
		}
	}
	return out
}

// Published returns the public view of a document: drafts removed from
// topics and news. Activities have no public surface and are left out.
func Published(p PortfolioData) PortfolioData {
	out := p
	out.Topics = FilterTopics(p.Topics, "")
	out.News = PublishedNews(p.News)
	out.Activities = []Activity{}
	return out
}

// UpsertByID replaces the record sharing item's id, or appends item when
// none does. The input slice is not modified.
func UpsertByID[T Record](items []T, item T) []T {
	out := slices.Clone(items)
	for i := range out {
		if out[i].RecordID() == item.RecordID() {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

// RemoveByID drops every record with id. Unknown ids leave the list as is.
func RemoveByID[T Record](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.RecordID() != id {
			out = append(out, it)
		}
	}
	return out
}
