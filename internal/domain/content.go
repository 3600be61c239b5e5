package domain

// Category groups topics on the gallery page.
type Category string

const (
	CategoryProjects Category = "Projects"
	CategoryWorks    Category = "Works"
	CategoryOthers   Category = "Others"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryProjects, CategoryWorks, CategoryOthers}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryProjects, CategoryWorks, CategoryOthers:
		return true
	default:
		return false
	}
}

// Status is the publication state shared by every content record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

const (
	// DefaultHeroWord is shown when no hero phrases were ever saved.
	DefaultHeroWord = "Complex Systems into Elegant Motion."
	// DefaultProfileImage is the profile image path used when none is set.
	DefaultProfileImage = "./profile.png"
)

// Record is implemented by every entity stored in a content table.
type Record interface {
	RecordID() string
}

// Link is a labelled external reference attached to a topic.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Topic is a project, work or other showcase entry.
//
// Slug is the only lookup key for detail pages. Uniqueness is not enforced
// by any store: when two published topics share a slug the first one in
// display order wins.
type Topic struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
	Role        string   `json:"role"`
	Links       []Link   `json:"links"`
	Featured    bool     `json:"featured"`
	Order       int      `json:"order"`
	PublishedAt string   `json:"publishedAt"` // YYYY-MM-DD
	Status      Status   `json:"status"`
	// Media holds opaque image references. The first one is the cover.
	Media []string `json:"media"`
}

func (t Topic) RecordID() string { return t.ID }

// Cover returns the cover image reference, or "" when the topic has no media.
func (t Topic) Cover() string {
	if len(t.Media) == 0 {
		return ""
	}
	return t.Media[0]
}

// Gallery returns every media reference after the cover.
func (t Topic) Gallery() []string {
	if len(t.Media) < 2 {
		return nil
	}
	return t.Media[1:]
}

// NewsItem is a dated announcement. It has no slug and no detail page.
type NewsItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	ShortText string `json:"shortText"`
	Body      string `json:"body"`
	Date      string `json:"date"` // YYYY-MM-DD
	Status    Status `json:"status"`
}

func (n NewsItem) RecordID() string { return n.ID }

// Activity is editable from the dashboard only; no public page lists it.
type Activity struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Body     string   `json:"body"`
	Links    []string `json:"links"`
	Media    []string `json:"media"`
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
	Order    int      `json:"order"`
	Status   Status   `json:"status"`
}

func (a Activity) RecordID() string { return a.ID }

// PortfolioData is the aggregate document: the unit of retrieval and the
// unit of fallback persistence. It is always replaced as a whole.
type PortfolioData struct {
	Topics       []Topic    `json:"topics"`
	News         []NewsItem `json:"news"`
	Activities   []Activity `json:"activities"`
	HeroWords    []string   `json:"heroWords"`
	ProfileImage string     `json:"profileImage"`
}

// DefaultPortfolio returns the document used when nothing was ever stored.
func DefaultPortfolio() PortfolioData {
	return PortfolioData{
		Topics:       []Topic{},
		News:         []NewsItem{},
		Activities:   []Activity{},
		HeroWords:    []string{DefaultHeroWord},
		ProfileImage: DefaultProfileImage,
	}
}

// Clone copies the record lists so callers can add, replace or drop records
// without touching a shared snapshot. Records themselves are values and are
// replaced whole, never edited in place.
func (p PortfolioData) Clone() PortfolioData {
	out := PortfolioData{
		Topics:       make([]Topic, len(p.Topics)),
		News:         make([]NewsItem, len(p.News)),
		Activities:   make([]Activity, len(p.Activities)),
		HeroWords:    append([]string(nil), p.HeroWords...),
		ProfileImage: p.ProfileImage,
	}
	copy(out.Topics, p.Topics)
	copy(out.News, p.News)
	copy(out.Activities, p.Activities)
	return out
}
