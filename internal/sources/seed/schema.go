package seed

// Document is the root of a seed file.
type Document struct {
	HeroWords    []string        `yaml:"hero_words"`
	ProfileImage string          `yaml:"profile_image"`
	Topics       []TopicEntry    `yaml:"topics"`
	News         []NewsEntry     `yaml:"news"`
	Activities   []ActivityEntry `yaml:"activities"`
}

// LinkEntry is a labelled link of a topic.
type LinkEntry struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// TopicEntry represents a single topic in the YAML.
type TopicEntry struct {
	ID          string      `yaml:"id"`
	Category    string      `yaml:"category"`
	Title       string      `yaml:"title"`
	Slug        string      `yaml:"slug"`
	Summary     string      `yaml:"summary"`
	Body        string      `yaml:"body"`
	Tags        []string    `yaml:"tags"`
	Role        string      `yaml:"role"`
	Links       []LinkEntry `yaml:"links"`
	Featured    bool        `yaml:"featured"`
	Order       int         `yaml:"order"`
	PublishedAt string      `yaml:"published_at"`
	Status      string      `yaml:"status"`
	Media       []string    `yaml:"media"`
}

// NewsEntry represents a single news item in the YAML.
type NewsEntry struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Category  string `yaml:"category"`
	ShortText string `yaml:"short_text"`
	Body      string `yaml:"body"`
	Date      string `yaml:"date"`
	Status    string `yaml:"status"`
}

// ActivityEntry represents a single activity in the YAML.
type ActivityEntry struct {
	ID       string   `yaml:"id"`
	Date     string   `yaml:"date"`
	Title    string   `yaml:"title"`
	Summary  string   `yaml:"summary"`
	Body     string   `yaml:"body"`
	Links    []string `yaml:"links"`
	Media    []string `yaml:"media"`
	Tags     []string `yaml:"tags"`
	Featured bool     `yaml:"featured"`
	Order    int      `yaml:"order"`
	Status   string   `yaml:"status"`
}
