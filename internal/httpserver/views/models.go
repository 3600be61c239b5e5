package views

import "github.com/MrSnakeDoc/folio/internal/domain"

// HomeView is the body of the home page.
type HomeView struct {
	HeroWord     string
	HeroWords    []string
	ProfileImage string
	Featured     *domain.Topic
	News         []domain.NewsItem
}

// TopicsView is the body of the topics gallery.
type TopicsView struct {
	Filter  string
	Filters []string
	Topics  []domain.Topic
}

// TopicView is the body of a topic detail page.
type TopicView struct {
	Topic domain.Topic
}

// NewsView is the body of the news page.
type NewsView struct {
	News []domain.NewsItem
}

// ContactView is the body of the contact page.
type ContactView struct {
	Sent    bool
	Name    string
	Email   string
	Message string
}

// LoginView is the body of the login page.
type LoginView struct {
	Email string
}

// DashboardView is the body of the admin dashboard. The Edit fields hold
// the record loaded in the form, zero for a new one.
type DashboardView struct {
	Tab          string
	Mode         string
	Categories   []domain.Category
	Topics       []domain.Topic
	News         []domain.NewsItem
	Activities   []domain.Activity
	HeroWords    []string
	ProfileImage string
	EditTopic    domain.Topic
	EditNews     domain.NewsItem
	EditActivity domain.Activity
}
