package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/views"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

const (
	filterAll      = "ALL"
	heroWordPeriod = 4 // seconds each hero phrase stays up
	homeNewsCount  = 3
)

var topicFilters = []string{
	filterAll,
	string(domain.CategoryProjects),
	string(domain.CategoryWorks),
	string(domain.CategoryOthers),
}

// Home shows the rotating hero phrase, the profile image, the featured
// topic and the latest news.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := d.State.Snapshot().Data

		words := data.HeroWords
		if len(words) == 0 {
			words = []string{domain.DefaultHeroWord}
		}

		body := views.HomeView{
			HeroWord:     words[int(d.Now().Unix()/heroWordPeriod)%len(words)],
			HeroWords:    words,
			ProfileImage: data.ProfileImage,
		}
		if t, ok := domain.FeaturedTopic(data.Topics); ok {
			body.Featured = &t
		}
		news := domain.PublishedNews(data.News)
		if len(news) > homeNewsCount {
			news = news[:homeNewsCount]
		}
		body.News = news

		render(d, w, r, http.StatusOK, views.PageHome, views.Page{Body: body})
	}
}

// Topics lists published topics, optionally filtered by ?category=.
// Unknown categories fall back to ALL.
func Topics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := filterAll
		category := domain.Category(strings.TrimSpace(r.URL.Query().Get("category")))
		if category.Valid() {
			filter = string(category)
		} else {
			category = ""
		}

		data := d.State.Snapshot().Data
		render(d, w, r, http.StatusOK, views.PageTopics, views.Page{
			Title: "Topics",
			Body: views.TopicsView{
				Filter:  filter,
				Filters: topicFilters,
				Topics:  domain.FilterTopics(data.Topics, category),
			},
		})
	}
}

// TopicDetail shows the first published topic with the requested slug.
// An unknown slug sends the visitor back to the gallery.
func TopicDetail(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		topic, ok := domain.FindTopicBySlug(d.State.Snapshot().Data.Topics, slug)
		if !ok {
			d.Logger.Debug("unknown topic slug", logger.String("slug", slug))
			http.Redirect(w, r, "/topics", http.StatusFound)
			return
		}

		render(d, w, r, http.StatusOK, views.PageTopic, views.Page{
			Title: topic.Title,
			Body:  views.TopicView{Topic: topic},
		})
	}
}

// News lists published news items, newest first.
func News(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(d, w, r, http.StatusOK, views.PageNews, views.Page{
			Title: "News",
			Body:  views.NewsView{News: domain.PublishedNews(d.State.Snapshot().Data.News)},
		})
	}
}

// ContactForm shows the empty contact form.
func ContactForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(d, w, r, http.StatusOK, views.PageContact, views.Page{
			Title: "Contact",
			Body:  views.ContactView{},
		})
	}
}

// ContactSubmit logs the message and thanks the visitor. Messages are not
// stored anywhere.
func ContactSubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		msg := views.ContactView{
			Name:    strings.TrimSpace(r.PostFormValue("name")),
			Email:   strings.TrimSpace(r.PostFormValue("email")),
			Message: strings.TrimSpace(r.PostFormValue("message")),
		}
		if msg.Name == "" || msg.Email == "" || msg.Message == "" {
			render(d, w, r, http.StatusBadRequest, views.PageContact, views.Page{
				Title: "Contact",
				Error: "Please fill in every field.",
				Body:  msg,
			})
			return
		}

		d.Logger.Info("contact message received",
			logger.String("name", msg.Name),
			logger.String("email", msg.Email),
			logger.Int("length", len(msg.Message)))

		render(d, w, r, http.StatusOK, views.PageContact, views.Page{
			Title: "Contact",
			Body:  views.ContactView{Sent: true},
		})
	}
}
