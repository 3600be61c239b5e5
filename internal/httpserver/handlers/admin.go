package handlers

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/mw"
	"github.com/MrSnakeDoc/folio/internal/httpserver/views"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

const (
	tabTopics     = "topics"
	tabNews       = "news"
	tabActivities = "activities"
	tabSettings   = "settings"

	authFailedMessage  = "Authentication failed"
	saveFailedMessage  = "The change could not be saved. Please try again."
	partialSaveMessage = "The hero phrases were saved but the profile image was not. Please try again."
	savedMessage       = "Changes saved."
	staleMessage       = "The content store is unavailable. You are seeing the last known copy."
)

// LoginForm shows the sign-in form, or the dashboard when the visitor
// already holds a valid session.
func LoginForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.State.Authenticated(r.Context(), mw.SessionToken(r)) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		render(d, w, r, http.StatusOK, views.PageLogin, views.Page{
			Title: "Sign in",
			Body:  views.LoginView{},
		})
	}
}

// Login authenticates the form credentials and sets the session cookie.
// Every failure gets the same fixed message.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))

		token, ok := d.State.Login(r.Context(), email, r.PostFormValue("password"))
		if !ok {
			d.Logger.Info("admin sign-in rejected", logger.String("email", email))
			render(d, w, r, http.StatusUnauthorized, views.PageLogin, views.Page{
				Title: "Sign in",
				Error: authFailedMessage,
				Body:  views.LoginView{Email: email},
			})
			return
		}

		http.SetCookie(w, sessionCookie(d, token, int(d.SessionTTL.Seconds())))
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

// Logout revokes the session and clears the cookie.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.State.Logout(r.Context(), mw.SessionToken(r))
		http.SetCookie(w, sessionCookie(d, "", -1))
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
	}
}

func sessionCookie(d deps.Deps, token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    token,
		Path:     "/admin",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   d.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Dashboard lists every record, drafts included. ?tab= picks the section
// and ?edit= loads a record into the form.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		body := dashboardView(d, q.Get("tab"))
		loadEdit(&body, q.Get("edit"))

		page := views.Page{Title: "Dashboard", Body: body}
		if q.Get("saved") != "" {
			page.Notice = savedMessage
		}
		if d.State.Snapshot().Err != "" {
			page.Error = staleMessage
		}
		render(d, w, r, http.StatusOK, views.PageDashboard, page)
	}
}

func dashboardView(d deps.Deps, tab string) views.DashboardView {
	switch tab {
	case tabTopics, tabNews, tabActivities, tabSettings:
	default:
		tab = tabTopics
	}

	data := d.State.Snapshot().Data
	return views.DashboardView{
		Tab:          tab,
		Mode:         string(d.State.Mode()),
		Categories:   domain.Categories,
		Topics:       data.Topics,
		News:         data.News,
		Activities:   data.Activities,
		HeroWords:    data.HeroWords,
		ProfileImage: data.ProfileImage,
	}
}

func loadEdit(v *views.DashboardView, id string) {
	if id == "" {
		return
	}
	switch v.Tab {
	case tabTopics:
		for _, t := range v.Topics {
			if t.ID == id {
				v.EditTopic = t
			}
		}
	case tabNews:
		for _, n := range v.News {
			if n.ID == id {
				v.EditNews = n
			}
		}
	case tabActivities:
		for _, a := range v.Activities {
			if a.ID == id {
				v.EditActivity = a
			}
		}
	}
}

// saved sends the editor back to the tab it came from.
func saved(w http.ResponseWriter, r *http.Request, tab string) {
	http.Redirect(w, r, "/admin?"+url.Values{"tab": {tab}, "saved": {"1"}}.Encode(), http.StatusSeeOther)
}

// saveFailed re-renders the dashboard with the submitted record still in
// the form and a generic notice. The cause only goes to the log.
func saveFailed(d deps.Deps, w http.ResponseWriter, r *http.Request, body views.DashboardView, err error) {
	saveFailedWith(d, w, r, body, saveFailedMessage, err)
}

func saveFailedWith(d deps.Deps, w http.ResponseWriter, r *http.Request, body views.DashboardView, msg string, err error) {
	d.Logger.Error("dashboard mutation failed",
		logger.String("tab", body.Tab),
		logger.String("path", r.URL.Path),
		logger.Error(err))
	render(d, w, r, http.StatusInternalServerError, views.PageDashboard, views.Page{
		Title: "Dashboard",
		Error: msg,
		Body:  body,
	})
}

// SaveTopic creates or replaces the topic posted by the dashboard form.
func SaveTopic(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		t := topicFromForm(r.PostForm)

		if _, err := d.State.UpsertTopic(r.Context(), t); err != nil {
			body := dashboardView(d, tabTopics)
			body.EditTopic = t
			saveFailed(d, w, r, body, err)
			return
		}
		saved(w, r, tabTopics)
	}
}

// SaveNews creates or replaces a news item.
func SaveNews(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		n := newsFromForm(r.PostForm)

		if _, err := d.State.UpsertNews(r.Context(), n); err != nil {
			body := dashboardView(d, tabNews)
			body.EditNews = n
			saveFailed(d, w, r, body, err)
			return
		}
		saved(w, r, tabNews)
	}
}

// SaveActivity creates or replaces an activity.
func SaveActivity(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		a := activityFromForm(r.PostForm)

		if _, err := d.State.UpsertActivity(r.Context(), a); err != nil {
			body := dashboardView(d, tabActivities)
			body.EditActivity = a
			saveFailed(d, w, r, body, err)
			return
		}
		saved(w, r, tabActivities)
	}
}

// DeleteTopic removes the topic named in the URL.
func DeleteTopic(d deps.Deps) http.HandlerFunc {
	return deleteRecord(d, tabTopics, d.State.DeleteTopic)
}

// DeleteNews removes the news item named in the URL.
func DeleteNews(d deps.Deps) http.HandlerFunc {
	return deleteRecord(d, tabNews, d.State.DeleteNews)
}

// DeleteActivity removes the activity named in the URL.
func DeleteActivity(d deps.Deps) http.HandlerFunc {
	return deleteRecord(d, tabActivities, d.State.DeleteActivity)
}

func deleteRecord(d deps.Deps, tab string, del func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := del(r.Context(), id); err != nil {
			saveFailed(d, w, r, dashboardView(d, tab), err)
			return
		}
		d.Logger.Info("record deleted",
			logger.String("table", tab),
			logger.String("id", id))
		saved(w, r, tab)
	}
}

// SaveSettings stores the hero phrases (one per line) and the profile image.
// A value equal to the current one is not written again.
func SaveSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		words := domain.SplitLines(r.PostFormValue("heroWords"))
		image := strings.TrimSpace(r.PostFormValue("profileImage"))

		fail := func(msg string, err error) {
			body := dashboardView(d, tabSettings)
			body.HeroWords = words
			body.ProfileImage = image
			saveFailedWith(d, w, r, body, msg, err)
		}

		current := d.State.Snapshot().Data
		wordsSaved := false

		if !slices.Equal(words, current.HeroWords) {
			if err := d.State.UpdateHeroWords(r.Context(), words); err != nil {
				fail(saveFailedMessage, err)
				return
			}
			wordsSaved = true
		}
		if image != current.ProfileImage {
			if err := d.State.UpdateProfileImage(r.Context(), image); err != nil {
				msg := saveFailedMessage
				if wordsSaved {
					msg = partialSaveMessage
				}
				fail(msg, err)
				return
			}
		}
		saved(w, r, tabSettings)
	}
}

func topicFromForm(f url.Values) domain.Topic {
	category := domain.Category(f.Get("category"))
	if !category.Valid() {
		category = ""
	}
	return domain.Topic{
		ID:          strings.TrimSpace(f.Get("id")),
		Category:    category,
		Title:       strings.TrimSpace(f.Get("title")),
		Slug:        strings.TrimSpace(f.Get("slug")),
		Summary:     strings.TrimSpace(f.Get("summary")),
		Body:        f.Get("body"),
		Tags:        domain.SplitList(f.Get("tags")),
		Role:        strings.TrimSpace(f.Get("role")),
		Links:       views.ParseLinkLines(f.Get("links")),
		Featured:    f.Get("featured") == "on",
		Order:       formInt(f.Get("order")),
		PublishedAt: strings.TrimSpace(f.Get("publishedAt")),
		Status:      formStatus(f.Get("status")),
		Media:       domain.SplitLines(f.Get("media")),
	}
}

func newsFromForm(f url.Values) domain.NewsItem {
	return domain.NewsItem{
		ID:        strings.TrimSpace(f.Get("id")),
		Title:     strings.TrimSpace(f.Get("title")),
		Category:  strings.TrimSpace(f.Get("category")),
		ShortText: strings.TrimSpace(f.Get("shortText")),
		Body:      f.Get("body"),
		Date:      strings.TrimSpace(f.Get("date")),
		Status:    formStatus(f.Get("status")),
	}
}

func activityFromForm(f url.Values) domain.Activity {
	return domain.Activity{
		ID:       strings.TrimSpace(f.Get("id")),
		Date:     strings.TrimSpace(f.Get("date")),
		Title:    strings.TrimSpace(f.Get("title")),
		Summary:  strings.TrimSpace(f.Get("summary")),
		Body:     f.Get("body"),
		Links:    domain.SplitLines(f.Get("links")),
		Media:    domain.SplitLines(f.Get("media")),
		Tags:     domain.SplitList(f.Get("tags")),
		Featured: f.Get("featured") == "on",
		Order:    formInt(f.Get("order")),
		Status:   formStatus(f.Get("status")),
	}
}

// formStatus maps anything unknown to "" so normalization publishes it.
func formStatus(v string) domain.Status {
	s := domain.Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return ""
	}
	return s
}

func formInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
