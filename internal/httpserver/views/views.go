// Package views renders the site pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, one template file each.
const (
	PageHome      = "home"
	PageTopics    = "topics"
	PageTopic     = "topic"
	PageNews      = "news"
	PageContact   = "contact"
	PageLogin     = "login"
	PageLoading   = "loading"
	PageDashboard = "dashboard"
)

var pages = []string{
	PageHome, PageTopics, PageTopic, PageNews, PageContact,
	PageLogin, PageLoading, PageDashboard,
}

// Page is the data every template receives. Body holds the page-specific
// view model.
type Page struct {
	Title  string
	Path   string
	Notice string
	Error  string
	Body   any
}

// Renderer holds one parsed template set per page, each sharing base.html.
type Renderer struct {
	md        goldmark.Markdown
	templates map[string]*template.Template
}

// New parses every embedded page template.
func New() (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		templates: make(map[string]*template.Template, len(pages)),
	}

	funcs := template.FuncMap{
		"markdown":  r.Markdown,
		"join":      strings.Join,
		"lines":     func(s []string) string { return strings.Join(s, "\n") },
		"linkLines": LinkLines,
	}

	for _, name := range pages {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}

	return r, nil
}

// Render writes page name with data.
func (r *Renderer) Render(w io.Writer, name string, data Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	// Render to a buffer first so a template error never leaves a half
	// written page behind.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Markdown converts src to HTML. Raw HTML in src is not passed through.
func (r *Renderer) Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// LinkLines formats links one per line as "label | url", the format the
// dashboard form reads back.
func LinkLines(links []domain.Link) string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Label+" | "+l.URL)
	}
	return strings.Join(out, "\n")
}

// ParseLinkLines reads links written by LinkLines. A line without a
// separator is taken as a bare URL labelled with itself.
func ParseLinkLines(s string) []domain.Link {
	links := []domain.Link{}
	for _, line := range domain.SplitLines(s) {
		label, url, ok := strings.Cut(line, "|")
		if !ok {
			links = append(links, domain.Link{Label: line, URL: line})
			continue
		}
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		links = append(links, domain.Link{Label: strings.TrimSpace(label), URL: url})
	}
	return links
}
