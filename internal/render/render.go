// Package render draws the HTML pages of the site from embedded templates.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/storage"
)

//go:embed templates
var files embed.FS

// ErrWrite marks a failure after the status line went out; the response
// can no longer be replaced.
var ErrWrite = errors.New("failed to write page")

var pages = []string{
	"index.html",
	"group_list.html",
	"profile.html",
	"post_detail.html",
	"create_post.html",
	"follow.html",
	"login.html",
	"signup.html",
	"404.html",
	"500.html",
}

// View is the data every page template receives.
type View struct {
	User  *models.User
	Title string

	Posts     *paginator.Slice[*models.Post]
	Group     *models.Group
	Groups    []*models.Group
	Author    *models.User
	Following bool
	Followers int
	Follows   int
	Post      *models.Post
	Comments  []*models.Comment

	Form   interface{}
	Fields map[string]forms.Field
	Errors forms.Errors
	IsEdit bool
	Next   string
}

type Renderer struct {
	templates map[string]*template.Template
}

// New parses the page templates. Media URLs are built from mediaBase.
func New(mediaBase string) (*Renderer, error) {
	funcs := template.FuncMap{
		"humanize":      humanize.Time,
		"date":          formatDate,
		"truncatewords": truncateWords,
		"linebreaksbr":  linebreaksBR,
		"mediaURL": func(objectName string) string {
			return storage.MediaURL(mediaBase, objectName)
		},
		"pageURL": func(number int) string {
			return "?page=" + strconv.Itoa(number)
		},
		"fieldInput": fieldInput,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(files,
			"templates/base.html",
			"templates/includes/*.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}

	return r, nil
}

// Render writes the page with the given status. Nothing is written when
// the template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, view *View) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("template %s does not exist", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", view); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w %s: %v", ErrWrite, page, err)
	}
	return nil
}

type input struct {
	Field  forms.Field
	Type   string
	Value  string
	Errors []string
}

type valuer interface {
	Value(name string) string
}

func fieldInput(field forms.Field, kind string, form interface{}, errs forms.Errors) input {
	in := input{Field: field, Type: kind, Errors: errs.Get(field.Name)}
	if v, ok := form.(valuer); ok && kind != "password" {
		in.Value = v.Value(field.Name)
	}
	return in
}

func formatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

func truncateWords(n int, text string) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}

func linebreaksBR(text string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
