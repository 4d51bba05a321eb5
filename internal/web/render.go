// AngelaMos | 2026
// render.go

package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/session"
)

//go:embed templates
var templateFS embed.FS

const layoutGlob = "templates/layouts/*.html"

// SiteLoader supplies the site-wide settings shown in the layout.
type SiteLoader func(ctx context.Context) (map[string]string, error)

// View is the value every page template executes against.
type View struct {
	Title     string
	Path      string
	Query     url.Values
	User      *session.UserIdentity
	IsAdmin   bool
	AdminName string
	Flashes   []session.Flash
	Site      map[string]string
	Year      int
	Data      any
}

type Renderer struct {
	pages  map[string]*template.Template
	site   SiteLoader
	logger *slog.Logger
}

func NewRenderer(site SiteLoader, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pages, err := parsePages(templateFS)
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages, site: site, logger: logger}, nil
}

// parsePages builds one template set per page file, each combined with
// the shared layouts.
func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)

	err := fs.WalkDir(fsys, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" || strings.HasPrefix(p, "templates/layouts/") {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")

		t, err := template.New(path.Base(p)).
			Funcs(funcMap()).
			ParseFS(fsys, layoutGlob, p)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}

		pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pages, nil
}

func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	rd.RenderStatus(w, r, http.StatusOK, page, title, data)
}

// RenderStatus executes into a buffer first so a template failure can
// still become a clean 500 page.
func (rd *Renderer) RenderStatus(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page, title string,
	data any,
) {
	t, ok := rd.pages[page]
	if !ok {
		rd.ServerError(w, r, fmt.Errorf("unknown template %q", page))
		return
	}

	view := rd.newView(r, title, data)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", view); err != nil {
		if page == serverErrorPage {
			rd.logger.Error("render error page", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		rd.ServerError(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // client went away
	_, _ = buf.WriteTo(w)
}

func (rd *Renderer) newView(r *http.Request, title string, data any) View {
	ctx := r.Context()
	s := session.FromContext(ctx)
	p := s.Principal()

	view := View{
		Title: title,
		Path:  r.URL.Path,
		Query: r.URL.Query(),
		Year:  time.Now().Year(),
		Data:  data,
		Site:  map[string]string{},
	}

	if u, ok := p.User(); ok {
		view.User = &u
	}
	if name, ok := p.Admin(); ok {
		view.IsAdmin = true
		view.AdminName = name
	}

	flashes, err := s.Flashes(ctx)
	if err != nil {
		rd.logger.Warn("pop flashes", "error", err)
	}
	view.Flashes = flashes

	if rd.site != nil {
		site, err := rd.site(ctx)
		if err != nil {
			rd.logger.Warn("load site settings", "error", err)
		} else {
			view.Site = site
		}
	}

	return view
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"optdatetime": func(t *time.Time) string {
			if t == nil {
				return "N/A"
			}
			return t.Format("2006-01-02 15:04")
		},
		"money": func(a core.Amount) string {
			return a.String()
		},
		"pageURL": PageURL,
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", max(0, 5-n))
		},
	}
}

// PageURL rewrites the page parameter of the current query, keeping the
// active filters.
func PageURL(path string, query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return path + "?" + q.Encode()
}
