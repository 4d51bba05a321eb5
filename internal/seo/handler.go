// AngelaMos | 2026
// handler.go

package seo

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/balansai/internal/blog"
	"github.com/carterperez-dev/balansai/internal/middleware"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	dateLayout       = "2006-01-02"

	staticPriority   = "0.8"
	staticChangeFreq = "weekly"
	staticAge        = 10 * 24 * time.Hour

	postPriority   = "0.6"
	postChangeFreq = "monthly"
)

// Private areas and machine endpoints never listed in the sitemap.
var (
	excludedPrefixes = []string{"/admin", "/dashboard", "/static"}
	excludedPaths    = []string{
		"/logout", "/healthz", "/livez", "/readyz", "/sitemap.xml", "/robots.txt",
	}
)

type PostSource interface {
	PublishedEntries(ctx context.Context) ([]blog.SitemapEntry, error)
}

type Handler struct {
	routes  chi.Routes
	posts   PostSource
	baseURL string
	now     func() time.Time
}

// NewHandler walks routes on every request, so routes may be the
// router this handler is mounted on.
func NewHandler(routes chi.Routes, posts PostSource, baseURL string) *Handler {
	return &Handler{
		routes:  routes,
		posts:   posts,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	base := h.base(r)

	paths, err := PublicPaths(h.routes)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	set := urlSet{Xmlns: sitemapNamespace}
	lastmod := h.now().Add(-staticAge).Format(dateLayout)
	for _, p := range paths {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + p,
			LastMod:    lastmod,
			ChangeFreq: staticChangeFreq,
			Priority:   staticPriority,
		})
	}

	entries, err := h.posts.PublishedEntries(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/blog/" + e.Slug,
			LastMod:    e.UpdatedAt.Format(dateLayout),
			ChangeFreq: postChangeFreq,
			Priority:   postPriority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	//nolint:errcheck // client went away
	_, _ = w.Write([]byte(xml.Header))
	//nolint:errcheck // client went away
	_, _ = w.Write(body)
}

func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /dashboard\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", h.base(r))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	//nolint:errcheck // client went away
	_, _ = w.Write([]byte(b.String()))
}

// base prefers the configured public URL and otherwise rebuilds it
// from the request.
func (h *Handler) base(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("sitemap",
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// PublicPaths lists the GET routes without path parameters that are
// open to anonymous visitors, sorted.
func PublicPaths(routes chi.Routes) ([]string, error) {
	seen := map[string]bool{}

	walk := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if method != http.MethodGet {
			return nil
		}

		path := route
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		if listable(path) {
			seen[path] = true
		}
		return nil
	}

	if err := chi.Walk(routes, walk); err != nil {
		return nil, fmt.Errorf("walk routes: %w", err)
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths, nil
}

func listable(path string) bool {
	if strings.ContainsAny(path, "{*") {
		return false
	}
	if slices.Contains(excludedPaths, path) {
		return false
	}
	for _, prefix := range excludedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return false
		}
	}
	return true
}
