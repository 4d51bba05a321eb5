// AngelaMos | 2026
// handler_test.go

package seo

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/balansai/internal/blog"
)

type fakePosts []blog.SitemapEntry

func (f fakePosts) PublishedEntries(context.Context) ([]blog.SitemapEntry, error) {
	return f, nil
}

func noop(http.ResponseWriter, *http.Request) {}

func newRouter(posts PostSource, baseURL string) (*chi.Mux, *Handler) {
	r := chi.NewRouter()
	for _, p := range []string{"/", "/about", "/pricing", "/contact", "/login", "/logout", "/blog", "/blog/{slug}", "/healthz", "/readyz"} {
		r.Get(p, noop)
	}
	r.Post("/contact", noop)
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", noop)
		r.Get("/payments", noop)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", noop)
		r.Get("/users", noop)
	})
	r.Handle("/static/*", http.NotFoundHandler())

	h := NewHandler(r, posts, baseURL)
	h.now = func() time.Time { return time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC) }
	h.RegisterRoutes(r)
	return r, h
}

func TestPublicPathsExcludesPrivateAndParameterized(t *testing.T) {
	r, _ := newRouter(fakePosts{}, "")

	paths, err := PublicPaths(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/about", "/blog", "/contact", "/login", "/pricing"}, paths)
}

func TestSitemapListsStaticPagesAndPosts(t *testing.T) {
	posts := fakePosts{{Slug: "soliq-yangiliklari", UpdatedAt: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)}}
	r, _ := newRouter(posts, "https://balansai.uz/")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	var set urlSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.URLs, 7)

	about := set.URLs[1]
	assert.Equal(t, "https://balansai.uz/about", about.Loc)
	assert.Equal(t, "2026-05-10", about.LastMod)
	assert.Equal(t, "weekly", about.ChangeFreq)
	assert.Equal(t, "0.8", about.Priority)

	post := set.URLs[6]
	assert.Equal(t, "https://balansai.uz/blog/soliq-yangiliklari", post.Loc)
	assert.Equal(t, "2026-04-02", post.LastMod)
	assert.Equal(t, "0.6", post.Priority)
}

func TestRobotsUsesRequestHostWithoutBaseURL(t *testing.T) {
	r, _ := newRouter(fakePosts{}, "")

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	req.Host = "example.uz"
	req.Header.Set("X-Forwarded-Proto", "https")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t,
		"User-agent: *\nAllow: /\nDisallow: /admin\nDisallow: /dashboard\nSitemap: https://example.uz/sitemap.xml\n",
		rec.Body.String(),
	)
}
