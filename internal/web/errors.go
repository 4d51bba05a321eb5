// AngelaMos | 2026
// errors.go

package web

import (
	"net/http"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/export"
	"github.com/carterperez-dev/balansai/internal/middleware"
)

const (
	notFoundPage    = "errors/404"
	serverErrorPage = "errors/500"
)

func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.RenderStatus(w, r, http.StatusNotFound, notFoundPage, "Sahifa topilmadi", nil)
}

// ServerError logs err against the request and renders the generic page.
func (rd *Renderer) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	core.SetSpanError(r.Context(), err)
	rd.logger.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	rd.RenderStatus(w, r, http.StatusInternalServerError, serverErrorPage, "Server xatosi", nil)
}

// ExportError reports a failed CSV download. While nothing has been sent
// it renders the error page; afterwards it aborts the connection so a
// truncated file is not delivered as a complete one.
func (rd *Renderer) ExportError(
	w http.ResponseWriter,
	r *http.Request,
	out *export.Response,
	rows int,
	err error,
) {
	if !out.Started() {
		rd.ServerError(w, r, err)
		return
	}

	core.SetSpanError(r.Context(), err)
	rd.logger.Error("export interrupted",
		"error", err,
		"rows", rows,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	panic(http.ErrAbortHandler)
}

// PanicPage is what the recoverer serves after a panic.
func (rd *Renderer) PanicPage() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rd.RenderStatus(w, r, http.StatusInternalServerError, serverErrorPage, "Server xatosi", nil)
	})
}

func (rd *Renderer) NotFoundHandler() http.HandlerFunc {
	return rd.NotFound
}

func (rd *Renderer) MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.RenderStatus(w, r, http.StatusMethodNotAllowed, notFoundPage, "Sahifa topilmadi", nil)
	}
}
