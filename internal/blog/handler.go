// AngelaMos | 2026
// handler.go

package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

const (
	msgCreated  = "Maqola yaratildi"
	msgUpdated  = "Maqola yangilandi"
	msgDeleted  = "Maqola o'chirildi"
	msgNotFound = "Maqola topilmadi"
	msgBadForm  = "So'rov noto'g'ri"
)

const adminBlogPath = "/admin/blog"

type Handler struct {
	service   *Service
	render    *web.Renderer
	validator *validator.Validate
}

func NewHandler(service *Service, render *web.Renderer) *Handler {
	return &Handler{
		service:   service,
		render:    render,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/blog", h.List)
	r.Get("/blog/{slug}", h.Detail)
}

// RegisterAdminRoutes mounts post management relative to /admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/blog", func(r chi.Router) {
		r.Get("/", h.AdminList)
		r.Get("/new", h.NewPage)
		r.Post("/new", h.Create)
		r.Get("/{id}", h.EditPage)
		r.Post("/{id}", h.Update)
		r.Post("/{id}/delete", h.Delete)
	})
}

type listView struct {
	Posts      []Post
	Pager      web.Pager
	Search     string
	Category   string
	Categories []string
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := PublicParams{
		Page:     web.QueryPage(r),
		Search:   web.Query(r, "q"),
		Category: web.Query(r, "category"),
	}

	page, err := h.service.ListPublished(r.Context(), params)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "blog/list", "Blog", listView{
		Posts:      page.Items,
		Pager:      web.NewPager(r, page),
		Search:     params.Search,
		Category:   params.Category,
		Categories: categories,
	})
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.View(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.render.NotFound(w, r)
			return
		}
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "blog/detail", post.Title, post)
}

type adminListView struct {
	Posts  []Post
	Pager  web.Pager
	Search string
	Status string
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	params := AdminParams{
		Page:   web.QueryPage(r),
		Search: web.Query(r, "q"),
		Status: web.Query(r, "status"),
	}

	page, err := h.service.ListAll(r.Context(), params)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "admin/blog", "Blog", adminListView{
		Posts:  page.Items,
		Pager:  web.NewPager(r, page),
		Search: params.Search,
		Status: params.Status,
	})
}

type formView struct {
	Post   *Post
	Action string
}

func (h *Handler) NewPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "admin/blog_form", "Yangi maqola", formView{
		Post:   &Post{},
		Action: adminBlogPath + "/new",
	})
}

func (h *Handler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, adminBlogPath, session.FlashError, msgNotFound)
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.adminError(w, r, err)
		return
	}

	h.render.Render(w, r, "admin/blog_form", post.Title, formView{
		Post:   post,
		Action: adminBlogPath + "/" + strconv.FormatInt(post.ID, 10),
	})
}

func (h *Handler) bind(r *http.Request) (PostRequest, error) {
	if err := r.ParseForm(); err != nil {
		return PostRequest{}, err
	}

	req := PostRequest{
		Title:       web.Form(r, "title"),
		Slug:        web.Form(r, "slug"),
		Excerpt:     web.Form(r, "excerpt"),
		Content:     web.Form(r, "content"),
		Category:    web.Form(r, "category"),
		Tags:        web.Form(r, "tags"),
		Author:      web.Form(r, "author"),
		IsPublished: web.FormBool(r, "is_published"),
	}

	return req, h.validator.Struct(req)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	back := adminBlogPath + "/new"

	req, err := h.bind(r)
	if err != nil {
		web.Redirect(w, r, back, session.FlashError, formMessage(err))
		return
	}

	if _, err := h.service.Create(r.Context(), req); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, adminBlogPath, session.FlashSuccess, msgCreated)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, adminBlogPath, session.FlashError, msgNotFound)
		return
	}
	back := adminBlogPath + "/" + strconv.FormatInt(id, 10)

	req, err := h.bind(r)
	if err != nil {
		web.Redirect(w, r, back, session.FlashError, formMessage(err))
		return
	}

	if _, err := h.service.Update(r.Context(), id, req); err != nil {
		h.adminError(w, r, err)
		return
	}

	web.Redirect(w, r, adminBlogPath, session.FlashSuccess, msgUpdated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, adminBlogPath, session.FlashError, msgNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.adminError(w, r, err)
		return
	}

	web.Redirect(w, r, adminBlogPath, session.FlashSuccess, msgDeleted)
}

func (h *Handler) adminError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotFound) {
		web.Redirect(w, r, adminBlogPath, session.FlashError, msgNotFound)
		return
	}
	h.render.ServerError(w, r, err)
}

func formMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return core.FormatValidationError(err)
	}
	return msgBadForm
}
