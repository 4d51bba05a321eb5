// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

const (
	msgWelcome            = "Xush kelibsiz!"
	msgInvalidCredentials = "Email yoki parol noto'g'ri"
	msgAdminInvalid       = "Login yoki parol noto'g'ri"
	msgBlocked            = "Hisobingiz bloklangan. Administrator bilan bog'laning"
	msgEmailExists        = "Bu email bilan allaqachon ro'yxatdan o'tilgan"
	msgPasswordMismatch   = "Parollar mos kelmadi"
	msgRegistered         = "Ro'yxatdan muvaffaqiyatli o'tdingiz!"
	msgLoggedOut          = "Tizimdan chiqdingiz"
	msgBadForm            = "So'rov noto'g'ri"
)

const (
	dashboardPath      = "/dashboard"
	adminDashboardPath = "/admin"
)

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

// RegisterRoutes mounts the end-user auth pages. limit guards the
// credential POSTs.
func (h *Handler) RegisterRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get("/login", h.LoginPage)
	r.With(limit).Post("/login", h.Login)
	r.Get("/register", h.RegisterPage)
	r.With(limit).Post("/register", h.Register)
	r.Get("/logout", h.Logout)
}

// RegisterAdminRoutes mounts the admin login pages relative to /admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get("/login", h.AdminLoginPage)
	r.With(limit).Post("/login", h.AdminLogin)
	r.Get("/logout", h.AdminLogout)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()).Principal().User(); ok {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "auth/login", "Kirish", nil)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.Redirect(w, r, session.UserLoginPath, session.FlashError, msgBadForm)
		return
	}

	req := LoginRequest{
		Email:    web.Form(r, "email"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Struct(req); err != nil {
		web.Redirect(w, r, session.UserLoginPath, session.FlashError, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			web.Redirect(w, r, session.UserLoginPath, session.FlashError, msgInvalidCredentials)
		case errors.Is(err, ErrAccountBlocked):
			web.Redirect(w, r, session.UserLoginPath, session.FlashError, msgBlocked)
		default:
			h.render.ServerError(w, r, err)
		}
		return
	}

	if err := session.FromContext(r.Context()).Login(r.Context(), session.NewUser(user.Identity())); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, dashboardPath, session.FlashSuccess, msgWelcome)
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()).Principal().User(); ok {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "auth/register", "Ro'yxatdan o'tish", nil)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const back = "/register"

	if err := r.ParseForm(); err != nil {
		web.Redirect(w, r, back, session.FlashError, msgBadForm)
		return
	}

	req := RegisterRequest{
		FullName:        web.Form(r, "full_name"),
		Email:           web.Form(r, "email"),
		Phone:           web.Form(r, "phone"),
		Company:         web.Form(r, "company"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err := h.validator.Struct(req); err != nil {
		web.Redirect(w, r, back, session.FlashError, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			web.Redirect(w, r, back, session.FlashError, msgEmailExists)
		case errors.Is(err, ErrPasswordMismatch):
			web.Redirect(w, r, back, session.FlashError, msgPasswordMismatch)
		case errors.Is(err, ErrWeakPassword):
			web.Redirect(w, r, back, session.FlashError, core.PasswordRuleMessage)
		default:
			h.render.ServerError(w, r, err)
		}
		return
	}

	if err := session.FromContext(r.Context()).Login(r.Context(), session.NewUser(user.Identity())); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, dashboardPath, session.FlashSuccess, msgRegistered)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := session.FromContext(r.Context()).Clear(r.Context()); err != nil {
		h.render.ServerError(w, r, err)
		return
	}
	web.Redirect(w, r, "/", session.FlashInfo, msgLoggedOut)
}

func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).Principal().Role() == session.RoleAdmin {
		http.Redirect(w, r, adminDashboardPath, http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "admin/login", "Admin", nil)
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.Redirect(w, r, session.AdminLoginPath, session.FlashError, msgBadForm)
		return
	}

	req := AdminLoginRequest{
		Username: web.Form(r, "username"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Struct(req); err != nil {
		web.Redirect(w, r, session.AdminLoginPath, session.FlashError, core.FormatValidationError(err))
		return
	}

	username, err := h.service.AdminLogin(req)
	if err != nil {
		web.Redirect(w, r, session.AdminLoginPath, session.FlashError, msgAdminInvalid)
		return
	}

	if err := session.FromContext(r.Context()).Login(r.Context(), session.NewAdmin(username)); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, adminDashboardPath, session.FlashSuccess, msgWelcome)
}

// AdminLogout drops the admin principal and keeps the rest of the session.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := session.FromContext(r.Context()).Demote(r.Context()); err != nil {
		h.render.ServerError(w, r, err)
		return
	}
	web.Redirect(w, r, session.AdminLoginPath, session.FlashInfo, msgLoggedOut)
}
