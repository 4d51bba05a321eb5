// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/balansai/internal/auth"
	"github.com/carterperez-dev/balansai/internal/conversation"
	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/export"
	"github.com/carterperez-dev/balansai/internal/middleware"
	"github.com/carterperez-dev/balansai/internal/payment"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

const (
	msgProfileUpdated  = "Profil yangilandi"
	msgWrongPassword   = "Joriy parol noto'g'ri"
	msgUserUpdated     = "Foydalanuvchi ma'lumotlari yangilandi"
	msgUserNotFound    = "Foydalanuvchi topilmadi"
	msgUserDeleted     = "Foydalanuvchi o'chirildi"
	msgUserActivated   = "Foydalanuvchi faollashtirildi"
	msgUserDeactivated = "Foydalanuvchi bloklandi"
	msgEmailTaken      = "Bu email boshqa foydalanuvchiga tegishli"
	msgBadForm         = "So'rov noto'g'ri"
)

const (
	dashboardRecentLimit = 5
	profilePath          = "/dashboard/profile"
	adminUsersPath       = "/admin/users"
)

type PaymentHistory interface {
	Recent(ctx context.Context, userID int64, limit int) ([]payment.Payment, error)
}

type ConversationHistory interface {
	Recent(ctx context.Context, userID int64, limit int) ([]conversation.Conversation, error)
	Count(ctx context.Context, userID int64) (int, error)
}

type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID int64, req auth.ChangePasswordRequest) error
}

type Handler struct {
	service       *Service
	passwords     PasswordChanger
	payments      PaymentHistory
	conversations ConversationHistory
	render        *web.Renderer
	validator     *validator.Validate
}

func NewHandler(
	service *Service,
	passwords PasswordChanger,
	payments PaymentHistory,
	conversations ConversationHistory,
	render *web.Renderer,
) *Handler {
	return &Handler{
		service:       service,
		passwords:     passwords,
		payments:      payments,
		conversations: conversations,
		render:        render,
		validator:     core.NewValidator(),
	}
}

// RegisterRoutes mounts the user dashboard. The caller applies the
// user guard.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get(profilePath, h.ProfilePage)
	r.Post(profilePath, h.UpdateProfile)
}

// RegisterAdminRoutes mounts user management relative to /admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.AdminList)
		r.Get("/export", h.AdminExport)
		r.Get("/{id}", h.AdminEditPage)
		r.Post("/{id}", h.AdminUpdate)
		r.Post("/{id}/toggle", h.AdminToggle)
		r.Post("/{id}/delete", h.AdminDelete)
	})
}

// currentAccount reloads the signed-in user. A principal whose account
// was deleted or blocked since login is signed out.
func (h *Handler) currentAccount(w http.ResponseWriter, r *http.Request) (*User, bool) {
	identity, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, session.UserLoginPath, http.StatusSeeOther)
		return nil, false
	}

	u, err := h.service.Get(r.Context(), identity.ID)
	if err == nil && u.IsActive {
		return u, true
	}
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		h.render.ServerError(w, r, err)
		return nil, false
	}

	if err := session.FromContext(r.Context()).Clear(r.Context()); err != nil {
		h.render.ServerError(w, r, err)
		return nil, false
	}
	web.Redirect(w, r, session.UserLoginPath, session.FlashError, middleware.LoginRequiredMessage)
	return nil, false
}

type dashboardView struct {
	Account           *User
	Payments          []payment.Payment
	Conversations     []conversation.Conversation
	ConversationCount int
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	account, ok := h.currentAccount(w, r)
	if !ok {
		return
	}

	payments, err := h.payments.Recent(r.Context(), account.ID, dashboardRecentLimit)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	conversations, err := h.conversations.Recent(r.Context(), account.ID, dashboardRecentLimit)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	count, err := h.conversations.Count(r.Context(), account.ID)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "dashboard/index", "Kabinet", dashboardView{
		Account:           account,
		Payments:          payments,
		Conversations:     conversations,
		ConversationCount: count,
	})
}

func (h *Handler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	account, ok := h.currentAccount(w, r)
	if !ok {
		return
	}
	h.render.Render(w, r, "dashboard/profile", "Profil", account)
}

// UpdateProfile saves name, phone and company. When new_password is
// filled the password change is validated and applied first, so a
// rejected change leaves the profile untouched.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := h.currentAccount(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		web.Redirect(w, r, profilePath, session.FlashError, msgBadForm)
		return
	}

	req := ProfileRequest{
		FullName: web.Form(r, "full_name"),
		Phone:    web.Form(r, "phone"),
		Company:  web.Form(r, "company"),
	}
	if err := h.validator.Struct(req); err != nil {
		web.Redirect(w, r, profilePath, session.FlashError, core.FormatValidationError(err))
		return
	}

	if r.PostFormValue("new_password") != "" {
		change := auth.ChangePasswordRequest{
			CurrentPassword: r.PostFormValue("current_password"),
			NewPassword:     r.PostFormValue("new_password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}
		if err := h.validator.Struct(change); err != nil {
			web.Redirect(w, r, profilePath, session.FlashError, core.FormatValidationError(err))
			return
		}

		if err := h.passwords.ChangePassword(r.Context(), account.ID, change); err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				web.Redirect(w, r, profilePath, session.FlashError, msgWrongPassword)
			case errors.Is(err, auth.ErrPasswordMismatch):
				web.Redirect(w, r, profilePath, session.FlashError, "Parollar mos kelmadi")
			case errors.Is(err, auth.ErrWeakPassword):
				web.Redirect(w, r, profilePath, session.FlashError, core.PasswordRuleMessage)
			default:
				h.render.ServerError(w, r, err)
			}
			return
		}
	}

	if err := h.service.UpdateProfile(r.Context(), account.ID, req); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	account.FullName = req.FullName
	if err := session.FromContext(r.Context()).Login(r.Context(), session.NewUser(account.toInfo().Identity())); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, profilePath, session.FlashSuccess, msgProfileUpdated)
}

type adminListView struct {
	Users    []User
	Pager    web.Pager
	Search   string
	Plan     string
	Status   string
	Plans    []string
	Statuses []string
}

func listParams(r *http.Request) ListParams {
	return ListParams{
		Page:   web.QueryPage(r),
		Search: web.Query(r, "q"),
		Plan:   web.Query(r, "plan"),
		Status: web.Query(r, "status"),
	}
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "admin/users", "Foydalanuvchilar", adminListView{
		Users:    page.Items,
		Pager:    web.NewPager(r, page),
		Search:   params.Search,
		Plan:     params.Plan,
		Status:   params.Status,
		Plans:    Plans,
		Statuses: []string{StatusActive, StatusInactive},
	})
}

func (h *Handler) AdminExport(w http.ResponseWriter, r *http.Request) {
	out := export.NewResponse(w, "users", time.Now())
	if rows, err := h.service.Export(r.Context(), listParams(r), out); err != nil {
		h.render.ExportError(w, r, out, rows, err)
	}
}

type editView struct {
	Account *User
	Plans   []string
}

func (h *Handler) AdminEditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, adminUsersPath, session.FlashError, msgUserNotFound)
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.adminError(w, r, err)
		return
	}

	h.render.Render(w, r, "admin/user_edit", u.FullName, editView{Account: u, Plans: Plans})
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, adminUsersPath, session.FlashError, msgUserNotFound)
		return
	}
	back := adminUsersPath + "/" + strconv.FormatInt(id, 10)

	if err := r.ParseForm(); err != nil {
		web.Redirect(w, r, back, session.FlashError, msgBadForm)
		return
	}

	req := AdminUpdateRequest{
		FullName: web.Form(r, "full_name"),
		Email:    web.Form(r, "email"),
		Phone:    web.Form(r, "phone"),
		Company:  web.Form(r, "company"),
		PlanType: web.Form(r, "plan_type"),
		IsActive: web.FormBool(r, "is_active"),
	}
	if err := h.validator.Struct(req); err != nil {
		web.Redirect(w, r, back, session.FlashError, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.AdminUpdate(r.Context(), id, req); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			web.Redirect(w, r, back, session.FlashError, msgEmailTaken)
			return
		}
		h.adminError(w, r, err)
		return
	}

	web.Redirect(w, r, adminUsersPath, session.FlashSuccess, msgUserUpdated)
}

func (h *Handler) AdminToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, adminUsersPath, session.FlashError, msgUserNotFound)
		return
	}

	active, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		h.adminError(w, r, err)
		return
	}

	msg := msgUserDeactivated
	if active {
		msg = msgUserActivated
	}
	web.Redirect(w, r, adminUsersPath, session.FlashSuccess, msg)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, adminUsersPath, session.FlashError, msgUserNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.adminError(w, r, err)
		return
	}

	web.Redirect(w, r, adminUsersPath, session.FlashSuccess, msgUserDeleted)
}

func (h *Handler) adminError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotFound) {
		web.Redirect(w, r, adminUsersPath, session.FlashError, msgUserNotFound)
		return
	}
	h.render.ServerError(w, r, err)
}
