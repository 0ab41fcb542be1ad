package controllers

import (
	"errors"
	"net/http"

	"github.com/prasetyadi/gerai/app/auth"
	"github.com/prasetyadi/gerai/app/services"
	"github.com/prasetyadi/gerai/pkg/form"
	"github.com/prasetyadi/gerai/pkg/logger"
	"github.com/prasetyadi/gerai/pkg/metrics"
	"github.com/prasetyadi/gerai/pkg/session"
	"github.com/prasetyadi/gerai/pkg/view"
)

// AuthController serves the login/registration/logout surface.
type AuthController struct {
	auth *services.AuthService
	view *view.Renderer
}

func NewAuthController(authService *services.AuthService, renderer *view.Renderer) *AuthController {
	return &AuthController{auth: authService, view: renderer}
}

type loginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Remember string `form:"remember"`
}

// ShowLogin renders the combined login/registration page. An authenticated
// visitor is bounced straight home.
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	c.view.Render(w, r, "login", nil, view.Map{
		"Next": r.URL.Query().Get("next"),
	})
}

// Login processes the credential form. All failure modes flash the same
// generic message so the response never reveals whether the username
// exists.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess := session.FromCtx(r)

	input := loginInput{}
	if errs := form.Bind(r, &input); len(errs) > 0 {
		metrics.Logins.WithLabelValues("failure").Inc()
		sess.Flash(session.LevelDanger, "Login gagal! Periksa username dan password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := c.auth.Login(input.Username, input.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logger.WithCtx(r.Context()).Error("login failed", "error", err)
		}
		metrics.Logins.WithLabelValues("failure").Inc()
		sess.Flash(session.LevelDanger, "Login gagal! Periksa username dan password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess.SetUserID(user.ID)
	sess.Flash(session.LevelSuccess, "Login berhasil!")

	if input.Remember != "" {
		if err := session.IssueRemember(w, user.ID, user.RememberVersion); err != nil {
			logger.WithCtx(r.Context()).Warn("issue remember token failed", "error", err)
		}
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Audit(r.Context(), "user logged in", "user_id", user.ID, "username", user.Username)

	target := "/"
	if next := r.URL.Query().Get("next"); auth.SafeNext(next) {
		target = next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type registerInput struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password"`
}

// ShowRegister renders the same page as ShowLogin; the template carries
// both forms.
func (c *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	c.view.Render(w, r, "login", nil, view.Map{})
}

// Register processes the sign-up form. Validation stops at the first
// problem and nothing is persisted on any failure path.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)

	input := registerInput{}
	if errs := form.Bind(r, &input); len(errs) > 0 {
		sess.Flash(session.LevelDanger, "Terjadi kesalahan saat mendaftar. Silakan coba lagi.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	err := c.auth.Register(input.Username, input.Email, input.Phone, input.Password, input.ConfirmPassword)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		sess.Flash(session.LevelDanger, "Username sudah digunakan!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	case errors.Is(err, services.ErrPasswordMismatch):
		sess.Flash(session.LevelDanger, "Password tidak cocok!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("registration failed", "error", err)
		sess.Flash(session.LevelDanger, "Terjadi kesalahan saat mendaftar. Silakan coba lagi.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	metrics.Registrations.Inc()
	logger.Audit(r.Context(), "user registered", "username", input.Username)

	// Registration never auto-logs-in; the user signs in explicitly.
	sess.Flash(session.LevelSuccess, "Registrasi berhasil! Silakan login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout destroys the session and revokes every remember-me token issued
// for the account, so neither credential can be replayed afterwards.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		if err := c.auth.RevokeRememberTokens(user.ID); err != nil {
			logger.WithCtx(r.Context()).Error("remember token revocation failed", "user_id", user.ID, "error", err)
		}
		logger.Audit(r.Context(), "user logged out", "user_id", user.ID, "username", user.Username)
	}

	session.FromCtx(r).Invalidate()
	session.ClearRemember(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
