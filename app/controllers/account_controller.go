package controllers

import (
	"errors"
	"net/http"

	"github.com/prasetyadi/gerai/app/auth"
	"github.com/prasetyadi/gerai/app/services"
	"github.com/prasetyadi/gerai/pkg/logger"
	"github.com/prasetyadi/gerai/pkg/session"
	"github.com/prasetyadi/gerai/pkg/view"
)

// AccountController serves the profile page and its two mutation forms.
// Every route here sits behind RequireAuth.
type AccountController struct {
	auth *services.AuthService
	view *view.Renderer
}

func NewAccountController(authService *services.AuthService, renderer *view.Renderer) *AccountController {
	return &AccountController{auth: authService, view: renderer}
}

// MyAccount renders the profile page for the authenticated user.
func (c *AccountController) MyAccount(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	c.view.Render(w, r, "my_account", user, nil)
}

// UpdateAccount overwrites the profile fields with whatever was submitted.
// A username collision with another account is reported generically,
// mirroring the absence of a uniqueness re-check in this flow.
func (c *AccountController) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	sess := session.FromCtx(r)

	if err := r.ParseForm(); err != nil {
		sess.Flash(session.LevelDanger, "Gagal memperbarui profil. Silakan coba lagi.")
		http.Redirect(w, r, "/my_account", http.StatusSeeOther)
		return
	}

	err := c.auth.UpdateAccount(
		user.ID,
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("phone"),
		r.PostFormValue("address"),
	)
	if err != nil {
		logger.WithCtx(r.Context()).Error("profile update failed", "user_id", user.ID, "error", err)
		sess.Flash(session.LevelDanger, "Gagal memperbarui profil. Silakan coba lagi.")
		http.Redirect(w, r, "/my_account", http.StatusSeeOther)
		return
	}

	logger.Audit(r.Context(), "profile updated", "user_id", user.ID)
	sess.Flash(session.LevelSuccess, "Profil berhasil diperbarui!")
	http.Redirect(w, r, "/my_account", http.StatusSeeOther)
}

// ChangePassword rotates the password after verifying the current one and
// the confirmation.
func (c *AccountController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	sess := session.FromCtx(r)

	if err := r.ParseForm(); err != nil {
		sess.Flash(session.LevelDanger, "Gagal mengubah password. Silakan coba lagi.")
		http.Redirect(w, r, "/my_account", http.StatusSeeOther)
		return
	}

	err := c.auth.ChangePassword(
		user.ID,
		r.PostFormValue("current_password"),
		r.PostFormValue("new_password"),
		r.PostFormValue("confirm_password"),
	)
	switch {
	case errors.Is(err, services.ErrWrongPassword):
		sess.Flash(session.LevelDanger, "Password saat ini salah!")
	case errors.Is(err, services.ErrPasswordMismatch):
		sess.Flash(session.LevelDanger, "Password baru tidak cocok!")
	case err != nil:
		logger.WithCtx(r.Context()).Error("password change failed", "user_id", user.ID, "error", err)
		sess.Flash(session.LevelDanger, "Gagal mengubah password. Silakan coba lagi.")
	default:
		logger.Audit(r.Context(), "password changed", "user_id", user.ID)
		sess.Flash(session.LevelSuccess, "Password berhasil diubah!")
	}

	http.Redirect(w, r, "/my_account", http.StatusSeeOther)
}
