// Package auth resolves the request identity from the session and gates
// routes by authentication state and role.
//
// The resolved *models.User travels in the request context; handlers read
// it with CurrentUser instead of consulting any global state.
package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
	"github.com/prasetyadi/gerai/pkg/logger"
	"github.com/prasetyadi/gerai/pkg/session"
)

type ctxKey struct{}

// CurrentUser returns the authenticated user for this request, if any.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(ctxKey{}).(*models.User)
	return user, ok && user != nil
}

// WithUser injects an identity into ctx; exported for handler tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// Identity resolves the session (or remember-me token) into a user record
// on every request. A session pointing at a deleted user, or a remember
// token issued before the user's last revocation, degrades to anonymous
// and the stale credential is dropped. Never an error page.
func Identity(users *repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromCtx(r)

			userID := sess.UserID()
			remembered := false
			var rememberVersion uint
			if userID == 0 {
				if id, ver, ok := session.RememberedUser(r); ok {
					userID = id
					rememberVersion = ver
					remembered = true
				}
			}

			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByID(userID)
			if err != nil {
				logger.WithCtx(r.Context()).Error("identity lookup failed", "user_id", userID, "error", err)
			}
			if user == nil {
				// Fail closed: the referenced account is gone.
				sess.ClearUserID()
				if remembered {
					session.ClearRemember(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			if remembered && rememberVersion != user.RememberVersion {
				// Revoked token (the user logged out after it was issued).
				session.ClearRemember(w)
				next.ServeHTTP(w, r)
				return
			}

			user.Role = models.ParseRole(string(user.Role))
			if remembered {
				sess.SetUserID(user.ID)
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth redirects anonymous requests to the login form, carrying the
// originally requested path so login can send the user back.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits only authenticated users holding role; everyone else
// is sent to the home page.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r)
			if !ok {
				target := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			if user.Role != role {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SafeNext reports whether a post-login redirect target is a same-site
// absolute path. Anything else falls back to home.
func SafeNext(next string) bool {
	if next == "" || next[0] != '/' {
		return false
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return false
	}
	return true
}
