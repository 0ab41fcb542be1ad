package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prasetyadi/gerai/config"
)

// RememberCookie names the long-lived credential that restores identity
// after the server-side session expires.
const RememberCookie = "gerai_remember"

const rememberTTL = 7 * 24 * time.Hour

type rememberClaims struct {
	UserID uint `json:"user_id"`
	// Version must match the user's current remember version; a mismatch
	// means the token was revoked (logout) after issuance.
	Version uint `json:"ver"`
	jwt.RegisteredClaims
}

func rememberSecret() []byte {
	return []byte(config.SessionSecret())
}

// IssueRemember sets a signed remember-me cookie for the user, bound to
// the user's current remember version.
func IssueRemember(w http.ResponseWriter, userID, version uint) error {
	claims := rememberClaims{
		UserID:  userID,
		Version: version,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(rememberTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(rememberSecret())
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RememberCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(rememberTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// RememberedUser returns the user ID and token version carried by a valid
// remember-me cookie. Any parse or signature failure reads as "no
// credential". The caller still has to compare the version against the
// user record before trusting the identity.
func RememberedUser(r *http.Request) (id, version uint, ok bool) {
	cookie, err := r.Cookie(RememberCookie)
	if err != nil || cookie.Value == "" {
		return 0, 0, false
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &rememberClaims{}, func(*jwt.Token) (interface{}, error) {
		return rememberSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, 0, false
	}

	claims, valid := token.Claims.(*rememberClaims)
	if !valid || !token.Valid || claims.UserID == 0 {
		return 0, 0, false
	}
	return claims.UserID, claims.Version, true
}

// ClearRemember expires the remember-me cookie.
func ClearRemember(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RememberCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
