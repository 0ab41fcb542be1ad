// Package session implements cookie-keyed server-side sessions for the
// storefront: the browser holds an opaque random ID, all state (identity,
// one-shot flash messages) lives in a pluggable Store.
//
// The middleware loads or creates the session and commits it lazily: the
// first byte written to the response triggers persistence and the
// Set-Cookie header, so handlers never call Save themselves.
//
//	r.Use(session.Middleware(manager))
//
//	sess := session.FromCtx(r)
//	sess.SetUserID(user.ID)
//	sess.Flash(session.LevelSuccess, "Login berhasil!")
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"
)

// Flash severity levels, matching the two classes the templates style.
const (
	LevelSuccess = "success"
	LevelDanger  = "danger"
)

// Flash is a one-shot status message: set during one request, shown and
// cleared on the next render.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	userIDKey  = "user_id"
	flashesKey = "_flashes"
)

// Options configures cookie behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns the storefront defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "gerai_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // enable behind TLS
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// Manager binds a Store to cookie options.
type Manager struct {
	store Store
	opts  Options
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts}
}

// Session is the per-request handle. Not safe for concurrent use; each
// request owns exactly one.
type Session struct {
	id        string
	staleID   string // previous ID after Renew, deleted on commit
	data      map[string]interface{}
	manager   *Manager
	changed   bool
	destroyed bool
}

func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Set stores a value under key.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a raw value.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// Delete removes a key.
func (s *Session) Delete(key string) {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.changed = true
	}
}

// UserID returns the authenticated user's ID, or 0 when anonymous.
// Store round-trips through JSON, so numbers may come back as float64.
func (s *Session) UserID() uint {
	switch n := s.data[userIDKey].(type) {
	case float64:
		return uint(n)
	case int:
		return uint(n)
	case uint:
		return n
	}
	return 0
}

// SetUserID records the authenticated identity and renews the session ID so
// a pre-login cookie can never be replayed as an authenticated one.
func (s *Session) SetUserID(id uint) {
	s.Renew()
	s.Set(userIDKey, id)
}

// ClearUserID drops the identity without destroying the rest of the session.
func (s *Session) ClearUserID() {
	s.Delete(userIDKey)
}

// Flash queues a one-shot status message.
func (s *Session) Flash(level, message string) {
	flashes := s.peekFlashes()
	flashes = append(flashes, Flash{Level: level, Message: message})
	s.Set(flashesKey, flashes)
}

// Flashes returns all queued messages and clears them.
func (s *Session) Flashes() []Flash {
	flashes := s.peekFlashes()
	if len(flashes) > 0 {
		s.Delete(flashesKey)
	}
	return flashes
}

func (s *Session) peekFlashes() []Flash {
	raw, ok := s.data[flashesKey]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []Flash:
		return v
	case []interface{}: // JSON round-trip through the store
		out := make([]Flash, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			f := Flash{}
			f.Level, _ = m["level"].(string)
			f.Message, _ = m["message"].(string)
			out = append(out, f)
		}
		return out
	}
	return nil
}

// Renew assigns a fresh session ID, keeping the data. The old server-side
// record is removed when the response commits.
func (s *Session) Renew() {
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = newID()
	s.changed = true
}

// Invalidate destroys the session: data is wiped server-side and the cookie
// is expired on commit. Reusing the old cookie afterwards yields an empty,
// anonymous session.
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.destroyed = true
	s.changed = true
}

// commit persists the session and writes the cookie. Invoked exactly once
// by the middleware's response wrapper before the first body/header write.
func (s *Session) commit(w http.ResponseWriter, r *http.Request) {
	opts := s.manager.opts

	if s.staleID != "" && s.staleID != s.id {
		_ = s.manager.store.Delete(r.Context(), s.staleID)
	}

	if s.destroyed {
		_ = s.manager.store.Delete(r.Context(), s.id)
		http.SetCookie(w, &http.Cookie{
			Name:     opts.CookieName,
			Value:    "",
			Path:     opts.Path,
			MaxAge:   -1,
			HttpOnly: opts.HTTPOnly,
			Secure:   opts.Secure,
			SameSite: opts.SameSite,
		})
		return
	}

	if !s.changed {
		return
	}

	_ = s.manager.store.Save(r.Context(), s.id, s.data, opts.TTL)
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    s.id,
		Path:     opts.Path,
		MaxAge:   int(opts.TTL.Seconds()),
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
