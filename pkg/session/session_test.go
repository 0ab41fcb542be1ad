package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prasetyadi/gerai/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), session.DefaultOptions())
}

// do runs one request through the session middleware, carrying over cookies
// from a previous response.
func do(t *testing.T, m *session.Manager, prev *http.Response, handler func(w http.ResponseWriter, r *http.Request)) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if prev != nil {
		for _, c := range prev.Cookies() {
			if c.MaxAge >= 0 {
				req.AddCookie(c)
			}
		}
	}

	rec := httptest.NewRecorder()
	session.Middleware(m)(http.HandlerFunc(handler)).ServeHTTP(rec, req)
	return rec.Result()
}

func TestSessionPersistsAcrossRequests(t *testing.T) {
	m := newManager()

	resp := do(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		session.FromCtx(r).Set("greeting", "halo")
		w.WriteHeader(http.StatusOK)
	})
	require.NotEmpty(t, resp.Cookies(), "a mutated session must set a cookie")

	do(t, m, resp, func(w http.ResponseWriter, r *http.Request) {
		v, ok := session.FromCtx(r).Get("greeting")
		assert.True(t, ok)
		assert.Equal(t, "halo", v)
		w.WriteHeader(http.StatusOK)
	})
}

func TestFlashIsOneShot(t *testing.T) {
	m := newManager()

	resp := do(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		session.FromCtx(r).Flash(session.LevelSuccess, "Login berhasil!")
		w.WriteHeader(http.StatusOK)
	})

	resp = do(t, m, resp, func(w http.ResponseWriter, r *http.Request) {
		flashes := session.FromCtx(r).Flashes()
		require.Len(t, flashes, 1)
		assert.Equal(t, session.LevelSuccess, flashes[0].Level)
		assert.Equal(t, "Login berhasil!", flashes[0].Message)
		w.WriteHeader(http.StatusOK)
	})

	do(t, m, resp, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, session.FromCtx(r).Flashes(), "flash must be cleared after one read")
		w.WriteHeader(http.StatusOK)
	})
}

func TestSetUserIDRenewsSessionID(t *testing.T) {
	m := newManager()

	var anonymousID, authedID string
	resp := do(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		anonymousID = sess.ID()
		sess.SetUserID(7)
		authedID = sess.ID()
		w.WriteHeader(http.StatusOK)
	})

	assert.NotEqual(t, anonymousID, authedID, "login must rotate the session ID")

	do(t, m, resp, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, uint(7), session.FromCtx(r).UserID())
		w.WriteHeader(http.StatusOK)
	})
}

func TestInvalidateKillsTheCredential(t *testing.T) {
	m := newManager()

	resp := do(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		session.FromCtx(r).SetUserID(3)
		w.WriteHeader(http.StatusOK)
	})

	// Keep the authenticated cookie around to simulate replay after logout.
	authedCookies := resp.Cookies()

	resp = do(t, m, resp, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, uint(3), session.FromCtx(r).UserID())
		session.FromCtx(r).Invalidate()
		w.WriteHeader(http.StatusOK)
	})

	// Replaying the pre-logout cookie must resolve to an anonymous session.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range authedCookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	session.Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Zero(t, session.FromCtx(r).UserID())
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)
}

func TestRememberRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, session.IssueRemember(rec, 42, 7))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	id, version, ok := session.RememberedUser(req)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, uint(7), version)
}

func TestRememberRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.RememberCookie, Value: "not-a-token"})

	_, _, ok := session.RememberedUser(req)
	assert.False(t, ok)
}
