package session

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// Middleware loads (or creates) the session for every request, injects it
// into the request context and commits it right before the response starts.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{manager: m, data: map[string]interface{}{}}

			if cookie, err := r.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				if data, err := m.store.Load(r.Context(), sess.id); err == nil {
					sess.data = data
				}
			} else {
				sess.id = newID()
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			cw := &commitWriter{ResponseWriter: w, sess: sess, req: r}
			next.ServeHTTP(cw, r.WithContext(ctx))

			// Handlers that write nothing (rare) still get persisted.
			cw.commitOnce()
		})
	}
}

// FromCtx retrieves the request's session. Returns a detached throwaway
// session when the middleware did not run (tests of bare handlers).
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{
		id:      newID(),
		data:    map[string]interface{}{},
		manager: NewManager(NewMemoryStore(), DefaultOptions()),
	}
}

// commitWriter persists the session and emits Set-Cookie immediately before
// the first header or body byte, since cookies cannot follow the body.
type commitWriter struct {
	http.ResponseWriter
	sess      *Session
	req       *http.Request
	committed bool
}

func (cw *commitWriter) commitOnce() {
	if cw.committed {
		return
	}
	cw.committed = true
	cw.sess.commit(cw.ResponseWriter, cw.req)
}

func (cw *commitWriter) WriteHeader(code int) {
	cw.commitOnce()
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *commitWriter) Write(b []byte) (int, error) {
	cw.commitOnce()
	return cw.ResponseWriter.Write(b)
}
