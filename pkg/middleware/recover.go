package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/prasetyadi/gerai/pkg/logger"
)

// Recovery converts a downstream panic into a logged 500 so a single bad
// request can never take the process down. The client only ever sees the
// generic status text, never a stack trace.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
