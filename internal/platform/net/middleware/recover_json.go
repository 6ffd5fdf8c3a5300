package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/logger"
	phttp "apisupport/internal/platform/net/http"
)

// RecoverJSON turns panics into the server.error envelope and logs the stack
// http.ErrAbortHandler is re-panicked so the server can abort the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Str("panic", fmt.Sprint(v)).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")

			phttp.RespondError(w, r, perr.Internalf("panic recovered: %v", v))
		}()
		next.ServeHTTP(w, r)
	})
}
