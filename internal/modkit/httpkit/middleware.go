package httpkit

import (
	"net/http"
	"time"

	"apisupport/internal/core/versioning"
	"apisupport/internal/platform/net/middleware"
)

// StackOptions tunes the transport stack mounted once at the root
type StackOptions struct {
	CORSOrigins []string
	MaxInFlight int
}

// throttleWait is how long a request queues for a slot once MaxInFlight are running
const throttleWait = 250 * time.Millisecond

// CommonStack returns the root middleware slice: the middleware defaults, throttling and CORS
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := middleware.Defaults()
	stack = append(stack, middleware.Throttle(middleware.ThrottleOptions{Limit: o.MaxInFlight, Wait: throttleWait}))
	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return stack
}

// APIStack guards versioned resources: bearer auth first, then the api version header
func APIStack(tokens middleware.Tokens, latest versioning.APIVersion) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.Auth(tokens),
		middleware.APIVersion(middleware.APIVersionOptions{Latest: latest}),
	}
}
