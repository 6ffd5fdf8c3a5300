package middleware

import (
	"compress/flate"
	"net/http"
	"strconv"
	"time"

	"apisupport/internal/core/versioning"
	perr "apisupport/internal/platform/errors"
	phttp "apisupport/internal/platform/net/http"
	pstrings "apisupport/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-Id and stores it on context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP sets RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache sets headers to disable client and proxy caching
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress wraps chi's compressor. level usually flate.DefaultCompression or flate.BestSpeed
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// ThrottleOptions bounds concurrent requests
type ThrottleOptions struct {
	// Limit is the number of requests served at once; <= 0 disables throttling
	Limit int
	// Wait is how long a request may queue for a slot before it is rejected
	Wait time.Duration
	// RetryAfter is advertised to rejected clients, rounded up to whole seconds
	RetryAfter time.Duration
}

// Throttle admits at most Limit concurrent requests and answers the rest with the
// client.rate_limit_exceeded envelope and a Retry-After header
func Throttle(o ThrottleOptions) func(http.Handler) http.Handler {
	if o.Limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if o.RetryAfter <= 0 {
		o.RetryAfter = time.Second
	}
	retryAfter := strconv.Itoa(int((o.RetryAfter + time.Second - 1) / time.Second))
	slots := make(chan struct{}, o.Limit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !acquire(r, slots, o.Wait) {
				w.Header().Set("Retry-After", retryAfter)
				phttp.RespondError(w, r, perr.RateLimitedf("%d requests already in flight", o.Limit))
				return
			}
			defer func() { <-slots }()
			next.ServeHTTP(w, r)
		})
	}
}

func acquire(r *http.Request, slots chan struct{}, wait time.Duration) bool {
	select {
	case slots <- struct{}{}:
		return true
	default:
	}
	if wait <= 0 {
		return false
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case slots <- struct{}{}:
		return true
	case <-t.C:
	case <-r.Context().Done():
	}
	return false
}

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors for the read only api: GET, HEAD and OPTIONS with the version header allowed
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{
			"Accept",
			"Authorization",
			"X-Request-Id",
			versioning.Header,
		}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"Retry-After"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the transport baseline every route gets
func Defaults() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RealIP(),
		RequestID(),
		AccessLog(AccessLogOptions{Slow: 500 * time.Millisecond}),
		RecoverJSON,
		Timeout(60 * time.Second),
		Compress(flate.DefaultCompression),
		NoCache(),
	}
}
