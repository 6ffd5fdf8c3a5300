package middleware

import (
	"net/http"

	"apisupport/internal/core/versioning"
	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/logger"
	phttp "apisupport/internal/platform/net/http"
)

// APIVersionOptions configures the version guard
type APIVersionOptions struct {
	// Latest rejects versions newer than it; zero accepts any valid version
	Latest versioning.APIVersion
}

// APIVersion requires a valid X-API-VERSION header and stores the parsed version on the
// request context for versioning.FromContext and the request logger
func APIVersion(o APIVersionOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(versioning.Header)
			if raw == "" {
				phttp.RespondError(w, r, perr.WithField(
					perr.UnsupportedAPIVersionf("missing %s header", versioning.Header), versioning.Header))
				return
			}
			v, err := versioning.Parse(raw)
			if err != nil {
				phttp.RespondError(w, r, perr.WithField(err, versioning.Header))
				return
			}
			if !o.Latest.IsZero() && v.NewerThan(o.Latest) {
				phttp.RespondError(w, r, perr.WithField(
					perr.UnsupportedAPIVersionf("version %s is newer than %s", v, o.Latest), versioning.Header))
				return
			}

			ctx := versioning.WithVersion(r.Context(), v)
			ctx = logger.WithAPIVersion(ctx, v.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
