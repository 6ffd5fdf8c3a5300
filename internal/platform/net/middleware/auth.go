package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "apisupport/internal/platform/errors"
	pnet "apisupport/internal/platform/net"
	phttp "apisupport/internal/platform/net/http"
)

// Tokens maps bearer tokens to the api client they identify
type Tokens map[string]string

// ParseTokens reads "client:token" pairs, as listed in CORE_API_TOKENS
// malformed or empty entries are skipped
func ParseTokens(pairs []string) Tokens {
	out := Tokens{}
	for _, p := range pairs {
		client, token, ok := strings.Cut(strings.TrimSpace(p), ":")
		client, token = strings.TrimSpace(client), strings.TrimSpace(token)
		if !ok || client == "" || token == "" {
			continue
		}
		out[token] = client
	}
	return out
}

// lookup compares against every token so timing does not reveal a prefix match
func (t Tokens) lookup(raw string) (string, bool) {
	var client string
	found := false
	for token, c := range t {
		if subtle.ConstantTimeCompare([]byte(token), []byte(raw)) == 1 {
			client, found = c, true
		}
	}
	return client, found
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perr.Unauthenticatedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthenticatedf("missing bearer token")
	}
	return raw, nil
}

// Auth requires a known bearer token and stores the client name on the context
// with no tokens configured every request passes through
func Auth(tokens Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(tokens) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := BearerToken(r)
			if err != nil {
				phttp.RespondError(w, r, err)
				return
			}
			client, ok := tokens.lookup(raw)
			if !ok {
				phttp.RespondError(w, r, perr.Unauthenticatedf("unknown bearer token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithClient(r.Context(), client)))
		})
	}
}
