// Package versioning holds the date based API version carried in the X-API-VERSION header.
//
// A version is a UTC calendar day written as dd-mm-yyyy. Parsing is strict: the input must
// round-trip exactly, so 29-02-2019 or 1-1-2020 are rejected rather than normalized.
package versioning

import (
	"context"
	"fmt"
	"regexp"
	"time"

	perr "apisupport/internal/platform/errors"
)

// Header is the request header carrying the requested version
const Header = "X-API-VERSION"

// Layout is the time layout of the wire format (dd-mm-yyyy)
const Layout = "02-01-2006"

var shape = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// APIVersion is an immutable, totally ordered API version
// The zero value means "no version"
type APIVersion struct {
	date time.Time
}

// Parse builds an APIVersion from a strict dd-mm-yyyy string
func Parse(s string) (APIVersion, error) {
	if !shape.MatchString(s) {
		return APIVersion{}, perr.UnsupportedAPIVersionf("api version %q is not in dd-mm-yyyy form", s)
	}
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return APIVersion{}, perr.Wrapf(err, perr.ErrorCodeUnsupportedAPIVersion, "api version %q is not a calendar date", s)
	}
	if t.Format(Layout) != s {
		return APIVersion{}, perr.UnsupportedAPIVersionf("api version %q does not round-trip", s)
	}
	return APIVersion{date: t}, nil
}

// MustParse is Parse for compile time constants; it panics on bad input
func MustParse(s string) APIVersion {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("versioning: %v", err))
	}
	return v
}

// FromDate truncates t to its UTC day
func FromDate(t time.Time) APIVersion {
	y, m, d := t.UTC().Date()
	return APIVersion{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Date returns the underlying UTC day
func (v APIVersion) Date() time.Time { return v.date }

// IsZero reports whether v was never set
func (v APIVersion) IsZero() bool { return v.date.IsZero() }

// String renders dd-mm-yyyy, or "" for the zero value
func (v APIVersion) String() string {
	if v.IsZero() {
		return ""
	}
	return v.date.Format(Layout)
}

// Compare returns -1, 0 or +1 as v is earlier, equal or newer than o
func (v APIVersion) Compare(o APIVersion) int { return v.date.Compare(o.date) }

// Equal reports whether both versions name the same day
func (v APIVersion) Equal(o APIVersion) bool { return v.Compare(o) == 0 }

// EarlierThan reports v < o
func (v APIVersion) EarlierThan(o APIVersion) bool { return v.Compare(o) < 0 }

// EarlierThanOrEqualTo reports v <= o
func (v APIVersion) EarlierThanOrEqualTo(o APIVersion) bool { return v.Compare(o) <= 0 }

// NewerThan reports v > o
func (v APIVersion) NewerThan(o APIVersion) bool { return v.Compare(o) > 0 }

// NewerThanOrEqualTo reports v >= o
func (v APIVersion) NewerThanOrEqualTo(o APIVersion) bool { return v.Compare(o) >= 0 }

// MarshalText implements encoding.TextMarshaler
func (v APIVersion) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler; empty input yields the zero value
func (v *APIVersion) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*v = APIVersion{}
		return nil
	}
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

type ctxKey struct{}

// WithVersion stores v on ctx
func WithVersion(ctx context.Context, v APIVersion) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

// FromContext returns the version stored by WithVersion
func FromContext(ctx context.Context) (APIVersion, bool) {
	v, ok := ctx.Value(ctxKey{}).(APIVersion)
	return v, ok && !v.IsZero()
}
