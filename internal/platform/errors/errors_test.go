package errors

import (
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodePagination, http.StatusBadRequest},
		{ErrorCodeUnsupportedAPIVersion, http.StatusBadRequest},
		{ErrorCodeInvalidRequest, http.StatusBadRequest},
		{ErrorCodeUnauthenticated, http.StatusUnauthorized},
		{ErrorCodeAccessTokenExpired, http.StatusUnauthorized},
		{ErrorCodeAccessTokenRevoked, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeInsufficientScopes, http.StatusForbidden},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidMethod, http.StatusMethodNotAllowed},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeRateLimitExceeded, http.StatusTooManyRequests},
		{ErrorCodeServer, http.StatusInternalServerError},
		{"client.made_up", http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestDefaultDescriptions(t *testing.T) {
	if got := DefaultDescription(ErrorCodeInvalidMethod); got != "The requested endpoint exists, but does not support the requested HTTP verb." {
		t.Fatalf("invalid-method description = %q", got)
	}
	if DefaultDescription(ErrorCodeForbidden) != DefaultDescription(ErrorCodeInsufficientScopes) {
		t.Fatalf("forbidden and insufficient_scopes should share a description")
	}
	if DefaultDescription("nope") != DefaultDescription(ErrorCodeServer) {
		t.Fatalf("unknown code should fall back to server description")
	}
	if Known("nope") || !Known(ErrorCodeRateLimitExceeded) {
		t.Fatalf("Known mismatch")
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	// New / Newf
	e1 := New(ErrorCodeInvalidRequest, "bad stuff")
	if CodeOf(e1) != ErrorCodeInvalidRequest {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeConflict, "busy %d", 12)
	if got := e2.Error(); got != "busy 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	// Wrap / Wrapf / Unwrap
	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeServer, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	e4 := Wrapf(src, ErrorCodeForbidden, "nope %s", "here")
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	// As
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeForbidden || got.Message() != "nope here" {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// WithField (copy-on-write) and WithOp
	e5 := Wrap(src, ErrorCodeInvalidRequest, "oops")
	e6 := WithField(e5, "email")
	e7 := WithOp(e6, "validate")
	if fe, ok := As(e6); !ok || fe.Field() != "email" {
		t.Fatalf("WithField failed")
	}
	if oe, ok := As(e7); !ok || oe.Op() != "validate" {
		t.Fatalf("WithOp failed")
	}
	if fe0, _ := As(e5); fe0.Field() != "" || fe0.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithField(src, "x") != src {
		t.Fatalf("WithField should pass foreign errors through")
	}

	// WrapIf
	if WrapIf(nil, ErrorCodeServer, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should return nil")
	}
	if WrapIf(src, ErrorCodeServer, "db") == nil {
		t.Fatalf("WrapIf(non-nil) should wrap")
	}

	// Root traversal
	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got == nil || got.Error() != "root" {
		t.Fatalf("Root() failed, got %v", got)
	}

	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound code mismatch")
	}
	if !Is(deep, src) {
		t.Fatalf("Is should see through fmt wrapping")
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{Paginationf("x"), ErrorCodePagination},
		{UnsupportedAPIVersionf("x"), ErrorCodeUnsupportedAPIVersion},
		{InvalidRequestf("x"), ErrorCodeInvalidRequest},
		{NotFoundf("x"), ErrorCodeNotFound},
		{Unauthenticatedf("x"), ErrorCodeUnauthenticated},
		{AccessTokenExpiredf("x"), ErrorCodeAccessTokenExpired},
		{AccessTokenRevokedf("x"), ErrorCodeAccessTokenRevoked},
		{Forbiddenf("x"), ErrorCodeForbidden},
		{InsufficientScopesf("x"), ErrorCodeInsufficientScopes},
		{InvalidMethodf("x"), ErrorCodeInvalidMethod},
		{Conflictf("x"), ErrorCodeConflict},
		{RateLimitedf("x"), ErrorCodeRateLimitExceeded},
		{Internalf("x"), ErrorCodeServer},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.want) {
			t.Fatalf("sugar for %s produced %s", c.want, CodeOf(c.err))
		}
	}
}

func TestDescriptionPrecedence(t *testing.T) {
	// pagination errors surface their message
	pe, _ := As(Paginationf("Pagination only supports a limit between 1 and 20."))
	if pe.Description() != "Pagination only supports a limit between 1 and 20." {
		t.Fatalf("pagination description = %q", pe.Description())
	}

	// other codes keep internals out of the description
	ne, _ := As(NotFoundf("queue 42 missing in table queues"))
	if ne.Description() != DefaultDescription(ErrorCodeNotFound) {
		t.Fatalf("not-found description leaked message: %q", ne.Description())
	}

	// explicit override wins
	oe, _ := As(WithDescription(NotFoundf("x"), "No queue with that id."))
	if oe.Description() != "No queue with that id." {
		t.Fatalf("override description = %q", oe.Description())
	}

	// override on a foreign error renders as server.error
	fe, ok := As(WithDescription(stderrs.New("boom"), "custom"))
	if !ok || fe.Code() != ErrorCodeServer || fe.Description() != "custom" {
		t.Fatalf("foreign override mismatch: %+v", fe)
	}
	if WithDescription(nil, "x") != nil {
		t.Fatalf("WithDescription(nil) should be nil")
	}
}

func TestWireFrom(t *testing.T) {
	if wf := WireFrom(nil); wf.Code != "" || wf.Description != "" || wf.Context != nil {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}

	// foreign errors never leak their text
	wf := WireFrom(stderrs.New("pq: relation does not exist"))
	if wf.Code != ErrorCodeServer || wf.Description != DefaultDescription(ErrorCodeServer) {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}

	wf = WireFrom(fmt.Errorf("handler: %w", UnsupportedAPIVersionf("missing header")))
	if wf.Code != ErrorCodeUnsupportedAPIVersion || wf.Description != "The requested API version is not supported." {
		t.Fatalf("WireFrom(wrapped ours) mismatch: %+v", wf)
	}
}

func TestWireJSONContextMerge(t *testing.T) {
	base := WithContext(InvalidRequestf("bad"), map[string]any{"fields": []string{"name"}})
	err := WithContext(base, map[string]any{"description": "Name is required."})

	b, jerr := json.Marshal(WireFrom(err))
	if jerr != nil {
		t.Fatalf("marshal: %v", jerr)
	}
	var got map[string]any
	if jerr := json.Unmarshal(b, &got); jerr != nil {
		t.Fatalf("unmarshal: %v", jerr)
	}
	if got["error"] != string(ErrorCodeInvalidRequest) {
		t.Fatalf("error key = %v", got["error"])
	}
	if got["description"] != "Name is required." {
		t.Fatalf("context should override description, got %v", got["description"])
	}
	if fields, ok := got["fields"].([]any); !ok || len(fields) != 1 || fields[0] != "name" {
		t.Fatalf("fields = %#v", got["fields"])
	}

	// earlier error untouched
	if e, _ := As(base); e.ToWire().Context["description"] != nil {
		t.Fatalf("WithContext mutated original")
	}

	var back Wire
	if jerr := json.Unmarshal(b, &back); jerr != nil {
		t.Fatalf("unmarshal wire: %v", jerr)
	}
	if back.Code != ErrorCodeInvalidRequest || back.Description != "Name is required." || back.Context["fields"] == nil {
		t.Fatalf("Wire round trip mismatch: %+v", back)
	}
}

func TestHTTPHelper(t *testing.T) {
	if st, w := HTTP(nil); st != http.StatusOK || w.Code != "" {
		t.Fatalf("HTTP(nil) mismatch: %d %+v", st, w)
	}
	st, w := HTTP(NotFoundf("x"))
	if st != http.StatusNotFound || w.Code != ErrorCodeNotFound {
		t.Fatalf("HTTP(err) mismatch: %d %+v", st, w)
	}
	if HTTPStatus(stderrs.New("x")) != http.StatusInternalServerError {
		t.Fatalf("foreign errors should map to 500")
	}
}
