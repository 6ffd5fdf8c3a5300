// Package testkit holds the assertions and seams shared by package tests
package testkit

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MustPanic fails t unless fn panics, and returns what was recovered
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		if recovered = recover(); recovered == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// maxShown caps how much of a haystack a failed MustContain prints
const maxShown = 4 << 10

// MustContain fails t unless haystack contains every needle
func MustContain(t testing.TB, haystack string, needles ...string) {
	t.Helper()
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			continue
		}
		shown := haystack
		if len(shown) > maxShown {
			shown = shown[:maxShown] + "...(truncated)"
		}
		t.Fatalf("expected output to contain %q\n\n%s", n, shown)
	}
}

// JSON decodes a recorded response body into T, failing t when it is not valid json
func JSON[T any](t testing.TB, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("response is not json (%v): %q", err, rr.Body.String())
	}
	return v
}

var serial sync.Mutex

// Swap replaces a package-level seam for the duration of t
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process-wide lock until t finishes; tests that Swap shared seams take it first
func Serial(t testing.TB) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
