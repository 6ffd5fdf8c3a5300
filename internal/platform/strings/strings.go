// Package strings has the string helpers repos and middleware share
package strings

import std "strings"

// IfEmpty is def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Ptr is nil for "" so optional text columns stay NULL
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SQLNullPtr is the query argument for a nullable text column: nil when ps is nil or blank
func SQLNullPtr(ps *string) any {
	if ps == nil || std.TrimSpace(*ps) == "" {
		return nil
	}
	return *ps
}
