// Package net holds transport neutral request scoped values and envelope builders
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyClient ctxKey = "client"

// WithRequestID stores reqID where chimw.GetReqID finds it
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// WithClient annotates ctx with the authenticated api client name
func WithClient(ctx context.Context, client string) context.Context {
	if client == "" {
		return ctx
	}
	return context.WithValue(ctx, keyClient, client)
}

// RequestID returns the request id on ctx or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Client returns the authenticated client name on ctx or ""
func Client(ctx context.Context) string {
	v, _ := ctx.Value(keyClient).(string)
	return v
}
