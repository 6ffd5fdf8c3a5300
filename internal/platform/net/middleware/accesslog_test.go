package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apisupport/internal/platform/net/middleware"
	kit "apisupport/internal/platform/testkit"
)

func TestAccessLog_RecordsRequest(t *testing.T) {
	logs := captureLogs(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "hi")
		_, _ = io.WriteString(w, "there")
	})
	h := middleware.RequestID()(middleware.AccessLog(middleware.AccessLogOptions{})(next))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/queues", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated || rec.Body.String() != "hithere" {
		t.Fatalf("response altered: %d %q", rec.Code, rec.Body.String())
	}
	out := logs.String()
	kit.MustContain(t, out, `"status":201`)
	kit.MustContain(t, out, `"bytes":7`)
	kit.MustContain(t, out, `"path":"/api/v1/queues"`)
	kit.MustContain(t, out, `"request_id":"rid-42"`)
	kit.MustContain(t, out, `"level":"info"`)
}

func TestAccessLog_SlowIsWarn(t *testing.T) {
	logs := captureLogs(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Millisecond)
	})
	rec := httptest.NewRecorder()
	middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Millisecond})(next).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	kit.MustContain(t, logs.String(), `"level":"warn"`)
}
