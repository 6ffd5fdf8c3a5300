package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"apisupport/internal/core/versioning"
	"apisupport/internal/modkit"
	"apisupport/internal/modkit/httpkit"
	phttp "apisupport/internal/platform/net/http"
	"apisupport/internal/platform/net/middleware"
	"apisupport/internal/platform/store/storetest"
	kit "apisupport/internal/platform/testkit"
	queuessvc "apisupport/internal/services/api/queues/service"
)

func newAPI(t *testing.T, seed int) http.Handler {
	t.Helper()
	m := New(modkit.Deps{SQL: storetest.SQLite(t)},
		modkit.WithMiddlewares(httpkit.APIStack(middleware.ParseTokens([]string{"kiosk:abc"}), versioning.MustParse("01-03-2021"))...))
	if m.Name() != "queues" {
		t.Fatalf("name = %q", m.Name())
	}
	ctx := context.Background()
	if err := m.Service().Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := m.Service().Seed(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv := phttp.NewServer(phttp.ServerOptions{})
	httpkit.MountAPIV1(srv.Router(), nil, m.MountRoutes)
	return srv.Handler()
}

type call struct {
	path    string
	version string
	token   string
}

func do(t *testing.T, h http.Handler, c call) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, c.path, nil)
	if c.version != "" {
		req.Header.Set(versioning.Header, c.version)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: body is not json: %q", c.path, rr.Body.String())
	}
	return rr.Code, body
}

func TestQueuesAPI_Errors(t *testing.T) {
	h := newAPI(t, 3)
	cases := []struct {
		name   string
		call   call
		status int
		code   string
		desc   string
	}{
		{"no token", call{"/api/v1/queues", "01-03-2021", ""}, 401, "client.unauthenticated", ""},
		{"no version", call{"/api/v1/queues", "", "abc"}, 400, "client.unsupported_api_version", "The requested API version is not supported."},
		{"bad version", call{"/api/v1/queues", "31-02-2021", "abc"}, 400, "client.unsupported_api_version", ""},
		{"limit too big", call{"/api/v1/queues?cursor_limit=21", "01-03-2021", "abc"}, 400, "pagination_error", "Pagination only supports a limit between 1 and 20."},
		{"limit not a number", call{"/api/v1/queues?cursor_limit=ten", "01-03-2021", "abc"}, 400, "pagination_error", ""},
		{"bad cursor", call{"/api/v1/queues?cursor=nope", "01-03-2021", "abc"}, 400, "pagination_error", "An invalid pagination cursor was provided."},
		{"bad status", call{"/api/v1/queues?status=paused", "01-03-2021", "abc"}, 400, "client.endpoints.invalid-request", ""},
		{"unknown queue", call{"/api/v1/queues/" + queuessvc.FixtureUUID(99), "01-03-2021", "abc"}, 404, "client.endpoints.not-found", ""},
		{"not a uuid", call{"/api/v1/queues/front-desk", "01-03-2021", "abc"}, 404, "client.endpoints.not-found", ""},
		{"no route", call{"/api/v1/nothing", "01-03-2021", "abc"}, 404, "client.endpoints.not-found", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, body := do(t, h, c.call)
			if status != c.status || body["error"] != c.code {
				t.Fatalf("got %d %v", status, body)
			}
			if c.desc != "" && body["description"] != c.desc {
				t.Fatalf("description %q", body["description"])
			}
		})
	}
}

func TestQueuesAPI_ListShape(t *testing.T) {
	h := newAPI(t, 3)
	status, body := do(t, h, call{"/api/v1/queues?cursor_limit=2", "01-03-2021", "abc"})
	if status != 200 {
		t.Fatalf("status %d %v", status, body)
	}
	data := body["data"].([]any)
	meta := body["meta"].(map[string]any)
	if len(data) != 2 || meta["next_cursor"] != queuessvc.FixtureUUID(3) {
		t.Fatalf("page: %v", body)
	}
	first := data[0].(map[string]any)
	if first["uuid"] != queuessvc.FixtureUUID(1) || first["opened"] != "2020-01-01T09:00:00Z" || first["display_name"] != "Front Desk" {
		t.Fatalf("first: %v", first)
	}

	status, body = do(t, h, call{"/api/v1/queues?cursor_limit=2&cursor=" + queuessvc.FixtureUUID(3), "01-03-2021", "abc"})
	meta = body["meta"].(map[string]any)
	if status != 200 || len(body["data"].([]any)) != 1 || meta["next_cursor"] != nil {
		t.Fatalf("last page: %v", body)
	}
	if _, ok := meta["next_cursor"]; !ok {
		t.Fatal("next_cursor must be present as null")
	}
}

func TestQueuesAPI_LegacyShape(t *testing.T) {
	h := newAPI(t, 3)
	status, body := do(t, h, call{"/api/v1/queues/legacy?cursor_limit=1", "01-06-2020", "abc"})
	if status != 200 {
		t.Fatalf("status %d %v", status, body)
	}
	cursor := body["meta"].(map[string]any)["cursor"].(map[string]any)
	if cursor["previous"] != nil || cursor["current"] != queuessvc.FixtureUUID(1) || cursor["next"] != queuessvc.FixtureUUID(2) {
		t.Fatalf("cursor: %v", cursor)
	}
	first := body["data"].([]any)[0].(map[string]any)
	if first["venue"] != "lobby" || first["created_at"] != "2020-01-01 09:00:00" {
		t.Fatalf("01-06-2020 shape: %v", first)
	}
	if _, ok := first["display_name"]; ok {
		t.Fatalf("display_name is newer than 01-06-2020: %v", first)
	}
}

func TestQueuesAPI_Get(t *testing.T) {
	h := newAPI(t, 3)
	status, body := do(t, h, call{"/api/v1/queues/" + queuessvc.FixtureUUID(2), "01-01-2021", "abc"})
	if status != 200 {
		t.Fatalf("status %d %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["name"] != "pharmacy" || data["venue"] != nil || data["display_name"] != "Pharmacy" {
		t.Fatalf("data: %v", data)
	}
}

func TestNew_NeedsSQL(t *testing.T) {
	kit.MustPanic(t, func() { _ = New(modkit.Deps{}) })
}
