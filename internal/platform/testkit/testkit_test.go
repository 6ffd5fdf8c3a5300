package testkit

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeT records Fatalf instead of stopping the goroutine
type fakeT struct {
	testing.TB
	failed string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, _ ...any) { f.failed = format }

func TestMustPanic_ReturnsRecovered(t *testing.T) {
	if got := MustPanic(t, func() { panic("boom") }); got != "boom" {
		t.Fatalf("recovered = %v", got)
	}

	f := &fakeT{TB: t}
	MustPanic(f, func() {})
	if f.failed == "" {
		t.Fatalf("a quiet fn should fail")
	}
}

func TestMustContain(t *testing.T) {
	MustContain(t, `{"level":"info","request_id":"r1"}`, `"level":"info"`, `"request_id":"r1"`)

	f := &fakeT{TB: t}
	MustContain(f, "alpha beta", "beta", "gamma")
	if f.failed == "" {
		t.Fatalf("missing needle should fail")
	}
}

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	_, _ = rr.WriteString(`{"error":"pagination_error"}`)
	body := JSON[map[string]string](t, rr)
	if body["error"] != "pagination_error" {
		t.Fatalf("body = %v", body)
	}
}

var limit = 20

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &limit, 5)
		if limit != 5 {
			t.Fatalf("limit = %d", limit)
		}
	})
	if limit != 20 {
		t.Fatalf("not restored: %d", limit)
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	var mu sync.Mutex
	var seq []string
	rec := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"a", "b"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				rec(name + "-start")
				time.Sleep(20 * time.Millisecond)
				rec(name + "-end")
			})
		}
	})

	if len(seq) != 4 || seq[0][:1] != seq[1][:1] || seq[2][:1] != seq[3][:1] {
		t.Fatalf("interleaved: %v", seq)
	}
}
