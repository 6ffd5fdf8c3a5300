package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("nil input should fall back: %v", got)
	}
	if got := IfEmpty([]string{"POST"}, def); got[0] != "POST" {
		t.Fatalf("non empty input should win: %v", got)
	}
}

func TestPtr(t *testing.T) {
	if Ptr("") != nil {
		t.Fatal("empty string should give nil")
	}
	if p := Ptr("lobby"); p == nil || *p != "lobby" {
		t.Fatalf("Ptr(lobby) = %v", p)
	}
}

func TestSQLNullPtr(t *testing.T) {
	blank := "  "
	venue := "lobby"
	cases := []struct {
		in   *string
		want any
	}{
		{nil, nil},
		{&blank, nil},
		{&venue, "lobby"},
	}
	for _, c := range cases {
		if got := SQLNullPtr(c.in); got != c.want {
			t.Fatalf("SQLNullPtr(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
