package ui

import (
	"testing"
)

type named struct{ name string }

func TestFuzzyFilter(t *testing.T) {
	items := []named{{"Go Fundamentals"}, {"Rust for Gophers"}, {"UX Research"}}
	key := func(n named) string { return n.name }

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Go Fundamentals", "Rust for Gophers", "UX Research"}},
		{"research", []string{"UX Research"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := FuzzyFilter(items, tt.query, key)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d matches, got %d (%v)", len(tt.want), len(got), got)
			}
			for i, w := range tt.want {
				if got[i].name != w {
					t.Errorf("Expected %q at %d, got %q", w, i, got[i].name)
				}
			}
		})
	}
}

func TestSearchBoxLifecycle(t *testing.T) {
	s := NewSearchBox("search")
	if s.Active() {
		t.Fatal("Expected a new box to be inactive")
	}
	if s.View(40) != "" {
		t.Error("Expected no view while inactive and empty")
	}

	s.Activate()
	_, changed := s.Update(keyMsg("g"))
	if !changed || s.Query() != "g" {
		t.Errorf("Expected query 'g', got %q (changed=%v)", s.Query(), changed)
	}

	s.Update(keyMsg("enter"))
	if s.Active() || s.Query() != "g" {
		t.Errorf("Expected enter to keep the query and deactivate, got %q active=%v", s.Query(), s.Active())
	}
	if s.View(40) == "" {
		t.Error("Expected the frozen query to render")
	}

	s.Activate()
	_, changed = s.Update(keyMsg("esc"))
	if !changed || s.Query() != "" || s.Active() {
		t.Errorf("Expected esc to reset, got %q active=%v", s.Query(), s.Active())
	}
}
