package tools

import (
	"reflect"
	"testing"
)

func TestFilterRepeat(t *testing.T) {
	got := FilterRepeat([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterRepeatStructs(t *testing.T) {
	entries := []StatusEntry{
		{Status: "ok", URL: "https://example.com"},
		{Status: "ok", URL: "https://example.com"},
		{Status: "ok", URL: "https://other.example.com"},
	}
	got := FilterRepeat(entries)
	if len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
}

func TestFilterRepeatEmpty(t *testing.T) {
	if got := FilterRepeat([]int{}); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestFilterRepeatBy(t *testing.T) {
	type pair struct{ k, v string }
	got := FilterRepeatBy([]pair{{"a", "1"}, {"A", "2"}, {"b", "3"}}, func(p pair) string { return p.k })
	want := []pair{{"a", "1"}, {"A", "2"}, {"b", "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v", got)
	}

	got = FilterRepeatBy([]pair{{"a", "1"}, {"a", "2"}}, func(p pair) string { return p.k })
	if len(got) != 1 || got[0].v != "1" {
		t.Errorf("got %v, want first occurrence kept", got)
	}
}
