package util

import (
	"reflect"
	"testing"
)

func TestDedupeNonEmptyStrings(t *testing.T) {
	got := DedupeNonEmptyStrings([]string{"GUI", "", "DARK", "GUI", ""})
	want := []string{"GUI", "DARK"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeNonEmptyStrings = %v, want %v", got, want)
	}
}

func TestDedupeNonEmptyStringsAllEmpty(t *testing.T) {
	if got := DedupeNonEmptyStrings([]string{"", ""}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestDedupeSortedStrings(t *testing.T) {
	got := DedupeSortedStrings([]string{"a", "a", "b", "c", "c", "c"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeSortedStrings = %v, want %v", got, want)
	}
}

func TestDedupeSortedStringsEmpty(t *testing.T) {
	if got := DedupeSortedStrings(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
