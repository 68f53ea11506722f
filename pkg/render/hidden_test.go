package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortedHiddenFields(t *testing.T) {
	got := SortedHiddenFields([]HiddenField{
		Hidden(" variant ", "full"),
		Hidden("", "dropped"),
		Hidden("csrf", "abc"),
		Hidden("variant", "compact"),
	})
	want := []HiddenField{
		{Name: "csrf", Value: "abc"},
		{Name: "variant", Value: "compact"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
	if SortedHiddenFields(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
