// Package testsupport bundles fixtures shared by the package tests: the
// embedded variants, built forms and a complete set of sample values.
package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coagen/pkg/catalog"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/variant"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustStore loads the embedded variant store.
func MustStore(t testing.TB) *variant.Store {
	t.Helper()
	store, err := variant.Default()
	if err != nil {
		t.Fatalf("load embedded variants: %v", err)
	}
	return store
}

// MustVariant returns an embedded variant by id.
func MustVariant(t testing.TB, id string) variant.Variant {
	t.Helper()
	v, err := MustStore(t).Variant(id)
	if err != nil {
		t.Fatalf("variant %q: %v", id, err)
	}
	return v
}

// MustForm builds the form model of an embedded variant.
func MustForm(t testing.TB, id string) model.FormModel {
	t.Helper()
	form, err := model.NewBuilder().Build(MustVariant(t, id))
	if err != nil {
		t.Fatalf("build form %q: %v", id, err)
	}
	return form
}

// SampleValues returns a distinct value for every known label, so a value
// printed in the wrong row is easy to spot.
func SampleValues() model.ValueMap {
	values := make(model.ValueMap)
	for idx, label := range catalog.Fields() {
		values[label] = fmt.Sprintf("value-%02d", idx)
	}
	return values
}

// HasLine reports whether lines contains want verbatim.
func HasLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}

// ContainsAll fails the test when any fragment is missing from body.
func ContainsAll(t testing.TB, body string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected output to contain %q", fragment)
		}
	}
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
