package uischema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coagen/pkg/uischema"
)

const overlayYAML = `
forms:
  "*":
    placeholder: "Saisir {label}..."
  full:
    title: Certificat d'analyse
    description: <p>Remplir les champs</p><script>alert(1)</script>
    metadata:
      locale: fr
    fields:
      Customer:
        label: Client
      batch-no:
        placeholder: "Lot, e.g. B-2024-001"
`

func TestLoadFS_YAML(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{"fr.yaml": {Data: []byte(overlayYAML)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	full, ok := store.Form("full")
	if !ok {
		t.Fatalf("form full not found")
	}
	want := map[string]uischema.FieldConfig{
		"Customer":  {Label: "Client", OriginalPath: "Customer"},
		"Batch No.": {Placeholder: "Lot, e.g. B-2024-001", OriginalPath: "batch-no"},
	}
	if diff := cmp.Diff(want, full.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if full.Form.Metadata["locale"] != "fr" {
		t.Fatalf("metadata not parsed: %#v", full.Form.Metadata)
	}

	wildcard, ok := store.Form(uischema.Wildcard)
	if !ok || wildcard.Form.Placeholder != "Saisir {label}..." {
		t.Fatalf("wildcard overlay not parsed: %#v", wildcard)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{
		"compact.json": {Data: []byte(`{"forms":{"compact":{"title":"Short","fields":{"Lead":{"label":"Pb"}}}}}`)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	compact, ok := store.Form("compact")
	if !ok || compact.Form.Title != "Short" || compact.Fields["Lead"].Label != "Pb" {
		t.Fatalf("unexpected overlay %#v", compact)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"unknown field": {"a.yaml": {Data: []byte("forms:\n  full:\n    fields:\n      Colour: {label: x}\n")}},
		"field twice":   {"a.yaml": {Data: []byte("forms:\n  full:\n    fields:\n      Customer: {label: x}\n      customer: {label: y}\n")}},
		"duplicate form": {
			"a.yaml": {Data: []byte("forms:\n  full:\n    title: a\n")},
			"b.yaml": {Data: []byte("forms:\n  full:\n    title: b\n")},
		},
		"empty file": {"a.yaml": {Data: []byte("  \n")}},
		"garbage":    {"a.yaml": {Data: []byte("forms: [\n")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uischema.LoadFS(fsys)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), "uischema: ") {
				t.Fatalf("expected uischema prefix, got %v", err)
			}
		})
	}
}

func TestLoadFS_NilAndIgnoredFiles(t *testing.T) {
	store, err := uischema.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("expected empty store, got %v %v", store, err)
	}
	store, err = uischema.LoadFS(fstest.MapFS{"README.md": {Data: []byte("# overlays")}})
	if err != nil || !store.Empty() {
		t.Fatalf("expected non-schema files to be ignored, got %v", err)
	}
}

func TestResolveField(t *testing.T) {
	for key, want := range map[string]string{
		"Batch No.":     "Batch No.",
		"batch-no":      "Batch No.",
		" Moisture (%)": "Moisture (%)",
		"moisture":      "Moisture (%)",
	} {
		got, ok := uischema.ResolveField(key)
		if !ok || got != want {
			t.Fatalf("ResolveField(%q) = %q, %v; want %q", key, got, ok, want)
		}
	}
	if _, ok := uischema.ResolveField("nope"); ok {
		t.Fatalf("expected unknown key to fail")
	}
}
