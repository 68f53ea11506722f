package collect_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coagen/pkg/collect"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/testsupport"
)

func TestCollect_OneEntryPerField(t *testing.T) {
	form := testsupport.MustForm(t, "full")
	values := collect.Collect(form, collect.Map(map[string]string{
		"Customer":     "Acme",
		"Not A Field":  "dropped",
		"Moisture (%)": "  8.5 ",
		"Batch No.":    "",
	}))

	if len(values) != len(form.Fields) {
		t.Fatalf("expected %d entries, got %d", len(form.Fields), len(values))
	}
	if _, ok := values["Not A Field"]; ok {
		t.Fatalf("unknown keys must be dropped")
	}
	if got := values["Moisture (%)"]; got != "  8.5 " {
		t.Fatalf("values must be kept verbatim, got %q", got)
	}
	if got := values["Lead"]; got != "" {
		t.Fatalf("missing values must be empty, got %q", got)
	}
}

func TestCollect_NilSource(t *testing.T) {
	form := testsupport.MustForm(t, "compact")
	values := collect.Collect(form, nil)
	for _, field := range form.Fields {
		if value, ok := values[field.Name]; !ok || value != "" {
			t.Fatalf("field %q: expected empty entry, got %q (present=%v)", field.Name, value, ok)
		}
	}
}

func TestFormValues_LabelThenID(t *testing.T) {
	form := testsupport.MustForm(t, "full")
	src := collect.FormValues(url.Values{
		"Customer":   {"Acme", "ignored"},
		"batch-no":   {"B-77"},
		"Arsenic":    {"0.2"},
		"arsenic":    {"shadowed"},
		"shelf-life": {"24 months"},
	})
	values := collect.Collect(form, src)

	want := map[string]string{
		"Customer":   "Acme",
		"Batch No.":  "B-77",
		"Arsenic":    "0.2",
		"Shelf-life": "24 months",
	}
	for label, expected := range want {
		if got := values[label]; got != expected {
			t.Fatalf("%s: got %q want %q", label, got, expected)
		}
	}
}

func TestChain_FirstSourceWins(t *testing.T) {
	form := testsupport.MustForm(t, "full")
	values := collect.Collect(form, collect.Chain(
		collect.Map(map[string]string{"Customer": "Override"}),
		nil,
		collect.Map(map[string]string{"Customer": "Base", "Product": "Guar Gum"}),
	))

	got := model.ValueMap{"Customer": values["Customer"], "Product": values["Product"]}
	want := model.ValueMap{"Customer": "Override", "Product": "Guar Gum"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chained values mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONAndYAML(t *testing.T) {
	cases := map[string][]byte{
		"json": []byte(`{"Customer": "Acme", "Moisture (%)": 8.5, "Lead": null}`),
		"yaml": []byte("Customer: Acme\n\"Moisture (%)\": 8.5\nLead:\n"),
	}
	form := testsupport.MustForm(t, "full")
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			src, err := collect.Parse(data)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			values := collect.Collect(form, src)
			if values["Customer"] != "Acme" || values["Moisture (%)"] != "8.5" || values["Lead"] != "" {
				t.Fatalf("unexpected values: %v", values)
			}
		})
	}
}

func TestParse_KeepsScalarTextVerbatim(t *testing.T) {
	cases := []struct {
		name string
		data string
		want map[string]string
	}{
		{
			name: "yaml numbers",
			data: "Ph Levels: 7.0\n\"Moisture (%)\": 8.50\nBatch No.: 0012\nLead: ~\n",
			want: map[string]string{"Ph Levels": "7.0", "Moisture (%)": "8.50", "Batch No.": "0012", "Lead": ""},
		},
		{
			name: "json numbers",
			data: `{"Ph Levels": 7.0, "Moisture (%)": 8.50, "Batch No.": 123456789012345678901, "Lead": true}`,
			want: map[string]string{"Ph Levels": "7.0", "Moisture (%)": "8.50", "Batch No.": "123456789012345678901", "Lead": "true"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src, err := collect.Parse([]byte(tc.data))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := map[string]string{}
			for label := range tc.want {
				value, ok := src.Lookup(label)
				if !ok {
					t.Fatalf("label %q missing", label)
				}
				got[label] = value
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_RejectsNestedValues(t *testing.T) {
	for _, data := range []string{
		`{"Customer": {"name": "Acme"}}`,
		"Customer:\n  name: Acme\n",
		"Customer: [Acme]\n",
	} {
		if _, err := collect.Parse([]byte(data)); err == nil {
			t.Fatalf("expected error for nested value in %q", data)
		}
	}
	if _, err := collect.Parse([]byte("- Acme\n")); err == nil {
		t.Fatalf("expected error for a document that is not a mapping")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte("Customer: Acme\nProduct: Guar Gum\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	src, err := collect.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if value, ok := src.Lookup("Product"); !ok || value != "Guar Gum" {
		t.Fatalf("unexpected product %q", value)
	}

	if _, err := collect.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
