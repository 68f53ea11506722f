package gotemplate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"
)

func newEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	files := fstest.MapFS{
		"hello.tmpl":  &fstest.MapFile{Data: []byte(`Hello {{ name }}!`)},
		"global.tmpl": &fstest.MapFile{Data: []byte(`env={{ settings.env }}`)},
		"ids.tmpl":    &fstest.MapFile{Data: []byte(`{% for f in fields %}{{ f.label|fieldid }};{% endfor %}`)},
	}
	engine, err := New(append([]Option{WithFS(files)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesToOutputs(t *testing.T) {
	engine := newEngine(t)
	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestEngine_StructsUseJSONTags(t *testing.T) {
	type field struct {
		Label string `json:"label"`
	}
	type view struct {
		Fields []field `json:"fields"`
	}
	engine := newEngine(t)
	got, err := engine.RenderTemplate("ids.tmpl", view{Fields: []field{{Label: "Batch No."}, {Label: "Moisture (%)"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "batch-no;moisture;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))
	got, err := engine.RenderTemplate("global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("coagen_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.RegisterFilter("coagen_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.RenderString(`{{ name|coagen_shout }}`, map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresFS(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte(`Hi {{ name }} from disk`), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	engine := newEngine(t, WithBaseDir(dir))
	if engine.delegate == nil {
		t.Fatalf("expected a go-template engine for a base directory")
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render override: %v", err)
	}
	if got != "Hi Ada from disk" {
		t.Fatalf("override output %q", got)
	}

	got, err = engine.RenderTemplate("ids", map[string]any{"fields": []map[string]any{{"label": "Batch No."}}})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "batch-no;" {
		t.Fatalf("fallback output %q", got)
	}
}

func TestEngine_GoTemplateOptionsApply(t *testing.T) {
	engine := newEngine(t,
		WithGlobalData(map[string]any{"settings": map[string]any{"env": "qa"}}),
		WithGoTemplateOptions(gotemplatepkg.WithTemplateFunc(map[string]any{
			"stamp": func(value string) string { return "[" + value + "]" },
		})),
	)
	if engine.delegate == nil {
		t.Fatalf("expected go-template options to select the go-template engine")
	}

	got, err := engine.RenderString(`{{ stamp(name) }}`, map[string]any{"name": "lot 7"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[lot 7]" {
		t.Fatalf("template func not applied: %q", got)
	}

	got, err = engine.RenderTemplate("global", nil)
	if err != nil {
		t.Fatalf("render global: %v", err)
	}
	if got != "env=qa" {
		t.Fatalf("global data not applied: %q", got)
	}
}
