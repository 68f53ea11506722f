package coagen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-coagen/pkg/output"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "coagen.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected stylesheet content")
	}
}

func TestEmbeddedTemplatesAndVariants(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	store, err := LoadVariants(EmbeddedVariants())
	if err != nil {
		t.Fatalf("load variants: %v", err)
	}
	if got := strings.Join(store.IDs(), ","); got != "compact,full" {
		t.Fatalf("unexpected variants %q", got)
	}
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), output.Filename)
	written, err := GenerateFile(context.Background(), path, "", map[string]string{"Customer": "Acme"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if written != path {
		t.Fatalf("expected %s, got %s", path, written)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("expected a PDF file")
	}
}

func TestRenderFormHTML(t *testing.T) {
	html, err := RenderFormHTML(context.Background(), "compact", RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), `placeholder="Enter Customer..."`) {
		t.Fatalf("expected customer input")
	}
}
