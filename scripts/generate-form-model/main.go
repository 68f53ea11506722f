package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/orchestrator"
	"github.com/goliatone/go-coagen/pkg/render"
	"github.com/goliatone/go-coagen/pkg/uischema"
)

const snapshotRendererName = "form-model-snapshot"

type snapshotRenderer struct{}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, form model.FormModel, _ render.RenderOptions) ([]byte, error) {
	return json.MarshalIndent(form, "", "  ")
}

func main() {
	var (
		variantsDir = flag.String("variants", "", "variant definitions directory (embedded when empty)")
		uiDir       = flag.String("ui", "", "form overlay directory")
		outputDir   = flag.String("output", "pkg/renderers/vanilla/testdata", "directory for the <variant>.form.json snapshots")
	)
	flag.Parse()

	ctx := context.Background()

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{})

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
		orchestrator.WithoutTheme(),
	}
	if *variantsDir != "" {
		options = append(options, orchestrator.WithVariantFS(os.DirFS(*variantsDir)))
	}
	if *uiDir != "" {
		store, err := uischema.LoadFS(os.DirFS(*uiDir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load UI overlays: %v\n", err)
			os.Exit(1)
		}
		options = append(options, orchestrator.WithUIDecorators(uischema.NewDecorator(store)))
	}

	orch := orchestrator.New(options...)
	if err := orch.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure generator: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", *outputDir, err)
		os.Exit(1)
	}

	for _, id := range orch.Store().IDs() {
		payload, err := orch.RenderForm(ctx, orchestrator.FormRequest{Variant: id})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to snapshot %s: %v\n", id, err)
			os.Exit(1)
		}
		path := filepath.Join(*outputDir, id+".form.json")
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Wrote form model snapshot to %s\n", path)
	}
}
