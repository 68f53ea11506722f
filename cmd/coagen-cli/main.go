package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/goliatone/go-coagen/pkg/collect"
	"github.com/goliatone/go-coagen/pkg/orchestrator"
	"github.com/goliatone/go-coagen/pkg/output"
	"github.com/goliatone/go-coagen/pkg/pdftext"
	"github.com/goliatone/go-coagen/pkg/render"
	"github.com/goliatone/go-coagen/pkg/renderers/tui"
)

const usage = `Usage: %s <command> [flags]

Commands:
  generate   collect values and write the certificate PDF
  values     prompt for values and print them as a values file
  inspect    print the text rows of a generated PDF
  variants   list the configured certificate variants
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "generate":
		runGenerate(ctx, args)
	case "values":
		runValues(ctx, args)
	case "inspect":
		runInspect(args)
	case "variants":
		runVariants(args)
	case "-h", "--help", "help":
		fmt.Fprintf(os.Stdout, usage, filepath.Base(os.Args[0]))
	default:
		fmt.Fprintf(os.Stderr, usage, filepath.Base(os.Args[0]))
		log.Fatalf("unknown command %q", cmd)
	}
}

func runGenerate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	variantID := fs.String("variant", "", "certificate variant (default: the configured default)")
	valuesPath := fs.String("values", "", "JSON or YAML values file; prompts prefill from it when interactive")
	out := fs.String("out", output.Filename, "output PDF path")
	variantsDir := fs.String("variants", "", "directory with variant definitions (embedded when empty)")
	compress := fs.Bool("compress", true, "compress PDF content streams")
	confirm := fs.Bool("confirm", true, "ask for confirmation before writing the PDF")
	_ = fs.Parse(args)

	gen := newOrchestrator(*variantsDir, orchestrator.WithDispatcher(output.NewSerializer(output.WithCompression(*compress))))

	var values collect.Source
	if *valuesPath != "" {
		src, err := collect.LoadFile(*valuesPath)
		if err != nil {
			log.Fatalf("Failed to load values: %v", err)
		}
		values = src
	}

	if isInteractive() {
		collector := tui.NewCollector(tui.WithConfirm(*confirm))
		id := *variantID
		if id == "" {
			chosen, err := collector.SelectVariant(ctx, gen.Store().IDs(), gen.DefaultVariant())
			if err != nil {
				log.Fatalf("Failed to select variant: %v", err)
			}
			id = chosen
		}
		form, err := gen.Form(ctx, id)
		if err != nil {
			log.Fatalf("Failed to build form: %v", err)
		}
		answers, err := collector.Collect(ctx, form, collect.Collect(form, values))
		if err != nil {
			log.Fatalf("Failed to collect values: %v", err)
		}
		*variantID = id
		values = collect.Map(answers)
	} else if values == nil {
		log.Fatalf("stdin is not a terminal: pass -values with a JSON or YAML file")
	}

	result, err := gen.Generate(ctx, orchestrator.Request{Variant: *variantID, Values: values})
	if err != nil {
		log.Fatalf("Failed to generate certificate: %v", err)
	}
	if err := os.WriteFile(*out, result.Artifact.Data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Certificate (%s) written to %s\n", result.Variant.ID, *out)
}

func runValues(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("values", flag.ExitOnError)
	variantID := fs.String("variant", "", "certificate variant")
	valuesPath := fs.String("values", "", "values file used to prefill the prompts")
	format := fs.String("format", string(tui.OutputFormatYAML), "output format: json, yaml or pretty")
	out := fs.String("out", "", "output file (stdout if empty)")
	variantsDir := fs.String("variants", "", "directory with variant definitions (embedded when empty)")
	_ = fs.Parse(args)

	if !isInteractive() {
		log.Fatalf("values: stdin is not a terminal")
	}

	renderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(strings.ToLower(*format))))
	if err != nil {
		log.Fatalf("tui renderer: %v", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	gen := newOrchestrator(*variantsDir, orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer(renderer.Name()))

	prefill := map[string]string{}
	if *valuesPath != "" {
		src, err := collect.LoadFile(*valuesPath)
		if err != nil {
			log.Fatalf("Failed to load values: %v", err)
		}
		form, err := gen.Form(ctx, *variantID)
		if err != nil {
			log.Fatalf("Failed to build form: %v", err)
		}
		prefill = collect.Collect(form, src)
	}

	data, err := gen.RenderForm(ctx, orchestrator.FormRequest{
		Variant:       *variantID,
		RenderOptions: render.RenderOptions{Values: prefill},
	})
	if err != nil {
		log.Fatalf("Failed to collect values: %v", err)
	}

	if *out == "" {
		fmt.Println(strings.TrimRight(string(data), "\n"))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Values written to %s\n", *out)
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	in := fs.String("in", output.Filename, "PDF to read")
	_ = fs.Parse(args)

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *in, err)
	}
	result, err := pdftext.Extract(data)
	if err != nil {
		log.Fatalf("Failed to extract text: %v", err)
	}
	for _, page := range result.Pages {
		fmt.Printf("--- page %d ---\n", page.Number)
		for _, row := range page.Rows {
			fmt.Println(row)
		}
	}
}

func runVariants(args []string) {
	fs := flag.NewFlagSet("variants", flag.ExitOnError)
	variantsDir := fs.String("variants", "", "directory with variant definitions (embedded when empty)")
	_ = fs.Parse(args)

	gen := newOrchestrator(*variantsDir)
	def := gen.DefaultVariant()
	for _, v := range gen.Variants() {
		marker := " "
		if v.ID == def {
			marker = "*"
		}
		fmt.Printf("%s %-10s %s (%s, %s)\n", marker, v.ID, v.Title, strings.ToUpper(v.Page.Size), v.Page.Orientation)
	}
}

func newOrchestrator(variantsDir string, options ...orchestrator.Option) *orchestrator.Orchestrator {
	if variantsDir != "" {
		options = append(options, orchestrator.WithVariantFS(os.DirFS(variantsDir)))
	}
	gen := orchestrator.New(options...)
	if err := gen.Err(); err != nil {
		log.Fatalf("Failed to configure generator: %v", err)
	}
	return gen
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
