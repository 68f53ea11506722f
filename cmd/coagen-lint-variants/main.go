package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-coagen/pkg/catalog"
	"github.com/goliatone/go-coagen/pkg/certificate"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/variant"
)

type violation struct {
	source  string
	variant string
	message string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [dirs...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint certificate variant definitions. Without arguments the embedded variants are checked.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	var violations []violation
	dirs := flag.Args()
	if len(dirs) == 0 {
		violations = lintFS("embedded", variant.EmbeddedFS())
	}
	for _, dir := range dirs {
		violations = append(violations, lintFS(dir, os.DirFS(dir))...)
	}

	if len(violations) == 0 {
		return
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].source == violations[j].source {
			if violations[i].variant == violations[j].variant {
				return violations[i].message < violations[j].message
			}
			return violations[i].variant < violations[j].variant
		}
		return violations[i].source < violations[j].source
	})
	for _, v := range violations {
		if v.variant == "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", v.source, v.message)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.source, v.variant, v.message)
	}
	os.Exit(1)
}

func lintFS(source string, fsys fs.FS) []violation {
	store, err := variant.LoadFS(fsys)
	if err != nil {
		return []violation{{source: source, message: err.Error()}}
	}
	if store.Empty() {
		return []violation{{source: source, message: "no variant files found"}}
	}

	var result []violation
	for _, id := range store.IDs() {
		v, err := store.Variant(id)
		if err != nil {
			result = append(result, violation{source: source, variant: id, message: err.Error()})
			continue
		}
		result = append(result, lintVariant(source, v)...)
	}
	return result
}

// lintVariant renders the variant with every field filled so layout problems
// surface before a user hits them.
func lintVariant(source string, v variant.Variant) []violation {
	var result []violation
	report := func(format string, args ...any) {
		result = append(result, violation{source: source, variant: v.ID, message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(v.Title) == "" {
		report("title is empty; the form page falls back to the default title")
	}
	if len(v.Editable) == 0 {
		report("no editable fields")
	}

	values := make(model.ValueMap, len(catalog.Fields()))
	for _, label := range catalog.Fields() {
		values[label] = strings.Repeat("W", 12)
	}
	if _, err := certificate.New(v).Render(values); err != nil {
		report("%v", err)
	}

	if _, err := model.NewBuilder().Build(v); err != nil {
		report("build form: %v", err)
	}
	return result
}
