// Package collect gathers the values a user supplied for a form. Every
// collector yields exactly one entry per form label; missing labels become
// empty strings and unknown keys are dropped. Values are never validated or
// trimmed.
package collect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coagen/pkg/model"
)

// Source supplies raw values keyed by field label.
type Source interface {
	Lookup(label string) (string, bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(label string) (string, bool)

// Lookup implements Source.
func (fn SourceFunc) Lookup(label string) (string, bool) {
	if fn == nil {
		return "", false
	}
	return fn(label)
}

// Collect builds the ValueMap for form from src.
func Collect(form model.FormModel, src Source) model.ValueMap {
	values := make(model.ValueMap, len(form.Fields))
	for _, field := range form.Fields {
		value := ""
		if src != nil {
			if v, ok := src.Lookup(field.Name); ok {
				value = v
			}
		}
		values[field.Name] = value
	}
	return values
}

// Map exposes a plain map as a Source.
func Map(values map[string]string) Source {
	return SourceFunc(func(label string) (string, bool) {
		value, ok := values[label]
		return value, ok
	})
}

// FormValues exposes submitted form values as a Source. Inputs are matched by
// label first and by the generated field id second, so both the
// label-named inputs of the HTML form and id-named API clients work.
func FormValues(values url.Values) Source {
	return SourceFunc(func(label string) (string, bool) {
		if entries, ok := values[label]; ok && len(entries) > 0 {
			return entries[0], true
		}
		if entries, ok := values[model.FieldID(label)]; ok && len(entries) > 0 {
			return entries[0], true
		}
		return "", false
	})
}

// Chain returns the first value found across sources.
func Chain(sources ...Source) Source {
	return SourceFunc(func(label string) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if value, ok := src.Lookup(label); ok {
				return value, true
			}
		}
		return "", false
	})
}

// LoadFile reads a JSON or YAML values file.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("collect: read %s: %w", path, err)
	}
	values, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("collect: %s: %w", path, err)
	}
	return values, nil
}

// Parse decodes a flat label → value document. JSON is tried first, then
// YAML. Scalars keep the text they were written with, so 7.0 stays 7.0 and
// 0012 stays 0012.
func Parse(data []byte) (Source, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Map(nil), nil
	}
	if values, ok, err := parseJSON(data); ok {
		if err != nil {
			return nil, err
		}
		return Map(values), nil
	}
	values, err := parseYAML(data)
	if err != nil {
		return nil, err
	}
	return Map(values), nil
}

// parseJSON reports ok=false when data is not a JSON object.
func parseJSON(data []byte) (map[string]string, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	raw := map[string]any{}
	if err := dec.Decode(&raw); err != nil {
		return nil, false, nil
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false, nil
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch typed := value.(type) {
		case nil:
			values[key] = ""
		case string:
			values[key] = typed
		case json.Number:
			values[key] = typed.String()
		case map[string]any, []any:
			return nil, true, fmt.Errorf("collect: value for %q must be a scalar", key)
		default:
			values[key] = fmt.Sprint(typed)
		}
	}
	return values, true, nil
}

func parseYAML(data []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("collect: parse values: %w", err)
	}
	root := resolveAlias(&doc)
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = resolveAlias(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("collect: parse values: expected a mapping at line %d", root.Line)
	}

	values := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := resolveAlias(root.Content[i+1])
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("collect: value for %q must be a scalar", key)
		}
		if value.ShortTag() == "!!null" {
			values[key] = ""
			continue
		}
		values[key] = value.Value
	}
	return values, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
