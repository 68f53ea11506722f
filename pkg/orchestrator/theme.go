package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	defaultThemeName    = "coagen"
	defaultThemeVariant = "light"
)

type themeConfig struct {
	selector       theme.ThemeSelector
	defaultName    string
	defaultVariant string
	disabled       bool
}

// WithThemeSelector resolves form themes through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.theme = themeConfig{
			selector:       selector,
			defaultName:    defaultTheme,
			defaultVariant: defaultVariant,
			disabled:       selector == nil,
		}
	}
}

// WithThemeManifests resolves themes from the given manifests. The first
// manifest is the default.
func WithThemeManifests(manifests ...*theme.Manifest) Option {
	return func(o *Orchestrator) {
		selector := newManifestSelector(manifests...)
		o.theme = themeConfig{selector: selector, disabled: len(selector.order) == 0}
		if len(selector.order) > 0 {
			o.theme.defaultName = selector.order[0]
		}
	}
}

// WithoutTheme renders forms without theme variables.
func WithoutTheme() Option {
	return func(o *Orchestrator) {
		o.theme = themeConfig{disabled: true}
	}
}

// DefaultThemeManifest returns the built-in manifest. Its tokens match the
// custom properties of the bundled stylesheet.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    defaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-text":    "#1f2933",
			"color-muted":   "#52606d",
			"color-border":  "#cbd2d9",
			"color-accent":  "#2f6f4f",
			"color-success": "#2f6f4f",
			"color-error":   "#b42318",
		},
		Variants: map[string]theme.Variant{
			defaultThemeVariant: {},
			"contrast": {
				Tokens: map[string]string{
					"color-text":   "#000000",
					"color-border": "#000000",
					"color-accent": "#003d1f",
				},
			},
		},
	}
}

func defaultTheme() themeConfig {
	return themeConfig{
		selector:       newManifestSelector(DefaultThemeManifest()),
		defaultName:    defaultThemeName,
		defaultVariant: defaultThemeVariant,
	}
}

func (o *Orchestrator) resolveTheme(name, variantName string) (*theme.RendererConfig, error) {
	if o.theme.disabled || o.theme.selector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.theme.defaultName
	}
	if variantName == "" {
		variantName = o.theme.defaultVariant
	}

	selection, err := o.theme.selector.Select(name, variantName)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q/%q: %w", name, variantName, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}
	return rendererConfig(selection), nil
}

// rendererConfig merges the manifest with the selected variant: tokens,
// templates and assets of the variant win over the base manifest.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	manifest := selection.Manifest
	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	assets := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		assets = mergeStrings(assets, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
		},
	}
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}

// manifestSelector is a theme.ThemeSelector over an in-memory manifest list.
type manifestSelector struct {
	manifests map[string]*theme.Manifest
	order     []string
}

var _ theme.ThemeSelector = (*manifestSelector)(nil)

func newManifestSelector(manifests ...*theme.Manifest) *manifestSelector {
	s := &manifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if _, exists := s.manifests[manifest.Name]; !exists {
			s.order = append(s.order, manifest.Name)
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

func (s *manifestSelector) Select(name, variantName string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" && len(s.order) > 0 {
		name = s.order[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme %q not registered", name)
	}
	if variantName != "" && len(manifest.Variants) > 0 {
		if _, ok := manifest.Variants[variantName]; !ok {
			return nil, fmt.Errorf("theme %q has no variant %q (have %s)", name, variantName, variantNames(manifest))
		}
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variantName,
		Manifest: manifest,
	}, nil
}

func variantNames(manifest *theme.Manifest) string {
	names := make([]string, 0, len(manifest.Variants))
	for name := range manifest.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
