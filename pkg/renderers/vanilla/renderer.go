// Package vanilla renders the certificate input form as a standalone HTML
// page using the pongo2 template engine.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/render"
	rendertemplate "github.com/goliatone/go-coagen/pkg/render/template"
	gotemplate "github.com/goliatone/go-coagen/pkg/render/template/gotemplate"
)

// DefaultPageTitle is used when the form carries no title.
const DefaultPageTitle = "Certificate of Analysis Generator"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	engineOptions    []gotemplatepkg.Option
	templateRenderer rendertemplate.TemplateRenderer
	stylesheets      []string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// bundle must contain templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files found
// there override the bundled templates; anything missing falls back to them.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateEngineOptions forwards options to the go-template engine, for
// example extra template functions.
func WithTemplateEngineOptions(options ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		cfg.engineOptions = append(cfg.engineOptions, options...)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders form pages.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheets  []string
	inlineStyles string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGoTemplateOptions(cfg.engineOptions...),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:   renderer,
		stylesheets: append([]string(nil), cfg.stylesheets...),
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form page. Inputs are named after field labels and
// prefilled from opts.Values.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form":    form,
		"page":    r.buildPage(form, opts),
		"classes": chromeClasses(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type pageView struct {
	Title          string        `json:"title"`
	Action         string        `json:"action"`
	DownloadAction string        `json:"downloadAction,omitempty"`
	Stylesheets    []string      `json:"stylesheets,omitempty"`
	InlineStyles   string        `json:"inlineStyles,omitempty"`
	Sections       []sectionView `json:"sections"`
	Hidden         []hiddenView  `json:"hidden,omitempty"`
	Variants       []variantView `json:"variants,omitempty"`
	Status         *statusView   `json:"status,omitempty"`
	Download       *downloadView `json:"download,omitempty"`
	Theme          *themeView    `json:"theme,omitempty"`
}

type sectionView struct {
	ID     string      `json:"id"`
	Fields []fieldView `json:"fields"`
}

type fieldView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type variantView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
}

type statusView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type downloadView struct {
	Label       string `json:"label"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	URI         string `json:"uri"`
}

type themeView struct {
	Name    string       `json:"name"`
	Variant string       `json:"variant"`
	CSSVars []cssVarView `json:"cssVars,omitempty"`
}

type cssVarView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r *Renderer) buildPage(form model.FormModel, opts render.RenderOptions) pageView {
	page := pageView{
		Title:          form.Title,
		Action:         opts.Action,
		DownloadAction: opts.DownloadAction,
		Stylesheets:    r.stylesheets,
		InlineStyles:   r.inlineStyles,
		Sections:       groupSections(form, opts.Values),
	}
	if page.Title == "" {
		page.Title = DefaultPageTitle
	}
	if page.Action == "" {
		page.Action = "/generate"
	}

	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		page.Hidden = append(page.Hidden, hiddenView{Name: field.Name, Value: field.Value})
	}
	for _, v := range opts.Variants {
		title := v.Title
		if title == "" {
			title = v.ID
		}
		page.Variants = append(page.Variants, variantView{ID: v.ID, Title: title, Selected: v.Selected})
	}
	if opts.Status != nil && opts.Status.Message != "" {
		kind := opts.Status.Kind
		if kind != render.StatusError {
			kind = render.StatusSuccess
		}
		page.Status = &statusView{Kind: kind, Message: opts.Status.Message}
	}
	if opts.Download != nil && opts.Download.URI != "" {
		label := opts.Download.Label
		if label == "" {
			label = "Download PDF"
		}
		page.Download = &downloadView{
			Label:       label,
			Filename:    opts.Download.Filename,
			ContentType: opts.Download.ContentType,
			URI:         opts.Download.URI,
		}
	}
	page.Theme = buildTheme(opts.Theme)
	return page
}

// groupSections keeps form order and starts a new fieldset whenever the
// section changes.
func groupSections(form model.FormModel, values map[string]string) []sectionView {
	var sections []sectionView
	for _, field := range form.Fields {
		if len(sections) == 0 || sections[len(sections)-1].ID != field.Section {
			sections = append(sections, sectionView{ID: field.Section})
		}
		id := field.ID
		if id == "" {
			id = model.FieldID(field.Name)
		}
		current := &sections[len(sections)-1]
		current.Fields = append(current.Fields, fieldView{
			ID:          id,
			Name:        field.Name,
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Value:       values[field.Name],
		})
	}
	return sections
}

func buildTheme(cfg *theme.RendererConfig) *themeView {
	if cfg == nil {
		return nil
	}
	view := &themeView{Name: cfg.Theme, Variant: cfg.Variant}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		view.CSSVars = append(view.CSSVars, cssVarView{Name: name, Value: cfg.CSSVars[name]})
	}
	return view
}
