package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-coagen/pkg/certificate"
	"github.com/goliatone/go-coagen/pkg/collect"
	"github.com/goliatone/go-coagen/pkg/document"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/output"
	"github.com/goliatone/go-coagen/pkg/render"
	"github.com/goliatone/go-coagen/pkg/renderers/vanilla"
	"github.com/goliatone/go-coagen/pkg/variant"
)

const defaultRendererName = "vanilla"

// Dispatcher turns a rendered document into a downloadable artifact.
type Dispatcher interface {
	Dispatch(doc *document.Document) (output.Artifact, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithVariantStore injects the variant definitions.
func WithVariantStore(store *variant.Store) Option {
	return func(o *Orchestrator) {
		o.variants = store
	}
}

// WithVariantFS loads variant definitions from fsys instead of the embedded
// defaults.
func WithVariantFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.variantFS = fsys
	}
}

// WithDefaultVariant overrides the variant used when a request names none.
func WithDefaultVariant(id string) Option {
	return func(o *Orchestrator) {
		o.defaultVariant = strings.TrimSpace(id)
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDispatcher replaces the PDF serializer.
func WithDispatcher(dispatcher Dispatcher) Option {
	return func(o *Orchestrator) {
		o.dispatcher = dispatcher
	}
}

// WithUIDecorators registers decorators that run against every built form
// model. Decorators may adjust titles, descriptions and placeholders but
// must not rename or reorder fields.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator coordinates the certificate pipeline. Variants, built forms
// and the renderer registry are shared read-only between requests; every
// Generate call owns its own ValueMap and Document.
type Orchestrator struct {
	variants        *variant.Store
	variantFS       fs.FS
	defaultVariant  string
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	dispatcher      Dispatcher
	decorators      []model.Decorator
	theme           themeConfig
	initialiseErr   error

	mu    sync.RWMutex
	forms map[string]model.FormModel
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		forms:           make(map[string]model.FormModel),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Err reports a configuration error detected while applying defaults.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Request describes a certificate generation.
type Request struct {
	// Variant selects the layout. Empty means the store default.
	Variant string
	// Values supplies the raw user input. Nil yields an all-empty submission.
	Values collect.Source
}

// Result carries every intermediate product of a generation.
type Result struct {
	Variant  variant.Variant
	Form     model.FormModel
	Values   model.ValueMap
	Document *document.Document
	Artifact output.Artifact
}

// Generate runs collect → render → dispatch for one submission.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if err := o.ready(ctx); err != nil {
		return Result{}, err
	}

	v, form, err := o.resolve(req.Variant)
	if err != nil {
		return Result{}, err
	}

	values := collect.Collect(form, req.Values)

	doc, err := certificate.New(v).Render(values)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render document: %w", err)
	}

	artifact, err := o.dispatcher.Dispatch(doc)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: dispatch: %w", err)
	}

	return Result{
		Variant:  v,
		Form:     form,
		Values:   values,
		Document: doc,
		Artifact: artifact,
	}, nil
}

// FormRequest describes a form page render.
type FormRequest struct {
	Variant       string
	Renderer      string
	ThemeName     string
	ThemeVariant  string
	RenderOptions render.RenderOptions
}

// RenderForm renders the input form of a variant. The variant switcher, the
// hidden variant input and the theme are filled in unless the caller set
// them.
func (o *Orchestrator) RenderForm(ctx context.Context, req FormRequest) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	v, form, err := o.resolve(req.Variant)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Variants == nil {
		opts.Variants = o.variantOptions(v.ID)
	}
	opts.Hidden = append(opts.Hidden, render.Hidden("variant", v.ID))
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	out, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return out, nil
}

// Form returns the built and decorated form model of a variant.
func (o *Orchestrator) Form(ctx context.Context, variantID string) (model.FormModel, error) {
	if err := o.ready(ctx); err != nil {
		return model.FormModel{}, err
	}
	_, form, err := o.resolve(variantID)
	return form, err
}

// Variants lists the configured variants, sorted by id.
func (o *Orchestrator) Variants() []variant.Variant {
	if o.variants == nil {
		return nil
	}
	ids := o.variants.IDs()
	out := make([]variant.Variant, 0, len(ids))
	for _, id := range ids {
		if v, err := o.variants.Variant(id); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// DefaultVariant returns the id used when a request names none.
func (o *Orchestrator) DefaultVariant() string {
	if o.defaultVariant != "" {
		return o.defaultVariant
	}
	if o.variants == nil {
		return ""
	}
	return o.variants.Default()
}

// Store exposes the variant store.
func (o *Orchestrator) Store() *variant.Store {
	return o.variants
}

// Builder exposes the model builder used for every variant.
func (o *Orchestrator) Builder() model.Builder {
	return o.builder
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolve(id string) (variant.Variant, model.FormModel, error) {
	if id == "" {
		id = o.DefaultVariant()
	}
	v, err := o.variants.Variant(id)
	if err != nil {
		return variant.Variant{}, model.FormModel{}, fmt.Errorf("orchestrator: variant %q: %w", id, err)
	}

	o.mu.RLock()
	form, ok := o.forms[v.ID]
	o.mu.RUnlock()
	if ok {
		return v, form, nil
	}

	form, err = o.builder.Build(v)
	if err != nil {
		return variant.Variant{}, model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := o.applyDecorators(&form); err != nil {
		return variant.Variant{}, model.FormModel{}, err
	}

	o.mu.Lock()
	if cached, ok := o.forms[v.ID]; ok {
		form = cached
	} else {
		o.forms[v.ID] = form
	}
	o.mu.Unlock()
	return v, form, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if len(o.decorators) == 0 || form == nil {
		return nil
	}
	labels := form.Labels()
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	after := form.Labels()
	if len(after) != len(labels) {
		return errors.New("orchestrator: decorator changed the field list")
	}
	for i := range labels {
		if labels[i] != after[i] {
			return fmt.Errorf("orchestrator: decorator changed field %q", labels[i])
		}
	}
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) variantOptions(selected string) []render.VariantOption {
	variants := o.Variants()
	out := make([]render.VariantOption, 0, len(variants))
	for _, v := range variants {
		title := v.Title
		if title == "" || title == vanilla.DefaultPageTitle {
			title = v.ID
		}
		out = append(out, render.VariantOption{
			ID:       v.ID,
			Title:    title,
			Selected: v.ID == selected,
		})
	}
	return out
}

func (o *Orchestrator) applyDefaults() {
	if o.variants == nil {
		var (
			store *variant.Store
			err   error
		)
		if o.variantFS != nil {
			store, err = variant.LoadFS(o.variantFS)
		} else {
			store, err = variant.Default()
		}
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load variants: %w", err)
			store = &variant.Store{}
		}
		o.variants = store
	}
	if o.initialiseErr == nil && o.variants.Empty() {
		o.initialiseErr = errors.New("orchestrator: no variants configured")
	}
	if o.initialiseErr == nil && o.defaultVariant != "" {
		if _, err := o.variants.Variant(o.defaultVariant); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default variant %q: %w", o.defaultVariant, err)
		}
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.dispatcher == nil {
		o.dispatcher = output.NewSerializer()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithDefaultStyles())
		if err != nil && o.initialiseErr == nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else if err == nil {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.theme.selector == nil && !o.theme.disabled {
		o.theme = defaultTheme()
	}
}
