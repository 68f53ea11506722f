// Package openapi describes the HTTP surface of the certificate server as an
// OpenAPI 3 document built with kin-openapi. Field names and variant ids are
// read from the variant store, so the description follows the configuration.
package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-coagen/pkg/catalog"
	"github.com/goliatone/go-coagen/pkg/model"
	"github.com/goliatone/go-coagen/pkg/output"
	"github.com/goliatone/go-coagen/pkg/variant"
)

// Option configures the generated document.
type Option func(*config)

type config struct {
	title   string
	version string
	server  string
}

// WithTitle overrides the info title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.title = title
		}
	}
}

// WithVersion overrides the info version.
func WithVersion(version string) Option {
	return func(cfg *config) {
		if version != "" {
			cfg.version = version
		}
	}
}

// WithServerURL adds a server entry.
func WithServerURL(url string) Option {
	return func(cfg *config) {
		cfg.server = url
	}
}

// Describe builds and validates the API description.
func Describe(ctx context.Context, store *variant.Store, builder model.Builder, options ...Option) (*openapi3.T, error) {
	if store == nil || store.Empty() {
		return nil, errors.New("openapi: variant store is empty")
	}
	if builder == nil {
		builder = model.NewBuilder()
	}
	cfg := config{title: "Certificate of Analysis Generator", version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	labels, editors, err := collectLabels(store, builder)
	if err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       cfg.title,
			Version:     cfg.version,
			Description: "Fill in certificate values and receive a single-page COA PDF.",
		},
		Paths: openapi3.NewPaths(),
	}
	if cfg.server != "" {
		doc.Servers = openapi3.Servers{{URL: cfg.server}}
	}

	variantIDs := make([]any, 0)
	for _, id := range store.IDs() {
		variantIDs = append(variantIDs, id)
	}
	variantSchema := openapi3.NewStringSchema().WithEnum(variantIDs...)
	variantSchema.Default = store.Default()
	variantSchema.Description = "Certificate layout."

	formBody := valuesSchema(labels, editors)
	formBody.Properties["variant"] = openapi3.NewSchemaRef("", variantSchema)

	doc.Paths.Set("/", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "showForm",
			Summary:     "Render the input form",
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewQueryParameter("variant").WithSchema(variantSchema)},
			},
			Responses: htmlResponses("Form page"),
		},
	})
	doc.Paths.Set("/generate", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "generateCertificate",
			Summary:     "Generate a certificate and re-render the form with a download link",
			RequestBody: formRequestBody(formBody),
			Responses:   htmlResponses("Form page with status and download link"),
		},
	})
	doc.Paths.Set("/download", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "downloadCertificate",
			Summary:     "Generate a certificate and return it as an attachment",
			RequestBody: formRequestBody(formBody),
			Responses:   pdfResponses(),
		},
	})

	apiBody := openapi3.NewObjectSchema().
		WithProperty("variant", variantSchema).
		WithProperty("values", valuesSchema(labels, editors))
	doc.Paths.Set("/api/certificates", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "createCertificate",
			Summary:     "Generate a certificate from JSON values",
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(apiBody),
			},
			Responses: pdfResponses(),
		},
	})
	doc.Paths.Set("/healthz", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "health",
			Summary:     "Liveness probe",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
					WithDescription("Service is up").
					WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"}))}),
			),
		},
	})

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// collectLabels returns every editable label across variants in catalog
// order, plus the variants that edit each label.
func collectLabels(store *variant.Store, builder model.Builder) ([]string, map[string][]any, error) {
	editors := make(map[string][]any)
	for _, id := range store.IDs() {
		v, err := store.Variant(id)
		if err != nil {
			return nil, nil, fmt.Errorf("openapi: %w", err)
		}
		form, err := builder.Build(v)
		if err != nil {
			return nil, nil, fmt.Errorf("openapi: build %q: %w", id, err)
		}
		for _, label := range form.Labels() {
			editors[label] = append(editors[label], id)
		}
	}

	var labels []string
	for _, label := range catalog.Fields() {
		if _, ok := editors[label]; ok {
			labels = append(labels, label)
		}
	}
	return labels, editors, nil
}

func valuesSchema(labels []string, editors map[string][]any) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Description = "Field values keyed by label. Missing labels print empty; unknown labels are ignored."
	order := make([]any, 0, len(labels))
	for _, label := range labels {
		property := openapi3.NewStringSchema()
		property.Description = model.Placeholder(label)
		property.Extensions = map[string]any{"x-variants": editors[label]}
		schema.WithProperty(label, property)
		order = append(order, label)
	}
	schema.Extensions = map[string]any{"x-field-order": order}
	return schema
}

func formRequestBody(schema *openapi3.Schema) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchema(schema, []string{"application/x-www-form-urlencoded"})),
	}
}

func htmlResponses(description string) *openapi3.Responses {
	html := openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"})
	return openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(description).
			WithContent(html)}),
		openapi3.WithStatus(500, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Form page with a visible error status").
			WithContent(html)}),
	)
}

func pdfResponses() *openapi3.Responses {
	pdf := openapi3.NewStringSchema().WithFormat("binary")
	return openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Certificate " + output.Filename).
			WithContent(openapi3.NewContentWithSchema(pdf, []string{output.ContentType}))}),
		openapi3.WithStatus(400, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Malformed request").
			WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"}))}),
		openapi3.WithStatus(404, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Unknown variant").
			WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"}))}),
		openapi3.WithStatus(500, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Certificate could not be serialized").
			WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"}))}),
	)
}
