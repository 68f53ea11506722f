package tui

// OutputFormat controls how collected values are serialized by Renderer.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits a YAML values document.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the collector applies to messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
}

// Option configures the collector and renderer.
type Option func(*config)

type config struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	confirm      bool
}

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *config) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization format used by Renderer.
func WithOutputFormat(format OutputFormat) Option {
	return func(c *config) {
		if format != "" {
			c.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *config) {
		c.theme = theme
	}
}

// WithConfirm asks for a final confirmation after the last field.
func WithConfirm(enabled bool) Option {
	return func(c *config) {
		c.confirm = enabled
	}
}

func newConfig(options []Option) config {
	cfg := config{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = newSurveyDriver()
	}
	return cfg
}
