// Package server exposes the certificate pipeline over HTTP: the HTML form,
// PDF generation and download, a JSON API and its OpenAPI description.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	pkgopenapi "github.com/goliatone/go-coagen/pkg/openapi"
	"github.com/goliatone/go-coagen/pkg/orchestrator"
	"github.com/goliatone/go-coagen/pkg/renderers/vanilla"
)

const (
	// SuccessMessage is shown after a certificate was generated.
	SuccessMessage = "PDF generated successfully!"
	// DownloadLabel is the text of the download link.
	DownloadLabel = "Download PDF"

	defaultMaxBodyBytes int64 = 1 << 20
)

// Option configures a Server.
type Option func(*Server)

// WithRenderer selects the registered renderer used for form pages.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// WithTheme selects the theme and theme variant applied to form pages.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithLogger replaces the access and error logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOpenAPIOptions forwards options to the API description.
func WithOpenAPIOptions(options ...pkgopenapi.Option) Option {
	return func(s *Server) {
		s.openapiOptions = append(s.openapiOptions, options...)
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxBodyBytes = limit
		}
	}
}

// Server holds the HTTP handlers. It keeps no per-request state.
type Server struct {
	orch           *orchestrator.Orchestrator
	renderer       string
	themeName      string
	themeVariant   string
	logger         *log.Logger
	openapiOptions []pkgopenapi.Option
	maxBodyBytes   int64
	openapiJSON    []byte
}

// New builds a Server around orch. The API description is generated once.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if err := orch.Err(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		orch:         orch,
		logger:       log.New(os.Stderr, "", log.LstdFlags),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	doc, err := pkgopenapi.Describe(context.Background(), orch.Store(), orch.Builder(), s.openapiOptions...)
	if err != nil {
		return nil, fmt.Errorf("server: describe api: %w", err)
	}
	s.openapiJSON, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("server: encode api description: %w", err)
	}
	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /download", s.handleDownload)
	mux.HandleFunc("POST /api/certificates", s.handleAPI)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	return Chain(mux,
		RequestIDMiddleware,
		LoggingMiddleware(s.logger),
		RecoveryMiddleware(s.logger),
	)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(s.openapiJSON); err != nil {
		s.logger.Printf("write openapi: %v", err)
	}
}

func (s *Server) write(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

func (s *Server) limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, r)
}
