package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-coagen/internal/config"
	"github.com/goliatone/go-coagen/internal/server"
	pkgopenapi "github.com/goliatone/go-coagen/pkg/openapi"
	"github.com/goliatone/go-coagen/pkg/orchestrator"
	"github.com/goliatone/go-coagen/pkg/output"
	"github.com/goliatone/go-coagen/pkg/render"
	"github.com/goliatone/go-coagen/pkg/renderers/vanilla"
	"github.com/goliatone/go-coagen/pkg/uischema"
)

func main() {
	var (
		configFlag    = flag.String("config", "", "YAML configuration file")
		addrFlag      = flag.String("addr", "", "HTTP listen address (overrides config)")
		variantsFlag  = flag.String("variants", "", "variant definitions directory (overrides config)")
		templatesFlag = flag.String("templates", "", "templates directory for the form page (overrides config)")
		themeFlag     = flag.String("theme-variant", "", "theme variant, e.g. light or contrast (overrides config)")
		uiFlag        = flag.String("ui", "", "form overlay directory (overrides config)")
		graceFlag     = flag.Duration("grace", 0, "shutdown grace period (overrides config)")
		noCompress    = flag.Bool("no-compress", false, "disable PDF stream compression")
	)
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}
	if *variantsFlag != "" {
		cfg.Variants.Dir = *variantsFlag
	}
	if *templatesFlag != "" {
		cfg.Server.Templates = *templatesFlag
	}
	if *themeFlag != "" {
		cfg.Theme.Variant = *themeFlag
	}
	if *uiFlag != "" {
		cfg.UI.Dir = *uiFlag
	}
	if *graceFlag > 0 {
		cfg.Server.Grace = *graceFlag
	}
	if *noCompress {
		cfg.Output.Compress = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gen, err := newOrchestrator(cfg)
	if err != nil {
		log.Fatalf("orchestrator: %v", err)
	}

	options := []server.Option{
		server.WithOpenAPIOptions(pkgopenapi.WithServerURL(cfg.Server.PublicURL)),
	}
	if !cfg.Theme.Disabled {
		options = append(options, server.WithTheme(cfg.Theme.Name, cfg.Theme.Variant))
	}
	srv, err := server.New(gen, options...)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s (variants %v, default %q)", cfg.Server.Addr, gen.Store().IDs(), gen.DefaultVariant())

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Grace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func newOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	serializerOptions, err := cfg.Output.SerializerOptions()
	if err != nil {
		return nil, err
	}

	renderer, err := vanilla.New(
		vanilla.WithTemplatesDir(cfg.Server.Templates),
		vanilla.WithDefaultStyles(),
	)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDispatcher(output.NewSerializer(serializerOptions...)),
	}
	if cfg.Variants.Dir != "" {
		options = append(options, orchestrator.WithVariantFS(os.DirFS(cfg.Variants.Dir)))
	}
	if cfg.Variants.Default != "" {
		options = append(options, orchestrator.WithDefaultVariant(cfg.Variants.Default))
	}
	if cfg.Theme.Disabled {
		options = append(options, orchestrator.WithoutTheme())
	}
	if cfg.UI.Dir != "" {
		overlays, err := uischema.LoadFS(os.DirFS(cfg.UI.Dir))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithUIDecorators(uischema.NewDecorator(overlays)))
	}

	gen := orchestrator.New(options...)
	if err := gen.Err(); err != nil {
		return nil, err
	}
	return gen, nil
}
