package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "veridoc/docs"
	"veridoc/internal/config"
	"veridoc/internal/cost"
	"veridoc/internal/handler"
	"veridoc/internal/pipeline"
	"veridoc/internal/port"
	"veridoc/internal/router"
	"veridoc/internal/schema"
	"veridoc/internal/service"
	s3storage "veridoc/internal/storage/s3"
	"veridoc/internal/validator"
	"veridoc/internal/validator/identity"
	"veridoc/internal/vision"
	"veridoc/internal/vision/fireworks"
	"veridoc/internal/vision/openai"
)

const version = "1.0.0"

// @title veridoc API
// @version 1.0
// @description Identity document extraction service: classify a document
// @description image, extract its fields with vision models, validate the
// @description record, and account for token cost.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	vision.RegisterProvider("fireworks", func(pc *config.GatewayProviderConfig) (port.ModelGateway, error) {
		return fireworks.NewClient(pc), nil
	})
	vision.RegisterProvider("openai", func(pc *config.GatewayProviderConfig) (port.ModelGateway, error) {
		return openai.NewClient(pc), nil
	})

	gateway, err := buildGateway(&cfg.Gateway)
	if err != nil {
		return fmt.Errorf("failed to initialize model gateway: %w", err)
	}

	// Optional image archive
	var storage port.ObjectStorage
	if cfg.Archive.Enabled() {
		storage, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("image archive enabled (bucket %s)", cfg.Archive.Bucket)
	}

	// Domain components
	registry := schema.NewRegistry()
	accountant := cost.NewAccountant(pricingOverrides(cfg.Models.Pricing))
	engine := buildValidator(registry)
	pipe := pipeline.New(gateway, registry, accountant, engine,
		cfg.Models.ClassificationModel, cfg.Models.ExtractionModel)

	// Services and handlers
	extractionSvc := service.NewExtractionService(pipe, accountant, storage, cfg.Upload, cfg.Archive)
	extractH := handler.NewExtractHandler(extractionSvc)
	healthH := handler.NewHealthHandler(version)

	r := router.Setup(extractH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutting down, draining in-flight requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// buildGateway wires the configured providers, wrapping them in a fallback
// gateway when a secondary is configured.
func buildGateway(cfg *config.GatewayConfig) (port.ModelGateway, error) {
	primaryCfg := cfg.PrimaryConfig()
	primary, err := vision.NewGateway(primaryCfg)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := vision.NewGateway(secondaryCfg)
	if err != nil {
		return nil, err
	}

	return vision.NewFallbackGateway(
		[]port.ModelGateway{primary, secondary},
		[]string{primaryCfg.Provider, secondaryCfg.Provider},
	), nil
}

// buildValidator registers every document type's rule set on a fresh
// validation engine.
func buildValidator(registry *schema.Registry) *validator.Engine {
	rules := validator.NewRegistry()
	for _, t := range registry.Types() {
		rules.Register(t, identity.RulesFor(t)...)
	}
	return validator.NewEngine(rules)
}

func pricingOverrides(overrides []config.ModelPricingOverride) map[string]cost.Pricing {
	if len(overrides) == 0 {
		return nil
	}
	rates := make(map[string]cost.Pricing, len(overrides))
	for _, o := range overrides {
		rates[o.Model] = cost.Pricing{InputPer1M: o.InputPer1M, OutputPer1M: o.OutputPer1M}
	}
	return rates
}
