// Command batch runs the extraction pipeline over a directory of identity
// document images and writes the results to an XLSX workbook.
// Usage: go run ./cmd/batch -dir ./scans
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"veridoc/internal/config"
	"veridoc/internal/cost"
	"veridoc/internal/domain"
	"veridoc/internal/export"
	"veridoc/internal/pipeline"
	"veridoc/internal/port"
	"veridoc/internal/schema"
	"veridoc/internal/service"
	"veridoc/internal/validator"
	"veridoc/internal/validator/identity"
	"veridoc/internal/vision"
	"veridoc/internal/vision/fireworks"
	"veridoc/internal/vision/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		dir          = flag.String("dir", "", "directory of document images to process (required)")
		out          = flag.String("out", "", "output XLSX path (default: {dir name}_{date}.xlsx next to the directory)")
		classModel   = flag.String("classification-model", "", "override the classification model")
		extractModel = flag.String("extraction-model", "", "override the extraction model")
		concurrency  = flag.Int("concurrency", 0, "parallel workers (default from config)")
		noValidate   = flag.Bool("no-validate", false, "skip validation rules")
	)
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		return fmt.Errorf("-dir is required")
	}

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

	registry := schema.NewRegistry()
	accountant := cost.NewAccountant(pricingOverrides(cfg.Models.Pricing))
	engine := buildValidator(registry)
	pipe := pipeline.New(gateway, registry, accountant, engine,
		cfg.Models.ClassificationModel, cfg.Models.ExtractionModel)

	// No archival for local batch runs
	svc := service.NewExtractionService(pipe, accountant, nil, cfg.Upload, cfg.Archive)

	files, err := listImages(*dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no document images found in %s", *dir)
	}

	opts := pipeline.Options{
		ClassificationModel: *classModel,
		ExtractionModel:     *extractModel,
	}
	if *noValidate {
		off := false
		opts.RunValidations = &off
	}

	workers := cfg.Batch.Concurrency
	if *concurrency > 0 {
		workers = *concurrency
	}
	timeout := time.Duration(cfg.Batch.TimeoutSecs) * time.Second

	log.Printf("batch: processing %d files from %s (concurrency=%d, timeout=%s)",
		len(files), *dir, workers, timeout)

	rows := make([]export.Row, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, name := range files {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }() // release

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			rows[i] = processFile(ctx, svc, filepath.Join(*dir, name), opts)
			if rows[i].Err != nil {
				log.Printf("WARN: %s: %v", name, rows[i].Err)
			}
		}(i, name)
	}
	wg.Wait()

	extracted, invalid, failed := 0, 0, 0
	reports := make([]domain.CostReport, 0, len(rows))
	for i := range rows {
		switch {
		case rows[i].Err != nil:
			failed++
		case rows[i].Result.Status == domain.StatusInvalid:
			invalid++
			reports = append(reports, rows[i].Result.Cost)
		default:
			extracted++
			reports = append(reports, rows[i].Result.Cost)
		}
	}
	total := cost.Aggregate(reports...)

	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), export.BuildFilename(filepath.Base(*dir)))
	}
	if err := export.WriteWorkbook(*out, rows); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	log.Printf("Batch complete: %d extracted, %d invalid, %d failed, total cost $%.6f",
		extracted, invalid, failed, total.TotalCost)
	log.Printf("Results written to %s", *out)
	return nil
}

// listImages returns the names of supported image files in dir, sorted.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name())), ".")
		if _, ok := domain.AllowedExtensions[ext]; ok {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func processFile(ctx context.Context, svc service.ExtractionService, path string, opts pipeline.Options) export.Row {
	name := filepath.Base(path)

	image, err := os.ReadFile(path)
	if err != nil {
		return export.Row{Filename: name, Err: fmt.Errorf("reading file: %w", err)}
	}

	res, err := svc.Extract(ctx, service.ExtractionInput{Image: image, Filename: name, Options: opts})
	if err != nil {
		return export.Row{Filename: name, Err: err}
	}
	return export.Row{Filename: name, Result: res}
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
