// Package cost prices model token usage and aggregates per-stage costs
// into a single report for a pipeline run.
package cost

import (
	"fmt"
	"sort"

	"veridoc/internal/domain"
)

// Model identifiers known to the built-in rate card.
const (
	ModelQwen25VL32B    = "accounts/fireworks/models/qwen2p5-vl-32b-instruct"
	ModelLlama90BVision = "accounts/fireworks/models/llama-v3p2-90b-vision-instruct"
	ModelLlama11BVision = "accounts/fireworks/models/llama-v3p2-11b-vision-instruct"
)

// Default per-stage model assignments. Classification favors speed,
// extraction favors accuracy.
const (
	DefaultClassificationModel = ModelLlama90BVision
	DefaultExtractionModel     = ModelQwen25VL32B
)

const currency = "USD"

// Pricing is the cost of one million tokens for one model, in USD.
type Pricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

type catalogEntry struct {
	id          string
	name        string
	speed       string
	description string
}

// Listed in preference order: most accurate first.
var builtinCatalog = []catalogEntry{
	{
		id:          ModelQwen25VL32B,
		name:        "Qwen 2.5 VL 32B",
		speed:       "slow",
		description: "Most accurate, slower processing",
	},
	{
		id:          ModelLlama90BVision,
		name:        "Llama 3.2 90B Vision Maverick",
		speed:       "medium",
		description: "Balanced speed and accuracy",
	},
	{
		id:          ModelLlama11BVision,
		name:        "Llama 3.2 11B Vision Scout",
		speed:       "fast",
		description: "Fastest, good for classification",
	},
}

var builtinRates = map[string]Pricing{
	ModelQwen25VL32B:    {InputPer1M: 0.90, OutputPer1M: 0.90},
	ModelLlama90BVision: {InputPer1M: 0.22, OutputPer1M: 0.88},
	ModelLlama11BVision: {InputPer1M: 0.15, OutputPer1M: 0.60},
}

// Accountant prices token usage against a per-model rate card.
type Accountant struct {
	rates map[string]Pricing
}

// NewAccountant builds an accountant carrying the built-in rate card,
// extended or overridden by any custom rates.
func NewAccountant(custom map[string]Pricing) *Accountant {
	rates := make(map[string]Pricing, len(builtinRates)+len(custom))
	for id, p := range builtinRates {
		rates[id] = p
	}
	for id, p := range custom {
		rates[id] = p
	}
	return &Accountant{rates: rates}
}

// Known reports whether the accountant can price the given model.
func (a *Accountant) Known(model string) bool {
	_, ok := a.rates[model]
	return ok
}

// Price computes the cost of one stage's token usage. A model absent from
// the rate card is an error, never a guessed rate.
func (a *Accountant) Price(model string, stage domain.Stage, usage domain.UsageStats) (domain.CostReport, error) {
	rate, ok := a.rates[model]
	if !ok {
		return domain.CostReport{}, fmt.Errorf("%w: %s", domain.ErrUnknownModel, model)
	}
	cost := float64(usage.PromptTokens)/1e6*rate.InputPer1M +
		float64(usage.CompletionTokens)/1e6*rate.OutputPer1M
	report := domain.CostReport{
		Currency:   currency,
		TotalCost:  cost,
		ModelsUsed: map[domain.Stage]string{stage: model},
	}
	switch stage {
	case domain.StageClassification:
		report.ClassificationCost = cost
	case domain.StageExtraction:
		report.ExtractionCost = cost
	default:
		return domain.CostReport{}, fmt.Errorf("cost.Price: unknown stage %q", stage)
	}
	return report, nil
}

// Aggregate folds per-stage reports into one. Stage costs add up exactly;
// the model map is the union of the inputs.
func Aggregate(reports ...domain.CostReport) domain.CostReport {
	out := domain.CostReport{
		Currency:   currency,
		ModelsUsed: make(map[domain.Stage]string),
	}
	for _, r := range reports {
		out.ClassificationCost += r.ClassificationCost
		out.ExtractionCost += r.ExtractionCost
		for stage, model := range r.ModelsUsed {
			out.ModelsUsed[stage] = model
		}
	}
	out.TotalCost = out.ClassificationCost + out.ExtractionCost
	return out
}

// Models lists every priceable model with its live rates. Built-in models
// keep their catalog order; custom-only models follow, sorted by ID.
func (a *Accountant) Models() []domain.ModelInfo {
	listed := make(map[string]bool, len(builtinCatalog))
	out := make([]domain.ModelInfo, 0, len(a.rates))
	for _, entry := range builtinCatalog {
		rate, ok := a.rates[entry.id]
		if !ok {
			continue
		}
		listed[entry.id] = true
		out = append(out, domain.ModelInfo{
			ID:              entry.id,
			Name:            entry.name,
			Speed:           entry.speed,
			Description:     entry.description,
			InputCostPer1M:  rate.InputPer1M,
			OutputCostPer1M: rate.OutputPer1M,
		})
	}
	extras := make([]domain.ModelInfo, 0, len(a.rates)-len(listed))
	for id, rate := range a.rates {
		if listed[id] {
			continue
		}
		extras = append(extras, domain.ModelInfo{
			ID:              id,
			Name:            id,
			InputCostPer1M:  rate.InputPer1M,
			OutputCostPer1M: rate.OutputPer1M,
		})
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].ID < extras[j].ID })
	return append(out, extras...)
}
