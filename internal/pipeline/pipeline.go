// Package pipeline orchestrates the two-stage document understanding flow:
// classify the image, extract the fields of the classified type, validate
// the record, and price the token usage of both model calls.
package pipeline

import (
	"context"
	"log"
	"time"

	"veridoc/internal/cost"
	"veridoc/internal/domain"
	"veridoc/internal/port"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
)

const invalidDocumentMessage = "The uploaded image does not appear to be a valid identity document"

// Options tune a single pipeline run. Zero values fall back to the
// pipeline's configured defaults.
type Options struct {
	ClassificationModel string
	ExtractionModel     string
	MIMEType            string

	// RunValidations controls the validation stage; nil means on.
	RunValidations *bool
}

// Pipeline wires the model gateway, schema registry, cost accountant, and
// validation engine into one Process call. Safe for concurrent use; all
// collaborators are read-only after construction.
type Pipeline struct {
	gateway    port.ModelGateway
	registry   *schema.Registry
	accountant *cost.Accountant
	engine     *validator.Engine

	classificationModel string
	extractionModel     string
}

// New creates a Pipeline. Empty model defaults fall back to the accountant
// package's built-in stage defaults.
func New(
	gateway port.ModelGateway,
	registry *schema.Registry,
	accountant *cost.Accountant,
	engine *validator.Engine,
	classificationModel string,
	extractionModel string,
) *Pipeline {
	if classificationModel == "" {
		classificationModel = cost.DefaultClassificationModel
	}
	if extractionModel == "" {
		extractionModel = cost.DefaultExtractionModel
	}
	return &Pipeline{
		gateway:             gateway,
		registry:            registry,
		accountant:          accountant,
		engine:              engine,
		classificationModel: classificationModel,
		extractionModel:     extractionModel,
	}
}

// Defaults returns the configured per-stage default models.
func (p *Pipeline) Defaults() (classification, extraction string) {
	return p.classificationModel, p.extractionModel
}

// Process runs one image through the full pipeline. Documents classified as
// invalid short-circuit after classification and are priced for that stage
// only. Gateway failures abort the run as an InferenceError naming the
// stage; there are no partial results and no internal retries.
func (p *Pipeline) Process(ctx context.Context, image []byte, opts Options) (*domain.PipelineResult, error) {
	classModel := opts.ClassificationModel
	if classModel == "" {
		classModel = p.classificationModel
	}
	extractModel := opts.ExtractionModel
	if extractModel == "" {
		extractModel = p.extractionModel
	}
	mimeType := opts.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	classification, err := p.gateway.Classify(ctx, port.ClassifyInput{
		Image:    image,
		MIMEType: mimeType,
		Model:    classModel,
	})
	if err != nil {
		return nil, domain.NewInferenceError(domain.StageClassification, err)
	}
	log.Printf("pipeline.Process: classified as %s (confidence %.2f, model %s)",
		classification.DocumentType, classification.Confidence, classification.ModelUsed)

	classCost, err := p.accountant.Price(classification.ModelUsed, domain.StageClassification, classification.Usage)
	if err != nil {
		return nil, err
	}

	usage := domain.UsageBreakdown{
		Classification: classification.Usage,
		TotalTokens:    classification.Usage.TotalTokens,
	}

	if !classification.DocumentType.Extractable() {
		return &domain.PipelineResult{
			Status:                   domain.StatusInvalid,
			DocumentType:             classification.DocumentType,
			ClassificationConfidence: classification.Confidence,
			ClassificationReasoning:  classification.Reasoning,
			Message:                  invalidDocumentMessage,
			Cost:                     classCost,
			Usage:                    usage,
		}, nil
	}

	essential := p.registry.Essential()
	metadata, err := p.registry.Metadata(classification.DocumentType)
	if err != nil {
		return nil, err
	}

	extraction, err := p.gateway.Extract(ctx, port.ExtractInput{
		Image:        image,
		MIMEType:     mimeType,
		Model:        extractModel,
		DocumentType: classification.DocumentType,
		Essential:    essential,
		Metadata:     metadata,
	})
	if err != nil {
		return nil, domain.NewInferenceError(domain.StageExtraction, err)
	}

	essentialFields := normalizeFields(extraction.Essential, essential)
	metadataFields := normalizeFields(extraction.Metadata, metadata)

	record := &domain.DocumentRecord{
		DocumentType:             classification.DocumentType,
		EssentialFields:          essentialFields,
		Metadata:                 metadataFields,
		ClassificationConfidence: classification.Confidence,
	}

	var report *domain.ValidationReport
	if opts.RunValidations == nil || *opts.RunValidations {
		report = p.engine.Validate(ctx, record)
	}

	extractCost, err := p.accountant.Price(extraction.ModelUsed, domain.StageExtraction, extraction.Usage)
	if err != nil {
		return nil, err
	}

	usage.Extraction = extraction.Usage
	usage.TotalTokens = classification.Usage.TotalTokens + extraction.Usage.TotalTokens

	return &domain.PipelineResult{
		Status:                   domain.StatusSuccess,
		DocumentType:             classification.DocumentType,
		ClassificationConfidence: classification.Confidence,
		ClassificationReasoning:  classification.Reasoning,
		EssentialFields:          essentialFields,
		Metadata:                 metadataFields,
		Age:                      deriveAge(essentialFields),
		ExtractionNotes:          extraction.Notes,
		Validation:               report,
		Cost:                     cost.Aggregate(classCost, extractCost),
		Usage:                    usage,
	}, nil
}

// normalizeFields shapes a model's field map onto the schema's exact key
// set. Missing fields become null values with confidence 0, keys outside
// the schema are dropped, and confidence is clamped to [0, 1].
func normalizeFields(fields map[string]domain.ExtractedField, specs []schema.FieldSpec) map[string]domain.ExtractedField {
	out := make(map[string]domain.ExtractedField, len(specs))
	for _, spec := range specs {
		f, ok := fields[spec.Name]
		if !ok {
			out[spec.Name] = domain.ExtractedField{}
			continue
		}
		if f.Confidence < 0 {
			f.Confidence = 0
		}
		if f.Confidence > 1 {
			f.Confidence = 1
		}
		out[spec.Name] = f
	}
	return out
}

// deriveAge computes completed years since the extracted date of birth,
// or nil when the date is absent, unparseable, or in the future.
func deriveAge(essential map[string]domain.ExtractedField) *int {
	dob, err := time.Parse("2006-01-02", essential[schema.FieldDateOfBirth].StringValue())
	if err != nil {
		return nil
	}
	now := time.Now()
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return nil
	}
	return &age
}
