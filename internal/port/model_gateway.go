package port

import (
	"context"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
)

// ClassifyInput carries one document image for type classification.
type ClassifyInput struct {
	Image    []byte
	MIMEType string
	Model    string
}

// ClassifyOutput is the model's judgment of the document type. An invalid
// document is a normal outcome carrying the model's reasoning. ModelUsed is
// the model the provider actually served the call with, which may differ
// from the requested one when a fallback provider substituted its own.
type ClassifyOutput struct {
	DocumentType domain.DocumentType
	Confidence   float64
	Reasoning    string
	ModelUsed    string
	Usage        domain.UsageStats
}

// ExtractInput carries a classified image plus the field schema the model
// must fill, split into the shared essential fields and the document
// type's metadata fields.
type ExtractInput struct {
	Image        []byte
	MIMEType     string
	Model        string
	DocumentType domain.DocumentType
	Essential    []schema.FieldSpec
	Metadata     []schema.FieldSpec
}

// ExtractOutput carries the extracted field maps, the model's notes about
// extraction quality, and token usage.
type ExtractOutput struct {
	Essential map[string]domain.ExtractedField
	Metadata  map[string]domain.ExtractedField
	Notes     string
	ModelUsed string
	Usage     domain.UsageStats
}

// ModelGateway abstracts vision-model document understanding.
type ModelGateway interface {
	Classify(ctx context.Context, input ClassifyInput) (*ClassifyOutput, error)
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
