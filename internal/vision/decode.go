package vision

import (
	"encoding/json"
	"fmt"

	"veridoc/internal/domain"
	"veridoc/internal/port"
	"veridoc/internal/schema"
)

// DecodeClassification validates a classification payload against the
// classification schema and decodes it. Token usage is attached by the
// caller.
func DecodeClassification(content []byte) (*port.ClassifyOutput, error) {
	if err := ValidateResponse(schema.ClassificationSchema(), content); err != nil {
		return nil, err
	}
	var decoded struct {
		DocumentType string  `json:"document_type"`
		Confidence   float64 `json:"confidence"`
		Reasoning    string  `json:"reasoning"`
	}
	if err := json.Unmarshal(content, &decoded); err != nil {
		return nil, fmt.Errorf("decoding classification payload: %w", err)
	}
	t := domain.DocumentType(decoded.DocumentType)
	if !t.IsValid() {
		return nil, fmt.Errorf("classification returned unknown document type %q", decoded.DocumentType)
	}
	return &port.ClassifyOutput{
		DocumentType: t,
		Confidence:   decoded.Confidence,
		Reasoning:    decoded.Reasoning,
	}, nil
}

// DecodeExtraction validates an extraction payload against the request's
// response schema and decodes the field maps.
func DecodeExtraction(schemaMap map[string]any, content []byte) (*port.ExtractOutput, error) {
	if err := ValidateResponse(schemaMap, content); err != nil {
		return nil, err
	}
	var decoded struct {
		EssentialFields map[string]domain.ExtractedField `json:"essential_fields"`
		Metadata        map[string]domain.ExtractedField `json:"metadata"`
		ExtractionNotes string                           `json:"extraction_notes"`
	}
	if err := json.Unmarshal(content, &decoded); err != nil {
		return nil, fmt.Errorf("decoding extraction payload: %w", err)
	}
	return &port.ExtractOutput{
		Essential: decoded.EssentialFields,
		Metadata:  decoded.Metadata,
		Notes:     decoded.ExtractionNotes,
	}, nil
}
