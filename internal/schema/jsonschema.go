package schema

import (
	"veridoc/internal/domain"
)

// ClassificationSchema returns the JSON Schema constraining a document
// classification response.
func ClassificationSchema() map[string]any {
	types := make([]string, len(domain.DocumentTypes))
	for i, t := range domain.DocumentTypes {
		types[i] = string(t)
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type": map[string]any{
				"type":        "string",
				"enum":        types,
				"description": "Type of identity document",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence in the classification",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "Brief explanation of the classification decision",
			},
		},
		"required": []string{"document_type", "confidence"},
	}
}

// ResponseSchema returns the JSON Schema constraining an extraction
// response for the given document type: essential fields, the type's
// metadata fields, and free-text notes about extraction quality.
func (r *Registry) ResponseSchema(t domain.DocumentType) (map[string]any, error) {
	meta, err := r.Metadata(t)
	if err != nil {
		return nil, err
	}
	return ExtractionSchema(r.essential, meta), nil
}

// ExtractionSchema builds the extraction response schema from explicit
// field lists, for callers that hold FieldSpec slices rather than the
// registry.
func ExtractionSchema(essential, metadata []FieldSpec) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"essential_fields": fieldGroupSchema(essential),
			"metadata":         fieldGroupSchema(metadata),
			"extraction_notes": map[string]any{
				"type":        "string",
				"description": "Any issues encountered or notes about extraction quality",
			},
		},
		"required": []string{"essential_fields", "metadata"},
	}
}

func fieldGroupSchema(fields []FieldSpec) map[string]any {
	props := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		props[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	group := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		group["required"] = required
	}
	return group
}

// fieldSchema describes one extracted field: the raw value (null when the
// field is not visible on the document) plus the model's confidence in it.
func fieldSchema(f FieldSpec) map[string]any {
	value := map[string]any{
		"type": []string{"string", "null"},
	}
	if f.Description != "" {
		value["description"] = f.Description
	}
	if f.Type == FieldTypeEnum && len(f.Enum) > 0 {
		value["enum"] = enumWithNull(f.Enum)
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": value,
			"confidence": map[string]any{
				"type":    "number",
				"minimum": 0.0,
				"maximum": 1.0,
			},
		},
		"required": []string{"value", "confidence"},
	}
}

func enumWithNull(values []string) []any {
	out := make([]any, 0, len(values)+1)
	for _, v := range values {
		out = append(out, v)
	}
	return append(out, nil)
}
