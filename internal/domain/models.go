package domain

// ExtractedField is a single field value read off a document, with the
// model's confidence in the reading. A field the model could not read
// carries a nil value and confidence 0. Never mutated after creation.
type ExtractedField struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
}

// StringValue returns the field value, or "" when the value is null.
func (f ExtractedField) StringValue() string {
	if f.Value == nil {
		return ""
	}
	return *f.Value
}

// FieldValue builds an ExtractedField from a literal value.
func FieldValue(value string, confidence float64) ExtractedField {
	return ExtractedField{Value: &value, Confidence: confidence}
}

// DocumentRecord is the unit of work produced by the extraction stage.
// Map keys are exactly the field names of the document type's schema;
// the record is immutable once assembled.
type DocumentRecord struct {
	DocumentType             DocumentType              `json:"document_type"`
	EssentialFields          map[string]ExtractedField `json:"essential_fields"`
	Metadata                 map[string]ExtractedField `json:"metadata"`
	ClassificationConfidence float64                   `json:"classification_confidence"`
}

// Essential returns the value of an essential field, "" when absent or null.
func (r *DocumentRecord) Essential(name string) string {
	return r.EssentialFields[name].StringValue()
}

// Meta returns the value of a metadata field, "" when absent or null.
func (r *DocumentRecord) Meta(name string) string {
	return r.Metadata[name].StringValue()
}

// ValidationResult is the outcome of one validation rule. Passing results
// carry severity info; failing results carry the rule's declared severity.
type ValidationResult struct {
	TestName string   `json:"test"`
	Severity Severity `json:"severity"`
	Passed   bool     `json:"passed"`
	Message  string   `json:"message"`
}

// ValidationReport aggregates the ordered rule outcomes for one record.
// AllTestsPassed is true iff no error-severity failure occurred; warnings
// do not block validity.
type ValidationReport struct {
	Results        []ValidationResult `json:"test_results"`
	Total          int                `json:"total_tests"`
	Passed         int                `json:"passed"`
	Failed         int                `json:"failed"`
	Errors         int                `json:"errors"`
	Warnings       int                `json:"warnings"`
	AllTestsPassed bool               `json:"all_tests_passed"`
}

// ErrorDetails returns the failing error-severity results.
func (r *ValidationReport) ErrorDetails() []ValidationResult {
	return r.failuresAt(SeverityError)
}

// WarningDetails returns the failing warning-severity results.
func (r *ValidationReport) WarningDetails() []ValidationResult {
	return r.failuresAt(SeverityWarning)
}

func (r *ValidationReport) failuresAt(sev Severity) []ValidationResult {
	var out []ValidationResult
	for _, res := range r.Results {
		if !res.Passed && res.Severity == sev {
			out = append(out, res)
		}
	}
	return out
}

// UsageStats counts the tokens consumed by one model call.
type UsageStats struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UsageBreakdown reports token consumption per pipeline stage.
type UsageBreakdown struct {
	Classification UsageStats `json:"classification"`
	Extraction     UsageStats `json:"extraction"`
	TotalTokens    int        `json:"total_tokens"`
}

// CostReport prices a pipeline run. Costs are exact (no rounding); the
// currency is always USD.
type CostReport struct {
	ClassificationCost float64          `json:"classification_cost"`
	ExtractionCost     float64          `json:"extraction_cost"`
	TotalCost          float64          `json:"total_cost"`
	Currency           string           `json:"currency"`
	ModelsUsed         map[Stage]string `json:"models_used"`
}

// ModelInfo describes a vision model available for classification or
// extraction, with its per-million-token pricing.
type ModelInfo struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Speed           string  `json:"speed"`
	Description     string  `json:"description"`
	InputCostPer1M  float64 `json:"input_cost_per_1m"`
	OutputCostPer1M float64 `json:"output_cost_per_1m"`
}

// PipelineResult is the single structure every presentation layer is built
// against. Invalid classifications carry only the classification fields and
// the classification-stage cost; successful runs carry the full record.
type PipelineResult struct {
	Status                   ResultStatus              `json:"status"`
	DocumentType             DocumentType              `json:"document_type"`
	ClassificationConfidence float64                   `json:"classification_confidence"`
	ClassificationReasoning  string                    `json:"classification_reasoning,omitempty"`
	Message                  string                    `json:"message,omitempty"`
	EssentialFields          map[string]ExtractedField `json:"essential_fields,omitempty"`
	Metadata                 map[string]ExtractedField `json:"metadata,omitempty"`
	Age                      *int                      `json:"age,omitempty"`
	ExtractionNotes          string                    `json:"extraction_notes,omitempty"`
	Validation               *ValidationReport         `json:"validation,omitempty"`
	Cost                     CostReport                `json:"cost"`
	Usage                    UsageBreakdown            `json:"usage"`
}

// Record rebuilds the DocumentRecord view of a successful result.
func (r *PipelineResult) Record() *DocumentRecord {
	return &DocumentRecord{
		DocumentType:             r.DocumentType,
		EssentialFields:          r.EssentialFields,
		Metadata:                 r.Metadata,
		ClassificationConfidence: r.ClassificationConfidence,
	}
}
