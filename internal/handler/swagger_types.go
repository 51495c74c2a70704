package handler

import (
	"veridoc/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Response Types ---

// ModelCatalog lists the available vision models and the configured
// per-stage defaults.
type ModelCatalog struct {
	Models   []domain.ModelInfo `json:"models"`
	Defaults StageDefaults      `json:"defaults"`
}

// StageDefaults names the default model for each pipeline stage.
type StageDefaults struct {
	Classification string `json:"classification" example:"accounts/fireworks/models/llama-v3p2-90b-vision-instruct"`
	Extraction     string `json:"extraction" example:"accounts/fireworks/models/qwen2p5-vl-32b-instruct"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// --- Extracted Document Shapes (for documentation) ---

// ExtractedFieldDoc documents a single extracted field.
type ExtractedFieldDoc struct {
	Value      *string `json:"value" example:"JOHN MICHAEL DOE"`
	Confidence float64 `json:"confidence" example:"0.93"`
}

// EssentialFieldsDoc documents the field set shared by every document type.
type EssentialFieldsDoc struct {
	FullName    ExtractedFieldDoc `json:"full_name"`
	DateOfBirth ExtractedFieldDoc `json:"date_of_birth"`
	Sex         ExtractedFieldDoc `json:"sex"`
	Address     ExtractedFieldDoc `json:"address"`
}

// PassportMetadataDoc documents passport-specific metadata fields.
type PassportMetadataDoc struct {
	PassportNumber ExtractedFieldDoc `json:"passport_number"`
	CountryOfIssue ExtractedFieldDoc `json:"country_of_issue"`
	DateOfIssue    ExtractedFieldDoc `json:"date_of_issue"`
	DateOfExpiry   ExtractedFieldDoc `json:"date_of_expiry"`
	Nationality    ExtractedFieldDoc `json:"nationality"`
	PlaceOfBirth   ExtractedFieldDoc `json:"place_of_birth"`
}

// LicenseMetadataDoc documents driver's-license-specific metadata fields.
type LicenseMetadataDoc struct {
	DLNumber     ExtractedFieldDoc `json:"dl_number"`
	DateOfIssue  ExtractedFieldDoc `json:"date_of_issue"`
	DateOfExpiry ExtractedFieldDoc `json:"date_of_expiry"`
	IssuingState ExtractedFieldDoc `json:"issuing_state"`
	Class        ExtractedFieldDoc `json:"class"`
	Restrictions ExtractedFieldDoc `json:"restrictions"`
	Endorsements ExtractedFieldDoc `json:"endorsements"`
	Height       ExtractedFieldDoc `json:"height"`
	Weight       ExtractedFieldDoc `json:"weight"`
	EyeColor     ExtractedFieldDoc `json:"eye_color"`
	HairColor    ExtractedFieldDoc `json:"hair_color"`
}
