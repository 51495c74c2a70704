// Package schema defines the declarative field schemas for each identity
// document type: the essential fields shared by every document, plus the
// metadata fields specific to one type. Schemas are assembled once at
// startup and are read-only thereafter.
package schema

import (
	"fmt"

	"veridoc/internal/domain"
)

// FieldType is the semantic type of an extractable field.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeDate   FieldType = "date"
	FieldTypeEnum   FieldType = "enum"
)

// Scope names the schema a field belongs to: the shared essential schema
// or one document type's metadata schema.
type Scope string

// ScopeEssential marks fields common to all identity documents.
const ScopeEssential Scope = "essential"

// FieldSpec declares one extractable field. The description is forwarded
// to the model inside the extraction response schema.
type FieldSpec struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Scope       Scope     `json:"scope"`
	Enum        []string  `json:"enum,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Field names used across schemas, rules, and the pipeline.
const (
	FieldFullName    = "full_name"
	FieldDateOfBirth = "date_of_birth"
	FieldSex         = "sex"
	FieldAddress     = "address"

	FieldPassportNumber = "passport_number"
	FieldCountryOfIssue = "country_of_issue"
	FieldDateOfIssue    = "date_of_issue"
	FieldDateOfExpiry   = "date_of_expiry"
	FieldNationality    = "nationality"
	FieldPlaceOfBirth   = "place_of_birth"

	FieldDLNumber     = "dl_number"
	FieldHeight       = "height"
	FieldWeight       = "weight"
	FieldEyeColor     = "eye_color"
	FieldHairColor    = "hair_color"
	FieldIssuingState = "issuing_state"
	FieldClass        = "class"
	FieldRestrictions = "restrictions"
	FieldEndorsements = "endorsements"

	FieldIDNumber         = "id_number"
	FieldIssuingAuthority = "issuing_authority"
	FieldIDType           = "id_type"
)

// SexValues is the accepted enumeration for the sex field.
var SexValues = []string{"M", "F", "X"}

// Registry holds the essential schema and the metadata schema of every
// extractable document type. Safe for unsynchronized concurrent reads.
type Registry struct {
	essential []FieldSpec
	metadata  map[domain.DocumentType][]FieldSpec
}

// NewRegistry builds the fixed document schemas.
func NewRegistry() *Registry {
	return &Registry{
		essential: essentialFields(),
		metadata: map[domain.DocumentType][]FieldSpec{
			domain.DocumentTypePassport:  passportFields(),
			domain.DocumentTypeLicense:   licenseFields(),
			domain.DocumentTypeStateID:   auxiliaryFields(Scope(domain.DocumentTypeStateID)),
			domain.DocumentTypeCollegeID: auxiliaryFields(Scope(domain.DocumentTypeCollegeID)),
			domain.DocumentTypeOther:     auxiliaryFields(Scope(domain.DocumentTypeOther)),
		},
	}
}

// Essential returns the fields common to all identity documents.
func (r *Registry) Essential() []FieldSpec {
	return copySpecs(r.essential)
}

// Metadata returns the fields specific to the given document type. Types
// without a registered metadata schema (invalid) are a configuration error.
func (r *Registry) Metadata(t domain.DocumentType) ([]FieldSpec, error) {
	fields, ok := r.metadata[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocumentType, t)
	}
	return copySpecs(fields), nil
}

// Document returns the full flat schema for a document type: the essential
// fields composed with the type's metadata fields.
func (r *Registry) Document(t domain.DocumentType) ([]FieldSpec, error) {
	meta, err := r.Metadata(t)
	if err != nil {
		return nil, err
	}
	return Compose(r.essential, meta), nil
}

// Types lists the document types with a registered metadata schema.
func (r *Registry) Types() []domain.DocumentType {
	out := make([]domain.DocumentType, 0, len(r.metadata))
	for _, t := range domain.DocumentTypes {
		if _, ok := r.metadata[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Compose merges a base schema with a document type's additional fields.
// Composition only ever adds fields; it never removes or overrides the
// base, so every composed schema is inspectable as one flat list.
func Compose(base, extra []FieldSpec) []FieldSpec {
	out := make([]FieldSpec, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}

func copySpecs(fields []FieldSpec) []FieldSpec {
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out
}

func essentialFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldFullName, Type: FieldTypeString, Required: true, Scope: ScopeEssential,
			Description: "Full name as it appears on the document"},
		{Name: FieldDateOfBirth, Type: FieldTypeDate, Required: true, Scope: ScopeEssential,
			Description: "Date of birth in YYYY-MM-DD format"},
		{Name: FieldSex, Type: FieldTypeEnum, Required: true, Scope: ScopeEssential,
			Enum: SexValues, Description: "Sex as marked on the document"},
		{Name: FieldAddress, Type: FieldTypeString, Scope: ScopeEssential,
			Description: "Full address if visible anywhere on the document"},
	}
}

func passportFields() []FieldSpec {
	scope := Scope(domain.DocumentTypePassport)
	return []FieldSpec{
		{Name: FieldPassportNumber, Type: FieldTypeString, Required: true, Scope: scope,
			Description: "Passport number, usually an alphanumeric code"},
		{Name: FieldCountryOfIssue, Type: FieldTypeString, Required: true, Scope: scope,
			Description: "Issuing country"},
		{Name: FieldDateOfIssue, Type: FieldTypeDate, Required: true, Scope: scope,
			Description: "Issue date in YYYY-MM-DD format"},
		{Name: FieldDateOfExpiry, Type: FieldTypeDate, Required: true, Scope: scope,
			Description: "Expiry date in YYYY-MM-DD format"},
		{Name: FieldNationality, Type: FieldTypeString, Scope: scope,
			Description: "Holder nationality"},
		{Name: FieldPlaceOfBirth, Type: FieldTypeString, Scope: scope,
			Description: "Place of birth"},
	}
}

func licenseFields() []FieldSpec {
	scope := Scope(domain.DocumentTypeLicense)
	return []FieldSpec{
		{Name: FieldDLNumber, Type: FieldTypeString, Required: true, Scope: scope,
			Description: "Driver's license number"},
		{Name: FieldDateOfIssue, Type: FieldTypeDate, Scope: scope,
			Description: "Issue date in YYYY-MM-DD format"},
		{Name: FieldDateOfExpiry, Type: FieldTypeDate, Scope: scope,
			Description: "Expiry date in YYYY-MM-DD format"},
		{Name: FieldHeight, Type: FieldTypeString, Scope: scope,
			Description: "Height with units (ft/in or cm)"},
		{Name: FieldWeight, Type: FieldTypeString, Scope: scope,
			Description: "Weight with units (lbs or kg)"},
		{Name: FieldEyeColor, Type: FieldTypeString, Scope: scope,
			Description: "Eye color"},
		{Name: FieldHairColor, Type: FieldTypeString, Scope: scope,
			Description: "Hair color"},
		{Name: FieldIssuingState, Type: FieldTypeString, Scope: scope,
			Description: "Issuing state or authority"},
		{Name: FieldClass, Type: FieldTypeString, Scope: scope,
			Description: "License class (A, B, C, etc.)"},
		{Name: FieldRestrictions, Type: FieldTypeString, Scope: scope,
			Description: "Driving restrictions (corrective lenses, etc.)"},
		{Name: FieldEndorsements, Type: FieldTypeString, Scope: scope,
			Description: "License endorsements"},
	}
}

// auxiliaryFields covers the ID forms that vary too much to require
// anything: state IDs, college IDs, and other identity documents.
func auxiliaryFields(scope Scope) []FieldSpec {
	return []FieldSpec{
		{Name: FieldIDNumber, Type: FieldTypeString, Scope: scope,
			Description: "Any identification number found"},
		{Name: FieldIssuingAuthority, Type: FieldTypeString, Scope: scope,
			Description: "Organization or authority that issued the ID"},
		{Name: FieldDateOfIssue, Type: FieldTypeDate, Scope: scope,
			Description: "Issue date in YYYY-MM-DD format"},
		{Name: FieldDateOfExpiry, Type: FieldTypeDate, Scope: scope,
			Description: "Expiry date in YYYY-MM-DD format"},
		{Name: FieldIDType, Type: FieldTypeString, Scope: scope,
			Description: "Kind of ID (e.g. 'State ID', 'College ID', 'Employee ID')"},
	}
}
