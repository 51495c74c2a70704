package identity

import (
	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
)

// AuxiliaryRules returns the lenient checks shared by state IDs, college
// IDs, and other identity documents. These forms vary too much to require
// specific fields, so everything beyond the dates is a warning. Rule keys
// are prefixed with the concrete document type.
func AuxiliaryRules(t domain.DocumentType) []validator.Rule {
	prefix := string(t)
	rules := []validator.Rule{
		&rule{
			key: prefix + ".metadata.present", name: "Required: Any Metadata",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				for _, f := range rec.Metadata {
					if f.StringValue() != "" {
						return pass("Some metadata fields were successfully extracted")
					}
				}
				return fail("No metadata could be extracted from this ID")
			},
		},
		&rule{
			key: prefix + ".id_type.identified", name: "Format: ID Type Identified",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				idType := rec.Meta(schema.FieldIDType)
				if idType == "" {
					return fail("ID type could not be identified")
				}
				return pass("ID type was identified: %s", idType)
			},
		},
	}
	return append(rules, dateRules(t, false)...)
}
