package identity

import (
	"strings"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
)

// LicenseRules returns the driver's license checks. A license needs a
// residential address even though the shared schema leaves it optional, so
// address presence is enforced here. Physical descriptors that were not
// extracted are flagged as failing warnings rather than skipped.
func LicenseRules() []validator.Rule {
	rules := []validator.Rule{
		&rule{
			key: "license.dl_number.present", name: "Required: License Number",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				if rec.Meta(schema.FieldDLNumber) == "" {
					return fail("License number is missing")
				}
				return pass("License number is present")
			},
		},
		&rule{
			key: "license.dl_number.length", name: "Format: License Number Length",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				num := rec.Meta(schema.FieldDLNumber)
				if num == "" {
					return pass("License number is absent, skipping length check")
				}
				clean := cleanIDNumber(num)
				if len(clean) >= 5 && len(clean) <= 20 {
					return pass("License number length is valid: %d characters", len(clean))
				}
				return fail("License number length is unusual: %d characters (expected 5-20)", len(clean))
			},
		},
		&rule{
			key: "license.address.present", name: "Required: Address",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				if strings.TrimSpace(rec.Essential(schema.FieldAddress)) == "" {
					return fail("Address is missing")
				}
				return pass("Address is present")
			},
		},
		&rule{
			key: "license.address.complete", name: "Format: Address Completeness",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				addr := strings.TrimSpace(rec.Essential(schema.FieldAddress))
				if addr == "" {
					return pass("Address is absent, skipping completeness check")
				}
				if len(addr) > 5 && len(strings.Fields(addr)) >= 2 {
					return pass("Address appears complete")
				}
				return fail("Address appears incomplete: %s", addr)
			},
		},
		&rule{
			key: "license.issuing_state.valid", name: "Format: Issuing State",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				state := rec.Meta(schema.FieldIssuingState)
				if state == "" {
					return pass("Issuing state is absent, skipping state check")
				}
				if recognizedUSState(state) {
					return pass("Issuing state is recognized: %s", state)
				}
				return fail("Issuing state is not recognized: %s", state)
			},
		},
		&rule{
			key: "license.height.format", name: "Format: Height",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				height := rec.Meta(schema.FieldHeight)
				if height == "" {
					return fail("Height was not extracted")
				}
				if matchesAny(height, heightPatterns) {
					return pass("Height format is valid: %s", height)
				}
				return fail("Height format may be invalid: %s", height)
			},
		},
		&rule{
			key: "license.weight.format", name: "Format: Weight",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				weight := rec.Meta(schema.FieldWeight)
				if weight == "" {
					return fail("Weight was not extracted")
				}
				if matchesAny(weight, weightPatterns) {
					return pass("Weight format is valid: %s", weight)
				}
				return fail("Weight format may be invalid: %s", weight)
			},
		},
	}
	return append(rules, dateRules(domain.DocumentTypeLicense, false)...)
}
