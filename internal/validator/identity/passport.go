package identity

import (
	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
)

// PassportRules returns the passport-specific checks. Passport issue and
// expiry dates are required fields, so their format checks fail when the
// dates are missing.
func PassportRules() []validator.Rule {
	rules := []validator.Rule{
		&rule{
			key: "passport.passport_number.present", name: "Required: Passport Number",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				if rec.Meta(schema.FieldPassportNumber) == "" {
					return fail("Passport number is missing")
				}
				return pass("Passport number is present")
			},
		},
		&rule{
			key: "passport.passport_number.length", name: "Format: Passport Number Length",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				num := rec.Meta(schema.FieldPassportNumber)
				if num == "" {
					return pass("Passport number is absent, skipping length check")
				}
				clean := cleanIDNumber(num)
				if len(clean) >= 6 && len(clean) <= 15 {
					return pass("Passport number length is valid: %d characters", len(clean))
				}
				return fail("Passport number length is unusual: %d characters (expected 6-15)", len(clean))
			},
		},
		&rule{
			key: "passport.country_of_issue.present", name: "Required: Country of Issue",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				if rec.Meta(schema.FieldCountryOfIssue) == "" {
					return fail("Country of issue is missing")
				}
				return pass("Country of issue is present")
			},
		},
		&rule{
			key: "passport.country_of_issue.valid", name: "Format: Country of Issue",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				country := rec.Meta(schema.FieldCountryOfIssue)
				if country == "" {
					return pass("Country of issue is absent, skipping country check")
				}
				if recognizedCountry(country) {
					return pass("Country of issue is recognized: %s", country)
				}
				return fail("Country of issue is not recognized: %s", country)
			},
		},
		&rule{
			key: "passport.nationality.valid", name: "Format: Nationality",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				nationality := rec.Meta(schema.FieldNationality)
				if nationality == "" {
					return pass("Nationality is absent, skipping country check")
				}
				if recognizedCountry(nationality) {
					return pass("Nationality is recognized: %s", nationality)
				}
				return fail("Nationality is not recognized: %s", nationality)
			},
		},
	}
	return append(rules, dateRules(domain.DocumentTypePassport, true)...)
}
