package identity

import (
	"strings"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
)

// CommonRules returns the essential-field checks run for every document
// type, in report order.
func CommonRules() []validator.Rule {
	return []validator.Rule{
		&rule{
			key: "essential_fields.full_name.present", name: "Required: Full Name",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				name := strings.TrimSpace(rec.Essential(schema.FieldFullName))
				if name == "" {
					return fail("Full name is missing or empty")
				}
				return pass("Full name is present: %s", name)
			},
		},
		&rule{
			key: "essential_fields.full_name.format", name: "Format: Full Name",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				name := strings.TrimSpace(rec.Essential(schema.FieldFullName))
				if name == "" {
					return pass("Full name is empty, skipping format check")
				}
				parts := strings.Fields(name)
				if len(parts) >= 2 {
					return pass("Name has at least first and last name")
				}
				return fail("Name may be incomplete: only %d part(s) found", len(parts))
			},
		},
		&rule{
			key: "essential_fields.date_of_birth.present", name: "Required: Date of Birth",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				if rec.Essential(schema.FieldDateOfBirth) == "" {
					return fail("Date of birth is missing")
				}
				return pass("Date of birth is present")
			},
		},
		&rule{
			key: "essential_fields.date_of_birth.format", name: "Format: Date of Birth",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				dob := rec.Essential(schema.FieldDateOfBirth)
				if dob == "" {
					return pass("Date of birth is empty, skipping format check")
				}
				if _, ok := parseDate(dob); !ok {
					return fail("Date of birth format is invalid: %s (expected %s)", dob, dateLayout)
				}
				return pass("Date of birth is in valid format: %s", dob)
			},
		},
		&rule{
			key: "essential_fields.date_of_birth.past", name: "Dates: Birth in the Past",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				dob, ok := parseDate(rec.Essential(schema.FieldDateOfBirth))
				if !ok {
					return pass("Date of birth missing or unparseable, skipping")
				}
				if dob.Before(time.Now()) {
					return pass("Date of birth is in the past")
				}
				return fail("Date of birth is in the future")
			},
		},
		&rule{
			key: "essential_fields.date_of_birth.reasonable", name: "Dates: Reasonable Age",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				dob, ok := parseDate(rec.Essential(schema.FieldDateOfBirth))
				if !ok {
					return pass("Date of birth missing or unparseable, skipping")
				}
				age := yearsBetween(dob, time.Now())
				if age >= 1 && age <= 150 {
					return pass("Age is reasonable: ~%d years", int(age))
				}
				return fail("Age seems unreasonable: ~%d years", int(age))
			},
		},
		&rule{
			key: "essential_fields.sex.present", name: "Required: Sex",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				if rec.Essential(schema.FieldSex) == "" {
					return fail("Sex is missing")
				}
				return pass("Sex is present")
			},
		},
		&rule{
			key: "essential_fields.sex.valid", name: "Format: Sex",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				sex := rec.Essential(schema.FieldSex)
				if sex == "" {
					return pass("Sex is empty, skipping value check")
				}
				for _, v := range schema.SexValues {
					if sex == v {
						return pass("Sex is valid: %s", sex)
					}
				}
				return fail("Sex value is invalid: %s (expected M, F, or X)", sex)
			},
		},
	}
}
