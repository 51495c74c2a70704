package identity

import (
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
)

// dateRules builds the issue/expiry checks shared by every dated document
// type. When required is false, an absent date skips its format check. The
// relationship checks skip unless both operands parse.
func dateRules(docType domain.DocumentType, required bool) []validator.Rule {
	prefix := string(docType)
	return []validator.Rule{
		&rule{
			key: prefix + ".date_of_issue.format", name: "Format: Issue Date",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				return dateFormatFinding("Date of issue", rec.Meta(schema.FieldDateOfIssue), required)
			},
		},
		&rule{
			key: prefix + ".date_of_expiry.format", name: "Format: Expiry Date",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				return dateFormatFinding("Date of expiry", rec.Meta(schema.FieldDateOfExpiry), required)
			},
		},
		&rule{
			key: prefix + ".dates.expiry_after_issue", name: "Dates: Expiry After Issue",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				issue, okIssue := parseDate(rec.Meta(schema.FieldDateOfIssue))
				expiry, okExpiry := parseDate(rec.Meta(schema.FieldDateOfExpiry))
				if !okIssue || !okExpiry {
					return pass("Issue or expiry date missing or unparseable, skipping")
				}
				if expiry.After(issue) {
					return pass("Expiry date is after issue date")
				}
				return fail("Expiry date (%s) is not after issue date (%s)",
					rec.Meta(schema.FieldDateOfExpiry), rec.Meta(schema.FieldDateOfIssue))
			},
		},
		&rule{
			key: prefix + ".dates.issue_after_birth", name: "Dates: Issue After Birth",
			severity: domain.SeverityError,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				issue, okIssue := parseDate(rec.Meta(schema.FieldDateOfIssue))
				dob, okDOB := parseDate(rec.Essential(schema.FieldDateOfBirth))
				if !okIssue || !okDOB {
					return pass("Issue date or date of birth missing or unparseable, skipping")
				}
				if issue.After(dob) {
					return pass("Issue date is after date of birth")
				}
				return fail("Issue date (%s) is not after date of birth (%s)",
					rec.Meta(schema.FieldDateOfIssue), rec.Essential(schema.FieldDateOfBirth))
			},
		},
		&rule{
			key: prefix + ".dates.validity_period", name: "Dates: Validity Period",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				issue, okIssue := parseDate(rec.Meta(schema.FieldDateOfIssue))
				expiry, okExpiry := parseDate(rec.Meta(schema.FieldDateOfExpiry))
				if !okIssue || !okExpiry {
					return pass("Issue or expiry date missing or unparseable, skipping")
				}
				years := yearsBetween(issue, expiry)
				if years >= 0.5 && years <= 20 {
					return pass("Document validity period is reasonable: ~%.1f years", years)
				}
				return fail("Document validity period seems unusual: ~%.1f years", years)
			},
		},
		&rule{
			key: prefix + ".dates.not_expired", name: "Dates: Not Expired",
			severity: domain.SeverityWarning,
			check: func(rec *domain.DocumentRecord) validator.Finding {
				expiry, ok := parseDate(rec.Meta(schema.FieldDateOfExpiry))
				if !ok {
					return pass("Expiry date missing or unparseable, skipping")
				}
				if expiry.After(time.Now()) {
					return pass("Document is not expired (expires %s)", rec.Meta(schema.FieldDateOfExpiry))
				}
				return fail("Document has expired (expired on %s)", rec.Meta(schema.FieldDateOfExpiry))
			},
		},
	}
}

func dateFormatFinding(label, value string, required bool) validator.Finding {
	if value == "" {
		if required {
			return fail("%s is missing", label)
		}
		return pass("%s is absent, skipping format check", label)
	}
	if _, ok := parseDate(value); !ok {
		return fail("%s format is invalid: %s (expected %s)", label, value, dateLayout)
	}
	return pass("%s is valid: %s", label, value)
}
