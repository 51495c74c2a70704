package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator/identity"
)

func TestPassportRules_Count(t *testing.T) {
	assert.Len(t, identity.PassportRules(), 11)
}

func TestRulesFor_Passport(t *testing.T) {
	rules := identity.RulesFor(domain.DocumentTypePassport)

	assert.Len(t, rules, 19)
	// Common rules come first, type-specific ones after.
	assert.Equal(t, "essential_fields.full_name.present", rules[0].Key())
	assert.NotNil(t, findRule(domain.DocumentTypePassport, "passport.passport_number.present"))
	assert.NotNil(t, findRule(domain.DocumentTypePassport, "passport.dates.expiry_after_issue"))
}

func TestPassport_NumberPresent(t *testing.T) {
	rule := findRule(domain.DocumentTypePassport, "passport.passport_number.present")
	require.NotNil(t, rule)
	assert.Equal(t, domain.SeverityError, rule.Severity())

	t.Run("pass_present", func(t *testing.T) {
		finding := check(t, domain.DocumentTypePassport, "passport.passport_number.present", validPassportRecord())
		assert.True(t, finding.Passed)
	})

	t.Run("fail_missing", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldPassportNumber] = domain.ExtractedField{}
		finding := check(t, domain.DocumentTypePassport, "passport.passport_number.present", rec)
		assert.False(t, finding.Passed)
	})
}

func TestPassport_NumberLength(t *testing.T) {
	rule := findRule(domain.DocumentTypePassport, "passport.passport_number.length")
	require.NotNil(t, rule)
	assert.Equal(t, domain.SeverityWarning, rule.Severity())

	t.Run("pass_eight_chars", func(t *testing.T) {
		finding := check(t, domain.DocumentTypePassport, "passport.passport_number.length", validPassportRecord())
		assert.True(t, finding.Passed)
	})

	t.Run("pass_separators_ignored", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldPassportNumber] = domain.FieldValue("p-123 4567", 0.9)
		finding := check(t, domain.DocumentTypePassport, "passport.passport_number.length", rec)
		assert.True(t, finding.Passed)
	})

	t.Run("fail_too_short", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldPassportNumber] = domain.FieldValue("P12", 0.9)
		finding := check(t, domain.DocumentTypePassport, "passport.passport_number.length", rec)
		assert.False(t, finding.Passed)
	})

	t.Run("fail_too_long", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldPassportNumber] = domain.FieldValue("ABCDEFGH123456789", 0.9)
		finding := check(t, domain.DocumentTypePassport, "passport.passport_number.length", rec)
		assert.False(t, finding.Passed)
	})

	t.Run("skip_empty", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldPassportNumber] = domain.ExtractedField{}
		finding := check(t, domain.DocumentTypePassport, "passport.passport_number.length", rec)
		assert.True(t, finding.Passed)
	})
}

func TestPassport_CountryOfIssuePresent(t *testing.T) {
	rule := findRule(domain.DocumentTypePassport, "passport.country_of_issue.present")
	require.NotNil(t, rule)
	assert.Equal(t, domain.SeverityError, rule.Severity())

	t.Run("pass_present", func(t *testing.T) {
		finding := check(t, domain.DocumentTypePassport, "passport.country_of_issue.present", validPassportRecord())
		assert.True(t, finding.Passed)
	})

	t.Run("fail_missing", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldCountryOfIssue] = domain.ExtractedField{}
		finding := check(t, domain.DocumentTypePassport, "passport.country_of_issue.present", rec)
		assert.False(t, finding.Passed)
	})
}

func TestPassport_CountryOfIssueRecognized(t *testing.T) {
	rule := findRule(domain.DocumentTypePassport, "passport.country_of_issue.valid")
	require.NotNil(t, rule)
	assert.Equal(t, domain.SeverityWarning, rule.Severity())

	t.Run("pass_known_spellings", func(t *testing.T) {
		for _, country := range []string{"USA", "usa", "United Kingdom", " india ", "DEU"} {
			rec := validPassportRecord()
			rec.Metadata[schema.FieldCountryOfIssue] = domain.FieldValue(country, 0.9)
			finding := check(t, domain.DocumentTypePassport, "passport.country_of_issue.valid", rec)
			assert.True(t, finding.Passed, "country %q", country)
		}
	})

	t.Run("fail_unknown", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldCountryOfIssue] = domain.FieldValue("ATLANTIS", 0.9)
		finding := check(t, domain.DocumentTypePassport, "passport.country_of_issue.valid", rec)
		assert.False(t, finding.Passed)
	})

	t.Run("skip_empty", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldCountryOfIssue] = domain.ExtractedField{}
		finding := check(t, domain.DocumentTypePassport, "passport.country_of_issue.valid", rec)
		assert.True(t, finding.Passed)
	})
}

func TestPassport_NationalityRecognized(t *testing.T) {
	rule := findRule(domain.DocumentTypePassport, "passport.nationality.valid")
	require.NotNil(t, rule)
	assert.Equal(t, domain.SeverityWarning, rule.Severity())

	t.Run("pass_known", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldNationality] = domain.FieldValue("IND", 0.9)
		finding := check(t, domain.DocumentTypePassport, "passport.nationality.valid", rec)
		assert.True(t, finding.Passed)
	})

	t.Run("fail_unknown", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldNationality] = domain.FieldValue("MARTIAN", 0.9)
		finding := check(t, domain.DocumentTypePassport, "passport.nationality.valid", rec)
		assert.False(t, finding.Passed)
	})

	t.Run("skip_empty", func(t *testing.T) {
		rec := validPassportRecord()
		rec.Metadata[schema.FieldNationality] = domain.ExtractedField{}
		finding := check(t, domain.DocumentTypePassport, "passport.nationality.valid", rec)
		assert.True(t, finding.Passed)
	})
}
