package identity_test

import (
	"context"
	"testing"

	"veridoc/internal/domain"
	"veridoc/internal/schema"
	"veridoc/internal/validator"
	"veridoc/internal/validator/identity"
)

// validPassportRecord returns a record that passes every common and passport
// rule: a two-part name, consistent ISO dates ten years apart, a recognized
// issuing country, and an 8-character passport number.
func validPassportRecord() *domain.DocumentRecord {
	return &domain.DocumentRecord{
		DocumentType: domain.DocumentTypePassport,
		EssentialFields: map[string]domain.ExtractedField{
			schema.FieldFullName:    domain.FieldValue("JANE ALICE DOE", 0.95),
			schema.FieldDateOfBirth: domain.FieldValue("1990-01-15", 0.93),
			schema.FieldSex:         domain.FieldValue("F", 0.90),
			schema.FieldAddress:     domain.FieldValue("12 MAPLE COURT SPRINGFIELD IL 62704", 0.88),
		},
		Metadata: map[string]domain.ExtractedField{
			schema.FieldPassportNumber: domain.FieldValue("P1234567", 0.94),
			schema.FieldCountryOfIssue: domain.FieldValue("USA", 0.96),
			schema.FieldDateOfIssue:    domain.FieldValue("2020-01-15", 0.91),
			schema.FieldDateOfExpiry:   domain.FieldValue("2030-01-15", 0.92),
			schema.FieldNationality:    domain.FieldValue("USA", 0.90),
			schema.FieldPlaceOfBirth:   domain.FieldValue("CHICAGO USA", 0.85),
		},
		ClassificationConfidence: 0.92,
	}
}

// validLicenseRecord returns a record that passes every common and license
// rule, physical descriptors included.
func validLicenseRecord() *domain.DocumentRecord {
	return &domain.DocumentRecord{
		DocumentType: domain.DocumentTypeLicense,
		EssentialFields: map[string]domain.ExtractedField{
			schema.FieldFullName:    domain.FieldValue("MICHAEL ROBERT CHEN", 0.96),
			schema.FieldDateOfBirth: domain.FieldValue("1985-06-02", 0.94),
			schema.FieldSex:         domain.FieldValue("M", 0.93),
			schema.FieldAddress:     domain.FieldValue("987 PINE STREET SACRAMENTO CA 95814", 0.90),
		},
		Metadata: map[string]domain.ExtractedField{
			schema.FieldDLNumber:     domain.FieldValue("D1234-5678-9012", 0.95),
			schema.FieldDateOfIssue:  domain.FieldValue("2022-03-10", 0.91),
			schema.FieldDateOfExpiry: domain.FieldValue("2027-03-10", 0.92),
			schema.FieldHeight:       domain.FieldValue(`5'10"`, 0.89),
			schema.FieldWeight:       domain.FieldValue("175 lbs", 0.88),
			schema.FieldEyeColor:     domain.FieldValue("BRN", 0.87),
			schema.FieldHairColor:    domain.FieldValue("BLK", 0.86),
			schema.FieldIssuingState: domain.FieldValue("CA", 0.94),
			schema.FieldClass:        domain.FieldValue("C", 0.93),
			schema.FieldRestrictions: domain.FieldValue("CORRECTIVE LENSES", 0.85),
			schema.FieldEndorsements: domain.FieldValue("NONE", 0.84),
		},
		ClassificationConfidence: 0.89,
	}
}

// validStateIDRecord returns a minimal auxiliary-ID record.
func validStateIDRecord() *domain.DocumentRecord {
	return &domain.DocumentRecord{
		DocumentType: domain.DocumentTypeStateID,
		EssentialFields: map[string]domain.ExtractedField{
			schema.FieldFullName:    domain.FieldValue("PRIYA NAIR", 0.94),
			schema.FieldDateOfBirth: domain.FieldValue("1998-11-23", 0.92),
			schema.FieldSex:         domain.FieldValue("F", 0.91),
			schema.FieldAddress:     domain.FieldValue("44 LAKEVIEW DRIVE AUSTIN TX 78701", 0.87),
		},
		Metadata: map[string]domain.ExtractedField{
			schema.FieldIDNumber:         domain.FieldValue("TX-99001122", 0.93),
			schema.FieldIssuingAuthority: domain.FieldValue("TEXAS DPS", 0.90),
			schema.FieldDateOfIssue:      domain.FieldValue("2023-05-01", 0.89),
			schema.FieldDateOfExpiry:     domain.FieldValue("2029-05-01", 0.88),
			schema.FieldIDType:           domain.FieldValue("State ID", 0.92),
		},
		ClassificationConfidence: 0.86,
	}
}

func findRule(docType domain.DocumentType, key string) validator.Rule {
	for _, r := range identity.RulesFor(docType) {
		if r.Key() == key {
			return r
		}
	}
	return nil
}

func check(t *testing.T, docType domain.DocumentType, key string, rec *domain.DocumentRecord) validator.Finding {
	t.Helper()
	rule := findRule(docType, key)
	if rule == nil {
		t.Fatalf("no rule registered under %q for %s", key, docType)
	}
	return rule.Check(context.Background(), rec)
}
