// Package identity holds the built-in validation rules for extracted
// identity documents: checks shared by every document type plus the
// passport, driver's license, and auxiliary ID specific sets.
package identity

import (
	"context"

	"veridoc/internal/domain"
	"veridoc/internal/validator"
)

// rule is one named check over an extracted document record.
type rule struct {
	key      string
	name     string
	severity domain.Severity
	check    func(*domain.DocumentRecord) validator.Finding
}

func (r *rule) Key() string               { return r.key }
func (r *rule) Name() string              { return r.name }
func (r *rule) Severity() domain.Severity { return r.severity }

func (r *rule) Check(_ context.Context, rec *domain.DocumentRecord) validator.Finding {
	return r.check(rec)
}

// RulesFor returns the ordered rule set for a document type: the common
// essential-field rules followed by the type-specific ones. Types without
// their own set (including invalid) get only the common rules.
func RulesFor(t domain.DocumentType) []validator.Rule {
	rules := CommonRules()
	switch t {
	case domain.DocumentTypePassport:
		rules = append(rules, PassportRules()...)
	case domain.DocumentTypeLicense:
		rules = append(rules, LicenseRules()...)
	case domain.DocumentTypeStateID, domain.DocumentTypeCollegeID, domain.DocumentTypeOther:
		rules = append(rules, AuxiliaryRules(t)...)
	}
	return rules
}
