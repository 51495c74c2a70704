package validator

import (
	"context"
	"log"

	"veridoc/internal/domain"
)

// Engine runs a record's rule set and folds the findings into a report.
// Validation outcomes are data about the document: the engine never fails.
type Engine struct {
	registry *Registry
}

// NewEngine creates a validation engine over a populated registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate checks the record against the rules registered for its document
// type. A passing result carries severity info; a failing result carries
// the rule's declared severity. AllTestsPassed means no errors: failing
// warnings alone do not invalidate a document.
func (e *Engine) Validate(ctx context.Context, rec *domain.DocumentRecord) *domain.ValidationReport {
	rules := e.registry.RulesFor(rec.DocumentType)

	report := &domain.ValidationReport{
		Results: make([]domain.ValidationResult, 0, len(rules)),
	}
	for _, rule := range rules {
		finding := rule.Check(ctx, rec)
		severity := domain.SeverityInfo
		if !finding.Passed {
			severity = rule.Severity()
		}
		report.Results = append(report.Results, domain.ValidationResult{
			TestName: rule.Key(),
			Severity: severity,
			Passed:   finding.Passed,
			Message:  finding.Message,
		})
		if finding.Passed {
			report.Passed++
			continue
		}
		switch rule.Severity() {
		case domain.SeverityError:
			report.Errors++
		default:
			report.Warnings++
		}
	}
	report.Total = len(report.Results)
	report.Failed = report.Total - report.Passed
	report.AllTestsPassed = report.Errors == 0

	log.Printf("validator.Engine: %s validated (total=%d passed=%d errors=%d warnings=%d)",
		rec.DocumentType, report.Total, report.Passed, report.Errors, report.Warnings)
	return report
}
