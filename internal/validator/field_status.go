package validator

import (
	"strings"

	"veridoc/internal/domain"
)

// FieldStatus is the computed review state for a single extracted field.
type FieldStatus struct {
	Status   domain.FieldReviewStatus `json:"status"`
	Messages []string                 `json:"messages"`
}

// ComputeFieldStatuses derives per-field review statuses from a validation
// report and the record it was produced for. Fields touched by at least one
// rule take their status from the rule outcomes: any failing error marks the
// field invalid, failing warnings mark it unsure. Fields no rule touched
// fall back to extraction confidence (at or below 0.5 is unsure).
func ComputeFieldStatuses(report *domain.ValidationReport, rec *domain.DocumentRecord) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)
	if rec == nil {
		return statuses
	}

	touched := make(map[string]bool)
	if report != nil {
		for _, result := range report.Results {
			for _, name := range targetFields(result.TestName, rec) {
				touched[name] = true
				fs := statuses[name]
				if fs == nil {
					fs = &FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
					statuses[name] = fs
				}
				if result.Passed {
					continue
				}
				if result.Severity == domain.SeverityError {
					fs.Status = domain.FieldStatusInvalid
				} else if fs.Status != domain.FieldStatusInvalid {
					fs.Status = domain.FieldStatusUnsure
				}
				fs.Messages = append(fs.Messages, result.Message)
			}
		}
	}

	confidence := func(name string, f domain.ExtractedField) {
		if touched[name] {
			return
		}
		status := domain.FieldStatusValid
		if f.Confidence <= 0.5 {
			status = domain.FieldStatusUnsure
		}
		statuses[name] = &FieldStatus{Status: status, Messages: []string{}}
	}
	for name, f := range rec.EssentialFields {
		confidence(name, f)
	}
	for name, f := range rec.Metadata {
		confidence(name, f)
	}

	return statuses
}

// targetFields resolves a rule key like "essential_fields.full_name.present"
// to the record fields it judges. The middle segment names the field; the
// composite "dates" segment targets both document dates, and group-level
// checks ("metadata") target no individual field.
func targetFields(testName string, rec *domain.DocumentRecord) []string {
	parts := strings.Split(testName, ".")
	if len(parts) < 3 {
		return nil
	}
	subject := parts[1]
	switch subject {
	case "metadata":
		return nil
	case "dates":
		targets := make([]string, 0, 2)
		for _, name := range []string{"date_of_issue", "date_of_expiry"} {
			if _, ok := rec.Metadata[name]; ok {
				targets = append(targets, name)
			}
		}
		return targets
	}
	if _, ok := rec.EssentialFields[subject]; ok {
		return []string{subject}
	}
	if _, ok := rec.Metadata[subject]; ok {
		return []string{subject}
	}
	return nil
}
