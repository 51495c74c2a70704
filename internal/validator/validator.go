package validator

import (
	"context"

	"veridoc/internal/domain"
)

// Rule is the interface for a single built-in validation check. A rule
// produces exactly one finding per record; records the rule cannot judge
// (optional subject field absent) yield a passing finding with a skip
// message. Rules never return Go errors: bad input is a failing finding.
type Rule interface {
	Check(ctx context.Context, rec *domain.DocumentRecord) Finding
	Key() string
	Name() string
	Severity() domain.Severity
}

// Finding is the outcome of one rule check.
type Finding struct {
	Passed  bool
	Message string
}
