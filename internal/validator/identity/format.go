package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"veridoc/internal/validator"
)

// dateLayout is the only accepted format for extracted dates.
const dateLayout = "2006-01-02"

var (
	nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]`)

	// 5'10", 5 ft 10 in, 170 cm
	heightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+'\s*\d+"`),
		regexp.MustCompile(`(?i)\d+\s*ft\s*\d*\s*in`),
		regexp.MustCompile(`(?i)\d+\s*cm`),
	}

	// 150 lbs, 70 kg
	weightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\s*lbs?`),
		regexp.MustCompile(`(?i)\d+\s*kg`),
	}
)

func pass(format string, args ...any) validator.Finding {
	return validator.Finding{Passed: true, Message: fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) validator.Finding {
	return validator.Finding{Passed: false, Message: fmt.Sprintf(format, args...)}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return t, err == nil
}

// cleanIDNumber uppercases and strips everything outside A-Z and 0-9, so
// length checks see only the significant characters.
func cleanIDNumber(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(s), "")
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func yearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / 365.25
}
