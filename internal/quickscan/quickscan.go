// Package quickscan is the provider-free approximation of the full URL
// pipeline: two regexes against the raw URL string, no network calls.
package quickscan

import (
	"regexp"

	domain "github.com/cryvora/cryvora/internal/domain/analysis"
)

var (
	// subdomain shapes like bank.login.fake.com
	phishingPattern      = regexp.MustCompile(`(?i)\b(?:login|bank|secure|account)\.[a-z]{2,}\.[a-z]{2,}`)
	suspiciousTLDPattern = regexp.MustCompile(`(?i)\.(xyz|top|club|info|biz)$`)
)

// Scan derives a two-level verdict with a fixed 0/50 confidence.
func Scan(rawURL string) domain.Verdict {
	v := domain.Verdict{Risk: domain.RiskSafe, Details: "Quick scan passed. "}

	if phishingPattern.MatchString(rawURL) {
		v.Risk = domain.RiskSuspicious
		v.Details += "Potential phishing pattern detected. "
	}
	if suspiciousTLDPattern.MatchString(rawURL) {
		v.Risk = domain.RiskSuspicious
		v.Details += "Suspicious TLD. "
	}
	if v.Risk == domain.RiskSuspicious {
		v.Confidence = 50
	}
	return v
}
