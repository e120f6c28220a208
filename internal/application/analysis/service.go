package analysis

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/cryvora/cryvora/internal/domain/analysis"
)

// Service implements use-cases untuk analisis
// Each call computes an independent verdict; the service holds no mutable
// state and is safe for concurrent use.
type Service struct {
	Fetcher   domain.Fetcher
	Geo       domain.Geolocator
	Registry  domain.RegistrationLookup
	Blocklist domain.Blocklist
	DeepScan  domain.DeepScanner
	OCR       domain.OCRReader
	AI        domain.Classifier
	Clock     Clock

	// DeepScanDelay is how long the detached poll waits before fetching the
	// deep-scan result. Defaults to 10s.
	DeepScanDelay time.Duration
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

var (
	urlPattern = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)

	suspiciousTLDs = map[string]bool{".xyz": true, ".top": true, ".club": true}
	riskyCountries = map[string]bool{"CN": true, "RU": true, "IR": true}

	scamKeywords = []string{"urgent", "win prize", "free money", "click here", "password required"}
)

const (
	deltaTLD         = 20
	deltaNoTLS       = 15
	deltaGeo         = 10
	deltaYoungDomain = 25
	deltaUnreachable = 10
	deltaBlocklist   = 40
	deltaKeywords    = 40

	youngDomainDays = 30

	maliciousThreshold  = 50
	suspiciousThreshold = 20
)

//
// ==== USE CASES ====
//

// AnalyzeURL runs the six sub-checks in a fixed order and folds their
// outcomes into one verdict. A failing provider degrades to a zero-weight
// label; only malformed input is rejected, and that happens before any
// provider is contacted.
func (s *Service) AnalyzeURL(ctx context.Context, rawURL string) (domain.Verdict, error) {
	if !urlPattern.MatchString(rawURL) {
		return domain.Verdict{}, fmt.Errorf("%w: url must start with http:// or https://", domain.ErrMalformedInput)
	}

	v := domain.Verdict{
		ID:         newVerdictID(),
		Risk:       domain.RiskSafe,
		AnalyzedAt: s.Clock.Now(),
	}

	v.Fold(s.checkTLD(rawURL))
	v.Fold(s.checkTransport(ctx, rawURL))
	v.Fold(s.checkGeolocation(ctx, rawURL))
	v.Fold(s.checkDomainAge(ctx, rawURL))
	v.Fold(s.checkReachability(ctx, rawURL))
	v.Fold(s.checkBlocklist(ctx, rawURL))
	v.Fold(s.submitDeepScan(ctx, rawURL))

	// Threshold pass escalates only. Confidence is an unclamped sum, so a
	// blocklist-forced Malicious can sit next to a low number; that mismatch
	// is kept as-is.
	if v.Confidence > maliciousThreshold {
		v.Risk = domain.RiskMalicious
	} else if v.Confidence > suspiciousThreshold {
		v.Risk = v.Risk.Escalate(domain.RiskSuspicious)
	}

	return v, nil
}

// AnalyzeImage OCRs the upload and scans the extracted text for scam
// keywords. OCR failure degrades to a neutral label.
func (s *Service) AnalyzeImage(ctx context.Context, image []byte, filename string) (domain.Verdict, error) {
	if len(image) == 0 {
		return domain.Verdict{}, fmt.Errorf("%w: no image uploaded", domain.ErrMalformedInput)
	}

	v := domain.Verdict{
		ID:         newVerdictID(),
		Risk:       domain.RiskSafe,
		Details:    "Image analyzed. ",
		AnalyzedAt: s.Clock.Now(),
	}

	text, err := s.OCR.ParseImage(ctx, image, filename)
	if err != nil {
		v.Fold(domain.CheckOutcome{Label: "OCR scan failed. ", Failed: true})
		return v, nil
	}

	v.Fold(domain.CheckOutcome{Label: fmt.Sprintf("Extracted text: %s... ", truncate(text, 100))})

	lower := strings.ToLower(text)
	var found []string
	for _, kw := range scamKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	if len(found) > 0 {
		v.Fold(domain.CheckOutcome{
			Label:     fmt.Sprintf("Suspicious keywords found: %s. ", strings.Join(found, ", ")),
			RiskDelta: deltaKeywords,
			Risk:      domain.RiskSuspicious,
		})
	} else {
		v.Fold(domain.CheckOutcome{Label: "No suspicious keywords detected. "})
	}

	return v, nil
}

// AnalyzeText submits a classification prompt and maps the model output to a
// verdict and an action. Provider failure is never surfaced as an error.
func (s *Service) AnalyzeText(ctx context.Context, input, platform string) (domain.TextVerdict, error) {
	out, err := s.AI.Classify(ctx, platform, input)
	if err != nil {
		return domain.TextVerdict{Analysis: "Analysis failed", Action: "Manual check recommended"}, nil
	}

	lower := strings.ToLower(out)
	if strings.Contains(lower, "threat") || strings.Contains(lower, "phishing") {
		return domain.TextVerdict{
			Analysis: "Threat Detected",
			Action:   fmt.Sprintf("Auto-blocked on %s", platform),
		}, nil
	}
	return domain.TextVerdict{Analysis: "Safe", Action: "Allowed"}, nil
}

//
// ==== SUB-CHECKS ====
//

// checkTLD compares the tail of the raw URL string against the suspicious
// TLD set. The comparison is string-level, so a trailing path defeats it.
func (s *Service) checkTLD(rawURL string) domain.CheckOutcome {
	if i := strings.LastIndex(rawURL, "."); i >= 0 && suspiciousTLDs[strings.ToLower(rawURL[i:])] {
		return domain.CheckOutcome{
			Label:     "Suspicious TLD detected. ",
			RiskDelta: deltaTLD,
			Risk:      domain.RiskSuspicious,
		}
	}
	return domain.CheckOutcome{}
}

// checkTransport probes the URL with certificate validation disabled, then
// scores the original scheme. The probe failing is suspicious by itself but
// carries no points.
func (s *Service) checkTransport(ctx context.Context, rawURL string) domain.CheckOutcome {
	if _, err := s.Fetcher.FetchInsecure(ctx, rawURL); err != nil {
		return domain.CheckOutcome{Label: "SSL check failed. ", Failed: true, Risk: domain.RiskSuspicious}
	}
	if !strings.HasPrefix(rawURL, "https://") {
		return domain.CheckOutcome{
			Label:     "No SSL certificate (not HTTPS). ",
			RiskDelta: deltaNoTLS,
			Risk:      domain.RiskSuspicious,
		}
	}
	return domain.CheckOutcome{Label: "SSL certificate valid. "}
}

func (s *Service) checkGeolocation(ctx context.Context, rawURL string) domain.CheckOutcome {
	host, err := hostname(rawURL)
	if err != nil {
		return domain.CheckOutcome{Label: "Geolocation unavailable. ", Failed: true}
	}
	country, err := s.Geo.Country(ctx, host)
	if err != nil {
		return domain.CheckOutcome{Label: "Geolocation unavailable. ", Failed: true}
	}

	label := fmt.Sprintf("Server location: %s. ", country)
	if riskyCountries[country] {
		return domain.CheckOutcome{
			Label:     label + "Suspicious server location. ",
			RiskDelta: deltaGeo,
			Risk:      domain.RiskSuspicious,
		}
	}
	return domain.CheckOutcome{Label: label}
}

func (s *Service) checkDomainAge(ctx context.Context, rawURL string) domain.CheckOutcome {
	host, err := hostname(rawURL)
	if err != nil {
		return domain.CheckOutcome{Label: "Could not check domain age. ", Failed: true}
	}
	created, err := s.Registry.CreationDate(ctx, host)
	if err != nil || created.IsZero() {
		return domain.CheckOutcome{Label: "Could not check domain age. ", Failed: true}
	}

	ageDays := int(s.Clock.Now().Sub(created).Hours() / 24)
	if ageDays < youngDomainDays {
		return domain.CheckOutcome{
			Label:     fmt.Sprintf("Domain is only %d days old. ", ageDays),
			RiskDelta: deltaYoungDomain,
			Risk:      domain.RiskSuspicious,
		}
	}
	return domain.CheckOutcome{Label: fmt.Sprintf("Domain age: %d days. ", ageDays)}
}

// checkReachability is the only sub-check whose network failure still
// contributes points: an unreachable URL is a signal, not a provider outage.
func (s *Service) checkReachability(ctx context.Context, rawURL string) domain.CheckOutcome {
	status, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return domain.CheckOutcome{
			Label:     "URL is not reachable. ",
			RiskDelta: deltaUnreachable,
			Failed:    true,
			Risk:      domain.RiskSuspicious,
		}
	}
	if status != 200 {
		return domain.CheckOutcome{
			Label:     "URL is not reachable or returns error. ",
			RiskDelta: deltaUnreachable,
			Risk:      domain.RiskSuspicious,
		}
	}
	return domain.CheckOutcome{Label: "URL is reachable. "}
}

// checkBlocklist forces Malicious on a match, independent of the running
// total. The later threshold pass never lowers it.
func (s *Service) checkBlocklist(ctx context.Context, rawURL string) domain.CheckOutcome {
	matched, err := s.Blocklist.Match(ctx, rawURL)
	if err != nil {
		return domain.CheckOutcome{Label: "API check failed. ", Failed: true}
	}
	if matched {
		return domain.CheckOutcome{
			Label:     "Flagged by Google Safe Browsing. ",
			RiskDelta: deltaBlocklist,
			Risk:      domain.RiskMalicious,
		}
	}
	return domain.CheckOutcome{Label: "API check passed. "}
}

// submitDeepScan dispatches the reputation scan and walks away. The poll
// runs after the response is long gone; its result is logged and dropped,
// never merged into the returned verdict.
func (s *Service) submitDeepScan(ctx context.Context, rawURL string) domain.CheckOutcome {
	scanID, err := s.DeepScan.Submit(ctx, rawURL)
	if err != nil {
		return domain.CheckOutcome{Label: "VirusTotal scan unavailable. ", Failed: true}
	}

	delay := s.DeepScanDelay
	if delay <= 0 {
		delay = 10 * time.Second
	}

	// 🚀 Jalankan di background, biar jalan sampai selesai
	go func() {
		time.Sleep(delay)

		pollCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		positives, err := s.DeepScan.Result(pollCtx, scanID)
		if err != nil {
			log.Printf("deep scan %s unavailable: %v", scanID, err)
			return
		}
		if positives > 0 {
			log.Printf("deep scan %s: %d engines flagged malicious", scanID, positives)
		} else {
			log.Printf("deep scan %s: clean", scanID)
		}
	}()

	return domain.CheckOutcome{}
}

//
// ==== HELPERS ====
//

func newVerdictID() domain.VerdictID {
	return domain.VerdictID(uuid.New().String())
}

func hostname(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
