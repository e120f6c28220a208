package analysis

import (
	"context"
	"time"
)

// Fetcher port (interface untuk probe HTTP)
type Fetcher interface {
	// Fetch issues a bounded-timeout GET and returns the status code.
	Fetch(ctx context.Context, url string) (int, error)
	// FetchInsecure issues a GET with certificate validation disabled.
	// Only the transport-security check may use it.
	FetchInsecure(ctx context.Context, url string) (int, error)
}

// Geolocator resolves a hostname's apparent country code.
type Geolocator interface {
	Country(ctx context.Context, host string) (string, error)
}

// RegistrationLookup exposes a domain's registration creation date.
type RegistrationLookup interface {
	CreationDate(ctx context.Context, domain string) (time.Time, error)
}

// Blocklist reports whether a full URL matches a known threat.
type Blocklist interface {
	Match(ctx context.Context, url string) (bool, error)
}

// DeepScanner is the two-phase submit-then-poll reputation API.
type DeepScanner interface {
	Submit(ctx context.Context, url string) (string, error)
	// Result returns the number of engines flagging the submitted URL.
	Result(ctx context.Context, scanID string) (int, error)
}

// OCRReader extracts text from image bytes.
type OCRReader interface {
	ParseImage(ctx context.Context, image []byte, filename string) (string, error)
}

// Classifier port (interface untuk model klasifikasi teks)
type Classifier interface {
	Classify(ctx context.Context, platform, input string) (string, error)
}
