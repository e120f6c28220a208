package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var urlPattern = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)

// ValidateURL checks the fixed URL pattern used by both the dashboard and
// the analysis pipeline: scheme prefix required, no whitespace.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	if !urlPattern.MatchString(rawURL) {
		return fmt.Errorf("invalid URL: must start with http:// or https://")
	}
	return nil
}

// ValidatePlatform restricts the platform name to a short identifier.
func ValidatePlatform(platform string) error {
	if platform == "" {
		return fmt.Errorf("platform cannot be empty")
	}
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9 _-]{1,64}$`, platform)
	if !matched {
		return fmt.Errorf("invalid platform name (alphanumeric, space, dash, underscore only, max 64 chars)")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateImageSize bounds uploads; 0 disables the check.
func ValidateImageSize(size, max int64) error {
	if max > 0 && size > max {
		return fmt.Errorf("image too large: %d bytes (max %d)", size, max)
	}
	return nil
}
