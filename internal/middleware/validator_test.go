package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/path?q=1",
		"HTTPS://EXAMPLE.COM",
	}
	for _, u := range valid {
		require.NoError(t, ValidateURL(u), "url %q", u)
	}

	invalid := []string{
		"",
		"example.com",
		"ftp://example.com",
		"https://",
		"http:// space.com",
		"https://exa mple.com",
	}
	for _, u := range invalid {
		require.Error(t, ValidateURL(u), "url %q", u)
	}
}

func TestValidatePlatform(t *testing.T) {
	require.NoError(t, ValidatePlatform("Twitter"))
	require.NoError(t, ValidatePlatform("My Platform_2"))
	require.Error(t, ValidatePlatform(""))
	require.Error(t, ValidatePlatform("bad<script>"))
}

func TestSanitizeString(t *testing.T) {
	require.Equal(t, "hello world", SanitizeString("  hello world  "))
	require.Equal(t, "ab", SanitizeString("a\x00b"))
	require.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
	require.Equal(t, "ab", SanitizeString("a\x07b"))
}

func TestValidateImageSize(t *testing.T) {
	require.NoError(t, ValidateImageSize(100, 1000))
	require.NoError(t, ValidateImageSize(100, 0)) // 0 disables the bound
	require.Error(t, ValidateImageSize(1001, 1000))
}
