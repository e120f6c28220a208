package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appanalysis "github.com/cryvora/cryvora/internal/application/analysis"
	"github.com/cryvora/cryvora/internal/middleware"
)

// stubProviders is the all-ports fake used to exercise the router without
// real collaborators.
type stubProviders struct {
	ocrText string
	aiErr   error
}

func (s *stubProviders) Fetch(ctx context.Context, url string) (int, error)         { return 200, nil }
func (s *stubProviders) FetchInsecure(ctx context.Context, url string) (int, error) { return 200, nil }
func (s *stubProviders) Country(ctx context.Context, host string) (string, error)   { return "US", nil }
func (s *stubProviders) CreationDate(ctx context.Context, domain string) (time.Time, error) {
	return time.Now().AddDate(-3, 0, 0), nil
}
func (s *stubProviders) Match(ctx context.Context, url string) (bool, error)     { return false, nil }
func (s *stubProviders) Submit(ctx context.Context, url string) (string, error)  { return "id-1", nil }
func (s *stubProviders) Result(ctx context.Context, scanID string) (int, error)  { return 0, nil }
func (s *stubProviders) Classify(ctx context.Context, platform, input string) (string, error) {
	if s.aiErr != nil {
		return "", s.aiErr
	}
	return "safe", nil
}
func (s *stubProviders) ParseImage(ctx context.Context, image []byte, filename string) (string, error) {
	return s.ocrText, nil
}

func newTestRouter(stub *stubProviders) http.Handler {
	svc := &appanalysis.Service{
		Fetcher:       stub,
		Geo:           stub,
		Registry:      stub,
		Blocklist:     stub,
		DeepScan:      stub,
		OCR:           stub,
		AI:            stub,
		Clock:         appanalysis.SystemClock{},
		DeepScanDelay: time.Millisecond,
	}
	return NewRouter(svc, nil)
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestRouter(&stubProviders{})

	body := bytes.NewBufferString(`{"url":"https://example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Risk       string `json:"risk"`
		Details    string `json:"details"`
		Confidence int    `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "Safe", out.Risk)
	require.Equal(t, 0, out.Confidence)
	require.Contains(t, out.Details, "URL is reachable. ")
}

func TestAnalyzeEndpoint_MalformedURL(t *testing.T) {
	h := newTestRouter(&stubProviders{})

	for _, raw := range []string{`{"url":"example.com"}`, `{"url":""}`} {
		req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", raw)
	}
}

func TestAnalyzeImageEndpoint_MissingField(t *testing.T) {
	h := newTestRouter(&stubProviders{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "no image here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "Error", out["risk"])
	require.Equal(t, "No image uploaded.", out["details"])
}

func TestAnalyzeImageEndpoint_KeywordMatch(t *testing.T) {
	h := newTestRouter(&stubProviders{ocrText: "free money inside"})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "scam.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Risk       string `json:"risk"`
		Details    string `json:"details"`
		Confidence int    `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "Suspicious", out.Risk)
	require.Equal(t, 40, out.Confidence)
	require.Contains(t, out.Details, "free money")
}

func TestAIAnalyzeEndpoint_ProviderFailure(t *testing.T) {
	h := newTestRouter(&stubProviders{aiErr: errors.New("model down")})

	body := strings.NewReader(`{"input":"you won a prize","platform":"Instagram"}`)
	req := httptest.NewRequest(http.MethodPost, "/ai-analyze", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "provider failure never surfaces as an HTTP error")

	var out struct {
		Analysis string `json:"analysis"`
		Action   string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "Analysis failed", out.Analysis)
	require.Equal(t, "Manual check recommended", out.Action)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestRouter(&stubProviders{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestReadyEndpoint_FailingChecker(t *testing.T) {
	stub := &stubProviders{}
	svc := &appanalysis.Service{
		Fetcher:       stub,
		Geo:           stub,
		Registry:      stub,
		Blocklist:     stub,
		DeepScan:      stub,
		OCR:           stub,
		AI:            stub,
		Clock:         appanalysis.SystemClock{},
		DeepScanDelay: time.Millisecond,
	}
	checkers := map[string]middleware.HealthChecker{
		"upstream": middleware.HealthCheckerFunc(func(ctx context.Context) error {
			return errors.New("unreachable")
		}),
	}
	h := NewRouter(svc, checkers)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var out struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "unhealthy", out.Status)
}
