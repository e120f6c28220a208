// Package client is the dashboard side of the system: it validates input
// before any request is sent, calls the aggregation service, and keeps the
// local history/report/theme state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	domain "github.com/cryvora/cryvora/internal/domain/analysis"
	"github.com/cryvora/cryvora/internal/middleware"
)

// maxImageBytes mirrors the server-side multipart bound.
const maxImageBytes = 10 << 20

// API talks to the aggregation service. A whole-exchange failure triggers
// exactly one blind retry after RetryDelay; individual sub-check failures
// never surface here, the service folds those into the verdict.
type API struct {
	BaseURL    string
	HTTPClient *http.Client

	RetryCount int           // fixed at 1 in config; kept explicit
	RetryDelay time.Duration // fixed 2s delay, not a backoff
}

func NewAPI(baseURL string, retryCount int, retryDelay time.Duration) *API {
	return &API{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		RetryCount: retryCount,
		RetryDelay: retryDelay,
	}
}

// AnalyzeURL rejects invalid URLs locally, then posts to /analyze.
func (a *API) AnalyzeURL(ctx context.Context, rawURL string) (domain.Verdict, error) {
	if err := middleware.ValidateURL(rawURL); err != nil {
		return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	payload, _ := json.Marshal(map[string]string{"url": rawURL})
	var v domain.Verdict
	err := a.postWithRetry(ctx, "/analyze", "application/json", func() io.Reader {
		return bytes.NewReader(payload)
	}, &v)
	return v, err
}

// AnalyzeImage posts the image bytes as multipart field "image".
func (a *API) AnalyzeImage(ctx context.Context, filename string, image []byte) (domain.Verdict, error) {
	if len(image) == 0 {
		return domain.Verdict{}, fmt.Errorf("%w: select an image", domain.ErrMalformedInput)
	}
	if err := middleware.ValidateImageSize(int64(len(image)), maxImageBytes); err != nil {
		return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	body, contentType, err := encodeImageForm(filename, image)
	if err != nil {
		return domain.Verdict{}, err
	}

	var v domain.Verdict
	err = a.postWithRetry(ctx, "/analyze-image", contentType, func() io.Reader {
		return bytes.NewReader(body)
	}, &v)
	return v, err
}

// AnalyzeText posts free text plus a platform name to /ai-analyze.
func (a *API) AnalyzeText(ctx context.Context, input, platform string) (domain.TextVerdict, error) {
	if input == "" {
		return domain.TextVerdict{}, fmt.Errorf("%w: enter input for AI analysis", domain.ErrMalformedInput)
	}
	if err := middleware.ValidatePlatform(platform); err != nil {
		return domain.TextVerdict{}, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	payload, _ := json.Marshal(map[string]string{"input": input, "platform": platform})
	var tv domain.TextVerdict
	err := a.postWithRetry(ctx, "/ai-analyze", "application/json", func() io.Reader {
		return bytes.NewReader(payload)
	}, &tv)
	return tv, err
}

// postWithRetry performs the exchange, retrying the fixed number of times
// after the fixed delay. Retryable and permanent failures are treated alike.
func (a *API) postWithRetry(ctx context.Context, path, contentType string, body func() io.Reader, out any) error {
	var lastErr error
	for attempt := 0; attempt <= a.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(a.RetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = a.post(ctx, path, contentType, body(), out); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (a *API) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func encodeImageForm(filename string, image []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
