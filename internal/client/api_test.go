package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/cryvora/cryvora/internal/domain/analysis"
)

func TestAnalyzeURL_RejectsLocallyWithoutRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 1, time.Millisecond)
	_, err := api.AnalyzeURL(context.Background(), "not-a-url")
	require.ErrorIs(t, err, domain.ErrMalformedInput)
	require.Zero(t, atomic.LoadInt32(&hits), "invalid URLs must be rejected before any request is sent")
}

func TestAnalyzeURL_RetriesExactlyOnce(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "transient", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"risk":       "Safe",
			"details":    "URL is reachable. ",
			"confidence": 0,
		})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 1, 10*time.Millisecond)
	v, err := api.AnalyzeURL(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RiskSafe, v.Risk)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestAnalyzeURL_GivesUpAfterSingleRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 1, 10*time.Millisecond)
	_, err := api.AnalyzeURL(context.Background(), "https://example.com")
	require.Error(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits), "the blind retry runs exactly once")
}

func TestAnalyzeImage_SendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze-image", r.URL.Path)
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "scam.png", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"risk":       "Suspicious",
			"details":    "Image analyzed. Suspicious keywords found: free money. ",
			"confidence": 40,
		})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 1, time.Millisecond)
	v, err := api.AnalyzeImage(context.Background(), "scam.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	require.Equal(t, domain.RiskSuspicious, v.Risk)
	require.Equal(t, 40, v.Confidence)
}

func TestAnalyzeText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai-analyze", r.URL.Path)
		var body struct {
			Input    string `json:"input"`
			Platform string `json:"platform"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Telegram", body.Platform)

		_ = json.NewEncoder(w).Encode(domain.TextVerdict{
			Analysis: "Threat Detected",
			Action:   "Auto-blocked on Telegram",
		})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 1, time.Millisecond)
	tv, err := api.AnalyzeText(context.Background(), "send me your password", "Telegram")
	require.NoError(t, err)
	require.Equal(t, "Threat Detected", tv.Analysis)
	require.Equal(t, "Auto-blocked on Telegram", tv.Action)
}
