package ocrspace

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ocr-key", r.Header.Get("apikey"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "scam.png", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)

		require.Equal(t, "eng", r.FormValue("language"))
		require.Equal(t, "false", r.FormValue("isOverlayRequired"))

		w.Write([]byte(`{"ParsedResults": [{"ParsedText": "WIN PRIZE now"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "ocr-key")
	text, err := c.ParseImage(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "scam.png")
	require.NoError(t, err)
	require.Equal(t, "WIN PRIZE now", text)
}

func TestParseImage_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ParsedResults": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "ocr-key")
	_, err := c.ParseImage(context.Background(), []byte{0x1}, "x.png")
	require.Error(t, err)
}
