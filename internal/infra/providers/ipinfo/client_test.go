package ipinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/example.com", r.URL.Path)
		require.Equal(t, "tok-123", r.URL.Query().Get("token"))
		w.Write([]byte(`{"ip": "93.184.216.34", "country": "US"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	country, err := c.Country(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, "US", country)
}

func TestCountry_MissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ip": "10.0.0.1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Country(context.Background(), "internal.host")
	require.Error(t, err)
}
