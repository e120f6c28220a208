package rdap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreationDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/domain/example.com", r.URL.Path)
		w.Write([]byte(`{
			"events": [
				{"eventAction": "expiration", "eventDate": "2026-08-13T04:00:00Z"},
				{"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	created, err := c.CreationDate(context.Background(), "example.com")
	require.NoError(t, err)
	require.Equal(t, time.Date(1995, 8, 14, 4, 0, 0, 0, time.UTC), created.UTC())
}

func TestCreationDate_NoRegistrationEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": [{"eventAction": "expiration", "eventDate": "2026-08-13T04:00:00Z"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreationDate(context.Background(), "example.com")
	require.Error(t, err)
}

func TestCreationDate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreationDate(context.Background(), "no-such-domain.test")
	require.Error(t, err)
}
