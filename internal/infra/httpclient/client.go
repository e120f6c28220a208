package httpclient

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// Client implements the Fetcher port with two transports: a bounded-timeout
// plain client for reachability, and a probe client that skips certificate
// validation. The insecure transport never leaks outside FetchInsecure.
type Client struct {
	plain    *http.Client
	insecure *http.Client
}

// New builds a Client. timeout bounds the plain fetch only; the insecure
// probe relies on the transport default.
func New(timeout time.Duration) *Client {
	return &Client{
		plain: &http.Client{Timeout: timeout},
		insecure: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (c *Client) Fetch(ctx context.Context, url string) (int, error) {
	return c.do(ctx, c.plain, url)
}

func (c *Client) FetchInsecure(ctx context.Context, url string) (int, error) {
	return c.do(ctx, c.insecure, url)
}

func (c *Client) do(ctx context.Context, hc *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, nil
}
