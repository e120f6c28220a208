// Package ipinfo resolves a hostname's apparent country via the ipinfo.io
// lookup API.
package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Client struct {
	Endpoint string
	Token    string

	// HTTPClient is optional, defaults to http.DefaultClient.
	HTTPClient *http.Client
}

func New(endpoint, token string) *Client {
	return &Client{Endpoint: endpoint, Token: token}
}

func (c *Client) Country(ctx context.Context, host string) (string, error) {
	u := fmt.Sprintf("%s/%s?token=%s", c.Endpoint, url.PathEscape(host), url.QueryEscape(c.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geolocation lookup for %s: status %d", host, resp.StatusCode)
	}

	var body struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geolocation response: %w", err)
	}
	if body.Country == "" {
		return "", fmt.Errorf("geolocation lookup for %s: no country in response", host)
	}
	return body.Country, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
