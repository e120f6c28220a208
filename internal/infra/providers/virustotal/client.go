// Package virustotal is the two-phase reputation scan: submit a URL, poll
// the analysis later for the count of engines flagging it.
package virustotal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type Client struct {
	Endpoint string
	APIKey   string

	HTTPClient *http.Client
}

func New(endpoint, apiKey string) *Client {
	return &Client{Endpoint: endpoint, APIKey: apiKey}
}

// Submit enqueues a URL scan and returns the analysis id.
func (c *Client) Submit(ctx context.Context, target string) (string, error) {
	form := url.Values{"url": {target}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Endpoint+"/urls", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-apikey", c.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deep scan submit: status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode deep scan submit response: %w", err)
	}
	if out.Data.ID == "" {
		return "", fmt.Errorf("deep scan submit: empty analysis id")
	}
	return out.Data.ID, nil
}

// Result fetches the analysis and returns the malicious engine count.
func (c *Client) Result(ctx context.Context, scanID string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.Endpoint+"/analyses/"+url.PathEscape(scanID), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("x-apikey", c.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("deep scan result: status %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			Attributes struct {
				Stats struct {
					Malicious int `json:"malicious"`
				} `json:"stats"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode deep scan result: %w", err)
	}
	return out.Data.Attributes.Stats.Malicious, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
