// Package rdap looks up a domain's registration record and exposes its
// creation date. RDAP is the JSON successor to whois, same contract.
package rdap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	Endpoint string

	HTTPClient *http.Client
}

func New(endpoint string) *Client {
	return &Client{Endpoint: endpoint}
}

type event struct {
	Action string `json:"eventAction"`
	Date   string `json:"eventDate"`
}

func (c *Client) CreationDate(ctx context.Context, domain string) (time.Time, error) {
	u := fmt.Sprintf("%s/domain/%s", c.Endpoint, url.PathEscape(domain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return time.Time{}, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return time.Time{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("registration lookup for %s: status %d", domain, resp.StatusCode)
	}

	var body struct {
		Events []event `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("decode registration response: %w", err)
	}

	for _, ev := range body.Events {
		if ev.Action != "registration" {
			continue
		}
		t, err := time.Parse(time.RFC3339, ev.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse registration date %q: %w", ev.Date, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("registration lookup for %s: no registration event", domain)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
