// Package safebrowsing submits a URL to the Google Safe Browsing
// threatMatches lookup and reports whether anything matched.
package safebrowsing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Client struct {
	Endpoint      string
	APIKey        string
	ClientID      string
	ClientVersion string

	HTTPClient *http.Client
}

func New(endpoint, apiKey, clientID, clientVersion string) *Client {
	return &Client{
		Endpoint:      endpoint,
		APIKey:        apiKey,
		ClientID:      clientID,
		ClientVersion: clientVersion,
	}
}

type lookupRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo struct {
		ThreatTypes      []string `json:"threatTypes"`
		PlatformTypes    []string `json:"platformTypes"`
		ThreatEntryTypes []string `json:"threatEntryTypes"`
		ThreatEntries    []struct {
			URL string `json:"url"`
		} `json:"threatEntries"`
	} `json:"threatInfo"`
}

func (c *Client) Match(ctx context.Context, target string) (bool, error) {
	var body lookupRequest
	body.Client.ClientID = c.ClientID
	body.Client.ClientVersion = c.ClientVersion
	body.ThreatInfo.ThreatTypes = []string{"MALWARE", "SOCIAL_ENGINEERING"}
	body.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	body.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	body.ThreatInfo.ThreatEntries = []struct {
		URL string `json:"url"`
	}{{URL: target}}

	payload, err := json.Marshal(body)
	if err != nil {
		return false, err
	}

	u := fmt.Sprintf("%s?key=%s", c.Endpoint, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("threat lookup: status %d", resp.StatusCode)
	}

	var out struct {
		Matches []json.RawMessage `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode threat lookup response: %w", err)
	}
	return len(out.Matches) > 0, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
