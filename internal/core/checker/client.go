package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultLookupURL is the single-name profile endpoint; the name is appended as a path segment.
	DefaultLookupURL = "https://api.mojang.com/users/profiles/minecraft"
	// DefaultBatchURL accepts a JSON array of names and returns the existing profiles.
	DefaultBatchURL = "https://api.mojang.com/profiles/minecraft"
)

// Profile is a player profile returned by the lookup endpoints.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client issues raw requests against the profile API. Callers own the
// returned response and must close its body.
type Client struct {
	HTTP      *http.Client
	LookupURL string
	BatchURL  string
	UserAgent string
}

// LookupProfile requests the profile for a single name.
func (c *Client) LookupProfile(ctx context.Context, name string) (*http.Response, error) {
	endpoint := strings.TrimRight(c.lookupURL(), "/") + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	c.decorate(req)
	return c.httpClient().Do(req)
}

// LookupProfiles requests the profiles for a group of names in one call.
func (c *Client) LookupProfiles(ctx context.Context, names []string) (*http.Response, error) {
	payload, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("encode batch payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.batchURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req)
	return c.httpClient().Do(req)
}

func (c *Client) decorate(req *http.Request) {
	if c != nil && c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
}

func (c *Client) httpClient() *http.Client {
	if c != nil && c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) lookupURL() string {
	if c != nil && c.LookupURL != "" {
		return c.LookupURL
	}
	return DefaultLookupURL
}

func (c *Client) batchURL() string {
	if c != nil && c.BatchURL != "" {
		return c.BatchURL
	}
	return DefaultBatchURL
}
