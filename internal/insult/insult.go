package insult

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultURL = "https://quandyfactory.com/insult/json"

var (
	ErrNoName        = errors.New("no one to insult")
	ErrUnexpectedAPI = errors.New("unexpected insult response")
)

type Client struct {
	url  string
	http *http.Client
}

type Option func(*Client)

func WithURL(u string) Option {
	return func(c *Client) {
		c.url = u
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		url:  DefaultURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Insult fetches a random insult and addresses it to name.
func (c *Client) Insult(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNoName
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch insult: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedAPI, resp.Status)
	}

	var body struct {
		Insult string `json:"insult"`
	}
	err = json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnexpectedAPI, err)
	}
	if body.Insult == "" {
		return "", fmt.Errorf("%w: empty insult", ErrUnexpectedAPI)
	}
	return strings.ReplaceAll(body.Insult, "Thou art", name+" is"), nil
}
