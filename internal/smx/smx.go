package smx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://data.stepmaniax.com/uploads/songs/"

var (
	ErrEmptyTitle  = errors.New("you gotta give me a song to look for")
	ErrNotFound    = errors.New("song not found")
	ErrUnreachable = errors.New("api unreachable")
)

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SongKey converts a song title into the path segment the song data is stored under.
// Every word is capitalized and joined without spaces, ampersands are dropped.
func SongKey(title string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(title) {
		sb.WriteString(capitalize(word))
	}
	key := strings.ReplaceAll(sb.String(), "&", "")
	if key == "Stop!Go" {
		return strings.ToUpper(key)
	}
	return key
}

func capitalize(word string) string {
	r := []rune(strings.ToLower(word))
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// Jacket returns the cover image URL of a song if the API serves one.
func (c *Client) Jacket(ctx context.Context, title string) (string, error) {
	key := SongKey(title)
	if key == "" {
		return "", ErrEmptyTitle
	}
	coverURL := c.baseURL + url.PathEscape(key) + "/cover.png"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "image/png":
		return coverURL, nil
	case "application/json":
		return "", ErrNotFound
	default:
		return "", ErrUnreachable
	}
}
