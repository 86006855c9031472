package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	// DefaultSearchEngineID is the programmable search engine that is configured for image search.
	DefaultSearchEngineID = "009855409252983983547:3xrcodch8sc"

	// query lengths are exclusive
	MaxImageQueryLength = 150
	MaxVideoQueryLength = 250
)

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrQueryTooLong = errors.New("query too long")
	ErrNoResults    = errors.New("no results found")
)

type Client struct {
	search         *customsearch.Service
	youtube        *youtube.Service
	searchEngineID string
}

// New creates the image and video search services with an API key.
// Additional client options are passed to both services.
func New(ctx context.Context, apiKey, searchEngineID string, opts ...option.ClientOption) (*Client, error) {
	if searchEngineID == "" {
		searchEngineID = DefaultSearchEngineID
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	search, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}

	yt, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{
		search:         search,
		youtube:        yt,
		searchEngineID: searchEngineID,
	}, nil
}

func checkQuery(query string, maxLength int) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if len(query) >= maxLength {
		return "", ErrQueryTooLong
	}
	return query, nil
}

// Image returns the link of the first safe search image result.
func (c *Client) Image(ctx context.Context, query string) (string, error) {
	query, err := checkQuery(query, MaxImageQueryLength)
	if err != nil {
		return "", err
	}

	resp, err := c.search.Cse.List().
		Q(query).
		Cx(c.searchEngineID).
		Safe("active").
		SearchType("image").
		Num(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("image search failed: %w", err)
	}

	for _, item := range resp.Items {
		if item.Link != "" {
			return item.Link, nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrNoResults, query)
}

// Video returns the short link of the first video result.
func (c *Client) Video(ctx context.Context, query string) (string, error) {
	query, err := checkQuery(query, MaxVideoQueryLength)
	if err != nil {
		return "", err
	}

	resp, err := c.youtube.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("video search failed: %w", err)
	}

	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			return "https://youtu.be/" + item.Id.VideoId, nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrNoResults, query)
}
