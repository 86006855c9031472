package speedrun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.speedrun.com/api/v1/"

	// MaxQueryLength is exclusive.
	MaxQueryLength = 100

	// more results than this are not listed by name
	maxListedResults = 5
)

var (
	ErrEmptyQuery    = errors.New("you gotta give me a game to look for")
	ErrQueryTooLong  = errors.New("query too long")
	ErrUnexpectedAPI = errors.New("unexpected speedrun.com response")
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
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

// WithRateLimit limits the number of requests per second that are sent to the API.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// New requires an API token which can be obtained from the speedrun.com profile settings.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		// speedrun.com allows 100 requests per minute
		limiter: rate.NewLimiter(rate.Every(time.Minute/100), 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Names struct {
	International string `json:"international"`
}

type Link struct {
	Rel string `json:"rel"`
	URI string `json:"uri"`
}

type Game struct {
	ID    string `json:"id"`
	Names Names  `json:"names"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Links []Link `json:"links"`
}

// Player is either a registered user with an ID or a guest with a Name.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rel  string `json:"rel"`
}

type Run struct {
	Times struct {
		Realtime string `json:"realtime"`
	} `json:"times"`
	Players []Player `json:"players"`
}

type Leaderboard struct {
	Runs []struct {
		Run Run `json:"run"`
	} `json:"runs"`
}

type User struct {
	ID    string `json:"id"`
	Names Names  `json:"names"`
}

type pagination struct {
	Links []Link `json:"links"`
}

type envelope[T any] struct {
	Data       T           `json:"data"`
	Pagination *pagination `json:"pagination,omitempty"`
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query speedrun.com: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: %s", ErrUnexpectedAPI, rawURL, resp.Status)
	}

	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", ErrUnexpectedAPI, rawURL, err)
	}
	return nil
}

// SearchGames follows all pagination links and returns every game whose name matches name.
func (c *Client) SearchGames(ctx context.Context, name string) ([]Game, error) {
	next := c.baseURL + "games?name=" + url.QueryEscape(name)
	result := make([]Game, 0, 1)
	for next != "" {
		var page envelope[[]Game]
		err := c.get(ctx, next, &page)
		if err != nil {
			return nil, err
		}
		result = append(result, page.Data...)

		next = ""
		if page.Pagination == nil {
			break
		}
		for _, l := range page.Pagination.Links {
			if l.Rel == "next" {
				next = l.URI
			}
		}
	}
	return result, nil
}

func (c *Client) Game(ctx context.Context, id string) (Game, error) {
	var resp envelope[Game]
	err := c.get(ctx, c.baseURL+"games/"+url.PathEscape(id), &resp)
	if err != nil {
		return Game{}, err
	}
	return resp.Data, nil
}

func (c *Client) Categories(ctx context.Context, gameID string) ([]Category, error) {
	var resp envelope[[]Category]
	err := c.get(ctx, c.baseURL+"games/"+url.PathEscape(gameID)+"/categories", &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Records fetches the leaderboards behind a category's records link.
func (c *Client) Records(ctx context.Context, recordsURL string) ([]Leaderboard, error) {
	var resp envelope[[]Leaderboard]
	err := c.get(ctx, recordsURL, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) User(ctx context.Context, id string) (User, error) {
	var resp envelope[User]
	err := c.get(ctx, c.baseURL+"users/"+url.PathEscape(id), &resp)
	if err != nil {
		return User{}, err
	}
	return resp.Data, nil
}
