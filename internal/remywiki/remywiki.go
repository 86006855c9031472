package remywiki

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	colly "github.com/gocolly/colly/v2"
)

const (
	DefaultBaseURL = "https://remywiki.com"
	UserAgent      = "honkbot (+https://github.com/honkbot/honkbot)"

	songCategory = "Category:Songs"
)

var ErrEmptyQuery = errors.New("you gotta give me a song to look for")

type ImageType string

const (
	Jacket ImageType = "jacket"
	Banner ImageType = "banner"
)

type Kind int

const (
	NoSong Kind = iota
	Found
	OtherImage
	NoImages
)

// Result is the outcome of an image lookup for a song.
type Result struct {
	Kind      Kind
	Query     string
	Title     string
	ImageType ImageType
	URL       string
}

func (r Result) String() string {
	switch r.Kind {
	case Found:
		return r.URL
	case OtherImage:
		return fmt.Sprintf("%s does not have a %s, but it does have this:\n%s", r.Title, r.ImageType, r.URL)
	case NoImages:
		if strings.EqualFold(r.Title, r.Query) {
			return fmt.Sprintf("%s does not have any images", r.Title)
		}
		return fmt.Sprintf("%s seems to be the song %s but it does not have any images", r.Query, r.Title)
	default:
		return fmt.Sprintf("Could not find a song that looks like: %s", r.Query)
	}
}

type Client struct {
	baseURL   string
	collector *colly.Collector
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		collector: colly.NewCollector(
			colly.UserAgent(UserAgent),
			colly.AllowURLRevisit(),
		),
	}
	c.collector.SetRequestTimeout(15 * time.Second)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type image struct {
	kind ImageType
	url  string
}

type page struct {
	title       string
	song        bool
	exactMatch  string
	firstResult string
	gallery     string
	galleryBox  []image
	thumbnails  []image
}

// firstImage returns the first image of the given type that was found on the page.
func firstImage(images []image, kind ImageType) (string, bool) {
	for _, img := range images {
		if img.kind == kind {
			return img.url, true
		}
	}
	return "", false
}

func classify(caption string) (ImageType, bool) {
	switch {
	case strings.Contains(caption, string(Banner)):
		return Banner, true
	case strings.Contains(caption, string(Jacket)):
		return Jacket, true
	default:
		return "", false
	}
}

// largestSource returns the last candidate of an img srcset attribute.
func largestSource(srcset string) string {
	candidates := strings.Split(srcset, ",")
	fields := strings.Fields(candidates[len(candidates)-1])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (c *Client) fetch(ctx context.Context, rawURL string) (*page, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	p := &page{}
	collector := c.collector.Clone()
	collector.OnHTML("html", func(e *colly.HTMLElement) {
		p.title = strings.TrimSpace(e.ChildText("h1#firstHeading"))
		p.song = e.ChildAttr(fmt.Sprintf("a[title=%q]", songCategory), "title") != ""
		p.exactMatch = e.ChildAttr("p.mw-search-exists strong a", "href")
		p.firstResult = e.ChildAttr("ul.mw-search-results > li:first-child div a", "href")
		p.gallery = e.ChildAttr(`a[href*="Gallery"]`, "href")

		e.ForEach("li.gallerybox", func(_ int, box *colly.HTMLElement) {
			kind, ok := classify(box.ChildText("p"))
			if !ok {
				return
			}
			src := largestSource(box.ChildAttr("img", "srcset"))
			if src == "" {
				return
			}
			p.galleryBox = append(p.galleryBox, image{kind: kind, url: c.baseURL + src})
		})
		e.ForEach("div.thumbinner", func(_ int, thumb *colly.HTMLElement) {
			kind, ok := classify(thumb.ChildText("div.thumbcaption"))
			if !ok {
				return
			}
			src := thumb.ChildAttr("img", "src")
			if src == "" {
				return
			}
			p.thumbnails = append(p.thumbnails, image{kind: kind, url: c.baseURL + src})
		})
	})

	err = collector.Visit(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	return p, nil
}

func (c *Client) searchURL(query string) string {
	return c.baseURL + "/index.php?search=" + url.QueryEscape(query)
}

// song searches for a song page. A direct title match is preferred, otherwise
// the first result of a search that is restricted to songs is used.
// A nil page is returned when nothing was found.
func (c *Client) song(ctx context.Context, query string) (*page, error) {
	p, err := c.fetch(ctx, c.searchURL(query))
	if err != nil {
		return nil, err
	}
	if p.song {
		return p, nil
	}

	if p.exactMatch != "" {
		exact, err := c.fetch(ctx, c.baseURL+p.exactMatch)
		if err != nil {
			return nil, err
		}
		if exact.song {
			return exact, nil
		}
	}

	p, err = c.fetch(ctx, c.searchURL(query+` incategory:"Songs"`))
	if err != nil {
		return nil, err
	}
	if p.firstResult == "" {
		return nil, nil
	}
	return c.fetch(ctx, c.baseURL+p.firstResult)
}

// Image looks up the jacket or banner of a song. Songs without the requested
// image type fall back to any other image found on the song page.
func (c *Client) Image(ctx context.Context, query string, kind ImageType) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrEmptyQuery
	}
	result := Result{
		Kind:      NoSong,
		Query:     query,
		ImageType: kind,
	}

	song, err := c.song(ctx, query)
	if err != nil {
		return Result{}, err
	}
	if song == nil {
		return result, nil
	}
	result.Title = song.title

	found := make([]image, 0, 4)
	if song.gallery != "" {
		gallery, err := c.fetch(ctx, c.baseURL+song.gallery)
		if err != nil {
			return Result{}, err
		}
		found = append(found, gallery.galleryBox...)
		if u, ok := firstImage(found, kind); ok {
			result.Kind = Found
			result.URL = u
			return result, nil
		}
	}

	found = append(found, song.thumbnails...)
	if u, ok := firstImage(found, kind); ok {
		result.Kind = Found
		result.URL = u
		return result, nil
	}

	if len(found) > 0 {
		result.Kind = OtherImage
		result.URL = found[0].url
		return result, nil
	}

	result.Kind = NoImages
	return result, nil
}
