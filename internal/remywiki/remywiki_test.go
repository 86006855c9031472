package remywiki

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const songMarker = `<a href="/Category:Songs" title="Category:Songs">Songs</a>`

func html(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>RemyWiki</title></head><body>%s</body></html>", body)
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/index.php", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("search") {
		case "paranoia":
			html(w, `<h1 id="firstHeading">PARANOIA</h1>
				<a href="/PARANOIA/Gallery">Gallery</a>
				<div class="thumbinner"><img src="/images/thumb_banner.png"><div class="thumbcaption">PARANOIA's banner</div></div>
				`+songMarker)
		case "exact song":
			html(w, `<h1 id="firstHeading">Search results</h1>
				<p class="mw-search-exists">There is a page named "<strong><a href="/Exact_Song">Exact Song</a></strong>" on this wiki.</p>`)
		case `fuzzy incategory:"Songs"`:
			html(w, `<h1 id="firstHeading">Search results</h1>
				<ul class="mw-search-results">
					<li><div class="mw-search-result-heading"><a href="/Fuzzy_Song">Fuzzy Song</a></div></li>
					<li><div class="mw-search-result-heading"><a href="/Other_Song">Other Song</a></div></li>
				</ul>`)
		default:
			html(w, `<h1 id="firstHeading">Search results</h1><p class="mw-search-nonefound">There were no results.</p>`)
		}
	})
	mux.HandleFunc("/PARANOIA/Gallery", func(w http.ResponseWriter, r *http.Request) {
		html(w, `<h1 id="firstHeading">PARANOIA/Gallery</h1><ul class="gallery">
			<li class="gallerybox"><img srcset="/images/small_jacket.png 1.5x, /images/big_jacket.png 2x"><p>PARANOIA's jacket</p></li>
		</ul>`)
	})
	mux.HandleFunc("/Exact_Song", func(w http.ResponseWriter, r *http.Request) {
		html(w, `<h1 id="firstHeading">Exact Song</h1>`+songMarker)
	})
	mux.HandleFunc("/Fuzzy_Song", func(w http.ResponseWriter, r *http.Request) {
		html(w, `<h1 id="firstHeading">Fuzzy Song</h1>
			<div class="thumbinner"><img src="/images/fuzzy_jacket.png"><div class="thumbcaption">Fuzzy Song's jacket</div></div>
			`+songMarker)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL + "/"))
}

func TestImageFromGallery(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	r, err := c.Image(t.Context(), "paranoia", Jacket)
	require.NoError(t, err)
	assert.Equal(t, Found, r.Kind)
	assert.Equal(t, c.baseURL+"/images/big_jacket.png", r.String())
}

func TestImageFromThumbnail(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	r, err := c.Image(t.Context(), "paranoia", Banner)
	require.NoError(t, err)
	assert.Equal(t, Found, r.Kind)
	assert.Equal(t, c.baseURL+"/images/thumb_banner.png", r.URL)
}

func TestImageExactMatchWithoutImages(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	r, err := c.Image(t.Context(), "exact song", Jacket)
	require.NoError(t, err)
	assert.Equal(t, NoImages, r.Kind)
	assert.Equal(t, "Exact Song does not have any images", r.String())

	r.Query = "exact"
	assert.Equal(t, "exact seems to be the song Exact Song but it does not have any images", r.String())
}

func TestImageCategorySearchFallback(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	r, err := c.Image(t.Context(), "fuzzy", Banner)
	require.NoError(t, err)
	assert.Equal(t, OtherImage, r.Kind)
	assert.Equal(t, "Fuzzy Song does not have a banner, but it does have this:\n"+c.baseURL+"/images/fuzzy_jacket.png", r.String())
}

func TestImageNoSong(t *testing.T) {
	t.Parallel()
	c := newTestClient(t)

	r, err := c.Image(t.Context(), "nothing at all", Jacket)
	require.NoError(t, err)
	assert.Equal(t, NoSong, r.Kind)
	assert.Equal(t, "Could not find a song that looks like: nothing at all", r.String())

	_, err = c.Image(t.Context(), " ", Jacket)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestLargestSource(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/b.png", largestSource("/a.png 1.5x, /b.png 2x"))
	assert.Equal(t, "/a.png", largestSource("/a.png"))
	assert.Equal(t, "", largestSource(""))
}
