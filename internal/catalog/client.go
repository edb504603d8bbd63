// Package catalog talks to the TMDB API for genre and movie listings.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrCatalogUnavailable wraps any failure to reach the catalog API or make
// sense of its payload. Callers get it unchanged; stored watchlist state is
// never affected.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Genre is one TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is the catalog movie shape handed to watchlist Add.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int64 `json:"genre_ids"`
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a catalog client.
func New(apiKey, baseURL, imageBaseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("catalog api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	imageBaseURL = strings.TrimSpace(imageBaseURL)
	if imageBaseURL == "" {
		imageBaseURL = "https://image.tmdb.org/t/p"
	}
	client := &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		language:     "en-US",
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Genres fetches the full movie genre list.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	endpoint, err := url.Parse(c.baseURL + "/genre/movie/list")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	endpoint.RawQuery = params.Encode()

	var payload struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.get(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

// MoviesByGenre fetches movies for one genre, most popular first. Results
// missing an id or title are dropped rather than forwarded.
func (c *Client) MoviesByGenre(ctx context.Context, genreID int64) ([]Movie, error) {
	if genreID <= 0 {
		return nil, errors.New("genre id must be positive")
	}
	endpoint, err := url.Parse(c.baseURL + "/discover/movie")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	endpoint.RawQuery = params.Encode()

	var payload struct {
		Results []Movie `json:"results"`
	}
	if err := c.get(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}

	movies := make([]Movie, 0, len(payload.Results))
	for _, m := range payload.Results {
		if m.ID <= 0 || strings.TrimSpace(m.Title) == "" {
			continue
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// ImageURL builds the absolute poster/backdrop URL for a relative path.
// Pure string construction, no I/O.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size != "original" {
		size = "w500"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + "/" + size + path
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: catalog returned %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrCatalogUnavailable, err)
	}
	return nil
}
