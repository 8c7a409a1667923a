package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"kinomatch/internal/catalog"
	"kinomatch/internal/logging"
	"kinomatch/internal/services"
	"kinomatch/internal/services/httpx"
)

const component = "tmdb"

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Result represents a single TMDB movie.
type Result struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	GenreIDs      []int64 `json:"genre_ids"`
	Genres        []Genre `json:"genres"`
	Runtime       int     `json:"runtime"`
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// SearchOptions contains optional parameters for TMDB movie search.
type SearchOptions struct {
	Year int `json:"year,omitempty"`
}

// Searcher defines the TMDB operations used by catalog matching.
type Searcher interface {
	SearchMovieWithOptions(ctx context.Context, query string, opts SearchOptions) (*Response, error)
	GetMovieDetails(ctx context.Context, movieID int64) (*Result, error)
}

// Client provides access to the TMDB API for searches.
type Client struct {
	apiKey      string
	bearerToken string
	baseURL     string
	language    string
	http        *httpx.Client
	logger      *slog.Logger
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default fetch helper.
func WithHTTPClient(client *httpx.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithBearerToken authenticates requests with a v4 read access token.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearerToken = strings.TrimSpace(token)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a TMDB client. Either apiKey or a bearer token option is required.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "base url required", nil)
	}
	client := &Client{
		apiKey:   strings.TrimSpace(apiKey),
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: strings.TrimSpace(language),
		http:     httpx.New(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.apiKey == "" && client.bearerToken == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "api key or bearer token required", nil)
	}
	client.logger = logging.NewComponentLogger(client.logger, component)
	return client, nil
}

// SearchMovie searches TMDB for the supplied title.
func (c *Client) SearchMovie(ctx context.Context, query string) (*Response, error) {
	return c.SearchMovieWithOptions(ctx, query, SearchOptions{})
}

// SearchMovieWithOptions performs a TMDB movie search with optional filters.
func (c *Client) SearchMovieWithOptions(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, component, "search movie", "query must not be empty", nil)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}

	var payload Response
	if err := c.get(ctx, "search movie", "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	c.logger.Debug("tmdb search completed",
		logging.String("query", query),
		logging.Int("results", len(payload.Results)))
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB ID.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*Result, error) {
	if movieID <= 0 {
		return nil, services.Wrap(services.ErrValidation, component, "movie details", "movie id must be positive", nil)
	}
	var payload Result
	if err := c.get(ctx, "movie details", fmt.Sprintf("/movie/%d", movieID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Search runs a movie search and returns the results as catalog candidates in
// TMDB's relevance order.
func (c *Client) Search(ctx context.Context, title string) ([]catalog.Candidate, error) {
	resp, err := c.SearchMovie(ctx, title)
	if err != nil {
		return nil, err
	}
	candidates := make([]catalog.Candidate, 0, len(resp.Results))
	for _, result := range resp.Results {
		candidates = append(candidates, result.Candidate())
	}
	return candidates, nil
}

// Candidate converts a TMDB result into a catalog candidate.
func (r Result) Candidate() catalog.Candidate {
	candidate := catalog.Candidate{
		ID:            r.ID,
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		ReleaseDate:   r.ReleaseDate,
		PosterPath:    r.PosterPath,
		Overview:      r.Overview,
	}
	if r.VoteCount > 0 || r.VoteAverage > 0 {
		vote := r.VoteAverage
		candidate.VoteAverage = &vote
	}
	if r.Runtime > 0 {
		runtime := r.Runtime
		candidate.Runtime = &runtime
	}
	for _, genre := range r.Genres {
		if name := strings.TrimSpace(genre.Name); name != "" {
			candidate.Genres = append(candidate.Genres, name)
		}
	}
	return candidate
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out any) error {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint := c.baseURL + path + "?" + params.Encode()

	header := http.Header{}
	header.Set("Accept", "application/json")
	if c.bearerToken != "" {
		header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.http.Get(ctx, component, endpoint, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return services.Wrap(services.ErrExternalService, component, operation, "decode response", err)
	}
	return nil
}
