package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"kinomatch/internal/logging"
	"kinomatch/internal/services"
	"kinomatch/internal/services/httpx"
)

const lookupComponent = "match_service"

// LookupResponse is the match service answer for one schedule event.
type LookupResponse struct {
	Key        string      `json:"finnkinoEventId"`
	Match      *Candidate  `json:"match,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// MatchClient queries the structured match service.
type MatchClient struct {
	baseURL string
	http    *httpx.Client
	logger  *slog.Logger
}

// MatchOption configures a MatchClient.
type MatchOption func(*MatchClient)

// WithMatchHTTPClient overrides the fetch helper.
func WithMatchHTTPClient(client *httpx.Client) MatchOption {
	return func(c *MatchClient) {
		if client != nil {
			c.http = client
		}
	}
}

// WithMatchLogger attaches a logger.
func WithMatchLogger(logger *slog.Logger) MatchOption {
	return func(c *MatchClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewMatchClient creates a client for the match service rooted at baseURL.
func NewMatchClient(baseURL string, opts ...MatchOption) *MatchClient {
	client := &MatchClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    httpx.New(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, lookupComponent)
	return client
}

// Lookup fetches the catalog match for the schedule event identified by key.
// A 404 is reported as an empty response rather than an error.
func (c *MatchClient) Lookup(ctx context.Context, key string) (*LookupResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, services.Wrap(services.ErrValidation, lookupComponent, "lookup", "event key must not be empty", nil)
	}
	if c.baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, lookupComponent, "lookup", "base URL not configured", nil)
	}

	endpoint := c.baseURL + "/finnkino/" + url.PathEscape(key)
	resp, err := c.http.Get(ctx, lookupComponent, endpoint, nil)
	if err != nil {
		if services.IsNotFound(err) {
			c.logger.Debug("no structured match", logging.String("key", key))
			return &LookupResponse{Key: key}, nil
		}
		return nil, err
	}

	var payload LookupResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, services.Wrap(services.ErrExternalService, lookupComponent, "decode lookup", key, err)
	}
	if payload.Key == "" {
		payload.Key = key
	}
	if payload.Match != nil && payload.Match.ID == 0 && payload.Match.Title == "" {
		payload.Match = nil
	}

	c.logger.Debug("structured match fetched",
		logging.String("key", key),
		logging.Bool("has_match", payload.Match != nil),
		logging.Int("candidates", len(payload.Candidates)),
		logging.Duration("latency", resp.Latency))
	return &payload, nil
}
