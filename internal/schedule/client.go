package schedule

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"kinomatch/internal/fields"
	"kinomatch/internal/logging"
	"kinomatch/internal/services"
	"kinomatch/internal/services/httpx"
)

const (
	component            = "schedule"
	defaultShowtimesPath = "/Schedule/"
	defaultAreasPath     = "/TheatreAreas/"
	dateParamLayout      = "02.01.2006"
)

// TheatreArea is a selectable theatre or region in the schedule source.
type TheatreArea struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client fetches schedules from a Finnkino-style HTTP source.
type Client struct {
	baseURL       string
	showtimesPath string
	areasPath     string
	http          *httpx.Client
	normalizer    Normalizer
	logger        *slog.Logger
}

// Option configures the schedule client.
type Option func(*Client)

// WithHTTPClient overrides the fetch helper.
func WithHTTPClient(client *httpx.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithPaths overrides the showtimes and theatre area endpoint paths.
func WithPaths(showtimes, areas string) Option {
	return func(c *Client) {
		if strings.TrimSpace(showtimes) != "" {
			c.showtimesPath = showtimes
		}
		if strings.TrimSpace(areas) != "" {
			c.areasPath = areas
		}
	}
}

// WithLocation sets the timezone for start times without an offset.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		c.normalizer = NewNormalizer(loc)
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

// NewClient constructs a schedule client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		showtimesPath: defaultShowtimesPath,
		areasPath:     defaultAreasPath,
		http:          httpx.New(),
		normalizer:    NewNormalizer(nil),
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, component)
	return client
}

// Payload fetches the raw decoded schedule for areaID on date. A zero date
// lets the source pick its default day; an empty areaID requests every area.
func (c *Client) Payload(ctx context.Context, areaID string, date time.Time) (any, error) {
	params := url.Values{}
	if areaID = strings.TrimSpace(areaID); areaID != "" {
		params.Set("area", areaID)
	}
	if !date.IsZero() {
		params.Set("dt", date.Format(dateParamLayout))
	}
	return c.fetch(ctx, "fetch schedule", c.showtimesPath, params)
}

// Showtimes fetches and normalizes the schedule for areaID on date. Shows
// that carry no area of their own inherit areaID.
func (c *Client) Showtimes(ctx context.Context, areaID string, date time.Time) ([]Showtime, error) {
	payload, err := c.Payload(ctx, areaID, date)
	if err != nil {
		return nil, err
	}
	shows := c.normalizer.NormalizeAll(payload)
	areaID = strings.TrimSpace(areaID)
	for i := range shows {
		if shows[i].AreaID == "" {
			shows[i].AreaID = areaID
		}
	}
	c.logger.Debug("schedule normalized",
		logging.String("area_id", areaID),
		logging.Int("showtimes", len(shows)))
	return shows, nil
}

// TheatreAreas fetches the list of selectable areas.
func (c *Client) TheatreAreas(ctx context.Context) ([]TheatreArea, error) {
	payload, err := c.fetch(ctx, "fetch theatre areas", c.areasPath, nil)
	if err != nil {
		return nil, err
	}
	return ParseTheatreAreas(payload), nil
}

// ParseTheatreAreas extracts theatre areas from a decoded payload. Entries
// without both an ID and a name are skipped.
func ParseTheatreAreas(payload any) []TheatreArea {
	raws := findRecords(payload, directAreaKeys, nestedAreaKeys, map[uintptr]struct{}{})
	areas := make([]TheatreArea, 0, len(raws))
	for _, raw := range raws {
		area, ok := parseArea(raw)
		if !ok {
			continue
		}
		areas = append(areas, area)
	}
	return areas
}

func parseArea(raw fields.Record) (TheatreArea, bool) {
	id, ok := raw.String(areaIDKeys...)
	if !ok {
		return TheatreArea{}, false
	}
	name, ok := raw.String(areaNameKeys...)
	if !ok {
		return TheatreArea{}, false
	}
	return TheatreArea{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)}, true
}

func (c *Client) fetch(ctx context.Context, operation, path string, params url.Values) (any, error) {
	if c.baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, operation, "base URL not configured", nil)
	}
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	resp, err := c.http.Get(ctx, component, endpoint, nil)
	if err != nil {
		return nil, err
	}

	payload, err := Decode(resp.ContentType, resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, component, operation, "decode response", err)
	}

	c.logger.Debug("schedule payload fetched",
		logging.String("url", endpoint),
		logging.Int("bytes", len(resp.Body)),
		logging.Int("attempts", int(resp.Attempts)),
		logging.Duration("latency", resp.Latency))
	return payload, nil
}
