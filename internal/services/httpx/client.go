package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"kinomatch/internal/logging"
	"kinomatch/internal/services"
)

const maxBodyBytes = 8 << 20

// Response is a fully-read HTTP response body.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Attempts    uint
	Latency     time.Duration
}

// Client issues GET requests with retry on transient failures.
type Client struct {
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	maxDelay   time.Duration
	userAgent  string
	logger     *slog.Logger
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

// WithRetry sets the attempt budget and initial backoff. Attempts below one
// are treated as one.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts == 0 {
			attempts = 1
		}
		c.attempts = attempts
		if delay > 0 {
			c.delay = delay
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(agent)
	}
}

// WithLogger attaches a logger for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client with a 10 second timeout and three attempts.
func New(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		attempts:   3,
		delay:      200 * time.Millisecond,
		maxDelay:   2 * time.Second,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Get fetches endpoint and returns the body of a 2xx response. The component
// name tags wrapped errors.
func (c *Client) Get(ctx context.Context, component, endpoint string, header http.Header) (*Response, error) {
	var (
		result   *Response
		attempts uint
	)
	start := time.Now()
	err := retry.Do(
		func() error {
			attempts++
			resp, err := c.once(ctx, component, endpoint, header)
			if err != nil {
				return err
			}
			result = resp
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(c.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(services.IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying request",
				logging.String(logging.FieldComponent, component),
				logging.Int("attempt", int(n)+1),
				logging.String("url", redact(endpoint)),
				logging.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	result.Attempts = attempts
	result.Latency = time.Since(start)
	return result, nil
}

func (c *Client) once(ctx context.Context, component, endpoint string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, component, "build request", "", err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, component, "execute request", fmt.Sprintf("latency=%v", latency), err)
		}
		return nil, services.Wrap(services.ErrTransient, component, "execute request", fmt.Sprintf("latency=%v", latency), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, component, "read body", "", err)
	}

	if marker := classifyStatus(resp.StatusCode); marker != nil {
		return nil, services.Wrap(marker, component, "execute request",
			fmt.Sprintf("returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return services.ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return services.ErrTransient
	default:
		return services.ErrExternalService
	}
}

// redact hides the api_key query value from logged URLs.
func redact(endpoint string) string {
	idx := strings.Index(endpoint, "api_key=")
	if idx < 0 {
		return endpoint
	}
	end := strings.IndexByte(endpoint[idx:], '&')
	if end < 0 {
		return endpoint[:idx] + "api_key=REDACTED"
	}
	return endpoint[:idx] + "api_key=REDACTED" + endpoint[idx+end:]
}
