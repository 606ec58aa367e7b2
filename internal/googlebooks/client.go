// Package googlebooks provides a client for the Google Books volumes API.
package googlebooks

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/bookdice/internal/ratelimit"
	"golang.org/x/net/proxy"
)

const (
	// DefaultBaseURL is the public Google Books API root.
	DefaultBaseURL = "https://www.googleapis.com/books/v1"
	// PageSize is the fixed maxResults sent with every volumes query.
	PageSize = 40
	// PrintType restricts results to books (no magazines).
	PrintType = "books"

	defaultTimeout       = 10 * time.Second
	defaultRatePerSecond = 2
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Rand is the subset of math/rand/v2 used for random choices.
// *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the goroutine-safe math/rand/v2 top-level source.
var DefaultRand Rand = globalRand{}

// Client is a Google Books API client.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
	offsets     OffsetStrategy
	rng         Rand
}

// NewClient creates a new Google Books client. apiKey may be empty; the
// volumes endpoint works anonymously with a lower quota.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("GoogleBooks", defaultRatePerSecond),
		offsets:     OffsetClamp,
		rng:         DefaultRand,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter replaces the default limiter. A nil limiter disables pacing.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithOffsetStrategy selects how the second request's start index is drawn.
func WithOffsetStrategy(s OffsetStrategy) Option {
	return func(client *Client) {
		if s != "" {
			client.offsets = s
		}
	}
}

// WithRand sets the random source used for offsets.
func WithRand(r Rand) Option {
	return func(client *Client) {
		if r != nil {
			client.rng = r
		}
	}
}

// NewHTTPClient builds the HTTP client used for API calls. When proxyAddr is
// set, connections go through that SOCKS5 proxy.
func NewHTTPClient(timeout time.Duration, proxyAddr string) (*http.Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if proxyAddr == "" {
		return &http.Client{Timeout: timeout}, nil
	}

	dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("socks5 proxy %s: %w", proxyAddr, err)
	}

	transport := &http.Transport{}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = cd.DialContext
	} else {
		transport.Dial = dialer.Dial //nolint:staticcheck // fallback for dialers without context support
	}

	return &http.Client{Transport: transport, Timeout: timeout}, nil
}
