package docservice

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/docchat/internal/infrastructure/resilience"
)

const (
	uploadPath = "/upload"
	askPath    = "/ask"
)

// Options tunes the collaborator client. Zero values fall back to defaults.
type Options struct {
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	Transport      http.RoundTripper
	Executor       *resilience.Executor
}

// Client talks to the upload and question endpoints of the document service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

func New(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	limit := rate.Inf
	if opts.RateLimitRPS > 0 {
		limit = rate.Limit(opts.RateLimitRPS)
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 1
	}
	if opts.Executor == nil {
		opts.Executor = resilience.NewExecutor(resilience.Config{BreakerEnabled: false})
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		limiter:  rate.NewLimiter(limit, opts.RateLimitBurst),
		executor: opts.Executor,
	}
}

func (c *Client) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}
