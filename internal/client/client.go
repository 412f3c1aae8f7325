package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// Default headers
const (
	userAgent        = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	acceptHeader     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLangHeader = "en-US,en;q=0.5"

	// ContentTypeForm is the content type of a login form submission.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// DefaultTimeout bounds every request unless overridden.
	DefaultTimeout = 30 * time.Second
)

// Client is the cookie-bearing session shared by every request of a run.
// Requests are paced by a rate limiter and never retried.
type Client struct {
	http        *resty.Client
	jar         http.CookieJar
	headers     map[string]string
	rateLimiter *rate.Limiter
	timeout     time.Duration
	tlsConfig   *tls.Config
	logger      *slog.Logger
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Cookies    []*http.Cookie
	Body       []byte
}

// Option configures the Client
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit sets a custom rate limit
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.rateLimiter = rate.NewLimiter(limit, burst)
	}
}

// WithUserAgent overrides the default browser user agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.headers["User-Agent"] = ua
		}
	}
}

// WithTLSConfig sets the TLS configuration of the transport.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = cfg
	}
}

// WithLogger routes the client's diagnostics into l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a session with an empty cookie jar.
func New(opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		jar:         jar,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 10),
		timeout:     DefaultTimeout,
		headers: map[string]string{
			"User-Agent":      userAgent,
			"Accept":          acceptHeader,
			"Accept-Language": acceptLangHeader,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	rc := resty.New().
		SetCookieJar(jar).
		SetHeaders(c.headers).
		SetTimeout(c.timeout).
		SetLogger(restyLogger{c.logger}).
		SetRetryCount(0)
	if c.tlsConfig != nil {
		rc.SetTLSClientConfig(c.tlsConfig)
	}
	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if err := c.rateLimiter.Wait(req.Context()); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		c.logger.Debug("sending request", "method", req.Method, "url", req.URL)
		return nil
	})
	c.http = rc

	return c, nil
}

// Get performs a GET request to rawURL.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	resp, err := c.http.R().SetContext(ctx).Get(rawURL)
	return c.finish(resp, err)
}

// PostForm sends an already encoded form body to rawURL.
func (c *Client) PostForm(ctx context.Context, rawURL, body string) (*Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", ContentTypeForm).
		SetBody(body).
		Post(rawURL)
	return c.finish(resp, err)
}

func (c *Client) finish(resp *resty.Response, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	out := &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     resp.Header(),
		Cookies:    resp.Cookies(),
		Body:       resp.Body(),
	}
	c.logger.Debug("received response",
		"url", resp.Request.URL, "status", out.StatusCode, "bytes", len(out.Body), "elapsed", resp.Time())
	return out, nil
}

// Cookies returns the cookies the session would send to rawURL.
func (c *Client) Cookies(rawURL string) []*http.Cookie {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return c.jar.Cookies(u)
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// HTTPClient exposes the underlying http.Client for advanced use.
func (c *Client) HTTPClient() *http.Client {
	return c.http.GetClient()
}

// restyLogger adapts slog to resty's logger interface.
type restyLogger struct {
	l *slog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error(fmt.Sprintf(format, v...), "component", "http")
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn(fmt.Sprintf(format, v...), "component", "http")
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug(fmt.Sprintf(format, v...), "component", "http")
}
