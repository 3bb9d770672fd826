// Package mediawiki implements the subset of the MediaWiki action API
// needed to synchronize a multilingual wiki: full-site listings of
// pages, redirects and categories, revision content fetches, and
// token-authenticated edits.
//
// All read queries go through the shared cache so that repeated runs
// against the same wiki reuse the previous listing generation. Writes
// never touch the cache.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/httputil"
	"github.com/jkral/interwiki/pkg/observability"
)

const (
	httpTimeout      = 30 * time.Second
	defaultUserAgent = "interwiki-bot (https://github.com/jkral/interwiki)"
)

// Client talks to one wiki's api.php endpoint.
type Client struct {
	endpoint  string
	http      *http.Client
	cache     *httputil.Cache
	logger    *log.Logger
	userAgent string
	refresh   bool
	maxLag    int

	csrfToken string
	cookies   http.CookieJar
}

// Option configures a Client.
type Option func(*Client)

// WithCache attaches a response cache for read queries.
func WithCache(cache *httputil.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the logger for request-level debug output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRefresh bypasses the cache for all read queries.
func WithRefresh(refresh bool) Option {
	return func(c *Client) { c.refresh = refresh }
}

// WithMaxLag sets the maxlag parameter sent with every request, making
// the wiki reject queries while its replication lag is above the
// threshold. Zero disables the parameter.
func WithMaxLag(seconds int) Option {
	return func(c *Client) { c.maxLag = seconds }
}

// NewClient creates a client for the given api.php endpoint URL.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(endpoint); err != nil {
		return nil, err
	}
	c := &Client{
		endpoint:  endpoint,
		http:      &http.Client{Timeout: httpTimeout},
		logger:    log.Default(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		cache, err := httputil.NewCache("", 24*time.Hour)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	jar, err := newCookieJar()
	if err != nil {
		return nil, err
	}
	c.cookies = jar
	c.http.Jar = jar
	return c, nil
}

// Endpoint returns the api.php URL this client talks to.
func (c *Client) Endpoint() string { return c.endpoint }

// apiError is the error envelope of the action API.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// envelope is the common shape of every API response. Raw keeps the
// full body for actions whose payload sits outside the query key.
type envelope struct {
	Error    *apiError         `json:"error"`
	Warnings json.RawMessage   `json:"warnings"`
	Continue map[string]string `json:"continue"`
	Query    json.RawMessage   `json:"query"`

	Raw json.RawMessage `json:"-"`
}

// wrapAPIError maps an action API error code onto the project error
// codes. Lag and rate-limit responses are marked retryable so the
// backoff loop picks them up.
func wrapAPIError(e *apiError) error {
	switch e.Code {
	case "maxlag", "ratelimited", "readonly":
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeRateLimited, "api: %s: %s", e.Code, e.Info),
		}
	case "editconflict":
		return errors.New(errors.ErrCodeEditConflict, "api: %s", e.Info)
	case "permissiondenied", "protectedpage", "protectednamespace", "badtoken", "notloggedin":
		return errors.New(errors.ErrCodeUnauthorized, "api: %s: %s", e.Code, e.Info)
	case "missingtitle":
		return errors.New(errors.ErrCodePageNotFound, "api: %s", e.Info)
	default:
		return errors.New(errors.ErrCodeAPI, "api: %s: %s", e.Code, e.Info)
	}
}

// baseParams returns the parameters common to every request.
func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("formatversion", "2")
	if c.maxLag > 0 {
		params.Set("maxlag", fmt.Sprint(c.maxLag))
	}
	return params
}

// get performs one GET round trip and decodes the response envelope.
// Transient failures are wrapped for the retry loop; API-level errors
// are mapped to project error codes.
func (c *Client) get(ctx context.Context, params url.Values) (*envelope, error) {
	var env *envelope
	err := httputil.RetryWithBackoff(ctx, func() error {
		e, err := c.roundTrip(ctx, http.MethodGet, params)
		if err != nil {
			return err
		}
		env = e
		return nil
	})
	return env, err
}

// post performs one POST round trip. Writes are not retried blindly;
// only lag and rate-limit responses go back through the backoff loop.
func (c *Client) post(ctx context.Context, params url.Values) (*envelope, error) {
	var env *envelope
	err := httputil.RetryWithBackoff(ctx, func() error {
		e, err := c.roundTrip(ctx, http.MethodPost, params)
		if err != nil {
			return err
		}
		env = e
		return nil
	})
	return env, err
}

func (c *Client) roundTrip(ctx context.Context, method string, params url.Values) (*envelope, error) {
	var req *http.Request
	var err error
	switch method {
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint+"?"+params.Encode(), nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, method, host, path, err)
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "request failed"),
		}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "reading response")
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPI, err, "decoding response")
	}
	env.Raw = data
	if len(env.Warnings) > 0 {
		c.logger.Warn("api warnings", "warnings", string(env.Warnings))
	}
	if env.Error != nil {
		return nil, wrapAPIError(env.Error)
	}
	return &env, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeRateLimited, "status %d", code),
		}
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "status %d", code),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", code)
	}
}

// queryAll runs a query and follows its continuation until the wiki
// reports no more results, handing each page of the response to each.
func (c *Client) queryAll(ctx context.Context, params url.Values, each func(query json.RawMessage) error) error {
	params.Set("action", "query")
	for {
		env, err := c.get(ctx, params)
		if err != nil {
			return err
		}
		if len(env.Query) > 0 {
			if err := each(env.Query); err != nil {
				return err
			}
		}
		if len(env.Continue) == 0 {
			return nil
		}
		for k, v := range env.Continue {
			params.Set(k, v)
		}
	}
}

// cached retrieves a listing from cache or fetches it. Writes the
// fetched value back on success.
func (c *Client) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if !c.refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			observability.Cache().OnCacheHit(ctx, key)
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}
	if err := fetch(); err != nil {
		return err
	}
	_ = c.cache.Set(key, v)
	observability.Cache().OnCacheSet(ctx, key, 0)
	return nil
}
