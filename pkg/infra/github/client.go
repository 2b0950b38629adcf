package github

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/domain/interfaces"
	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/domain/types"
	"github.com/m-mizutani/prscout/pkg/utils/logging"
	"golang.org/x/oauth2"
)

const (
	// DiffMediaType asks GitHub for unified diff text instead of JSON
	DiffMediaType = "application/vnd.github.v3.diff"

	// DefaultTimeout bounds a single diff download
	DefaultTimeout = 30 * time.Second

	// DefaultMaxDiffSize caps a downloaded diff body
	DefaultMaxDiffSize int64 = 32 << 20

	// DefaultCacheEntries is the number of diffs kept by WithMemoryCache
	DefaultCacheEntries = 256

	maxRedirects = 10
)

type client struct {
	transport   http.RoundTripper
	timeout     time.Duration
	maxDiffSize int64
}

// Option configures the diff client
type Option func(*client)

// WithTimeout sets the per-request timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// WithTransport replaces the underlying HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *client) {
		c.transport = rt
	}
}

// WithMaxDiffSize sets the largest diff body accepted, in bytes. Zero or negative
// falls back to DefaultMaxDiffSize.
func WithMaxDiffSize(n int64) Option {
	return func(c *client) {
		if n <= 0 {
			n = DefaultMaxDiffSize
		}
		c.maxDiffSize = n
	}
}

// WithMemoryCache enables ETag based conditional request caching in memory. At most
// entries responses are kept; the least recently used one is evicted first.
func WithMemoryCache(entries int) Option {
	return func(c *client) {
		t := httpcache.NewTransport(newLRUCache(entries))
		t.Transport = c.transport
		c.transport = t
	}
}

// NewClient creates a new diff client. Options are applied in order, so WithTransport
// must precede WithMemoryCache to be cached.
func NewClient(opts ...Option) interfaces.DiffFetcher {
	c := &client{
		transport:   http.DefaultTransport,
		timeout:     DefaultTimeout,
		maxDiffSize: DefaultMaxDiffSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDiff downloads the raw diff of a pull request
func (c *client) FetchDiff(ctx context.Context, diffURL string, token types.GitHubToken) (string, error) {
	logger := logging.From(ctx)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, diffURL, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create diff request",
			goerr.V("url", diffURL),
			goerr.T(types.ErrTagFetch),
		)
	}
	req.Header.Set("Accept", DiffMediaType)
	// Set on the request, not by a transport, so it can be stripped on redirects
	(&oauth2.Token{AccessToken: token.String()}).SetAuthHeader(req)

	httpClient := &http.Client{
		Transport:     c.transport,
		CheckRedirect: stripAuthOnRedirect,
	}

	logger.Info("Fetching diff",
		"url", diffURL,
		"token_state", tokenState(token),
	)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to request diff",
			goerr.V("url", diffURL),
			goerr.T(types.ErrTagFetch),
		)
	}
	defer resp.Body.Close()

	logger.Info("Diff response received", "status_code", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxDiffSize+1))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read diff response body",
			goerr.V("url", diffURL),
			goerr.V("status_code", resp.StatusCode),
			goerr.T(types.ErrTagFetch),
		)
	}
	if int64(len(body)) > c.maxDiffSize {
		return "", goerr.New("diff exceeds size limit",
			goerr.V("url", diffURL),
			goerr.V("max_bytes", c.maxDiffSize),
			goerr.T(types.ErrTagFetch),
		)
	}

	if resp.StatusCode != http.StatusOK {
		fetchErr := &model.FetchError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			URL:        diffURL,
			Body:       string(body),
		}
		logger.Error("Failed to fetch diff",
			"status_code", fetchErr.StatusCode,
			"reason", fetchErr.Reason,
			"url", fetchErr.URL,
			"response", fetchErr.Body,
		)
		return "", fetchErr
	}

	return string(body), nil
}

// stripAuthOnRedirect drops the credential whenever a redirect leaves the host of the
// first request. http.Client only does this for different domains, not ports.
func stripAuthOnRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return goerr.New("too many redirects",
			goerr.V("url", req.URL.String()),
			goerr.T(types.ErrTagFetch),
		)
	}
	if req.URL.Scheme != via[0].URL.Scheme || req.URL.Host != via[0].URL.Host {
		req.Header.Del("Authorization")
	}
	return nil
}

// tokenState reports whether a credential is configured without revealing it
func tokenState(token types.GitHubToken) string {
	if token.IsEmpty() {
		return "missing"
	}
	return "provided"
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line
func reasonPhrase(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
