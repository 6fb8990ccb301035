// Package resolver checks DOIs against the doi.org handle API.
//
// The public proxy answers whether a handle is registered and where it
// points. The client rate-limits itself to stay inside doi.org's
// politeness guidelines and retries server-side failures with
// exponential backoff.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"golang.org/x/time/rate"

	"github.com/cffkit/cffkit/internal/cff"
)

const (
	// DefaultBaseURL is the doi.org handle API endpoint.
	DefaultBaseURL = "https://doi.org/api/handles"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is 1 request per second. The proxy takes bulk
	// traffic but asks anonymous clients to stay slow.
	DefaultRateLimit = 1.0

	// Handle API response codes.
	handleSuccess     = 1
	handleSystemError = 2
	handleNotFound    = 100

	maxResponseSize = 1 << 20
)

// Client is a rate-limited HTTP client for the doi.org handle API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string

	maxRetries    uint64
	retryInterval time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom handle API endpoint (for testing, or for a
// local handle server).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithMailto sets a contact address sent in the User-Agent header, so
// doi.org operators can reach us instead of blocking us.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
	}
}

// NewClient creates a new handle API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: DefaultTimeout},
		limiter:       rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		baseURL:       DefaultBaseURL,
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
	}

	// Check for a contact address in the environment
	if addr := os.Getenv("CFF_MAILTO"); addr != "" {
		c.mailto = addr
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Resolution is the outcome of checking one DOI.
type Resolution struct {
	DOI      string `json:"doi"`
	Source   string `json:"source,omitempty"` // document field the DOI came from
	Resolved bool   `json:"resolved"`
	URL      string `json:"url,omitempty"` // registered redirect target
	Err      string `json:"error,omitempty"`
}

// handleResponse is the handle API reply envelope.
type handleResponse struct {
	ResponseCode int           `json:"responseCode"`
	Handle       string        `json:"handle"`
	Values       []handleValue `json:"values"`
}

type handleValue struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Data  struct {
		Format string          `json:"format"`
		Value  json.RawMessage `json:"value"`
	} `json:"data"`
}

// redirectURL extracts the registered URL value, if any.
func (hr *handleResponse) redirectURL() string {
	for _, v := range hr.Values {
		if v.Type != "URL" || v.Data.Format != "string" {
			continue
		}
		var s string
		if err := json.Unmarshal(v.Data.Value, &s); err == nil {
			return s
		}
	}
	return ""
}

// Resolve checks a single DOI against the handle API. It accepts bare
// DOIs, doi: prefixes, and resolver URLs. Server-side failures and
// network errors are retried; 429 surfaces immediately so the caller
// can slow down.
func (c *Client) Resolve(ctx context.Context, doi string) (*Resolution, error) {
	handle := cff.NormalizeDOI(doi)
	if handle == "" {
		return nil, fmt.Errorf("empty DOI")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxElapsedTime = 0

	var res *Resolution
	operation := func() error {
		r, err := c.resolveOnce(ctx, handle)
		if err != nil {
			if IsServerError(err) || errors.Is(err, ErrNetwork) {
				return err
			}
			return backoff.Permanent(err)
		}
		res = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		fmt.Fprintf(os.Stderr, "warning: retrying %s in %s: %v\n", handle, wait, err)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx), notify)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolveOnce performs a single handle API request.
func (c *Client) resolveOnce(ctx context.Context, handle string) (*Resolution, error) {
	// Handles keep their literal slashes in the request path.
	escaped := strings.ReplaceAll(url.PathEscape(handle), "%2F", "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+escaped, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	// Unknown handles come back as 404 with a JSON body; decode the
	// body before looking at the status.
	var hr handleResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	switch hr.ResponseCode {
	case handleSuccess:
		return &Resolution{DOI: handle, Resolved: true, URL: hr.redirectURL()}, nil
	case handleNotFound:
		return nil, &ResolveError{DOI: handle, StatusCode: resp.StatusCode, Code: handleNotFound, Message: "handle not found"}
	case handleSystemError:
		return nil, &ResolveError{DOI: handle, StatusCode: resp.StatusCode, Code: handleSystemError, Message: "handle system error"}
	default:
		return nil, fmt.Errorf("%w: unexpected response code %d", ErrInvalidResponse, hr.ResponseCode)
	}
}

// CheckDocument resolves every DOI a document carries: the top-level
// doi field, doi-typed identifiers, the preferred citation, and each
// reference. Duplicates are resolved once. Failures are reported per
// DOI; the returned error is non-nil only when the context ends.
func (c *Client) CheckDocument(ctx context.Context, doc *cff.Document) ([]Resolution, error) {
	type target struct {
		doi    string
		source string
	}
	var targets []target
	add := func(doi, source string) {
		if doi != "" {
			targets = append(targets, target{doi: doi, source: source})
		}
	}

	add(doc.DOI, "doi")
	for i, id := range doc.Identifiers {
		if id.Type == "doi" {
			add(id.Value, fmt.Sprintf("identifiers[%d]", i))
		}
	}
	if doc.PreferredCitation != nil {
		add(doc.PreferredCitation.DOI, "preferred-citation")
	}
	for i, ref := range doc.References {
		add(ref.DOI, fmt.Sprintf("references[%d]", i))
	}

	seen := make(map[string]bool)
	var out []Resolution
	for _, t := range targets {
		handle := cff.NormalizeDOI(t.doi)
		if seen[handle] {
			continue
		}
		seen[handle] = true

		res, err := c.Resolve(ctx, t.doi)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			out = append(out, Resolution{DOI: handle, Source: t.source, Err: err.Error()})
			continue
		}
		res.Source = t.source
		out = append(out, *res)
	}
	return out, nil
}

func (c *Client) userAgent() string {
	if c.mailto != "" {
		return fmt.Sprintf("cffkit (+https://github.com/cffkit/cffkit; mailto:%s)", c.mailto)
	}
	return "cffkit (+https://github.com/cffkit/cffkit)"
}
