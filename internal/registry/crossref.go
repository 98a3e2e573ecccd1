// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry looks up DOIs in the Crossref works registry and maps the
// response onto the engine's LookupResult. Lookups are best-effort: every
// failure is reported as a LookupStatus, never as an error.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/litreview/internal/httputil"
	"github.com/pdiddy/litreview/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so tests
// can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

const (
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second

	appName = "litreview"
)

// UserAgent builds the identifying User-Agent header. Crossref routes
// requests that carry a mailto contact to its polite pool.
func UserAgent(version, mailto string) string {
	ua := appName + "/" + version
	if mailto != "" {
		ua += " (mailto:" + mailto + ")"
	}
	return ua
}

// Client is a Crossref lookup client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
	log        io.Writer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom works endpoint (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithRateLimit throttles lookups to perSecond requests. Zero or a negative
// value disables throttling.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLog sets the writer that receives per-lookup diagnostics. Nil
// discards them.
func WithLog(w io.Writer) ClientOption {
	return func(c *Client) {
		if w == nil {
			w = io.Discard
		}
		c.log = w
	}
}

// NewClient creates a Crossref client that identifies itself with userAgent.
func NewClient(userAgent string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  userAgent,
		baseURL:    crossrefAPIBase,
		log:        io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// crossrefResponse captures the fields we need from a Crossref work record.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title           []string         `json:"title"`
	Author          []crossrefAuthor `json:"author"`
	PublishedPrint  crossrefDate     `json:"published-print"`
	PublishedOnline crossrefDate     `json:"published-online"`
	Issued          crossrefDate     `json:"issued"`
	ContainerTitle  []string         `json:"container-title"`
	URL             string           `json:"URL"`
	Link            []crossrefLink   `json:"link"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// crossrefDate holds date-parts. Crossref sends [[null]] for unknown dates,
// which decodes to an empty json.Number.
type crossrefDate struct {
	DateParts [][]json.Number `json:"date-parts"`
}

type crossrefLink struct {
	URL string `json:"URL"`
}

// year returns the first element of the first date-parts tuple.
func (d crossrefDate) year() string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	n, err := d.DateParts[0][0].Int64()
	if err != nil || n <= 0 {
		return ""
	}
	return fmt.Sprintf("%04d", n)
}

// Lookup fetches the registry record for doi. It returns StatusResolved with
// whatever fields the record carries, StatusRateLimited after a single pause
// when the registry answers HTTP 429, and StatusFailed for any other problem.
func (c *Client) Lookup(ctx context.Context, doi string) (types.LookupResult, types.LookupStatus) {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return types.LookupResult{}, types.StatusFailed
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			fmt.Fprintf(c.log, "registry: %s: rate limiter: %v\n", doi, err)
			return types.LookupResult{}, types.StatusFailed
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+escapeDOI(doi), nil)
	if err != nil {
		fmt.Fprintf(c.log, "registry: %s: creating request: %v\n", doi, err)
		return types.LookupResult{}, types.StatusFailed
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoOnce(ctx, c.httpClient, req)
	if errors.Is(err, httputil.ErrRateLimited) {
		fmt.Fprintf(c.log, "registry: %s: rate limited\n", doi)
		return types.LookupResult{}, types.StatusRateLimited
	}
	if err != nil {
		fmt.Fprintf(c.log, "registry: %s: request: %v\n", doi, err)
		return types.LookupResult{}, types.StatusFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(c.log, "registry: %s: HTTP %d\n", doi, resp.StatusCode)
		return types.LookupResult{}, types.StatusFailed
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		fmt.Fprintf(c.log, "registry: %s: parsing response: %v\n", doi, err)
		return types.LookupResult{}, types.StatusFailed
	}
	return cr.Message.result(), types.StatusResolved
}

// result maps a Crossref work onto a LookupResult.
func (w crossrefWork) result() types.LookupResult {
	var r types.LookupResult
	if len(w.Title) > 0 {
		r.Title = collapse(w.Title[0])
	}
	for _, a := range w.Author {
		name := types.AuthorName{Given: collapse(a.Given), Family: collapse(a.Family)}
		if name.Family == "" {
			continue
		}
		r.Authors = append(r.Authors, name)
	}
	for _, d := range []crossrefDate{w.PublishedPrint, w.PublishedOnline, w.Issued} {
		if y := d.year(); y != "" {
			r.Year = y
			break
		}
	}
	if len(w.ContainerTitle) > 0 {
		r.Journal = collapse(w.ContainerTitle[0])
	}
	r.URL = strings.TrimSpace(w.URL)
	if r.URL == "" {
		for _, l := range w.Link {
			if u := strings.TrimSpace(l.URL); u != "" {
				r.URL = u
				break
			}
		}
	}
	return r
}

// escapeDOI escapes a DOI for use as a path segment while keeping the
// prefix/suffix slash readable.
func escapeDOI(doi string) string {
	return strings.ReplaceAll(url.PathEscape(doi), "%2F", "/")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
