// Package fetch retrieves sports-reference pages as parsed documents.
//
// There is no retry or throttling here; a failed request is reported once.
package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"

	"github.com/tyler180/sportsref/pkg/extract"
)

const userAgent = "Mozilla/5.0 (compatible; SportsRefBot/1.0; +https://example.com/bot)"

// ErrNotFound is returned for a 404, usually a season or game that does not
// exist yet.
var ErrNotFound = errors.New("fetch: page not found")

// StatusError is any other non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: status %d for %s", e.Code, e.URL)
}

// Fetcher returns the parsed, comment-stripped document behind url.
type Fetcher interface {
	Page(ctx context.Context, url string) (*goquery.Selection, error)
}

type Options struct {
	Timeout time.Duration
	Referer string
}

// Client fetches pages over HTTP.
type Client struct {
	http    *resty.Client
	referer string
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	client.SetHeader("Accept-Encoding", "gzip, br")
	return &Client{http: client, referer: opts.Referer}
}

// Text returns the decoded body of url.
func (c *Client) Text(ctx context.Context, url string) (string, error) {
	req := c.http.R().SetContext(ctx).SetDoNotParseResponse(true)
	if c.referer != "" {
		req.SetHeader("Referer", c.referer)
	}
	res, err := req.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	body := res.RawBody()
	defer body.Close()

	switch res.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("%s: %w", url, ErrNotFound)
	default:
		return "", &StatusError{URL: url, Code: res.StatusCode()}
	}

	r, err := decode(body, res.Header().Get("Content-Encoding"))
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("fetch %s: read body: %w", url, err)
	}
	slog.Debug("fetched", "url", url, "bytes", len(b))
	return string(b), nil
}

func decode(body io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return zr, nil
	case "br":
		return brotli.NewReader(body), nil
	}
	return body, nil
}

// Page fetches url and parses it with commented-out tables restored.
func (c *Client) Page(ctx context.Context, url string) (*goquery.Selection, error) {
	html, err := c.Text(ctx, url)
	if err != nil {
		return nil, err
	}
	return parsePage(html)
}

// Exists reports whether url answers a HEAD request without an error status.
func (c *Client) Exists(ctx context.Context, url string) bool {
	res, err := c.http.R().SetContext(ctx).Head(url)
	if err != nil {
		slog.Debug("head failed", "url", url, "err", err)
		return false
	}
	return res.StatusCode() < 400
}

func parsePage(html string) (*goquery.Selection, error) {
	return extract.Parse(extract.StripComments(html))
}

// File serves one local HTML file for every request. It is used to parse
// saved pages without touching the network.
type File string

func (f File) Page(_ context.Context, _ string) (*goquery.Selection, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("fetch: read %s: %w", string(f), err)
	}
	return parsePage(string(b))
}

// Static serves pages from memory keyed by URL.
type Static map[string]string

func (s Static) Page(_ context.Context, url string) (*goquery.Selection, error) {
	html, ok := s[url]
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	return parsePage(html)
}
