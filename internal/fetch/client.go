package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/casgest/internal/parser"
	"github.com/dgallion1/casgest/internal/store"
)

// Depositor receives downloaded bulletins.
type Depositor interface {
	Exists(name string) bool
	Put(name string, r io.Reader) error
}

// Client retrieves the monthly listing and the bulletin PDFs.
type Client struct {
	listingURL string
	httpClient *http.Client
	log        *slog.Logger
	maxBytes   int64
	backoff    func(attempt int) time.Duration
	validate   func(data []byte) error
}

func NewClient(listingURL string, timeout time.Duration, maxBytes int64, log *slog.Logger) *Client {
	return &Client{
		listingURL: listingURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		maxBytes: maxBytes,
		backoff:  Backoff,
		validate: parser.Validate,
	}
}

// Listing returns the issues published in the given month.
func (c *Client) Listing(ctx context.Context, year, month int) ([]Issue, error) {
	base, err := url.Parse(c.listingURL)
	if err != nil {
		return nil, fmt.Errorf("listing url: %w", err)
	}
	form := url.Values{
		"ddwANO": {strconv.Itoa(year)},
		"ddwMES": {fmt.Sprintf("%02d", month)},
	}

	body, err := c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.listingURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch listing %04d-%02d: %w", year, month, err)
	}
	return ParseListing(bytes.NewReader(body), base)
}

// Download fetches one bulletin.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	})
}

// SyncResult lists what a Sync call did per store key.
type SyncResult struct {
	Downloaded []string          `json:"downloaded"`
	Skipped    []string          `json:"skipped"`
	Failed     map[string]string `json:"failed"`
}

// Sync downloads every issue of the month that dest does not hold yet.
// A failed download is recorded and the remaining issues still proceed.
func (c *Client) Sync(ctx context.Context, year, month int, dest Depositor) (*SyncResult, error) {
	issues, err := c.Listing(ctx, year, month)
	if err != nil {
		return nil, err
	}

	res := &SyncResult{Failed: map[string]string{}}
	for _, issue := range issues {
		name := store.Key(issue.Date)
		if dest.Exists(name) {
			c.log.Info("bulletin already stored, skipping", "file", name)
			res.Skipped = append(res.Skipped, name)
			continue
		}
		data, err := c.Download(ctx, issue.URL)
		if err == nil {
			err = c.validate(data)
		}
		if err == nil {
			err = dest.Put(name, bytes.NewReader(data))
		}
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			c.log.Error("bulletin download failed", "file", name, "url", issue.URL, "error", err)
			res.Failed[name] = err.Error()
			continue
		}
		c.log.Info("bulletin downloaded", "file", name, "bytes", len(data))
		res.Downloaded = append(res.Downloaded, name)
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, newReq func() (*http.Request, error)) ([]byte, error) {
	var lastErr error
	for attempt := range MaxRetries {
		req, err := newReq()
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		body, err := c.once(req)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
		c.log.Warn("retryable fetch error", "url", req.URL.String(), "attempt", attempt, "error", err)
		select {
		case <-time.After(c.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (c *Client) once(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.URL, err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%s: response exceeds %d bytes", req.URL, c.maxBytes)
	}
	return body, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
