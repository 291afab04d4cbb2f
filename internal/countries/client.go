package countries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png" // flags.png
	"io"
	"net/http"
	"strings"
	"time"

	"countryexplorer/internal/logging"
)

// DefaultBaseURL is the public REST Countries v3.1 API.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// maxFlagBytes caps a single flag download.
const maxFlagBytes = 4 << 20

var (
	// ErrFetchFailed covers every way loading the collection can fail:
	// transport errors, non-2xx statuses and undecodable payloads.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrFlagFailed is returned when a flag image cannot be downloaded or decoded.
	ErrFlagFailed = errors.New("flag fetch failed")
)

// Client reads the country collection from the REST Countries API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (everything before /all).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the public API unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchAll issues a single GET <base>/all and decodes the collection.
// There is no retry; any failure wraps ErrFetchFailed.
func (c *Client) FetchAll(ctx context.Context) ([]Country, error) {
	endpoint := c.baseURL + "/all"
	timer := logging.StartTimer(logging.CategoryAPI, "GET "+endpoint)
	defer timer.StopWithThreshold(5 * time.Second)

	body, err := c.get(ctx, endpoint, 0)
	if err != nil {
		logging.Get(logging.CategoryAPI).Error("country list request failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	var list []Country
	if err := json.Unmarshal(body, &list); err != nil {
		logging.Get(logging.CategoryAPI).Error("country list decode failed: %v", err)
		return nil, fmt.Errorf("%w: decode: %w", ErrFetchFailed, err)
	}
	if list == nil {
		logging.Get(logging.CategoryAPI).Error("country list decode failed: null payload")
		return nil, fmt.Errorf("%w: decode: empty payload", ErrFetchFailed)
	}

	logging.API("Loaded %d countries from %s", len(list), endpoint)
	return list, nil
}

// FetchFlagPNG downloads the raw bytes of a flag image.
func (c *Client) FetchFlagPNG(ctx context.Context, flagURL string) ([]byte, error) {
	if flagURL == "" {
		return nil, fmt.Errorf("%w: empty url", ErrFlagFailed)
	}
	timer := logging.StartTimer(logging.CategoryAPI, "GET "+flagURL)
	defer timer.Stop()

	data, err := c.get(ctx, flagURL, maxFlagBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagFailed, err)
	}
	logging.APIDebug("Fetched flag %s (%d bytes)", flagURL, len(data))
	return data, nil
}

// FetchFlag downloads and decodes a flag image.
func (c *Client) FetchFlag(ctx context.Context, flagURL string) (image.Image, error) {
	data, err := c.FetchFlagPNG(ctx, flagURL)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrFlagFailed, err)
	}
	return img, nil
}

// get performs a GET and returns the body of a 2xx response.
// limit <= 0 reads the whole body.
func (c *Client) get(ctx context.Context, u string, limit int64) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
