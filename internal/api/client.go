package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// BaseURL is the Spotify Web API root.
const BaseURL = "https://api.spotify.com/v1"

// maxRateLimitRetries bounds how many 429s a single call rides out before
// the error is surfaced.
const maxRateLimitRetries = 3

var sleep = time.Sleep

// Client performs authenticated requests against the Spotify Web API.
//
// A client-side limiter paces requests so bursty commands (pagination,
// dedup rewrites) don't trip the server's rate limits in the first place.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient swaps the underlying [http.Client].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client sending the given bearer token.
func NewClient(accessToken string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     BaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(10), 5),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// PutRaw performs a PUT with a preencoded body and content type, used for
// the base64 playlist cover upload.
func (c *Client) PutRaw(ctx context.Context, path, contentType string, body []byte) (any, error) {
	return c.request(ctx, http.MethodPut, path, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	})
}

// Delete performs a DELETE request with an optional JSON body.
func (c *Client) Delete(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodDelete, path, body)
}

// do builds a JSON request. Bodyless non-GET verbs send an explicit
// Content-Length: 0, which some Spotify player endpoints require.
func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	return c.request(ctx, method, path, func() (*http.Request, error) {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			reader = bytes.NewReader(data)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		} else if method != http.MethodGet {
			req.ContentLength = 0
			req.Header.Set("Content-Length", "0")
		}
		return req, nil
	})
}

func (c *Client) request(ctx context.Context, method, path string, build func() (*http.Request, error)) (any, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NetworkError(err)
		}

		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, NetworkError(err)
		}

		payload, apiErr := c.readResponse(resp)
		c.logger.Debug("spotify api request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"ratelimit_remaining", resp.Header.Get("x-ratelimit-remaining"),
		)

		if apiErr != nil && apiErr.Class == ErrClassRateLimited && attempt < maxRateLimitRetries {
			c.logger.Warn("rate limited, retrying", "retry_after", apiErr.RetryAfter, "attempt", attempt+1)
			sleep(time.Duration(apiErr.RetryAfter) * time.Second)
			continue
		}
		if apiErr != nil {
			return nil, apiErr
		}
		return payload, nil
	}
}

// readResponse drains and classifies one response. 204 yields a nil
// payload; other 2xx bodies decode as free-form JSON.
func (c *Client) readResponse(resp *http.Response) (any, *Error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryAfter := 1
		if v := resp.Header.Get("Retry-After"); v != "" {
			fmt.Sscanf(v, "%d", &retryAfter)
		}
		return nil, classifyResponse(resp.StatusCode, data, retryAfter)
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &Error{Class: ErrClassAPI, Status: resp.StatusCode, Message: "Malformed response from Spotify"}
	}
	return payload, nil
}
