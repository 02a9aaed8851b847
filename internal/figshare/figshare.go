// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package figshare queries the public figshare article search API.
package figshare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/figshare-search/internal/httputil"
	"github.com/pdiddy/figshare-search/internal/logging"
	"github.com/pdiddy/figshare-search/pkg/types"
)

// queryParam is the parameter the search endpoint reads the query from.
const queryParam = "search_for"

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 512

// ErrEmptyQuery is returned when the query is blank after trimming. The
// message is shown to the user as-is.
var ErrEmptyQuery = errors.New("Please enter a search term!")

// StatusError reports a non-2xx response from the search API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("figshare API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("figshare API returned HTTP %d: %s", e.StatusCode, e.Body)
}

// DecodeError reports a response body that is not a JSON array of records.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "parsing figshare response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Client searches figshare. The zero value is not usable; build one with
// NewClient.
type Client struct {
	http *http.Client
	cfg  types.SearchConfig
	log  logrus.FieldLogger
}

// NewClient returns a client for cfg. A nil httpClient gets one with
// cfg.Timeout; a nil log discards output.
func NewClient(cfg types.SearchConfig, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = types.DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = types.DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Client{http: httpClient, cfg: cfg, log: log}
}

// SearchURL returns the request URL for query: the endpoint with query
// percent-encoded as the single search_for parameter. Parameters already
// present on the endpoint are kept.
func SearchURL(endpoint, query string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	params := u.Query()
	params.Set(queryParam, query)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// Search issues one GET for query and decodes the response as a JSON
// array of records. The query is trimmed first; a blank query returns
// ErrEmptyQuery without touching the network. An empty array yields an
// empty, non-nil slice.
func (c *Client) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	reqURL, err := SearchURL(c.cfg.Endpoint, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	log := c.log.WithField("query", query)
	log.Debug("querying figshare")

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries, log)
	if err != nil {
		return nil, fmt.Errorf("figshare API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	results := []types.SearchResult{}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if results == nil {
		// A literal null body.
		results = []types.SearchResult{}
	}

	log.WithField("results", len(results)).Debug("figshare search complete")
	return results, nil
}
