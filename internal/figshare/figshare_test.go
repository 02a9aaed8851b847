// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package figshare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/figshare-search/pkg/types"
)

const sampleFigshareJSON = `[
  {
    "id": 1001,
    "title": "Alpha",
    "description": "about data",
    "published_date": "2020-01-01T00:00:00Z",
    "url": "http://x/1",
    "doi": "10.6084/m9.figshare.1001",
    "defined_type_name": "dataset"
  },
  {
    "id": 1002,
    "title": "Beta",
    "description": null,
    "published_date": null,
    "url": "http://x/2"
  }
]`

// recordingServer answers every request with status and body and records
// the raw query strings it saw.
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, *[]url.Values) {
	t.Helper()
	var seen []url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, &seen
}

func testClient(ts *httptest.Server) *Client {
	return NewClient(types.SearchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		Endpoint:   ts.URL + "/v2/articles/search",
		MaxRetries: 1,
	}, ts.Client(), nil)
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		query    string
		want     string
	}{
		{"plain", "https://api.figshare.com/v2/articles/search", "ocean", "https://api.figshare.com/v2/articles/search?search_for=ocean"},
		{"spaces and symbols", "https://api.figshare.com/v2/articles/search", "sea & sky/2", "https://api.figshare.com/v2/articles/search?search_for=sea+%26+sky%2F2"},
		{"keeps existing params", "http://h/s?page_size=10", "x", "http://h/s?page_size=10&search_for=x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchURL(tt.endpoint, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchURLRoundTripsQuery(t *testing.T) {
	for _, q := range []string{"climate", "a+b", "100% sure", "é ü 漢字", "x=y&z", "#hash?"} {
		raw, err := SearchURL(types.DefaultEndpoint, q)
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, q, u.Query().Get(queryParam), "query %q", q)
		assert.Len(t, u.Query(), 1)
	}
}

func TestSearchDecodesResults(t *testing.T) {
	ts, seen := recordingServer(t, http.StatusOK, sampleFigshareJSON)

	results, err := testClient(ts).Search(context.Background(), "  data sets ")
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Len(t, *seen, 1, "exactly one outbound request")
	assert.Equal(t, "data sets", (*seen)[0].Get("search_for"))

	assert.Equal(t, types.SearchResult{
		ID:              1001,
		Title:           "Alpha",
		Description:     "about data",
		PublishedDate:   "2020-01-01T00:00:00Z",
		URL:             "http://x/1",
		DOI:             "10.6084/m9.figshare.1001",
		DefinedTypeName: "dataset",
	}, results[0])
	assert.Equal(t, "Beta", results[1].Title)
	assert.Empty(t, results[1].Description)
	assert.Empty(t, results[1].PublishedDate)
}

func TestSearchSendsHeaders(t *testing.T) {
	var ua, accept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		fmt.Fprint(w, "[]")
	}))
	defer ts.Close()

	_, err := testClient(ts).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "test/0.1", ua)
	assert.Equal(t, "application/json", accept)
}

func TestSearchEmptyArray(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		ts, _ := recordingServer(t, http.StatusOK, body)
		results, err := testClient(ts).Search(context.Background(), "nothing")
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestSearchEmptyQueryMakesNoRequest(t *testing.T) {
	ts, seen := recordingServer(t, http.StatusOK, "[]")
	c := testClient(ts)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := c.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Empty(t, *seen)
	assert.Equal(t, "Please enter a search term!", ErrEmptyQuery.Error())
}

func TestSearchHTTPError(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusBadRequest, `{"message":"bad search"}`)

	_, err := testClient(ts).Search(context.Background(), "x")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, se.Error(), "bad search")
}

func TestSearchMalformedJSON(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, `<html>oops</html>`)

	_, err := testClient(ts).Search(context.Background(), "x")
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestSearchObjectInsteadOfArray(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, `{"results": []}`)

	_, err := testClient(ts).Search(context.Background(), "x")
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestSearchNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := testClient(ts)
	ts.Close()

	_, err := c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "figshare API request")
}

func TestSearchRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `[{"title":"ok","url":"http://x"}]`)
	}))
	defer ts.Close()

	results, err := testClient(ts).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.SearchConfig{}, nil, nil)
	assert.Equal(t, types.DefaultEndpoint, c.cfg.Endpoint)
	assert.Equal(t, types.DefaultTimeout, c.http.Timeout)
}
