// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/figshare-search/pkg/types"
)

// --- fake searcher ---

type call struct {
	query   string
	release chan struct{}
}

// fakeSearcher answers from a fixed table. When gate is set, each call
// blocks until its release channel is closed, so tests control the order
// in which responses arrive.
type fakeSearcher struct {
	mu      sync.Mutex
	answers map[string][]types.SearchResult
	errs    map[string]error
	queries []string
	gate    bool
	calls   chan call
}

func newFake() *fakeSearcher {
	return &fakeSearcher{
		answers: map[string][]types.SearchResult{},
		errs:    map[string]error{},
		calls:   make(chan call, 8),
	}
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]types.SearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	gate := f.gate
	f.mu.Unlock()

	if gate {
		c := call{query: query, release: make(chan struct{})}
		f.calls <- c
		<-c.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers[query], f.errs[query]
}

func (f *fakeSearcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func scenarioSet() []types.SearchResult {
	return []types.SearchResult{
		{Title: "Alpha", Description: "about data", PublishedDate: "2020-01-01", URL: "http://x/1"},
		{Title: "Beta", URL: "http://x/2"},
	}
}

func titles(set []types.SearchResult) []string {
	out := make([]string, len(set))
	for i, r := range set {
		out[i] = r.Title
	}
	return out
}

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

// --- Search ---

func TestNewControllerIsIdle(t *testing.T) {
	c := New(newFake(), nil)
	s := c.Snapshot()
	assert.Equal(t, Idle, s.Phase)
	assert.Empty(t, s.Results)
	assert.Empty(t, s.Displayed)
	assert.False(t, s.Pending)
}

func TestSearchEmptyQuery(t *testing.T) {
	f := newFake()
	c := New(f, quietLogger())

	for _, q := range []string{"", "   "} {
		err := c.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Equal(t, 0, f.count())
	assert.Equal(t, "Please enter a search term!", c.Snapshot().Notice)
	assert.Equal(t, Idle, c.Snapshot().Phase)
}

func TestSearchReplacesResultSet(t *testing.T) {
	f := newFake()
	f.answers["first"] = scenarioSet()
	f.answers["second"] = []types.SearchResult{{Title: "Gamma"}}
	c := New(f, quietLogger())

	require.NoError(t, c.Search(context.Background(), " first "))
	assert.Equal(t, []string{"first"}, f.queries)
	assert.Equal(t, []string{"Alpha", "Beta"}, titles(c.Displayed()))

	require.NoError(t, c.Search(context.Background(), "second"))
	assert.Equal(t, []string{"Gamma"}, titles(c.Snapshot().Results))
}

func TestSearchEmptyResponseReplacesSet(t *testing.T) {
	f := newFake()
	f.answers["a"] = scenarioSet()
	c := New(f, quietLogger())

	require.NoError(t, c.Search(context.Background(), "a"))
	require.NoError(t, c.Search(context.Background(), "none"))

	s := c.Snapshot()
	assert.Equal(t, Displaying, s.Phase)
	assert.Empty(t, s.Results)
	assert.NotNil(t, c.Displayed())
}

func TestSearchClearsFilterAndNotice(t *testing.T) {
	f := newFake()
	f.answers["a"] = scenarioSet()
	c := New(f, quietLogger())

	_ = c.Search(context.Background(), "")
	require.NoError(t, c.Search(context.Background(), "a"))
	c.Filter("data")
	require.NoError(t, c.Search(context.Background(), "a"))

	s := c.Snapshot()
	assert.Empty(t, s.Filter)
	assert.Empty(t, s.Notice)
	assert.Len(t, s.Displayed, 2)
}

func TestSearchFailureKeepsResultsAndRecordsError(t *testing.T) {
	f := newFake()
	f.answers["good"] = scenarioSet()
	boom := errors.New("network down")
	f.errs["bad"] = boom

	log, hook := test.NewNullLogger()
	c := New(f, log)

	require.NoError(t, c.Search(context.Background(), "good"))
	c.Filter("alpha")

	err := c.Search(context.Background(), "bad")
	assert.ErrorIs(t, err, boom)

	s := c.Snapshot()
	assert.ErrorIs(t, s.Err, boom)
	assert.Equal(t, []string{"Alpha", "Beta"}, titles(s.Results))
	assert.Equal(t, []string{"Alpha"}, titles(s.Displayed))
	assert.Equal(t, "bad", s.Query)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "bad", hook.LastEntry().Data["query"])

	// A later success clears the error.
	require.NoError(t, c.Search(context.Background(), "good"))
	assert.NoError(t, c.Snapshot().Err)
}

func TestRetry(t *testing.T) {
	f := newFake()
	c := New(f, quietLogger())

	assert.ErrorIs(t, c.Retry(context.Background()), ErrNoPreviousQuery)

	f.errs["flaky"] = errors.New("timeout")
	require.Error(t, c.Search(context.Background(), "flaky"))

	f.mu.Lock()
	delete(f.errs, "flaky")
	f.answers["flaky"] = scenarioSet()
	f.mu.Unlock()

	require.NoError(t, c.Retry(context.Background()))
	assert.Equal(t, []string{"flaky", "flaky"}, f.queries)
	assert.Len(t, c.Displayed(), 2)
}

// --- race guard ---

func TestStaleResponseIsDiscarded(t *testing.T) {
	f := newFake()
	f.gate = true
	f.answers["old"] = []types.SearchResult{{Title: "old result"}}
	f.answers["new"] = []types.SearchResult{{Title: "new result"}}
	c := New(f, quietLogger())

	errs := make(chan error, 2)
	go func() { errs <- c.Search(context.Background(), "old") }()
	oldCall := <-f.calls
	go func() { errs <- c.Search(context.Background(), "new") }()
	newCall := <-f.calls

	assert.True(t, c.Snapshot().Pending)

	// The newer request resolves first; the older one arrives last.
	close(newCall.release)
	require.NoError(t, <-errs)
	close(oldCall.release)
	assert.ErrorIs(t, <-errs, ErrStaleResponse)

	s := c.Snapshot()
	assert.Equal(t, []string{"new result"}, titles(s.Results))
	assert.Equal(t, "new", s.Query)
	assert.False(t, s.Pending)
}

func TestStaleErrorIsDiscarded(t *testing.T) {
	f := newFake()
	f.gate = true
	f.errs["old"] = errors.New("late failure")
	f.answers["new"] = scenarioSet()
	c := New(f, quietLogger())

	errs := make(chan error, 2)
	go func() { errs <- c.Search(context.Background(), "old") }()
	oldCall := <-f.calls
	go func() { errs <- c.Search(context.Background(), "new") }()
	newCall := <-f.calls

	close(newCall.release)
	require.NoError(t, <-errs)
	close(oldCall.release)
	assert.ErrorIs(t, <-errs, ErrStaleResponse)

	assert.NoError(t, c.Snapshot().Err)
	assert.Len(t, c.Displayed(), 2)
}

// --- Filter ---

func TestFilterScenario(t *testing.T) {
	f := newFake()
	f.answers["q"] = scenarioSet()
	c := New(f, quietLogger())
	require.NoError(t, c.Search(context.Background(), "q"))

	assert.Equal(t, []string{"Alpha"}, titles(c.Filter("data")))
	assert.Equal(t, []string{"Alpha"}, titles(c.Displayed()))
	assert.Equal(t, "data", c.Snapshot().Filter)
}

func TestFilterEmptyTermResets(t *testing.T) {
	f := newFake()
	f.answers["q"] = scenarioSet()
	c := New(f, quietLogger())
	require.NoError(t, c.Search(context.Background(), "q"))

	c.Filter("zzz")
	assert.Empty(t, c.Displayed())

	got := c.Filter("")
	assert.Equal(t, scenarioSet(), got)
	assert.Equal(t, scenarioSet(), c.Displayed())
}

func TestFilterNeverMutatesResults(t *testing.T) {
	f := newFake()
	f.answers["q"] = scenarioSet()
	c := New(f, quietLogger())
	require.NoError(t, c.Search(context.Background(), "q"))

	shown := c.Filter("beta")
	shown[0].Title = "mutated"
	c.Filter("nothing")

	assert.Equal(t, scenarioSet(), c.Snapshot().Results)
}

func TestFilterIdempotent(t *testing.T) {
	f := newFake()
	f.answers["q"] = scenarioSet()
	c := New(f, quietLogger())
	require.NoError(t, c.Search(context.Background(), "q"))

	once := c.Filter("A")
	twice := c.Filter("A")
	assert.Equal(t, once, twice)
	assert.Equal(t, once, c.Displayed())
}

func TestFilterBeforeSearch(t *testing.T) {
	c := New(newFake(), quietLogger())
	assert.Empty(t, c.Filter("x"))
	assert.Equal(t, Idle, c.Snapshot().Phase)
}

func TestDismissNotice(t *testing.T) {
	c := New(newFake(), quietLogger())
	_ = c.Search(context.Background(), " ")
	c.DismissNotice()
	assert.Empty(t, c.Snapshot().Notice)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "displaying", Displaying.String())
}
