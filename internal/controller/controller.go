// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package controller owns the UI state shared by the search and filter
// actions: the current result set, the active filter term, and the last
// user notice or error. Every surface (CLI, web session, TUI) drives one
// Controller.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/figshare-search/internal/figshare"
	"github.com/pdiddy/figshare-search/internal/logging"
	"github.com/pdiddy/figshare-search/internal/results"
	"github.com/pdiddy/figshare-search/pkg/types"
)

// ErrEmptyQuery is returned by Search for a blank query.
var ErrEmptyQuery = figshare.ErrEmptyQuery

// ErrStaleResponse is returned by Search when a newer search was issued
// while this one was in flight. Its response is discarded.
var ErrStaleResponse = errors.New("search superseded by a newer request")

// ErrNoPreviousQuery is returned by Retry before any search was issued.
var ErrNoPreviousQuery = errors.New("no previous search to retry")

// Searcher runs one query against the search API.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
}

// Phase is the observable state of the controller.
type Phase int

const (
	// Idle means no search has completed yet.
	Idle Phase = iota
	// Displaying means a result set is held and shown.
	Displaying
)

func (p Phase) String() string {
	if p == Displaying {
		return "displaying"
	}
	return "idle"
}

// State is a snapshot of the controller. Results is the full set from the
// latest applied search; Displayed is Results narrowed by Filter.
type State struct {
	Phase     Phase
	Query     string
	Results   []types.SearchResult
	Filter    string
	Displayed []types.SearchResult
	Pending   bool
	Notice    string
	Err       error
}

// Controller holds the result set and filter term. It is safe for
// concurrent use.
type Controller struct {
	searcher Searcher
	log      logrus.FieldLogger

	mu        sync.Mutex
	token     uint64
	settled   uint64
	phase     Phase
	lastQuery string
	results   []types.SearchResult
	filter    string
	notice    string
	err       error
}

// New returns an idle controller that searches through s.
func New(s Searcher, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{searcher: s, log: log}
}

// Search trims query and, if it is non-empty, issues one search. On
// success the result set is replaced wholesale (even by an empty set) and
// the filter is cleared. On failure the previous set is kept and the error
// is recorded for display.
//
// Each call takes a new token. If another Search starts before this one
// resolves, this call's outcome is discarded and ErrStaleResponse is
// returned; the newest request always wins regardless of arrival order.
func (c *Controller) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)

	c.mu.Lock()
	if query == "" {
		c.notice = ErrEmptyQuery.Error()
		c.mu.Unlock()
		return ErrEmptyQuery
	}
	c.token++
	token := c.token
	c.lastQuery = query
	c.notice = ""
	c.mu.Unlock()

	log := c.log.WithField("query", query)
	set, err := c.searcher.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		log.WithField("token", token).Debug("discarding stale search response")
		return ErrStaleResponse
	}
	c.settled = token

	if err != nil {
		log.WithError(err).Error("search failed")
		c.err = err
		return err
	}

	if set == nil {
		set = []types.SearchResult{}
	}
	c.results = set
	c.filter = ""
	c.err = nil
	c.phase = Displaying
	log.WithField("results", len(set)).Debug("search complete")
	return nil
}

// Retry re-issues the most recent non-empty query.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	q := c.lastQuery
	c.mu.Unlock()
	if q == "" {
		return ErrNoPreviousQuery
	}
	return c.Search(ctx, q)
}

// Filter sets the filter term and returns the records now displayed. An
// empty term shows the full set. The result set itself is never changed.
func (c *Controller) Filter(term string) []types.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = term
	return results.Filter(c.results, term)
}

// Displayed returns the records currently shown: the result set narrowed
// by the active filter term.
func (c *Controller) Displayed() []types.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return results.Filter(c.results, c.filter)
}

// DismissNotice clears the user notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	c.notice = ""
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Phase:     c.phase,
		Query:     c.lastQuery,
		Results:   append([]types.SearchResult(nil), c.results...),
		Filter:    c.filter,
		Displayed: results.Filter(c.results, c.filter),
		Pending:   c.settled != c.token,
		Notice:    c.notice,
		Err:       c.err,
	}
}
