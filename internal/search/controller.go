// Package search implements the debounced place search behind the search
// box: query ownership, debounce, minimum-length gating, stale response
// discard and keyboard navigation over the results.
package search

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/roadtrip/pkg/logger"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultMinQueryLength = 2
)

// Searcher performs the place search. *api.Client satisfies it.
type Searcher interface {
	SearchPlaces(ctx context.Context, q string) model.SearchResult
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, q string) model.SearchResult

func (f SearcherFunc) SearchPlaces(ctx context.Context, q string) model.SearchResult {
	return f(ctx, q)
}

// TickFunc schedules a message after d. tea.Tick is the default.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// debounceMsg fires when a debounce window elapses. Only the one carrying
// the current generation does anything.
type debounceMsg struct {
	gen uint64
}

// ResultsMsg carries a finished search back into the update loop.
type ResultsMsg struct {
	Token  uint64
	Query  string
	Result model.SearchResult
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce sets the quiet period before a search is dispatched.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithMinQueryLength sets the trimmed length a query must exceed.
func WithMinQueryLength(n int) Option {
	return func(c *Controller) { c.minLen = n }
}

// WithMaxResults caps the number of candidates kept. Zero keeps all.
func WithMaxResults(n int) Option {
	return func(c *Controller) { c.maxResults = n }
}

// WithTick replaces tea.Tick, mainly for tests.
func WithTick(fn TickFunc) Option {
	return func(c *Controller) { c.tick = fn }
}

// WithLogger sets the controller's logger.
func WithLogger(l logr.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithContext sets the parent context for dispatched searches.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.parent = ctx }
}

// Controller owns the query and the visible candidates. It is driven from a
// bubbletea Update loop and is not safe for concurrent use.
type Controller struct {
	searcher   Searcher
	debounce   time.Duration
	minLen     int
	maxResults int
	tick       TickFunc
	log        logr.Logger
	parent     context.Context

	ctx    context.Context
	cancel context.CancelFunc

	query      string
	gen        uint64
	minted     uint64
	current    uint64
	searching  bool
	candidates []model.Candidate
	selection  Selection
	closed     bool
}

// NewController returns a controller that searches through s.
func NewController(s Searcher, opts ...Option) *Controller {
	c := &Controller{
		searcher: s,
		debounce: DefaultDebounce,
		minLen:   DefaultMinQueryLength,
		tick:     tea.Tick,
		log:      logr.Discard(),
		parent:   context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(c.parent)
	return c
}

// Query returns the raw query text.
func (c *Controller) Query() string { return c.query }

// Candidates returns the visible results. The slice must not be modified.
func (c *Controller) Candidates() []model.Candidate { return c.candidates }

// Searching reports whether a dispatched search has not come back yet.
func (c *Controller) Searching() bool { return c.searching }

// Selection returns a copy of the navigation state.
func (c *Controller) Selection() Selection { return c.selection }

// CurrentToken returns the token of the in-flight search, or zero.
func (c *Controller) CurrentToken() uint64 { return c.current }

// QueryChanged records new input text and restarts the debounce window.
func (c *Controller) QueryChanged(text string) tea.Cmd {
	if c.closed {
		return nil
	}
	c.query = text
	c.gen++
	gen := c.gen
	return c.tick(c.debounce, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen}
	})
}

// Update handles the controller's own messages and ignores everything else.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.closed {
		return nil
	}
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.gen != c.gen {
			return nil
		}
		return c.settle()
	case ResultsMsg:
		c.receive(msg)
	}
	return nil
}

// settle runs when typing has paused for the debounce window.
func (c *Controller) settle() tea.Cmd {
	q := strings.TrimSpace(c.query)
	if len([]rune(q)) <= c.minLen {
		c.current = 0
		c.searching = false
		c.setCandidates(nil)
		return nil
	}
	c.minted++
	token := c.minted
	c.current = token
	c.searching = true
	c.log.V(1).Info("dispatching search", logger.RequestKey, token, "query", q)

	ctx, s := c.ctx, c.searcher
	return func() tea.Msg {
		return ResultsMsg{Token: token, Query: q, Result: s.SearchPlaces(ctx, q)}
	}
}

func (c *Controller) receive(msg ResultsMsg) {
	if c.current == 0 || msg.Token != c.current {
		c.log.V(1).Info("discarding stale search results", logger.RequestKey, msg.Token, "current", c.current)
		return
	}
	c.current = 0
	c.searching = false
	results := msg.Result.Results
	if c.maxResults > 0 && len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	c.setCandidates(results)
}

func (c *Controller) setCandidates(cs []model.Candidate) {
	c.candidates = cs
	c.selection.SetResults(len(cs))
}

// Navigate applies a keyboard or focus input. When Enter picks a candidate
// it is returned with ok true, the query becomes the candidate's name and
// no new search is scheduled.
func (c *Controller) Navigate(in Input) (model.Candidate, bool) {
	if c.closed {
		return model.Candidate{}, false
	}
	if in == InputFocus && len([]rune(strings.TrimSpace(c.query))) <= c.minLen {
		return model.Candidate{}, false
	}
	idx, ok := c.selection.Apply(in)
	if !ok {
		return model.Candidate{}, false
	}
	return c.choose(idx)
}

// Pick chooses the candidate at index i of the open list, the way Enter
// does for a highlighted one.
func (c *Controller) Pick(i int) (model.Candidate, bool) {
	if c.closed || !c.selection.Pick(i) {
		return model.Candidate{}, false
	}
	return c.choose(i)
}

func (c *Controller) choose(idx int) (model.Candidate, bool) {
	if idx < 0 || idx >= len(c.candidates) {
		return model.Candidate{}, false
	}
	chosen := c.candidates[idx]
	c.query = chosen.Name
	c.gen++
	c.current = 0
	c.searching = false
	return chosen, true
}

// Clear empties the query and results and invalidates any pending work.
func (c *Controller) Clear() {
	c.query = ""
	c.gen++
	c.current = 0
	c.searching = false
	c.setCandidates(nil)
}

// Close tears the controller down. Pending ticks and in-flight responses
// become inert and in-flight requests are cancelled.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.Clear()
	c.closed = true
	c.cancel()
}
