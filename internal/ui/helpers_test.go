package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/roadtrip/internal/search"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

type fakeBackend struct {
	mu        sync.Mutex
	places    []model.Candidate
	queries   []string
	routes    [][]model.Waypoint
	created   []model.TripInput
	createErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{places: []model.Candidate{
		{ID: "ys", Name: "Yellowstone National Park", Address: "WY", Lat: 44.4, Lng: -110.5, Type: "park"},
		{ID: "yd", Name: "Yellowstone Downtown", Address: "WY", Lat: 44.5, Lng: -110.6, Type: "locality"},
		{ID: "gt", Name: "Grand Teton", Address: "WY", Lat: 43.7, Lng: -110.8, Type: "park"},
	}}
}

func (f *fakeBackend) SearchPlaces(_ context.Context, q string) model.SearchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	var out []model.Candidate
	for _, p := range f.places {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return model.SearchResult{Results: out}
}

func (f *fakeBackend) CurrentWeather(_ context.Context, lat, lng float64) model.Weather {
	return model.Weather{
		Location: "here",
		Current:  model.CurrentWeather{TempF: 70, Condition: model.Condition{Text: "Sunny", Icon: "sunny"}, Humidity: 40, WindMph: 5},
	}
}

func (f *fakeBackend) Recommendations(_ context.Context, _, _ float64, _ string) model.RecommendationList {
	return model.RecommendationList{Results: []model.Recommendation{{PlaceID: "r1", Name: "Old Faithful Inn", Rating: 4.6}}}
}

func (f *fakeBackend) CalculateRoute(_ context.Context, wps []model.Waypoint) model.Route {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, wps)
	d := 150 * float64(len(wps))
	return model.Route{TotalDistance: d, TotalTime: d / 60}
}

func (f *fakeBackend) CreateTrip(_ context.Context, in model.TripInput) (*model.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &model.Trip{ID: 42, Name: in.Name}, nil
}

var errBackend = errors.New("backend unavailable")

// immediateTick fires debounce timers at once.
func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Time{}) }
}

func newTestPlanner(b *fakeBackend, opts PlannerOptions) *Planner {
	ctrl := search.NewController(b, search.WithTick(immediateTick))
	return NewPlanner(context.Background(), ctrl, b, opts)
}

// collect runs cmd and returns the messages it produces. Timers that do not
// fire promptly (blink, spinner, flash expiry) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

type updater interface {
	Update(tea.Msg) (ChildModel, tea.Cmd)
}

// pump feeds the results of cmd back into m until nothing is left.
func pump(m updater, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := collect(cmd)
	for depth := 0; len(queue) > 0 && depth < 20; depth++ {
		var next []tea.Msg
		for _, msg := range queue {
			seen = append(seen, msg)
			_, c := m.Update(msg)
			next = append(next, collect(c)...)
		}
		queue = next
	}
	return seen
}

func send(m updater, msg tea.Msg) []tea.Msg {
	_, cmd := m.Update(msg)
	return pump(m, cmd)
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(m updater, s string) {
	for _, r := range s {
		send(m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func hasMsg[T any](msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			return true
		}
	}
	return false
}
