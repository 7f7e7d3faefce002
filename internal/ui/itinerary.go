package ui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/roadtrip/internal/formatter"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

type routeMsg struct {
	seq   uint64
	route model.Route
}

// TripSavedMsg reports the outcome of saving the itinerary.
type TripSavedMsg struct {
	Trip *model.Trip
	Err  error
}

// Itinerary is the ordered list of places picked in this session and the
// route between them.
type Itinerary struct {
	ctx     context.Context
	backend Backend
	theme   Theme

	stops   []model.Candidate
	route   *model.Route
	seq     uint64
	routing bool
	saving  bool
}

// NewItinerary returns an empty itinerary.
func NewItinerary(ctx context.Context, backend Backend, theme Theme) *Itinerary {
	return &Itinerary{ctx: ctx, backend: backend, theme: theme}
}

func (it *Itinerary) Init() tea.Cmd { return nil }

// Stops returns the places in order. The slice must not be modified.
func (it *Itinerary) Stops() []model.Candidate { return it.stops }

// Route returns the last calculated route, if any.
func (it *Itinerary) Route() (model.Route, bool) {
	if it.route == nil {
		return model.Route{}, false
	}
	return *it.route, true
}

// Contains reports whether a place with id is already a stop.
func (it *Itinerary) Contains(id string) bool {
	for _, s := range it.stops {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Add appends c and recalculates the route.
func (it *Itinerary) Add(c model.Candidate) tea.Cmd {
	it.stops = append(it.stops, c)
	return it.recalculate()
}

// RemoveLast drops the last stop. ok is false when the itinerary is empty.
func (it *Itinerary) RemoveLast() (model.Candidate, tea.Cmd, bool) {
	if len(it.stops) == 0 {
		return model.Candidate{}, nil, false
	}
	last := it.stops[len(it.stops)-1]
	it.stops = it.stops[:len(it.stops)-1]
	return last, it.recalculate(), true
}

// recalculate invalidates the current route and requests a new one when
// there are at least two stops.
func (it *Itinerary) recalculate() tea.Cmd {
	it.seq++
	it.route = nil
	if len(it.stops) < 2 {
		it.routing = false
		return nil
	}
	it.routing = true
	seq := it.seq
	waypoints := make([]model.Waypoint, len(it.stops))
	for i, s := range it.stops {
		waypoints[i] = model.Waypoint{Lat: s.Lat, Lng: s.Lng}
	}
	ctx, b := it.ctx, it.backend
	return func() tea.Msg {
		return routeMsg{seq: seq, route: b.CalculateRoute(ctx, waypoints)}
	}
}

// Save creates a trip from the stops. It returns nil when there is nothing
// to save or a save is already running.
func (it *Itinerary) Save(name string) tea.Cmd {
	if len(it.stops) == 0 || it.saving {
		return nil
	}
	it.saving = true
	in := it.tripInput(name)
	ctx, b := it.ctx, it.backend
	return func() tea.Msg {
		trip, err := b.CreateTrip(ctx, in)
		return TripSavedMsg{Trip: trip, Err: err}
	}
}

// Saving reports whether a save is in flight.
func (it *Itinerary) Saving() bool { return it.saving }

func (it *Itinerary) tripInput(name string) model.TripInput {
	if strings.TrimSpace(name) == "" {
		name = "Trip to " + it.stops[len(it.stops)-1].Name
	}
	in := model.TripInput{Name: name, RouteType: "fastest"}
	for i, s := range it.stops {
		stopType := model.StopWaypoint
		switch {
		case i == 0:
			stopType = model.StopStart
		case i == len(it.stops)-1:
			stopType = model.StopDestination
		}
		in.Stops = append(in.Stops, model.StopInput{
			Name:      s.Name,
			Address:   s.Address,
			Latitude:  s.Lat,
			Longitude: s.Lng,
			Order:     i + 1,
			StopType:  stopType,
		})
	}
	if it.route != nil {
		in.TotalDistance = it.route.TotalDistance
		in.TotalTime = it.route.TotalTime
	}
	return in
}

func (it *Itinerary) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	switch msg := msg.(type) {
	case routeMsg:
		if msg.seq == it.seq {
			r := msg.route
			it.route = &r
			it.routing = false
		}
	case TripSavedMsg:
		it.saving = false
	}
	return it, nil
}

func (it *Itinerary) View() string {
	var b strings.Builder
	b.WriteString(it.theme.Heading.Render(fmt.Sprintf("Itinerary (%d)", len(it.stops))))
	if len(it.stops) == 0 {
		b.WriteString("\n" + it.theme.Dim.Render("Press enter on a result to add it."))
		return b.String()
	}
	for i, s := range it.stops {
		fmt.Fprintf(&b, "\n%2d. %s", i+1, s.Name)
	}
	switch {
	case it.routing:
		b.WriteString("\n" + it.theme.Dim.Render("Calculating route…"))
	case it.route != nil:
		b.WriteString("\n" + it.theme.Info.Render(fmt.Sprintf("Route: %s, %s",
			formatter.Miles(it.route.TotalDistance), formatter.Hours(it.route.TotalTime))))
	}
	if it.saving {
		b.WriteString("\n" + it.theme.Dim.Render("Saving…"))
	}
	return b.String()
}
