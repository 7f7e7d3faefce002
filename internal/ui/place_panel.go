package ui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/roadtrip/internal/formatter"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

const maxPanelRecommendations = 5

type weatherMsg struct {
	placeID string
	weather model.Weather
}

type recommendationsMsg struct {
	placeID string
	list    model.RecommendationList
}

// PlacePanel shows weather and nearby recommendations for the last
// selected place.
type PlacePanel struct {
	ctx     context.Context
	backend Backend
	theme   Theme
	width   int

	place   *model.Candidate
	weather *model.Weather
	recs    *model.RecommendationList
}

// NewPlacePanel returns an empty panel.
func NewPlacePanel(ctx context.Context, backend Backend, theme Theme) *PlacePanel {
	return &PlacePanel{ctx: ctx, backend: backend, theme: theme}
}

func (p *PlacePanel) Init() tea.Cmd { return nil }

func (p *PlacePanel) SetSize(width, _ int) { p.width = width }

// Show switches the panel to c and starts loading its details.
func (p *PlacePanel) Show(c model.Candidate) tea.Cmd {
	p.place = &c
	p.weather = nil
	p.recs = nil

	ctx, b := p.ctx, p.backend
	id, lat, lng := c.ID, c.Lat, c.Lng
	return tea.Batch(
		func() tea.Msg {
			return weatherMsg{placeID: id, weather: b.CurrentWeather(ctx, lat, lng)}
		},
		func() tea.Msg {
			return recommendationsMsg{placeID: id, list: b.Recommendations(ctx, lat, lng, "")}
		},
	)
}

// Place returns the place on display, if any.
func (p *PlacePanel) Place() (model.Candidate, bool) {
	if p.place == nil {
		return model.Candidate{}, false
	}
	return *p.place, true
}

func (p *PlacePanel) current(id string) bool {
	return p.place != nil && p.place.ID == id
}

func (p *PlacePanel) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	switch msg := msg.(type) {
	case weatherMsg:
		if p.current(msg.placeID) {
			w := msg.weather
			p.weather = &w
		}
	case recommendationsMsg:
		if p.current(msg.placeID) {
			l := msg.list
			p.recs = &l
		}
	}
	return p, nil
}

func (p *PlacePanel) View() string {
	if p.place == nil {
		return p.theme.Dim.Render("Select a place to see weather and things to do nearby.")
	}
	var b strings.Builder
	b.WriteString(p.theme.Heading.Render(p.place.Name) + "\n")
	if p.place.Address != "" {
		b.WriteString(p.theme.Dim.Render(p.place.Address) + "\n")
	}

	if p.weather == nil {
		b.WriteString("Weather: loading…\n")
	} else {
		c := p.weather.Current
		fmt.Fprintf(&b, "Weather: %s, %.0f°F, humidity %.0f%%, wind %.0f mph\n",
			c.Condition.Text, c.TempF, c.Humidity, c.WindMph)
	}

	switch {
	case p.recs == nil:
		b.WriteString("Nearby: loading…")
	case len(p.recs.Results) == 0:
		b.WriteString("Nearby: nothing found")
	default:
		b.WriteString("Nearby:")
		for i, r := range p.recs.Results {
			if i == maxPanelRecommendations {
				break
			}
			fmt.Fprintf(&b, "\n  • %s  %s ★ %s", r.Name, p.theme.Dim.Render(fmt.Sprintf("%.1f", r.Rating)), formatter.Price(r.PriceLevel))
		}
	}
	return b.String()
}
