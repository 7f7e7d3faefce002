package ui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/roadtrip/internal/search"
)

// titleLines is the number of lines rendered above the search box.
const titleLines = 1

// Planner composes the search box, the place panel and the itinerary.
type Planner struct {
	search    *SearchBox
	panel     *PlacePanel
	itinerary *Itinerary
	flash     Flash

	keys         KeyMap
	theme        Theme
	tripName     string
	initialQuery string
	debug        bool
	width        int
	height       int
}

// PlannerOptions configures NewPlanner.
type PlannerOptions struct {
	KeyMode      KeyMode
	NoColor      bool
	Debug        bool
	InitialQuery string
	TripName     string
}

// NewPlanner builds the planner around ctrl. backend serves the place panel,
// the route and saving.
func NewPlanner(ctx context.Context, ctrl *search.Controller, backend Backend, opts PlannerOptions) *Planner {
	theme := NewTheme(opts.NoColor)
	keys := NewKeyMap(opts.KeyMode)
	return &Planner{
		search:       NewSearchBox(ctrl, keys, theme),
		panel:        NewPlacePanel(ctx, backend, theme),
		itinerary:    NewItinerary(ctx, backend, theme),
		keys:         keys,
		theme:        theme,
		tripName:     opts.TripName,
		initialQuery: opts.InitialQuery,
		debug:        opts.Debug,
		width:        80,
		height:       24,
	}
}

func (p *Planner) Init() tea.Cmd {
	cmds := []tea.Cmd{p.search.Init()}
	if q := strings.TrimSpace(p.initialQuery); q != "" {
		cmds = append(cmds, p.search.SetQuery(q))
	}
	return tea.Batch(cmds...)
}

func (p *Planner) SetSize(width, height int) {
	p.width, p.height = width, height
	p.search.SetSize(width, height)
	p.panel.SetSize(width/2, height)
}

// Itinerary exposes the itinerary pane.
func (p *Planner) Itinerary() *Itinerary { return p.itinerary }

// SearchBox exposes the search box.
func (p *Planner) SearchBox() *SearchBox { return p.search }

// Close stops background search work.
func (p *Planner) Close() { p.search.Close() }

func (p *Planner) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch p.keys.Action(msg.String()) {
		case ActionSave:
			return p, p.save()
		case ActionRemoveStop:
			return p, p.removeLast()
		}
		_, cmd := p.search.Update(msg)
		return p, cmd

	case tea.MouseClickMsg:
		return p, p.click(msg.Mouse().Y)

	case PlaceSelectedMsg:
		return p, p.selectPlace(msg)

	case SearchDismissedMsg:
		return p, nil

	case TripSavedMsg:
		p.itinerary.Update(msg)
		if msg.Err != nil {
			return p, p.flash.Set(flashError, "Failed to save trip: "+msg.Err.Error())
		}
		return p, p.flash.Set(flashSuccess, fmt.Sprintf("Trip %q saved (#%d)", msg.Trip.Name, msg.Trip.ID))

	case weatherMsg, recommendationsMsg:
		p.panel.Update(msg)
		return p, nil

	case routeMsg:
		p.itinerary.Update(msg)
		return p, nil

	case flashClearMsg:
		p.flash.Update(msg)
		return p, nil
	}

	_, cmd := p.search.Update(msg)
	return p, cmd
}

func (p *Planner) selectPlace(msg PlaceSelectedMsg) tea.Cmd {
	show := p.panel.Show(msg.Place)
	if p.itinerary.Contains(msg.Place.ID) {
		return tea.Batch(show, p.flash.Set(flashInfo, msg.Place.Name+" is already in the itinerary"))
	}
	return tea.Batch(show, p.itinerary.Add(msg.Place), p.flash.Set(flashSuccess, "Added "+msg.Place.Name))
}

func (p *Planner) save() tea.Cmd {
	if len(p.itinerary.Stops()) == 0 {
		return p.flash.Set(flashInfo, "Add a place before saving")
	}
	cmd := p.itinerary.Save(p.tripName)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, p.flash.Set(flashInfo, "Saving trip…"))
}

func (p *Planner) removeLast() tea.Cmd {
	removed, cmd, ok := p.itinerary.RemoveLast()
	if !ok {
		return p.flash.Set(flashInfo, "The itinerary is empty")
	}
	return tea.Batch(cmd, p.flash.Set(flashInfo, "Removed "+removed.Name))
}

// click treats a press on the input line as focus, a press on a dropdown
// row as choosing that candidate and anywhere else as an outside press.
func (p *Planner) click(y int) tea.Cmd {
	top := titleLines
	switch {
	case y == top:
		return p.search.Refocus()
	case y > top && y < top+p.search.Height():
		return p.search.PickRow(y - top - 1)
	default:
		return p.search.Outside()
	}
}

func (p *Planner) View() string {
	var b strings.Builder
	b.WriteString(p.theme.Title.Render("roadtrip") + p.theme.Dim.Render("  f1 help") + "\n")
	b.WriteString(p.search.View() + "\n\n")

	panel := p.theme.Pane.Render(p.panel.View())
	itin := p.theme.Pane.Render(p.itinerary.View())
	if p.width >= 2*lipgloss.Width(panel) || p.width >= 100 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel, " ", itin))
	} else {
		b.WriteString(panel + "\n" + itin)
	}

	if f := p.flash.View(p.theme); f != "" {
		b.WriteString("\n" + f)
	}
	if p.debug {
		b.WriteString("\n" + debugLine(p.theme, p.search.Controller()))
	}
	return b.String()
}
