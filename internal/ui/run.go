// Package ui is the interactive trip planner: a debounced place search with
// keyboard navigation, a panel with weather and nearby suggestions, and an
// itinerary that can be saved as a trip.
package ui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/roadtrip/internal/config"
	"github.com/oakwood-commons/roadtrip/internal/search"
	"github.com/oakwood-commons/roadtrip/pkg/logger"
)

// Options configures Run.
type Options struct {
	Backend        Backend
	Search         config.SearchConfig
	KeyMode        KeyMode
	NoColor        bool
	Debug          bool
	InitialQuery   string
	TripName       string
	ProgramOptions []tea.ProgramOption
}

// NewController builds the search controller described by cfg.
func NewController(ctx context.Context, backend search.Searcher, cfg config.SearchConfig, log logr.Logger) *search.Controller {
	opts := []search.Option{search.WithContext(ctx), search.WithLogger(log)}
	if cfg.Debounce > 0 {
		opts = append(opts, search.WithDebounce(cfg.Debounce))
	}
	if cfg.MinQueryLength > 0 {
		opts = append(opts, search.WithMinQueryLength(cfg.MinQueryLength))
	}
	if cfg.MaxResults > 0 {
		opts = append(opts, search.WithMaxResults(cfg.MaxResults))
	}
	return search.NewController(backend, opts...)
}

// Run starts the planner and blocks until the user quits or ctx ends. It
// logs through the logger carried by ctx.
func Run(ctx context.Context, opts Options) error {
	log := *logger.FromContext(ctx)
	ctrl := NewController(ctx, opts.Backend, opts.Search, log)
	planner := NewPlanner(ctx, ctrl, opts.Backend, PlannerOptions{
		KeyMode:      opts.KeyMode,
		NoColor:      opts.NoColor,
		Debug:        opts.Debug,
		InitialQuery: opts.InitialQuery,
		TripName:     opts.TripName,
	})
	defer planner.Close()

	keys := NewKeyMap(opts.KeyMode)
	root := NewRootModel(planner, NewHelpModel(keys, NewTheme(opts.NoColor)), keys)

	progOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, opts.ProgramOptions...)
	log.V(1).Info("starting planner", "keyMode", string(keys.Mode()))
	_, err := tea.NewProgram(root, progOpts...).Run()
	return err
}
