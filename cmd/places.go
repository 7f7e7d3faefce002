package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/roadtrip/internal/formatter"
	"github.com/oakwood-commons/roadtrip/internal/ui"
	"github.com/oakwood-commons/roadtrip/pkg/logger"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// wantsInteractive reports whether cmd will start the planner UI, which
// must not share the terminal with log output.
func wantsInteractive(cmd *cobra.Command, args []string) bool {
	if cmd.Name() != "search" {
		return false
	}
	if len(args) == 0 {
		return true
	}
	i, err := cmd.Flags().GetBool("interactive")
	return err == nil && i
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		interactive bool
		tripName    string
	)
	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search places, interactively without a query",
		Long: "Search places by name or address. Without a query, or with -i, " +
			"opens the planner: type to search, pick a place with the arrow keys " +
			"and Enter, and save the collected stops as a trip.",
		Example: "  roadtrip search 'grand canyon'\n" +
			"  roadtrip search -i moab --keymap emacs",
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if interactive || query == "" {
				c, err := a.client(cmd.Context(), false)
				if err != nil {
					return err
				}
				return a.runUI(cmd.Context(), ui.Options{
					Backend:      c,
					Search:       a.cfg.Search,
					KeyMode:      ui.KeyMode(a.cfg.UI.KeyMode),
					NoColor:      a.cfg.UI.NoColor,
					Debug:        a.debug,
					InitialQuery: query,
					TripName:     tripName,
				})
			}

			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			res := c.SearchPlaces(cmd.Context(), query)
			if n := a.cfg.Search.MaxResults; n > 0 && len(res.Results) > n {
				res.Results = res.Results[:n]
			}
			if res.Results == nil {
				res.Results = []model.Candidate{}
			}
			logger.FromContext(cmd.Context()).V(1).Info("searched places", "query", query, "results", len(res.Results), "synthetic", res.Synthetic)
			return a.render(cmd.Context(), res, "results", func() formatter.Table {
				return formatter.CandidatesTable(res.Results)
			})
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive planner")
	cmd.Flags().StringVar(&tripName, "trip-name", "", "name used when saving the planned trip")
	return cmd
}

// coordFlags binds --lat and --lng.
type coordFlags struct {
	lat, lng float64
}

func (c *coordFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&c.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&c.lng, "lng", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
}

func newWeatherCmd(a *app) *cobra.Command {
	var at coordFlags
	cmd := &cobra.Command{
		Use:     "weather",
		Short:   "Show the current weather at a location",
		Example: "  roadtrip weather --lat 36.1 --lng -112.1",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateCoordinates(at.lat, at.lng); err != nil {
				return err
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			w := c.CurrentWeather(cmd.Context(), at.lat, at.lng)
			return a.render(cmd.Context(), w, "weather", func() formatter.Table {
				return formatter.WeatherTable(w)
			})
		},
	}
	at.bind(cmd)
	return cmd
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		at        coordFlags
		placeType string
	)
	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Suggest places near a location",
		Example: "  roadtrip recommend --lat 36.1 --lng -112.1 --type restaurant",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateCoordinates(at.lat, at.lng); err != nil {
				return err
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			list := c.Recommendations(cmd.Context(), at.lat, at.lng, placeType)
			if list.Results == nil {
				list.Results = []model.Recommendation{}
			}
			return a.render(cmd.Context(), list, "results", func() formatter.Table {
				return formatter.RecommendationsTable(list.Results)
			})
		},
	}
	at.bind(cmd)
	cmd.Flags().StringVar(&placeType, "type", "", "place type, e.g. restaurant or lodging (default: tourist attractions)")
	return cmd
}

func newRouteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "route LAT,LNG LAT,LNG...",
		Short:   "Calculate distance and driving time between points",
		Example: "  roadtrip route 37.29,-113.02 38.73,-109.59",
		Args:    usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			points := make([]model.Waypoint, 0, len(args))
			for _, raw := range args {
				wp, err := parseWaypoint(raw)
				if err != nil {
					return usageErrorf("invalid point %q: %w", raw, err)
				}
				points = append(points, wp)
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			r := c.CalculateRoute(cmd.Context(), points)
			return a.render(cmd.Context(), r, "route", func() formatter.Table {
				return formatter.RouteTable(r)
			})
		},
	}
}

// parseWaypoint parses LAT,LNG.
func parseWaypoint(raw string) (model.Waypoint, error) {
	latStr, lngStr, ok := strings.Cut(raw, ",")
	if !ok {
		return model.Waypoint{}, errors.New("expected LAT,LNG")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return model.Waypoint{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return model.Waypoint{}, fmt.Errorf("longitude: %w", err)
	}
	if err := checkRange(lat, lng); err != nil {
		return model.Waypoint{}, err
	}
	return model.Waypoint{Lat: lat, Lng: lng}, nil
}

func validateCoordinates(lat, lng float64) error {
	if err := checkRange(lat, lng); err != nil {
		return &UsageError{Err: err}
	}
	return nil
}

func checkRange(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}
