package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/roadtrip/internal/cel"
	"github.com/oakwood-commons/roadtrip/internal/formatter"
	"github.com/oakwood-commons/roadtrip/internal/limiter"
	"github.com/oakwood-commons/roadtrip/pkg/loader"
	"github.com/oakwood-commons/roadtrip/pkg/logger"
	"github.com/oakwood-commons/roadtrip/pkg/model"
	"github.com/oakwood-commons/roadtrip/pkg/settings"
)

var routeTypes = []string{"fastest", "scenic", "custom"}

// filterFields seeds shell completion for --filter.
var filterFields = []string{
	"_.name", "_.description", "_.route_type", "_.total_distance", "_.total_time",
	"_.estimated_fuel_cost", "_.start_date", "_.end_date", "_.is_public",
	"_.stops_count", "_.stops.exists(s, s.name == ",
}

func newTripsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Manage saved trips",
	}
	cmd.AddCommand(
		newTripsListCmd(a),
		newTripsShowCmd(a),
		newTripsCreateCmd(a),
		newTripsImportCmd(a),
		newTripsUpdateCmd(a),
		newTripsDeleteCmd(a),
		newStopsCmd(a),
	)
	return cmd
}

func newTripsListCmd(a *app) *cobra.Command {
	var (
		lim    limiter.Config
		filter string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your trips",
		Example: "  roadtrip trips list --limit 5\n" +
			"  roadtrip trips list --filter '_.total_distance > 500.0'\n" +
			"  roadtrip trips list --filter '_.stops.exists(s, s.name == \"Moab\")' -o json",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := lim.Validate(); err != nil {
				return &UsageError{Err: err}
			}
			var f *cel.Filter
			if strings.TrimSpace(filter) != "" {
				ev, err := cel.NewEvaluator()
				if err != nil {
					return err
				}
				if f, err = ev.Compile(filter); err != nil {
					return &UsageError{Err: fmt.Errorf("invalid --filter: %w", err)}
				}
			}

			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			list, err := c.ListTrips(cmd.Context())
			if err != nil {
				return fmt.Errorf("list trips: %w", err)
			}
			trips := list.Results
			if f != nil {
				if trips, err = cel.Select(f, trips); err != nil {
					return err
				}
			}
			trips = limiter.Apply(lim, trips)
			if trips == nil {
				trips = []model.Trip{}
			}
			logger.FromContext(cmd.Context()).V(1).Info("listed trips", "total", list.Count, "shown", len(trips))
			return a.render(cmd.Context(), trips, "trips", func() formatter.Table {
				return formatter.TripsTable(trips, a.now())
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&lim.Limit, "limit", 0, "show at most N trips")
	f.IntVar(&lim.Offset, "offset", 0, "skip the first N trips")
	f.IntVar(&lim.Tail, "tail", 0, "show the last N trips (ignores --limit and --offset)")
	f.StringVar(&filter, "filter", "", "CEL predicate over each trip, bound to '_'")
	_ = cmd.RegisterFlagCompletionFunc("filter", cobra.FixedCompletions(filterFields, cobra.ShellCompDirectiveNoSpace|cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newTripsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a trip and its stops",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			trip, err := c.GetTrip(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get trip %d: %w", id, err)
			}
			switch runSettings(cmd.Context()).OutputFormat {
			case settings.OutputTree:
				_, err = fmt.Fprintln(a.out, strings.TrimRight(formatter.FormatTripTree(*trip), "\n"))
				return err
			case settings.OutputTable:
				opts := formatter.TableOptions{NoColor: !a.color}
				out := formatter.TripsTable([]model.Trip{*trip}, a.now()).Render(opts)
				if len(trip.Stops) > 0 {
					out += "\n" + formatter.StopsTable(trip.Stops).Render(opts)
				}
				_, err = fmt.Fprint(a.out, out)
				return err
			}
			return a.render(cmd.Context(), trip, "trip", nil)
		},
	}
}

// tripFlags binds the editable trip fields.
type tripFlags struct {
	in       model.TripInput
	isPublic bool
	stops    []string
}

func (t *tripFlags) bind(f *pflag.FlagSet, withStops bool) {
	f.StringVar(&t.in.Name, "name", "", "trip name")
	f.StringVar(&t.in.Description, "description", "", "description")
	f.StringVar(&t.in.RouteType, "route-type", "", "route type: fastest|scenic|custom")
	f.StringVar(&t.in.StartDate, "start-date", "", "start date (YYYY-MM-DD)")
	f.StringVar(&t.in.EndDate, "end-date", "", "end date (YYYY-MM-DD)")
	f.Float64Var(&t.in.FuelEfficiency, "mpg", 0, "vehicle fuel efficiency in miles per gallon")
	f.Float64Var(&t.in.FuelPricePerGallon, "fuel-price", 0, "fuel price per gallon in USD")
	f.StringVar(&t.in.VehicleMake, "vehicle-make", "", "vehicle make")
	f.StringVar(&t.in.VehicleModel, "vehicle-model", "", "vehicle model")
	f.StringVar(&t.in.VehicleYear, "vehicle-year", "", "vehicle year")
	f.BoolVar(&t.isPublic, "public", false, "make the trip publicly visible")
	if withStops {
		f.StringArrayVar(&t.stops, "stop", nil, "stop as NAME@LAT,LNG; repeat in travel order")
	}
}

func registerRouteTypeCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("route-type", cobra.FixedCompletions(routeTypes, cobra.ShellCompDirectiveNoFileComp))
}

var tripFieldFlags = []string{
	"name", "description", "route-type", "start-date", "end-date", "mpg",
	"fuel-price", "vehicle-make", "vehicle-model", "vehicle-year", "public",
}

func (t *tripFlags) anyChanged(f *pflag.FlagSet) bool {
	for _, name := range tripFieldFlags {
		if f.Changed(name) {
			return true
		}
	}
	return false
}

// input returns the request body, only setting --public when it was given.
func (t *tripFlags) input(f *pflag.FlagSet) (model.TripInput, error) {
	in := t.in
	if in.RouteType != "" && !contains(routeTypes, in.RouteType) {
		return in, usageErrorf("invalid --route-type %q: expected one of %s", in.RouteType, strings.Join(routeTypes, ", "))
	}
	if f.Changed("public") {
		v := t.isPublic
		in.IsPublic = &v
	}
	for i, raw := range t.stops {
		s, err := parseStop(raw)
		if err != nil {
			return in, err
		}
		s.Order = i + 1
		s.StopType = loader.StopType(i, len(t.stops))
		in.Stops = append(in.Stops, s)
	}
	return in, nil
}

func newTripsCreateCmd(a *app) *cobra.Command {
	var tf tripFlags
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a trip",
		Example: "  roadtrip trips create --name 'Utah Parks' --stop 'Zion@37.29,-113.02' --stop 'Arches@38.73,-109.59'",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := tf.input(cmd.Flags())
			if err != nil {
				return err
			}
			if strings.TrimSpace(in.Name) == "" {
				return usageErrorf("--name must not be empty")
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			trip, err := c.CreateTrip(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create trip: %w", err)
			}
			if a.structured(cmd.Context()) {
				return a.render(cmd.Context(), trip, "trip", nil)
			}
			return nil
		},
	}
	tf.bind(cmd.Flags(), true)
	registerRouteTypeCompletion(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTripsImportCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create trips from a JSON, YAML or TOML plan file",
		Long: "Create one trip per plan in FILE. A plan uses the API's field names; " +
			"stops without an order or stop_type get them from their position.",
		Example: "  roadtrip trips import utah.yaml\n" +
			"  roadtrip trips import plans.toml --dry-run -o json",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := loader.LoadFile(args[0])
			if err != nil {
				return &UsageError{Err: err}
			}
			logger.FromContext(cmd.Context()).V(1).Info("loaded plans", "file", args[0], "count", len(plans))
			if dryRun {
				return a.render(cmd.Context(), plans, "trips", func() formatter.Table {
					return formatter.PlansTable(plans)
				})
			}

			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			created := make([]model.Trip, 0, len(plans))
			for _, p := range plans {
				trip, err := c.CreateTrip(cmd.Context(), p)
				if err != nil {
					return fmt.Errorf("create trip %q: %w", p.Name, err)
				}
				created = append(created, *trip)
			}
			if a.structured(cmd.Context()) {
				return a.render(cmd.Context(), created, "trips", nil)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print the plans without creating them")
	return cmd
}

func newTripsUpdateCmd(a *app) *cobra.Command {
	var tf tripFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a trip's details",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			in, err := tf.input(cmd.Flags())
			if err != nil {
				return err
			}
			if !tf.anyChanged(cmd.Flags()) {
				return usageErrorf("nothing to update; pass at least one field flag")
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			trip, err := c.UpdateTrip(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("update trip %d: %w", id, err)
			}
			if a.structured(cmd.Context()) {
				return a.render(cmd.Context(), trip, "trip", nil)
			}
			a.notifier.Success(fmt.Sprintf("Trip %q updated.", trip.Name))
			return nil
		},
	}
	tf.bind(cmd.Flags(), false)
	registerRouteTypeCompletion(cmd)
	return cmd
}

func newTripsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a trip",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			name := ""
			if trip, err := c.GetTrip(cmd.Context(), id); err == nil {
				name = trip.Name
			}
			if !yes {
				label := fmt.Sprintf("trip %d", id)
				if name != "" {
					label = fmt.Sprintf("trip %q", name)
				}
				ok, err := a.confirm("Delete " + label + "?")
				if err != nil {
					return err
				}
				if !ok {
					a.notifier.Info("Aborted.")
					return nil
				}
			}
			if err := c.DeleteTrip(cmd.Context(), id, name); err != nil {
				return reportedError{err}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newStopsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stops",
		Short: "Edit a trip's stops",
	}
	cmd.AddCommand(newStopsAddCmd(a), newStopsRemoveCmd(a), newStopsReorderCmd(a))
	return cmd
}

func newStopsAddCmd(a *app) *cobra.Command {
	var in model.StopInput
	cmd := &cobra.Command{
		Use:   "add TRIP_ID",
		Short: "Add a stop to a trip",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			switch in.StopType {
			case "", model.StopStart, model.StopWaypoint, model.StopDestination:
			default:
				return usageErrorf("invalid --type %q: expected start, waypoint or destination", in.StopType)
			}
			if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
				return err
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			stop, err := c.AddStop(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("add stop: %w", err)
			}
			if a.structured(cmd.Context()) {
				return a.render(cmd.Context(), stop, "stop", nil)
			}
			a.notifier.Success(fmt.Sprintf("Added stop %q (#%d).", stop.Name, stop.ID))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "stop name")
	f.StringVar(&in.Address, "address", "", "stop address")
	f.Float64Var(&in.Latitude, "lat", 0, "latitude")
	f.Float64Var(&in.Longitude, "lng", 0, "longitude")
	f.StringVar(&in.StopType, "type", "", "stop type: start|waypoint|destination")
	f.IntVar(&in.Order, "order", 0, "position in the trip (default: last)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newStopsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TRIP_ID STOP_ID",
		Short: "Remove a stop from a trip",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			stopID, err := parseID(args[1], "stop")
			if err != nil {
				return err
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			if err := c.RemoveStop(cmd.Context(), tripID, stopID); err != nil {
				return fmt.Errorf("remove stop: %w", err)
			}
			a.notifier.Success(fmt.Sprintf("Removed stop %d.", stopID))
			return nil
		},
	}
}

func newStopsReorderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "reorder TRIP_ID STOP_ID=ORDER...",
		Short:   "Move stops to new positions",
		Example: "  roadtrip trips stops reorder 7 12=1 10=2 11=3",
		Args:    usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			orders := make([]model.StopOrder, 0, len(args)-1)
			for _, raw := range args[1:] {
				o, err := parseStopOrder(raw)
				if err != nil {
					return err
				}
				orders = append(orders, o)
			}
			c, err := a.client(cmd.Context(), true)
			if err != nil {
				return err
			}
			msg, err := c.ReorderStops(cmd.Context(), tripID, orders)
			if err != nil {
				return fmt.Errorf("reorder stops: %w", err)
			}
			if msg == "" {
				msg = "Stops reordered."
			}
			a.notifier.Success(msg)
			return nil
		},
	}
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErrorf("invalid %s id %q", what, s)
	}
	return id, nil
}

// parseStop parses NAME@LAT,LNG.
func parseStop(raw string) (model.StopInput, error) {
	at := strings.LastIndex(raw, "@")
	if at <= 0 {
		return model.StopInput{}, usageErrorf("invalid --stop %q: expected NAME@LAT,LNG", raw)
	}
	wp, err := parseWaypoint(raw[at+1:])
	if err != nil {
		return model.StopInput{}, usageErrorf("invalid --stop %q: %w", raw, err)
	}
	name := strings.TrimSpace(raw[:at])
	return model.StopInput{Name: name, Address: name, Latitude: wp.Lat, Longitude: wp.Lng}, nil
}

// parseStopOrder parses STOP_ID=ORDER.
func parseStopOrder(raw string) (model.StopOrder, error) {
	idStr, orderStr, ok := strings.Cut(raw, "=")
	if !ok {
		return model.StopOrder{}, usageErrorf("invalid stop order %q: expected STOP_ID=ORDER", raw)
	}
	id, err := parseID(idStr, "stop")
	if err != nil {
		return model.StopOrder{}, err
	}
	order, err := strconv.Atoi(orderStr)
	if err != nil || order < 1 {
		return model.StopOrder{}, usageErrorf("invalid order %q for stop %d", orderStr, id)
	}
	return model.StopOrder{ID: id, Order: order}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
