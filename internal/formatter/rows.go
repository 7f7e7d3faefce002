package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// TripsTable lists trips one per row.
func TripsTable(trips []model.Trip, now time.Time) Table {
	t := Table{
		Columns: []string{"ID", "NAME", "STOPS", "DISTANCE", "TIME", "FUEL", "UPDATED"},
		Hints: map[string]ColumnHint{
			"ID":       {Priority: 10, Align: "right"},
			"NAME":     {Priority: 9, MaxWidth: 40},
			"STOPS":    {Priority: 8, Align: "right"},
			"DISTANCE": {Priority: 7, Align: "right"},
			"TIME":     {Priority: 6, Align: "right"},
			"FUEL":     {Priority: 2, Align: "right"},
			"UPDATED":  {Priority: 1},
		},
	}
	for _, trip := range trips {
		stops := trip.StopsCount
		if stops == 0 {
			stops = len(trip.Stops)
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(trip.ID, 10),
			trip.Name,
			strconv.Itoa(stops),
			Miles(trip.TotalDistance),
			Hours(trip.TotalTime),
			Dollars(trip.EstimatedFuelCost),
			relative(trip.UpdatedAt, now),
		})
	}
	return t
}

// StopsTable lists a trip's stops in order.
func StopsTable(stops []model.Stop) Table {
	t := Table{
		Columns: []string{"#", "ID", "TYPE", "NAME", "ADDRESS", "COORDINATES"},
		Hints: map[string]ColumnHint{
			"#":           {Priority: 10, Align: "right"},
			"ID":          {Priority: 9, Align: "right"},
			"TYPE":        {Priority: 5},
			"NAME":        {Priority: 8, MaxWidth: 32},
			"ADDRESS":     {Priority: 1, MaxWidth: 48},
			"COORDINATES": {Priority: 3},
		},
	}
	for _, s := range stops {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(s.Order),
			strconv.FormatInt(s.ID, 10),
			s.StopType,
			s.Name,
			s.Address,
			Coordinates(s.Latitude, s.Longitude),
		})
	}
	return t
}

// PlansTable summarises trip plans that have not been created yet.
func PlansTable(plans []model.TripInput) Table {
	t := Table{
		Columns: []string{"NAME", "ROUTE", "STOPS", "FROM", "TO"},
		Hints: map[string]ColumnHint{
			"NAME":  {Priority: 10, MaxWidth: 40},
			"ROUTE": {Priority: 4},
			"STOPS": {Priority: 9, Align: "right"},
			"FROM":  {Priority: 6, MaxWidth: 32},
			"TO":    {Priority: 5, MaxWidth: 32},
		},
	}
	for _, p := range plans {
		route := p.RouteType
		if route == "" {
			route = "-"
		}
		from, to := "-", "-"
		if n := len(p.Stops); n > 0 {
			from, to = p.Stops[0].Name, p.Stops[n-1].Name
		}
		t.Rows = append(t.Rows, []string{p.Name, route, strconv.Itoa(len(p.Stops)), from, to})
	}
	return t
}

// CandidatesTable lists place search results.
func CandidatesTable(candidates []model.Candidate) Table {
	t := Table{
		Columns: []string{"NAME", "TYPE", "RATING", "ADDRESS", "COORDINATES"},
		Hints: map[string]ColumnHint{
			"NAME":        {Priority: 10, MaxWidth: 36},
			"TYPE":        {Priority: 4, MaxWidth: 20},
			"RATING":      {Priority: 6, Align: "right"},
			"ADDRESS":     {Priority: 1, MaxWidth: 48},
			"COORDINATES": {Priority: 3},
		},
	}
	for _, c := range candidates {
		rating := "-"
		if c.Rating != nil {
			rating = humanize.FormatFloat("#.#", *c.Rating)
		}
		t.Rows = append(t.Rows, []string{c.Name, c.Type, rating, c.Address, Coordinates(c.Lat, c.Lng)})
	}
	return t
}

// RecommendationsTable lists nearby suggestions.
func RecommendationsTable(recs []model.Recommendation) Table {
	t := Table{
		Columns: []string{"NAME", "RATING", "PRICE", "TYPES", "STATUS"},
		Hints: map[string]ColumnHint{
			"NAME":   {Priority: 10, MaxWidth: 36},
			"RATING": {Priority: 8, Align: "right"},
			"PRICE":  {Priority: 6},
			"TYPES":  {Priority: 1, MaxWidth: 30},
			"STATUS": {Priority: 2},
		},
	}
	for _, r := range recs {
		t.Rows = append(t.Rows, []string{
			r.Name,
			humanize.FormatFloat("#.#", r.Rating),
			Price(r.PriceLevel),
			strings.Join(r.Types, ", "),
			r.BusinessStatus,
		})
	}
	return t
}

// WeatherTable shows the current observation as field/value pairs.
func WeatherTable(w model.Weather) Table {
	return Table{
		Columns: []string{"FIELD", "VALUE"},
		Rows: [][]string{
			{"Location", w.Location},
			{"Condition", w.Current.Condition.Text},
			{"Temperature", fmt.Sprintf("%s°F", humanize.FormatFloat("#.#", w.Current.TempF))},
			{"Humidity", fmt.Sprintf("%s%%", humanize.FormatFloat("#.", w.Current.Humidity))},
			{"Wind", fmt.Sprintf("%s mph", humanize.FormatFloat("#.#", w.Current.WindMph))},
		},
		Hints: map[string]ColumnHint{"FIELD": {Priority: 10}, "VALUE": {Priority: 5}},
	}
}

// RouteTable lists the legs of a route followed by a total row.
func RouteTable(r model.Route) Table {
	t := Table{
		Columns: []string{"LEG", "DISTANCE", "DURATION"},
		Hints: map[string]ColumnHint{
			"LEG":      {Align: "right", Priority: 10},
			"DISTANCE": {Align: "right", Priority: 8},
			"DURATION": {Align: "right", Priority: 6},
		},
	}
	for i, leg := range r.Legs {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), leg.Distance.Text, leg.Duration.Text})
	}
	t.Rows = append(t.Rows, []string{"total", Miles(r.TotalDistance), Hours(r.TotalTime)})
	return t
}

// Miles formats a distance with thousands separators.
func Miles(v float64) string {
	return humanize.FormatFloat("#,###.#", v) + " mi"
}

// Hours formats a duration given in hours.
func Hours(v float64) string {
	return humanize.FormatFloat("#,###.#", v) + " h"
}

// Dollars formats a currency amount.
func Dollars(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Coordinates formats a lat/lng pair.
func Coordinates(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}

// Price renders a 1-4 price level as dollar signs.
func Price(level *int) string {
	if level == nil || *level <= 0 {
		return "-"
	}
	return strings.Repeat("$", min(*level, 4))
}

func relative(stamp string, now time.Time) string {
	if stamp == "" {
		return "-"
	}
	ts, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return humanize.RelTime(ts, now, "ago", "from now")
}

// UserTable shows a profile as field/value pairs. expires is the access
// token expiry when known.
func UserTable(u model.User, expires time.Time, now time.Time) Table {
	t := Table{
		Columns: []string{"FIELD", "VALUE"},
		Rows: [][]string{
			{"ID", strconv.FormatInt(u.ID, 10)},
			{"Username", u.Username},
			{"Email", u.Email},
			{"Name", strings.TrimSpace(u.FirstName + " " + u.LastName)},
			{"Verified", strconv.FormatBool(u.IsEmailVerified)},
		},
		Hints: map[string]ColumnHint{"FIELD": {Priority: 10}, "VALUE": {Priority: 5}},
	}
	if !expires.IsZero() {
		t.Rows = append(t.Rows, []string{"Session expires", humanize.RelTime(expires, now, "ago", "from now")})
	}
	return t
}
