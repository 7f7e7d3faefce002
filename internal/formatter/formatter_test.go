package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

func TestTableRenderAlignsColumns(t *testing.T) {
	tbl := Table{
		Columns: []string{"NAME", "N"},
		Rows:    [][]string{{"alpha", "1"}, {"be", "22"}},
		Hints:   map[string]ColumnHint{"N": {Align: "right"}},
	}
	out := tbl.Render(TableOptions{Width: 80, NoColor: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME   N", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "─"))
	assert.Equal(t, "alpha   1", lines[2])
	assert.Equal(t, "be     22", lines[3])
}

func TestTableRenderShrinksLowPriorityFirst(t *testing.T) {
	tbl := Table{
		Columns: []string{"KEEP", "DROP"},
		Rows:    [][]string{{"aaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbb"}},
		Hints: map[string]ColumnHint{
			"KEEP": {Priority: 10},
			"DROP": {Priority: 1},
		},
	}
	out := tbl.Render(TableOptions{Width: 22, NoColor: true})
	assert.Contains(t, out, "aaaaaaaaaa")
	assert.Contains(t, out, "bbbbbbb...")
	assert.NotContains(t, out, "bbbbbbbbbbbbbbbbbbbb")
}

func TestTableRenderEmpty(t *testing.T) {
	assert.Empty(t, Table{}.Render(TableOptions{Width: 40}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "he...", truncate("hello world", 5))
	assert.Equal(t, "he", truncate("hello", 2))
	assert.Equal(t, "hello", truncate("hello", 0))
}

func TestTruncateWideRunes(t *testing.T) {
	out := truncate("東京タワー", 7)
	assert.LessOrEqual(t, len([]rune(out)), 5)
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestTripsTable(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	trips := []model.Trip{{
		ID:                7,
		Name:              "Desert Loop",
		TotalDistance:     1234.5,
		TotalTime:         20.5,
		EstimatedFuelCost: 150.25,
		Stops:             []model.Stop{{}, {}},
		UpdatedAt:         now.Add(-3 * time.Hour).Format(time.RFC3339),
	}}

	tbl := TripsTable(trips, now)
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "Desert Loop", row[1])
	assert.Equal(t, "2", row[2])
	assert.Equal(t, "1,234.5 mi", row[3])
	assert.Equal(t, "20.5 h", row[4])
	assert.Equal(t, "$150.25", row[5])
	assert.Equal(t, "3 hours ago", row[6])
}

func TestTripsTableUnparsableTimestamp(t *testing.T) {
	tbl := TripsTable([]model.Trip{{Name: "x", UpdatedAt: "yesterday"}}, time.Now())
	assert.Equal(t, "yesterday", tbl.Rows[0][6])
}

func TestCandidatesTable(t *testing.T) {
	tbl := CandidatesTable([]model.Candidate{
		{Name: "Zion", Type: "park", Rating: model.Float(4.8), Address: "UT", Lat: 37.2, Lng: -112.9876},
		{Name: "Nowhere", Type: "place"},
	})
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"Zion", "park", "4.8", "UT", "37.2000, -112.9876"}, tbl.Rows[0])
	assert.Equal(t, "-", tbl.Rows[1][2])
}

func TestRecommendationsTable(t *testing.T) {
	level := 2
	tbl := RecommendationsTable([]model.Recommendation{
		{Name: "Diner", Rating: 4.3, PriceLevel: &level, Types: []string{"restaurant", "food"}, BusinessStatus: "OPERATIONAL"},
	})
	assert.Equal(t, []string{"Diner", "4.3", "$$", "restaurant, food", "OPERATIONAL"}, tbl.Rows[0])
}

func TestPrice(t *testing.T) {
	four, zero, nine := 4, 0, 9
	assert.Equal(t, "-", Price(nil))
	assert.Equal(t, "-", Price(&zero))
	assert.Equal(t, "$$$$", Price(&four))
	assert.Equal(t, "$$$$", Price(&nine))
}

func TestWeatherTable(t *testing.T) {
	tbl := WeatherTable(model.Weather{
		Location: "Moab",
		Current: model.CurrentWeather{
			TempF:     72.44,
			Condition: model.Condition{Text: "Sunny", Icon: "sunny"},
			Humidity:  41,
			WindMph:   5,
		},
	})
	out := tbl.Render(TableOptions{Width: 80, NoColor: true})
	assert.Contains(t, out, "Moab")
	assert.Contains(t, out, "Sunny")
	assert.Contains(t, out, "72.4°F")
	assert.Contains(t, out, "41%")
	assert.Contains(t, out, "5.0 mph")
}

func TestRouteTable(t *testing.T) {
	r := model.Route{
		TotalDistance: 300,
		TotalTime:     5,
		Legs: []model.RouteLeg{
			{Distance: model.Measure{Text: "150 miles", Value: 150}, Duration: model.Measure{Text: "2.5 hours", Value: 2.5}},
			{Distance: model.Measure{Text: "150 miles", Value: 150}, Duration: model.Measure{Text: "2.5 hours", Value: 2.5}},
		},
	}
	tbl := RouteTable(r)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"2", "150 miles", "2.5 hours"}, tbl.Rows[1])
	assert.Equal(t, []string{"total", "300.0 mi", "5.0 h"}, tbl.Rows[2])
}

func TestFormatTripTree(t *testing.T) {
	dist := 210.0
	trip := model.Trip{
		ID:            3,
		Name:          "Utah Parks",
		TotalDistance: 210,
		TotalTime:     3.5,
		Stops: []model.Stop{
			{Order: 1, Name: "Zion", StopType: model.StopStart, Address: "Springdale", Latitude: 37.2, Longitude: -112.9, TravelDistanceToNext: &dist},
			{Order: 2, Name: "Bryce", StopType: model.StopDestination},
		},
	}
	out := FormatTripTree(trip)
	assert.True(t, strings.HasPrefix(out, "Utah Parks (#3)"))
	assert.Contains(t, out, "stops [2]")
	assert.Contains(t, out, "1. Zion (start)")
	assert.Contains(t, out, "2. Bryce (destination)")
	assert.Contains(t, out, "Springdale")
	assert.Contains(t, out, "next: 210.0 mi")
}

func TestFormatTripTreeWithoutStops(t *testing.T) {
	out := FormatTripTree(model.Trip{ID: 1, Name: "Empty"})
	assert.Contains(t, out, "(no stops)")
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out)
}

func TestFormatTOMLWrapsLists(t *testing.T) {
	out, err := FormatTOML([]model.Candidate{{ID: "a", Name: "Zion", Type: "park"}}, "results")
	require.NoError(t, err)
	assert.Contains(t, out, "[[results]]")
	assert.Contains(t, out, "name = ")
	assert.Contains(t, out, "Zion")
	assert.NotContains(t, out, "rating")
}

func TestFormatTOMLDropsNulls(t *testing.T) {
	out, err := FormatTOML(map[string]any{"a": "x", "b": nil}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "a = ")
	assert.NotContains(t, out, "b = ")
}

func TestUserTable(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	u := model.User{ID: 9, Username: "ada", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}

	tbl := UserTable(u, now.Add(2*time.Hour), now)
	require.Len(t, tbl.Rows, 6)
	assert.Equal(t, []string{"Name", "Ada Lovelace"}, tbl.Rows[3])
	assert.Equal(t, []string{"Session expires", "2 hours from now"}, tbl.Rows[5])

	assert.Len(t, UserTable(u, time.Time{}, now).Rows, 5)
}

func TestPlansTable(t *testing.T) {
	tbl := PlansTable([]model.TripInput{
		{Name: "Utah", RouteType: "scenic", Stops: []model.StopInput{{Name: "Zion"}, {Name: "Bryce"}, {Name: "Arches"}}},
		{Name: "Empty"},
	})
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"Utah", "scenic", "3", "Zion", "Arches"}, tbl.Rows[0])
	assert.Equal(t, []string{"Empty", "-", "0", "-", "-"}, tbl.Rows[1])
}
