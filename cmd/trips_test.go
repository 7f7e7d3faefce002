package cmd

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

func tripsBackend(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/trips/":
		writeJSON(w, http.StatusOK, model.TripList{Count: 3, Results: sampleTrips()})
	case r.Method == http.MethodGet && r.URL.Path == "/api/trips/7/":
		writeJSON(w, http.StatusOK, sampleTrip())
	case r.Method == http.MethodDelete && r.URL.Path == "/api/trips/7/":
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost && r.URL.Path == "/api/trips/":
		var in model.TripInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, http.StatusCreated, model.Trip{ID: 9, Name: in.Name, RouteType: in.RouteType})
	case r.Method == http.MethodPut && r.URL.Path == "/api/trips/7/":
		writeJSON(w, http.StatusOK, sampleTrip())
	case r.Method == http.MethodPost && r.URL.Path == "/api/trips/7/stops/":
		writeJSON(w, http.StatusCreated, model.Stop{ID: 12, Name: "Bryce"})
	case r.Method == http.MethodDelete && r.URL.Path == "/api/trips/7/stops/11/":
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost && r.URL.Path == "/api/trips/7/stops/reorder/":
		writeJSON(w, http.StatusOK, map[string]string{"message": "Stops reordered successfully"})
	case r.Method == http.MethodPost && r.URL.Path == "/api/routes/calculate/":
		writeJSON(w, http.StatusOK, model.Route{
			TotalDistance: 300,
			TotalTime:     5,
			Legs: []model.RouteLeg{{
				Distance: model.Measure{Text: "300 miles", Value: 300},
				Duration: model.Measure{Text: "5 hours", Value: 5},
			}},
		})
	default:
		notFound(w, r)
	}
}

func TestTripsListTable(t *testing.T) {
	env := newTestEnv(t, tripsBackend)
	require.NoError(t, env.run("trips", "list"))

	lines := strings.Split(strings.TrimRight(env.out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "DISTANCE")
	assert.Contains(t, lines[3], "Utah Parks")
	assert.Contains(t, lines[3], "640.0 mi")
}

func TestTripsListFilterAndLimit(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []int64
	}{
		{name: "all", args: nil, want: []int64{1, 2, 3}},
		{name: "filter", args: []string{"--filter", "_.total_distance > 500.0"}, want: []int64{2, 3}},
		{name: "filter and limit", args: []string{"--filter", "_.total_distance > 500.0", "--limit", "1"}, want: []int64{2}},
		{name: "offset", args: []string{"--offset", "2"}, want: []int64{3}},
		{name: "tail", args: []string{"--tail", "2"}, want: []int64{2, 3}},
		{name: "no match", args: []string{"--filter", "_.name == 'Nowhere'"}, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tripsBackend)
			require.NoError(t, env.run(append([]string{"-o", "json", "trips", "list"}, tt.args...)...))

			var trips []model.Trip
			require.NoError(t, json.Unmarshal(env.out.Bytes(), &trips))
			ids := make([]int64, 0, len(trips))
			for _, trip := range trips {
				ids = append(ids, trip.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestTripsListTOML(t *testing.T) {
	env := newTestEnv(t, tripsBackend)
	require.NoError(t, env.run("-o", "toml", "trips", "list", "--limit", "1"))

	out := env.out.String()
	assert.Contains(t, out, "[[trips]]")
	assert.Contains(t, out, "Weekend")
}

func TestTripsShow(t *testing.T) {
	t.Run("tree", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("-o", "tree", "trips", "show", "7"))
		out := env.out.String()
		assert.True(t, strings.HasPrefix(out, "Utah (#7)"))
		assert.Contains(t, out, "stops [2]")
		assert.Contains(t, out, "1. Zion (start)")
	})
	t.Run("table", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("trips", "show", "7"))
		out := env.out.String()
		assert.Contains(t, out, "Utah")
		assert.Contains(t, out, "Arches")
	})
	t.Run("yaml", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("-o", "yaml", "trips", "show", "7"))
		assert.Contains(t, env.out.String(), "name: Utah")
	})
}

func TestTripsCreateSendsStops(t *testing.T) {
	env := newTestEnv(t, tripsBackend)
	require.NoError(t, env.run("trips", "create",
		"--name", "Utah Parks",
		"--route-type", "scenic",
		"--stop", "Zion@37.29,-113.02",
		"--stop", "Bryce@37.59,-112.18",
		"--stop", "Arches@38.73,-109.59",
	))

	reqs := env.seen()
	require.Len(t, reqs, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(reqs[0].Body), &body))
	assert.Equal(t, "Utah Parks", body["name"])
	assert.Equal(t, "scenic", body["route_type"])
	assert.NotContains(t, body, "is_public")

	var in model.TripInput
	require.NoError(t, json.Unmarshal([]byte(reqs[0].Body), &in))
	require.Len(t, in.Stops, 3)
	assert.Equal(t, model.StopStart, in.Stops[0].StopType)
	assert.Equal(t, model.StopWaypoint, in.Stops[1].StopType)
	assert.Equal(t, model.StopDestination, in.Stops[2].StopType)
	assert.Equal(t, 3, in.Stops[2].Order)
	assert.Equal(t, 38.73, in.Stops[2].Latitude)

	assert.Contains(t, env.errOut.String(), `Trip "Utah Parks" created successfully!`)
}

func TestTripsUpdateSendsOnlyChangedFields(t *testing.T) {
	env := newTestEnv(t, tripsBackend)
	require.NoError(t, env.run("trips", "update", "7", "--public=false", "--mpg", "31.5"))

	reqs := env.seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].Method)
	assert.JSONEq(t, `{"is_public":false,"fuel_efficiency":31.5}`, reqs[0].Body)
	assert.Contains(t, env.errOut.String(), `Trip "Utah" updated.`)
}

func TestTripsDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		env.app.in = strings.NewReader("n\n")
		require.NoError(t, env.run("trips", "delete", "7"))

		for _, r := range env.seen() {
			assert.NotEqual(t, http.MethodDelete, r.Method)
		}
		assert.Contains(t, env.errOut.String(), `Delete trip "Utah"?`)
		assert.Contains(t, env.errOut.String(), "Aborted.")
	})
	t.Run("confirmed", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		env.app.in = strings.NewReader("yes\n")
		require.NoError(t, env.run("trips", "delete", "7"))
		assert.Contains(t, env.errOut.String(), `Trip "Utah" deleted successfully!`)
	})
	t.Run("yes flag", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("trips", "delete", "7", "--yes"))
		reqs := env.seen()
		require.NotEmpty(t, reqs)
		assert.Equal(t, http.MethodDelete, reqs[len(reqs)-1].Method)
	})
	t.Run("failure is reported once", func(t *testing.T) {
		env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodDelete {
				writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Not yours"})
				return
			}
			tripsBackend(w, r)
		})
		err := env.run("trips", "delete", "7", "-y")
		require.Error(t, err)
		assert.True(t, Reported(err))
		assert.Contains(t, env.errOut.String(), "Failed to delete trip: Not yours")
	})
}

func TestStops(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("trips", "stops", "add", "7", "--name", "Bryce", "--lat", "37.59", "--lng", "-112.18", "--type", "waypoint"))
		reqs := env.seen()
		require.Len(t, reqs, 1)
		assert.JSONEq(t, `{"name":"Bryce","address":"","latitude":37.59,"longitude":-112.18,"stop_type":"waypoint"}`, reqs[0].Body)
		assert.Contains(t, env.errOut.String(), `Added stop "Bryce" (#12).`)
	})
	t.Run("remove", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("trips", "stops", "remove", "7", "11"))
		assert.Contains(t, env.errOut.String(), "Removed stop 11.")
	})
	t.Run("reorder", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("trips", "stops", "reorder", "7", "11=1", "10=2"))
		reqs := env.seen()
		require.Len(t, reqs, 1)
		assert.JSONEq(t, `{"stop_orders":[{"id":11,"order":1},{"id":10,"order":2}]}`, reqs[0].Body)
		assert.Contains(t, env.errOut.String(), "Stops reordered successfully")
	})
}

func TestRoute(t *testing.T) {
	env := newTestEnv(t, tripsBackend)
	require.NoError(t, env.run("-o", "json", "route", "37.29,-113.02", "38.73,-109.59"))

	reqs := env.seen()
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"waypoints":[{"lat":37.29,"lng":-113.02},{"lat":38.73,"lng":-109.59}]}`, reqs[0].Body)

	var r model.Route
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &r))
	assert.Equal(t, 300.0, r.TotalDistance)
	assert.False(t, r.Synthetic)
}

func TestWeatherFallsBack(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	require.NoError(t, env.run("-o", "json", "weather", "--lat", "36.1", "--lng", "-112.1"))

	var w model.Weather
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &w))
	assert.True(t, w.Synthetic)
}

func TestWeatherYAMLMarksFallback(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	require.NoError(t, env.run("-o", "yaml", "weather", "--lat", "36.1", "--lng", "-112.1"))

	assert.Contains(t, env.out.String(), "synthetic: true # offline estimate")
}

func TestParseStop(t *testing.T) {
	s, err := parseStop("Salt Lake City, UT@40.76,-111.89")
	require.NoError(t, err)
	assert.Equal(t, "Salt Lake City, UT", s.Name)
	assert.Equal(t, 40.76, s.Latitude)
	assert.Equal(t, -111.89, s.Longitude)

	for _, bad := range []string{"@1,2", "Nowhere", "Zion@37", "Zion@x,y", "Zion@95,0"} {
		_, err := parseStop(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStopOrder(t *testing.T) {
	o, err := parseStopOrder("12=3")
	require.NoError(t, err)
	assert.Equal(t, model.StopOrder{ID: 12, Order: 3}, o)

	for _, bad := range []string{"12", "x=1", "12=0", "12=-1", "0=1"} {
		_, err := parseStopOrder(bad)
		assert.Error(t, err, bad)
	}
}

func writePlan(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestTripsImport(t *testing.T) {
	path := writePlan(t, "plans.toml", `
[[trips]]
name = "Utah"
route_type = "scenic"

  [[trips.stops]]
  name = "Zion"
  latitude = 37.29
  longitude = -113.02

  [[trips.stops]]
  name = "Arches"
  latitude = 38.73
  longitude = -109.59

[[trips]]
name = "Coast"
`)

	t.Run("creates every plan", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("-o", "json", "trips", "import", path))

		reqs := env.seen()
		require.Len(t, reqs, 2)
		var first model.TripInput
		require.NoError(t, json.Unmarshal([]byte(reqs[0].Body), &first))
		assert.Equal(t, "Utah", first.Name)
		require.Len(t, first.Stops, 2)
		assert.Equal(t, model.StopStart, first.Stops[0].StopType)
		assert.Equal(t, model.StopDestination, first.Stops[1].StopType)

		var created []model.Trip
		require.NoError(t, json.Unmarshal(env.out.Bytes(), &created))
		require.Len(t, created, 2)
		assert.Equal(t, "Coast", created[1].Name)
	})

	t.Run("dry run", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		require.NoError(t, env.run("trips", "import", path, "--dry-run"))
		assert.Empty(t, env.seen())
		out := env.out.String()
		assert.Contains(t, out, "Utah")
		assert.Contains(t, out, "Arches")
		assert.Contains(t, out, "Coast")
	})

	t.Run("invalid plan is a usage error", func(t *testing.T) {
		env := newTestEnv(t, tripsBackend)
		err := env.run("trips", "import", writePlan(t, "bad.json", `{"route_type":"fastest"}`))
		require.Error(t, err)
		assert.Equal(t, 2, ExitCode(err))
		assert.Empty(t, env.seen())
	})
}
