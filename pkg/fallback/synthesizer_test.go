package fallback

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

func TestSearchNamesCandidatesFromQuery(t *testing.T) {
	res := NewSeeded(1).Search("Yellowstone")

	require.Len(t, res.Results, 2)
	assert.True(t, res.Synthetic)

	park, downtown := res.Results[0], res.Results[1]
	assert.Equal(t, "Yellowstone National Park", park.Name)
	assert.Equal(t, "Yellowstone, State, USA", park.Address)
	assert.Equal(t, "park", park.Type)
	assert.Equal(t, []string{"park", "tourist_attraction"}, park.Categories)
	assert.Equal(t, 4.5, *park.Rating)

	assert.Equal(t, "Yellowstone Downtown", downtown.Name)
	assert.Equal(t, "Downtown Yellowstone, State, USA", downtown.Address)
	assert.Equal(t, "locality", downtown.Type)
	assert.Equal(t, 4.2, *downtown.Rating)

	for _, c := range res.Results {
		assert.GreaterOrEqual(t, c.Lat, baseLat)
		assert.Less(t, c.Lat, baseLat+10)
		assert.GreaterOrEqual(t, c.Lng, baseLng)
		assert.Less(t, c.Lng, baseLng+10)
		_, err := uuid.Parse(c.ID)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, park.ID, downtown.ID)
}

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42).Search("Moab")
	b := NewSeeded(42).Search("Moab")
	assert.Equal(t, a, b)

	c := NewSeeded(43).Search("Moab")
	assert.NotEqual(t, a.Results[0].ID, c.Results[0].ID)
}

func TestWeatherRanges(t *testing.T) {
	s := NewSeeded(7)
	for range 200 {
		w := s.Weather(44.428, -110.588)
		assert.True(t, w.Synthetic)
		assert.Equal(t, "Location (44.43, -110.59)", w.Location)
		assert.Contains(t, conditions, w.Current.Condition.Text)
		assert.NotContains(t, w.Current.Condition.Icon, " ")
		assert.InDelta(t, 77.5, w.Current.TempF, 12.5)
		assert.InDelta(t, 60, w.Current.Humidity, 20)
		assert.InDelta(t, 7.5, w.Current.WindMph, 7.5)
	}
}

func TestWeatherIconFormat(t *testing.T) {
	s := NewSeeded(3)
	seen := map[string]string{}
	for range 500 {
		w := s.Weather(0, 0)
		seen[w.Current.Condition.Text] = w.Current.Condition.Icon
	}
	if icon, ok := seen["Partly Cloudy"]; ok {
		assert.Equal(t, "partly_cloudy", icon)
	}
	if icon, ok := seen["Sunny"]; ok {
		assert.Equal(t, "sunny", icon)
	}
}

func TestRecommendations(t *testing.T) {
	s := NewSeeded(9)

	t.Run("typed", func(t *testing.T) {
		recs := s.Recommendations(36.1, -115.1, "restaurant")
		require.Len(t, recs.Results, 3)
		for i, r := range recs.Results {
			assert.Equal(t, []string{"restaurant"}, r.Types)
			assert.Equal(t, "OPERATIONAL", r.BusinessStatus)
			assert.Contains(t, r.Name, "Mock restaurant")
			assert.True(t, len(r.PlaceID) > len("restaurant_"))
			assert.InDelta(t, 4.25, r.Rating, 0.75)
			require.NotNil(t, r.PriceLevel)
			assert.GreaterOrEqual(t, *r.PriceLevel, 1)
			assert.LessOrEqual(t, *r.PriceLevel, 4)
			assert.InDelta(t, 36.1, r.Latitude, 0.05)
			assert.InDelta(t, -115.1, r.Longitude, 0.05)
			assert.Equal(t, i+1, int(r.Name[len(r.Name)-1]-'0'))
		}
	})

	t.Run("untyped", func(t *testing.T) {
		recs := s.Recommendations(0, 0, "")
		require.Len(t, recs.Results, 3)
		assert.Equal(t, "Mock Place 1", recs.Results[0].Name)
		assert.Equal(t, []string{"establishment"}, recs.Results[0].Types)
		assert.Regexp(t, `^general_`, recs.Results[0].PlaceID)
	})
}

func TestRoute(t *testing.T) {
	s := NewSeeded(1)

	t.Run("no waypoints", func(t *testing.T) {
		r := s.Route(nil)
		assert.Zero(t, r.TotalDistance)
		assert.Zero(t, r.TotalTime)
		assert.NotNil(t, r.Legs)
		assert.Empty(t, r.Legs)
	})

	t.Run("one waypoint", func(t *testing.T) {
		r := s.Route([]model.Waypoint{{Lat: 1, Lng: 2}})
		assert.Zero(t, r.TotalDistance)
		assert.Zero(t, r.TotalTime)
		assert.Empty(t, r.Legs)
	})

	t.Run("three waypoints", func(t *testing.T) {
		r := s.Route([]model.Waypoint{{Lat: 1}, {Lat: 2}, {Lat: 3}})
		assert.Equal(t, 450.0, r.TotalDistance)
		assert.Equal(t, 7.5, r.TotalTime)
		require.Len(t, r.Legs, 2)
		for _, leg := range r.Legs {
			assert.Equal(t, model.Measure{Text: "150 miles", Value: 150}, leg.Distance)
			assert.Equal(t, model.Measure{Text: "2.5 hours", Value: 2.5}, leg.Duration)
		}
	})
}

func TestConcurrentUse(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = s.Search("x")
				_ = s.Weather(1, 1)
				_ = s.Recommendations(1, 1, "")
			}
		}()
	}
	wg.Wait()
}
