// Package fallback produces schema-valid synthetic data for the read
// endpoints that must keep working when the backend is unreachable.
package fallback

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// Base point for synthetic search coordinates (New York City).
const (
	baseLat = 40.7128
	baseLng = -74.006
)

// Route legs are a fixed 150 miles at 60 mph.
const (
	legMiles = 150
	legHours = 2.5
	avgMph   = 60
)

var conditions = []string{"Sunny", "Partly Cloudy", "Light Rain", "Clear", "Overcast"}

// Synthesizer generates fallback values. The zero value is not usable; use
// New or NewSeeded.
type Synthesizer struct {
	mu  sync.Mutex
	src *rand.ChaCha8
	rng *rand.Rand
}

// New returns a synthesizer seeded from crypto randomness.
func New() *Synthesizer {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return newFromSeed(seed)
}

// NewSeeded returns a deterministic synthesizer.
func NewSeeded(seed uint64) *Synthesizer {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return newFromSeed(s)
}

func newFromSeed(seed [32]byte) *Synthesizer {
	src := rand.NewChaCha8(seed)
	return &Synthesizer{src: src, rng: rand.New(src)}
}

// Search returns two candidates named after query.
func (s *Synthesizer) Search(query string) model.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SearchResult{
		Synthetic: true,
		Results: []model.Candidate{
			{
				ID:         s.id(),
				Name:       query + " National Park",
				Address:    query + ", State, USA",
				Lat:        baseLat + s.rng.Float64()*10,
				Lng:        baseLng + s.rng.Float64()*10,
				Type:       "park",
				Rating:     model.Float(4.5),
				Categories: []string{"park", "tourist_attraction"},
			},
			{
				ID:         s.id(),
				Name:       query + " Downtown",
				Address:    "Downtown " + query + ", State, USA",
				Lat:        baseLat + s.rng.Float64()*10,
				Lng:        baseLng + s.rng.Float64()*10,
				Type:       "locality",
				Rating:     model.Float(4.2),
				Categories: []string{"locality", "political"},
			},
		},
	}
}

// Weather returns a plausible current observation for lat/lng.
func (s *Synthesizer) Weather(lat, lng float64) model.Weather {
	s.mu.Lock()
	defer s.mu.Unlock()
	cond := conditions[s.rng.IntN(len(conditions))]
	return model.Weather{
		Synthetic: true,
		Location:  fmt.Sprintf("Location (%.2f, %.2f)", lat, lng),
		Current: model.CurrentWeather{
			TempF: round1(65 + s.rng.Float64()*25),
			Condition: model.Condition{
				Text: cond,
				Icon: strings.Replace(strings.ToLower(cond), " ", "_", 1),
			},
			Humidity: math.Round(40 + s.rng.Float64()*40),
			WindMph:  round1(s.rng.Float64() * 15),
		},
	}
}

// Recommendations returns three places near lat/lng. An empty placeType
// yields generic establishments.
func (s *Synthesizer) Recommendations(lat, lng float64, placeType string) model.RecommendationList {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix, label, kind := "general", "Place", "establishment"
	if placeType != "" {
		prefix, label, kind = placeType, placeType, placeType
	}
	out := make([]model.Recommendation, 3)
	for i := range out {
		price := s.rng.IntN(4) + 1
		out[i] = model.Recommendation{
			PlaceID:        fmt.Sprintf("%s_%s_%d", prefix, s.id(), i),
			Name:           fmt.Sprintf("Mock %s %d", label, i+1),
			Rating:         round1(3.5 + s.rng.Float64()*1.5),
			PriceLevel:     &price,
			Types:          []string{kind},
			Latitude:       lat + (s.rng.Float64()-0.5)*0.1,
			Longitude:      lng + (s.rng.Float64()-0.5)*0.1,
			BusinessStatus: "OPERATIONAL",
		}
	}
	return model.RecommendationList{Results: out, Synthetic: true}
}

// Route returns a route through waypoints with fixed-length legs. Fewer
// than two waypoints yield an empty route.
func (s *Synthesizer) Route(waypoints []model.Waypoint) model.Route {
	if len(waypoints) < 2 {
		return model.Route{Legs: []model.RouteLeg{}, Synthetic: true}
	}
	distance := float64(legMiles * len(waypoints))
	legs := make([]model.RouteLeg, len(waypoints)-1)
	for i := range legs {
		legs[i] = model.RouteLeg{
			Distance: model.Measure{Text: fmt.Sprintf("%d miles", legMiles), Value: legMiles},
			Duration: model.Measure{Text: fmt.Sprintf("%.1f hours", legHours), Value: legHours},
		}
	}
	return model.Route{
		TotalDistance: distance,
		TotalTime:     round1(distance / avgMph),
		Waypoints:     append([]model.Waypoint(nil), waypoints...),
		Legs:          legs,
		Synthetic:     true,
	}
}

// id draws a UUID from the seeded source. Callers hold s.mu.
func (s *Synthesizer) id() string {
	u, err := uuid.NewRandomFromReader(s.src)
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
