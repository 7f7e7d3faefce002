package ui

import (
	"context"

	"github.com/oakwood-commons/roadtrip/internal/search"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// Backend is the slice of the API client the planner uses. *api.Client
// satisfies it.
type Backend interface {
	search.Searcher
	CurrentWeather(ctx context.Context, lat, lng float64) model.Weather
	Recommendations(ctx context.Context, lat, lng float64, placeType string) model.RecommendationList
	CalculateRoute(ctx context.Context, waypoints []model.Waypoint) model.Route
	CreateTrip(ctx context.Context, in model.TripInput) (*model.Trip, error)
}
