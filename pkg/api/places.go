package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oakwood-commons/roadtrip/pkg/logger"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// SearchPlaces never fails: on any error the result is synthesized from q.
func (c *Client) SearchPlaces(ctx context.Context, q string) model.SearchResult {
	var out model.SearchResult
	err := c.do(ctx, request{method: http.MethodGet, path: "/places/search/", query: url.Values{"q": {q}}}, &out)
	if err != nil {
		c.fellBack("place search", err)
		return c.synth.Search(q)
	}
	return out
}

// CurrentWeather never fails: on any error a plausible observation is
// synthesized.
func (c *Client) CurrentWeather(ctx context.Context, lat, lng float64) model.Weather {
	var out model.Weather
	err := c.do(ctx, request{method: http.MethodGet, path: "/weather/current/", query: coords(lat, lng)}, &out)
	if err != nil {
		c.fellBack("weather", err)
		return c.synth.Weather(lat, lng)
	}
	return out
}

// Recommendations never fails. placeType narrows results via the nearby
// endpoint.
func (c *Client) Recommendations(ctx context.Context, lat, lng float64, placeType string) model.RecommendationList {
	path, q := "/recommendations/", coords(lat, lng)
	if placeType != "" {
		path = "/recommendations/nearby/"
		q.Set("type", placeType)
	}
	var out model.RecommendationList
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q}, &out); err != nil {
		c.fellBack("recommendations", err)
		return c.synth.Recommendations(lat, lng, placeType)
	}
	return out
}

// CalculateRoute never fails: on any error fixed-length legs are
// synthesized.
func (c *Client) CalculateRoute(ctx context.Context, waypoints []model.Waypoint) model.Route {
	if waypoints == nil {
		waypoints = []model.Waypoint{}
	}
	var out model.Route
	body := map[string]any{"waypoints": waypoints}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/routes/calculate/", body: body}, &out); err != nil {
		c.fellBack("route", err)
		return c.synth.Route(waypoints)
	}
	return out
}

func (c *Client) fellBack(what string, err error) {
	c.log.Info("using synthetic data", logger.EndpointKey, what, "error", err.Error())
}

func coords(lat, lng float64) url.Values {
	return url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lng": {strconv.FormatFloat(lng, 'f', -1, 64)},
	}
}
