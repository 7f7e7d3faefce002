package model

// Condition describes the current weather condition.
type Condition struct {
	Text string `json:"text" yaml:"text"`
	Icon string `json:"icon" yaml:"icon"`
}

// CurrentWeather holds the current observation for a location.
type CurrentWeather struct {
	TempF     float64   `json:"temp_f" yaml:"temp_f"`
	Condition Condition `json:"condition" yaml:"condition"`
	Humidity  float64   `json:"humidity" yaml:"humidity"`
	WindMph   float64   `json:"wind_mph" yaml:"wind_mph"`
}

// Weather is the body of GET /weather/current/.
type Weather struct {
	Location  string         `json:"location" yaml:"location"`
	Current   CurrentWeather `json:"current" yaml:"current"`
	Synthetic bool           `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// Recommendation is a nearby place suggestion.
type Recommendation struct {
	PlaceID        string   `json:"place_id" yaml:"place_id"`
	Name           string   `json:"name" yaml:"name"`
	Rating         float64  `json:"rating" yaml:"rating"`
	PriceLevel     *int     `json:"price_level,omitempty" yaml:"price_level,omitempty"`
	Types          []string `json:"types" yaml:"types"`
	Latitude       float64  `json:"latitude" yaml:"latitude"`
	Longitude      float64  `json:"longitude" yaml:"longitude"`
	BusinessStatus string   `json:"business_status" yaml:"business_status"`
}

// RecommendationList is the body of the recommendations endpoints.
type RecommendationList struct {
	Results   []Recommendation `json:"results" yaml:"results"`
	Synthetic bool             `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// Waypoint is a point on a route.
type Waypoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Measure is a labelled numeric value, e.g. {"text": "150 miles", "value": 150}.
type Measure struct {
	Text  string  `json:"text" yaml:"text"`
	Value float64 `json:"value" yaml:"value"`
}

// RouteLeg is the segment between two adjacent waypoints.
type RouteLeg struct {
	Distance Measure `json:"distance" yaml:"distance"`
	Duration Measure `json:"duration" yaml:"duration"`
}

// Route is the body of POST /routes/calculate/. Distance is in miles and
// time in hours.
type Route struct {
	TotalDistance float64    `json:"total_distance" yaml:"total_distance"`
	TotalTime     float64    `json:"total_time" yaml:"total_time"`
	Waypoints     []Waypoint `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
	Legs          []RouteLeg `json:"legs" yaml:"legs"`
	Synthetic     bool       `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}
