package model

// User is the profile returned by the auth endpoints.
type User struct {
	ID              int64  `json:"id" yaml:"id"`
	Email           string `json:"email" yaml:"email"`
	Username        string `json:"username" yaml:"username"`
	FirstName       string `json:"first_name" yaml:"first_name"`
	LastName        string `json:"last_name" yaml:"last_name"`
	FullName        string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	IsEmailVerified bool   `json:"is_email_verified" yaml:"is_email_verified"`
}

// DisplayName picks the friendliest available name.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return "User"
	}
}

// AuthTokens is the JWT pair issued on login or registration.
type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResponse is the body of /auth/login/ and /auth/register/.
type AuthResponse struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

// RegisterRequest is the body of /auth/register/.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Stop types accepted by the backend.
const (
	StopStart       = "start"
	StopWaypoint    = "waypoint"
	StopDestination = "destination"
)

// Stop is a trip stop.
type Stop struct {
	ID                   int64    `json:"id" yaml:"id"`
	Name                 string   `json:"name" yaml:"name"`
	Address              string   `json:"address" yaml:"address"`
	Latitude             float64  `json:"latitude" yaml:"latitude"`
	Longitude            float64  `json:"longitude" yaml:"longitude"`
	PlaceID              string   `json:"place_id,omitempty" yaml:"place_id,omitempty"`
	StopType             string   `json:"stop_type" yaml:"stop_type"`
	Order                int      `json:"order" yaml:"order"`
	ArrivalTime          string   `json:"arrival_time,omitempty" yaml:"arrival_time,omitempty"`
	DepartureTime        string   `json:"departure_time,omitempty" yaml:"departure_time,omitempty"`
	DurationMinutes      *int     `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	TravelTimeToNext     *float64 `json:"travel_time_to_next,omitempty" yaml:"travel_time_to_next,omitempty"`
	TravelDistanceToNext *float64 `json:"travel_distance_to_next,omitempty" yaml:"travel_distance_to_next,omitempty"`
	Notes                string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// StopInput is the body of POST /trips/{id}/stops/ and of the stops
// embedded in a trip create request.
type StopInput struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Order     int     `json:"order,omitempty"`
	StopType  string  `json:"stop_type,omitempty"`
}

// StopOrder assigns a new position to a stop.
type StopOrder struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// Trip is a planned road trip.
type Trip struct {
	ID                 int64   `json:"id" yaml:"id"`
	Name               string  `json:"name" yaml:"name"`
	Description        string  `json:"description,omitempty" yaml:"description,omitempty"`
	RouteType          string  `json:"route_type" yaml:"route_type"`
	UserName           string  `json:"user_name,omitempty" yaml:"user_name,omitempty"`
	TotalDistance      float64 `json:"total_distance" yaml:"total_distance"`
	TotalTime          float64 `json:"total_time" yaml:"total_time"`
	EstimatedFuelCost  float64 `json:"estimated_fuel_cost" yaml:"estimated_fuel_cost"`
	StartDate          string  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate            string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	DurationDays       int     `json:"duration_days" yaml:"duration_days"`
	Stops              []Stop  `json:"stops" yaml:"stops"`
	StopsCount         int     `json:"stops_count" yaml:"stops_count"`
	IsPublic           bool    `json:"is_public" yaml:"is_public"`
	FuelEfficiency     float64 `json:"fuel_efficiency" yaml:"fuel_efficiency"`
	FuelPricePerGallon float64 `json:"fuel_price_per_gallon" yaml:"fuel_price_per_gallon"`
	VehicleMake        string  `json:"vehicle_make,omitempty" yaml:"vehicle_make,omitempty"`
	VehicleModel       string  `json:"vehicle_model,omitempty" yaml:"vehicle_model,omitempty"`
	VehicleYear        string  `json:"vehicle_year,omitempty" yaml:"vehicle_year,omitempty"`
	CreatedAt          string  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt          string  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// TripInput is the body of POST /trips/ and PUT /trips/{id}/. Zero values
// are omitted so an update only touches the fields that were set.
type TripInput struct {
	Name               string      `json:"name,omitempty"`
	Description        string      `json:"description,omitempty"`
	RouteType          string      `json:"route_type,omitempty"`
	StartDate          string      `json:"start_date,omitempty"`
	EndDate            string      `json:"end_date,omitempty"`
	FuelEfficiency     float64     `json:"fuel_efficiency,omitempty"`
	FuelPricePerGallon float64     `json:"fuel_price_per_gallon,omitempty"`
	VehicleMake        string      `json:"vehicle_make,omitempty"`
	VehicleModel       string      `json:"vehicle_model,omitempty"`
	VehicleYear        string      `json:"vehicle_year,omitempty"`
	IsPublic           *bool       `json:"is_public,omitempty"`
	Stops              []StopInput `json:"stops,omitempty"`
	TotalDistance      float64     `json:"total_distance,omitempty"`
	TotalTime          float64     `json:"total_time,omitempty"`
}

// TripList is the paginated body of GET /trips/.
type TripList struct {
	Count   int    `json:"count"`
	Results []Trip `json:"results"`
}
