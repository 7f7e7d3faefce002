package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// ListTrips returns the first page of the user's trips.
func (c *Client) ListTrips(ctx context.Context) (*model.TripList, error) {
	var out model.TripList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/trips/"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrip returns a single trip with its stops.
func (c *Client) GetTrip(ctx context.Context, id int64) (*model.Trip, error) {
	var out model.Trip
	if err := c.do(ctx, request{method: http.MethodGet, path: tripPath(id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTrip creates a trip, optionally with its initial stops.
func (c *Client) CreateTrip(ctx context.Context, in model.TripInput) (*model.Trip, error) {
	var out model.Trip
	if err := c.do(ctx, request{method: http.MethodPost, path: "/trips/", body: in}, &out); err != nil {
		return nil, err
	}
	c.notify.Success(fmt.Sprintf("Trip %q created successfully!", out.Name))
	return &out, nil
}

// UpdateTrip replaces the fields set in in.
func (c *Client) UpdateTrip(ctx context.Context, id int64, in model.TripInput) (*model.Trip, error) {
	var out model.Trip
	if err := c.do(ctx, request{method: http.MethodPut, path: tripPath(id), body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTrip deletes a trip. name is only used for the notification.
func (c *Client) DeleteTrip(ctx context.Context, id int64, name string) error {
	if err := c.do(ctx, request{method: http.MethodDelete, path: tripPath(id)}, nil); err != nil {
		c.notify.Error(fmt.Sprintf("Failed to delete trip: %s", errorMessage(err)))
		return err
	}
	if name == "" {
		name = "Trip"
	}
	c.notify.Success(fmt.Sprintf("Trip %q deleted successfully!", name))
	return nil
}

// AddStop appends a stop to a trip.
func (c *Client) AddStop(ctx context.Context, tripID int64, in model.StopInput) (*model.Stop, error) {
	var out model.Stop
	if err := c.do(ctx, request{method: http.MethodPost, path: tripPath(tripID) + "stops/", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveStop deletes a stop from a trip.
func (c *Client) RemoveStop(ctx context.Context, tripID, stopID int64) error {
	path := tripPath(tripID) + "stops/" + strconv.FormatInt(stopID, 10) + "/"
	return c.do(ctx, request{method: http.MethodDelete, path: path}, nil)
}

// ReorderStops assigns new positions to stops and returns the server's
// confirmation message.
func (c *Client) ReorderStops(ctx context.Context, tripID int64, orders []model.StopOrder) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	body := map[string]any{"stop_orders": orders}
	if err := c.do(ctx, request{method: http.MethodPost, path: tripPath(tripID) + "stops/reorder/", body: body}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func tripPath(id int64) string {
	return "/trips/" + url.PathEscape(strconv.FormatInt(id, 10)) + "/"
}
