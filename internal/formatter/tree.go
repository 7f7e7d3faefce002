package formatter

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// FormatTripTree renders a trip and its ordered stops as a tree.
func FormatTripTree(trip model.Trip) string {
	root := treeprint.NewWithRoot(fmt.Sprintf("%s (#%d)", trip.Name, trip.ID))

	summary := []string{Miles(trip.TotalDistance), Hours(trip.TotalTime)}
	if trip.EstimatedFuelCost > 0 {
		summary = append(summary, Dollars(trip.EstimatedFuelCost)+" fuel")
	}
	root.AddNode(strings.Join(summary, " · "))
	if trip.Description != "" {
		root.AddNode(trip.Description)
	}

	if len(trip.Stops) == 0 {
		root.AddNode("(no stops)")
		return root.String()
	}

	stops := root.AddBranch(fmt.Sprintf("stops [%d]", len(trip.Stops)))
	for _, s := range trip.Stops {
		label := fmt.Sprintf("%d. %s", s.Order, s.Name)
		if s.StopType != "" && s.StopType != model.StopWaypoint {
			label += " (" + s.StopType + ")"
		}
		b := stops.AddBranch(label)
		if s.Address != "" {
			b.AddNode(s.Address)
		}
		b.AddNode(Coordinates(s.Latitude, s.Longitude))
		if s.TravelDistanceToNext != nil {
			next := "next: " + Miles(*s.TravelDistanceToNext)
			if s.TravelTimeToNext != nil {
				next += ", " + Hours(*s.TravelTimeToNext)
			}
			b.AddNode(next)
		}
	}
	return root.String()
}
