// Package model holds the wire and domain types shared by the API client,
// the fallback synthesizer, the search controller and the CLI.
package model

import (
	"encoding/json"
)

// Candidate is a single place search result shown in the search dropdown.
type Candidate struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Address    string   `json:"address" yaml:"address"`
	Lat        float64  `json:"lat" yaml:"lat"`
	Lng        float64  `json:"lng" yaml:"lng"`
	Type       string   `json:"type" yaml:"type"`
	Rating     *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Relevance  *float64 `json:"relevance,omitempty" yaml:"relevance,omitempty"`
}

// candidateWire accepts both the client shape and the Places shape the
// backend returns (place_id/latitude/longitude/types).
type candidateWire struct {
	ID         string   `json:"id"`
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Type       string   `json:"type"`
	Rating     *float64 `json:"rating"`
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
	Relevance  *float64 `json:"relevance"`
}

// UnmarshalJSON decodes either candidate shape.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var w candidateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Candidate{
		ID:         firstNonEmpty(w.ID, w.PlaceID),
		Name:       w.Name,
		Address:    w.Address,
		Lat:        firstSet(w.Lat, w.Latitude),
		Lng:        firstSet(w.Lng, w.Longitude),
		Type:       w.Type,
		Rating:     w.Rating,
		Categories: w.Categories,
		Relevance:  w.Relevance,
	}
	if len(c.Categories) == 0 && len(w.Types) > 0 {
		c.Categories = w.Types
	}
	if c.Type == "" {
		c.Type = "place"
		if len(c.Categories) > 0 {
			c.Type = c.Categories[0]
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstSet(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

// SearchResult is the body of GET /places/search/.
type SearchResult struct {
	Results   []Candidate `json:"results" yaml:"results"`
	Synthetic bool        `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
