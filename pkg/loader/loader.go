// Package loader reads trip plans from JSON, YAML or TOML documents so a
// whole itinerary can be created in one step.
//
// A document holds one plan, a list of plans, or an object with a "trips"
// list. Field names are the API's (name, route_type, stops, latitude, ...).
// YAML input may contain several documents separated by ---.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// Format is a plan document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// LoadFile reads path and returns the plans it holds.
func LoadFile(path string) ([]model.TripInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	plans, err := Load(data, DetectFormat(path, data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plans, nil
}

// DetectFormat picks the format from the file extension, falling back to
// the content.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	input := strings.TrimSpace(string(data))
	// TOML [section] headers look like JSON arrays, so check TOML first.
	if isLikelyTOML(input) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// Load parses data as f and returns the plans with stop order and stop
// types filled in.
func Load(data []byte, f Format) ([]model.TripInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty input")
	}
	docs, err := decode(data, f)
	if err != nil {
		return nil, err
	}

	var raw []any
	for _, doc := range docs {
		raw = append(raw, unwrap(doc)...)
	}
	if len(raw) == 0 {
		return nil, errors.New("no trips found")
	}

	plans := make([]model.TripInput, 0, len(raw))
	for i, r := range raw {
		p, err := toPlan(r)
		if err != nil {
			return nil, fmt.Errorf("trip %d: %w", i+1, err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func decode(data []byte, f Format) ([]any, error) {
	switch f {
	case FormatJSON:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return []any{v}, nil
	case FormatTOML:
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return []any{v}, nil
	case FormatYAML:
		var docs []any
		dec := yaml.NewDecoder(bytes.NewReader(data))
		for {
			var doc any
			if err := dec.Decode(&doc); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, fmt.Errorf("invalid YAML: %w", err)
			}
			if doc != nil {
				docs = append(docs, doc)
			}
		}
		return docs, nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// unwrap flattens a document into individual plan values.
func unwrap(doc any) []any {
	switch v := doc.(type) {
	case []any:
		return v
	case map[string]any:
		if trips, ok := v["trips"].([]any); ok {
			return trips
		}
		// go-toml decodes arrays of tables as []map[string]any.
		if trips, ok := v["trips"].([]map[string]any); ok {
			out := make([]any, len(trips))
			for i, t := range trips {
				out[i] = t
			}
			return out
		}
	}
	return []any{doc}
}

func toPlan(v any) (model.TripInput, error) {
	var p model.TripInput
	if _, ok := v.(map[string]any); !ok {
		return p, fmt.Errorf("expected an object, got %T", v)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return p, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return p, errors.New("name is required")
	}
	for i := range p.Stops {
		s := &p.Stops[i]
		if strings.TrimSpace(s.Name) == "" {
			return p, fmt.Errorf("stop %d: name is required", i+1)
		}
		if err := checkCoordinates(s.Latitude, s.Longitude); err != nil {
			return p, fmt.Errorf("stop %d (%s): %w", i+1, s.Name, err)
		}
		if s.Address == "" {
			s.Address = s.Name
		}
		if s.Order == 0 {
			s.Order = i + 1
		}
		if s.StopType == "" {
			s.StopType = StopType(i, len(p.Stops))
		}
	}
	return p, nil
}

// StopType is the conventional type of the i-th of n stops.
func StopType(i, n int) string {
	switch {
	case i == 0:
		return model.StopStart
	case i == n-1:
		return model.StopDestination
	default:
		return model.StopWaypoint
	}
}

func checkCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

var (
	// [trips], [[trips]], ["quoted"], [a.b]; not JSON arrays like [1, 2].
	tomlSection = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// key = value, as opposed to YAML's key: value.
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

func isLikelyTOML(input string) bool {
	sections, pairs, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			pairs++
		}
	}
	return sections > 0 || (nonEmpty > 0 && pairs > nonEmpty/2)
}
