package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// FormatTOML renders v as TOML. Values go through their JSON form first so
// keys match the JSON and YAML output, and lists are wrapped under key since
// TOML documents must be tables.
func FormatTOML(v any, key string) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}
	generic = dropNulls(generic)

	doc, ok := generic.(map[string]any)
	if !ok {
		if key == "" {
			key = "items"
		}
		doc = map[string]any{key: generic}
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode toml: %w", err)
	}
	return string(out), nil
}

// dropNulls removes null map entries and list elements, which TOML cannot
// represent.
func dropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if child == nil {
				delete(t, k)
				continue
			}
			t[k] = dropNulls(child)
		}
		return t
	case []any:
		out := t[:0]
		for _, child := range t {
			if child != nil {
				out = append(out, dropNulls(child))
			}
		}
		return out
	default:
		return v
	}
}
