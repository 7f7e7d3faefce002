package formatter

import (
	"encoding/json"
)

// FormatJSON renders v as indented JSON with a trailing newline.
func FormatJSON(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
