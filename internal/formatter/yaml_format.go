package formatter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// syntheticComment marks data produced by the offline fallback.
const syntheticComment = "# offline estimate, the API was unreachable"

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent int
	// LiteralBlockStrings writes multi-line strings such as trip
	// descriptions as "|" blocks.
	LiteralBlockStrings bool
	// AnnotateSynthetic comments "synthetic: true" so fallback results stand
	// out from live ones.
	AnnotateSynthetic bool
	// FlowWaypoints writes lat/lng pairs on a single line.
	FlowWaypoints bool
}

// CLIYAMLOptions is what -o yaml uses.
var CLIYAMLOptions = YAMLFormatOptions{
	LiteralBlockStrings: true,
	AnnotateSynthetic:   true,
	FlowWaypoints:       true,
}

// FormatYAML renders trips, places, weather and routes as YAML.
func FormatYAML(v any, opts YAMLFormatOptions) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", err
	}
	walkYAML(&node, func(n *yaml.Node) {
		switch {
		case opts.LiteralBlockStrings && isMultilineString(n):
			n.Style = yaml.LiteralStyle
		case opts.FlowWaypoints && isWaypoint(n):
			n.Style = yaml.FlowStyle
		case opts.AnnotateSynthetic && n.Kind == yaml.MappingNode:
			annotateSynthetic(n)
		}
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func walkYAML(n *yaml.Node, fn func(*yaml.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Content {
		walkYAML(c, fn)
	}
}

func isMultilineString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n")
}

// isWaypoint matches a mapping of exactly lat and lng.
func isWaypoint(n *yaml.Node) bool {
	if n.Kind != yaml.MappingNode || len(n.Content) != 4 {
		return false
	}
	return n.Content[0].Value == "lat" && n.Content[2].Value == "lng"
}

func annotateSynthetic(n *yaml.Node) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Value == "synthetic" && v.Tag == "!!bool" && v.Value == "true" {
			v.LineComment = syntheticComment
		}
	}
}
