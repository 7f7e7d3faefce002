package cmd

import (
	"context"
	"fmt"

	"github.com/oakwood-commons/roadtrip/internal/formatter"
	"github.com/oakwood-commons/roadtrip/pkg/settings"
)

// render writes v in the selected output format. table builds the table
// form; key names the list in TOML output.
func (a *app) render(ctx context.Context, v any, key string, table func() formatter.Table) error {
	var (
		s   string
		err error
	)
	switch runSettings(ctx).OutputFormat {
	case settings.OutputJSON:
		s, err = formatter.FormatJSON(v)
	case settings.OutputYAML:
		s, err = formatter.FormatYAML(v, formatter.CLIYAMLOptions)
	case settings.OutputTOML:
		s, err = formatter.FormatTOML(v, key)
	case settings.OutputTree:
		return usageErrorf("tree output is only supported by 'trips show'")
	default:
		s = table().Render(formatter.TableOptions{NoColor: !a.color})
	}
	if err != nil {
		return fmt.Errorf("format output: %w", err)
	}
	_, err = fmt.Fprint(a.out, s)
	return err
}

// structured reports whether the output is meant for machines.
func (a *app) structured(ctx context.Context) bool {
	switch runSettings(ctx).OutputFormat {
	case settings.OutputJSON, settings.OutputYAML, settings.OutputTOML:
		return true
	}
	return false
}

// runSettings returns the settings setup stored for this invocation, or the
// CLI defaults when none were stored.
func runSettings(ctx context.Context) *settings.Run {
	if s, ok := settings.FromContext(ctx); ok && s != nil {
		return s
	}
	return settings.NewCliParams()
}
