package settings

import "context"

type runKey struct{}

// IntoContext attaches the run settings of one roadtrip invocation to ctx.
// Subcommands read the output format and quiet flag back with FromContext.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runKey{}, s)
}

// FromContext returns the run settings stored by IntoContext. ok is false
// when ctx carries none.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runKey{}).(*Run)
	return s, ok && s != nil
}
