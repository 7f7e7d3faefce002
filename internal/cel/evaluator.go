// Package cel evaluates CEL predicates used by the --filter list flag.
// Each item is bound to the variable "_" as its JSON object form, so field
// names match the API (for example _.total_distance > 500).
package cel

import (
	"encoding/json"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a new CEL evaluator with standard library functions.
func NewEvaluator() (*Evaluator, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// newStandardCELEnv creates a standard CEL environment with common extensions.
func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 5+len(opts))
	allOpts = append(allOpts,
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Evaluate evaluates expr with data bound to "_" and converts the result to
// Go values.
func (e *Evaluator) Evaluate(expr string, data any) (any, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, err
	}
	result, _, err := prg.Eval(map[string]any{"_": data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return ToGo(result), nil
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(types.BoolType) && !t.IsExactType(types.DynType) {
		return nil, fmt.Errorf("filter %q must evaluate to a bool, not %s", expr, t)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return prg, nil
}

// Filter is a compiled boolean predicate.
type Filter struct {
	expr string
	prg  cel.Program
}

// Compile prepares expr for repeated evaluation. The expression must
// produce a bool.
func (e *Evaluator) Compile(expr string) (*Filter, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, err
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Match evaluates the predicate against item.
func (f *Filter) Match(item any) (bool, error) {
	data, err := ToValue(item)
	if err != nil {
		return false, err
	}
	out, _, err := f.prg.Eval(map[string]any{"_": data})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %s, want bool", f.expr, out.Type())
	}
	return bool(b), nil
}

// Select returns the items f matches, in order. A nil filter matches
// everything.
func Select[T any](f *Filter, items []T) ([]T, error) {
	if f == nil {
		return items, nil
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// ToValue converts a struct to the plain map/slice form CEL evaluates,
// using its JSON field names.
func ToValue(v any) (any, error) {
	switch v.(type) {
	case nil, bool, string, float64, int64, map[string]any, []any:
		return v, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode filter input: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode filter input: %w", err)
	}
	return out, nil
}

// ToGo converts CEL values to Go native types recursively.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}
	inner := val.Value()
	switch v := inner.(type) {
	case []ref.Val:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = ToGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			if rv, ok := elem.(ref.Val); ok {
				out[i] = ToGo(rv)
			} else {
				out[i] = elem
			}
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[fmt.Sprintf("%v", k.Value())] = ToGo(elem)
		}
		return out
	}
	return inner
}
