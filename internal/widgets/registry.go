// Package widgets produces display rows for each content type. Generators
// are looked up by name through a registry so the engines never branch on
// widget names themselves.
package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Generator turns an opaque input value into display rows.
type Generator interface {
	Name() string
	Generate(ctx context.Context, input json.RawMessage) ([]string, error)
}

// WidgetError is a content-generation failure for one widget.
type WidgetError struct {
	Widget string
	Reason string
	Err    error
}

func (e *WidgetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("widget %s: %s: %v", e.Widget, e.Reason, e.Err)
	}
	return fmt.Sprintf("widget %s: %s", e.Widget, e.Reason)
}

func (e *WidgetError) Unwrap() error { return e.Err }

// BoardHeader implements the on-board error contract.
func (e *WidgetError) BoardHeader() string { return "widget error" }

// BoardText implements the on-board error contract.
func (e *WidgetError) BoardText() string {
	switch e.Widget {
	case "file":
		return "'file' not found"
	case "text":
		return "text processing error"
	case "weather":
		return "weather data unavailable"
	case "sat-word":
		return "dictionary unavailable"
	case "schedule":
		return "schedule error"
	default:
		return "unknown error"
	}
}

type Registry struct {
	gens map[string]Generator
}

func NewRegistry() *Registry {
	return &Registry{gens: map[string]Generator{}}
}

func (r *Registry) Register(g Generator) {
	r.gens[strings.ToLower(strings.TrimSpace(g.Name()))] = g
}

// Names returns the registered widget names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.gens))
	for name := range r.gens {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Generate runs the named generator. Unknown names are a WidgetError like
// any other generation failure.
func (r *Registry) Generate(ctx context.Context, name string, input json.RawMessage) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	g, ok := r.gens[key]
	if !ok {
		return nil, &WidgetError{Widget: key, Reason: "unknown widget"}
	}
	return g.Generate(ctx, input)
}

// stringInput decodes the common case of a JSON string input.
func stringInput(input json.RawMessage) string {
	if len(input) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		// Fall back to the raw text for hand-written inputs.
		return strings.Trim(string(input), "\"")
	}
	return s
}
