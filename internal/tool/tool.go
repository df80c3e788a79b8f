// Package tool defines the simfile transform interface and the registry the
// CLI and web server both dispatch through.
package tool

import (
	"context"
	"fmt"
	"sort"

	"github.com/stepsmith/stepsmith/internal/ssc"
)

// Options carries the opt-in switches a transform may honor. Transforms that
// take no options ignore it.
type Options struct {
	// AllowSimultaneous tolerates mines sharing a beat with notes in the
	// same chart, leaving those mines hittable.
	AllowSimultaneous bool

	// AllowSplitTiming permits copying simfile timing into individual
	// charts when that is the only way to scope a change correctly.
	AllowSplitTiming bool
}

// Action is one human-readable step a transform took (or skipped).
type Action struct {
	Text string
	Noop bool
}

func (a Action) String() string {
	if a.Noop {
		return "[no-op] " + a.Text
	}
	return a.Text
}

// Result is the outcome of applying a transform to a simfile.
type Result struct {
	Actions []Action
}

// Record appends a non-noop action.
func (r *Result) Record(format string, args ...any) {
	r.Actions = append(r.Actions, Action{Text: fmt.Sprintf(format, args...)})
}

// RecordNoop appends an informational action that changed nothing.
func (r *Result) RecordNoop(format string, args ...any) {
	r.Actions = append(r.Actions, Action{Text: fmt.Sprintf(format, args...), Noop: true})
}

// Effective reports whether any action actually modified the simfile.
// Callers skip writing the file when this is false.
func (r *Result) Effective() bool {
	for _, a := range r.Actions {
		if !a.Noop {
			return true
		}
	}
	return false
}

// Tool is a named simfile transform.
type Tool interface {
	// Name is the registry key and URL slug, e.g. "fake-mines".
	Name() string

	// Summary is a one-line description for usage text and web pages.
	Summary() string

	// Apply mutates the simfile in place and reports what it did.
	Apply(ctx context.Context, sim *ssc.Simfile, opts Options) (*Result, error)
}

// Registry holds the registered tools for one application instance.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering two tools under one name is a
// programmer error.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; exists {
		panic(fmt.Sprintf("tool %q registered twice", t.Name()))
	}
	r.tools[t.Name()] = t
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
