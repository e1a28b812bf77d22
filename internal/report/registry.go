// internal/report/registry.go
package report

import (
	"fmt"
	"sort"
	"sync"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// Renderer turns a finalized step sequence into one output document.
type Renderer func(meta Meta, steps []types.Step) (string, error)

// Registry maps output format names to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// DefaultRegistry returns a registry with the built-in renderers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("html", AssembleHTML)
	r.Register("markdown", AssembleMarkdown)
	return r
}

// Register adds a renderer for the given format name.
func (r *Registry) Register(format string, fn Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[format] = fn
}

// Render produces the document for the given format.
func (r *Registry) Render(format string, meta Meta, steps []types.Step) (string, error) {
	r.mu.RLock()
	fn, ok := r.renderers[format]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("no renderer for format: %s", format)
	}
	return fn(meta, steps)
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
