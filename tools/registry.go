package tools

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Registry holds the tools exposed to a runtime, keyed by name.
// Registration order is preserved for prompt listings.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ITool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]ITool),
	}
}

// Register adds tools to the registry. Duplicate names are rejected.
func (r *Registry) Register(list ...ITool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range list {
		name := tool.Name()
		if _, ok := r.tools[name]; ok {
			return errors.Newf("tool already registered: %s", name)
		}
		r.tools[name] = tool
		r.order = append(r.order, name)
	}
	return nil
}

// Get returns the named tool.
func (r *Registry) Get(name string) (ITool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	if !ok {
		return nil, errors.Newf("tool not found: %s", name)
	}
	return tool, nil
}

// List returns the registered tools in registration order.
func (r *Registry) List() []ITool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]ITool, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.tools[name])
	}
	return list
}

// Descriptions returns the prompt listing of all registered tools.
func (r *Registry) Descriptions() string {
	return GetDescriptions(r.List()...)
}
