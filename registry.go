package strata

import (
	"sync"
)

// binding holds one registration.
type binding struct {
	key      BindingKey
	factory  Factory
	scope    ScopeTag
	unscoped bool
	seeded   bool
	deps     []Dep
	groups   []string
	metadata map[string]string
}

// info returns a diagnostic copy of the binding.
func (b *binding) info() BindingInfo {
	metadata := make(map[string]string, len(b.metadata))
	for k, v := range b.metadata {
		metadata[k] = v
	}

	return BindingInfo{
		Key:          b.key,
		Scope:        b.scope,
		Unscoped:     b.unscoped,
		Seeded:       b.seeded,
		Dependencies: append([]Dep(nil), b.deps...),
		Groups:       append([]string(nil), b.groups...),
		Metadata:     metadata,
	}
}

// registry manages bindings by key and by group.
type registry struct {
	bindings map[BindingKey]*binding
	groups   map[string][]*binding
	order    []BindingKey
	mu       sync.RWMutex
}

// newRegistry creates an empty registry.
func newRegistry() *registry {
	return &registry{
		bindings: make(map[BindingKey]*binding),
		groups:   make(map[string][]*binding),
	}
}

// register adds a binding. Keys are unique across all scopes.
func (r *registry) register(b *binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[b.key]; exists {
		return ErrBindingAlreadyExists(b.key.String())
	}

	r.bindings[b.key] = b
	r.order = append(r.order, b.key)

	for _, group := range b.groups {
		r.groups[group] = append(r.groups[group], b)
	}

	return nil
}

// get retrieves a binding by key.
func (r *registry) get(key BindingKey) (*binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[key]
	return b, ok
}

// all returns every binding in registration order.
func (r *registry) all() []*binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*binding, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.bindings[key])
	}

	return out
}
