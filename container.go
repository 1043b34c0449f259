package strata

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// containerImpl implements Container. It embeds the root scope.
type containerImpl struct {
	*scope

	registry   *registry
	graph      *DependencyGraph
	middleware *middlewareChain
	parents    map[ScopeTag]ScopeTag
	tags       []ScopeTag
	declErrs   []error
	mu         sync.RWMutex
}

// newContainer creates a new container with its root scope.
func newContainer(opts ...ContainerOption) *containerImpl {
	c := &containerImpl{
		registry:   newRegistry(),
		graph:      NewDependencyGraph(),
		middleware: newMiddlewareChain(),
		parents:    make(map[ScopeTag]ScopeTag),
		tags:       []ScopeTag{Singleton},
	}
	c.scope = newScope(c, Singleton, nil)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// declare records tag as a child of parent. Failures surface from Validate.
func (c *containerImpl) declare(tag, parent ScopeTag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case tag == "":
		c.declErrs = append(c.declErrs, fmt.Errorf("scope tag cannot be empty"))
	case c.knownLocked(tag):
		c.declErrs = append(c.declErrs, fmt.Errorf("scope '%s' declared twice", tag))
	case !c.knownLocked(parent):
		c.declErrs = append(c.declErrs, ErrUnknownScope(parent))
	default:
		c.parents[tag] = parent
		c.tags = append(c.tags, tag)
	}
}

func (c *containerImpl) knownLocked(tag ScopeTag) bool {
	if tag == Singleton {
		return true
	}
	_, ok := c.parents[tag]
	return ok
}

// visibleLocked reports whether bindings installed in installed can be seen
// from scopes tagged from.
func (c *containerImpl) visibleLocked(installed, from ScopeTag) bool {
	for tag := from; ; {
		if tag == installed {
			return true
		}
		parent, ok := c.parents[tag]
		if !ok {
			return false
		}
		tag = parent
	}
}

func (c *containerImpl) visible(installed, from ScopeTag) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visibleLocked(installed, from)
}

func (c *containerImpl) parentOf(tag ScopeTag) (ScopeTag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parent, ok := c.parents[tag]
	return parent, ok
}

// chain returns the middleware to run for one operation.
func (c *containerImpl) chain() *middlewareChain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.middleware.snapshot()
}

// Register adds a binding to the container.
func (c *containerImpl) Register(key BindingKey, factory Factory, opts ...RegisterOption) error {
	merged := mergeOptions(opts)

	if key.Type == nil {
		return fmt.Errorf("binding type cannot be nil")
	}

	if factory == nil {
		return ErrInvalidFactory
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.knownLocked(merged.Scope) {
		return ErrUnknownScope(merged.Scope)
	}

	b := &binding{
		key:      key,
		factory:  factory,
		scope:    merged.Scope,
		unscoped: merged.Unscoped,
		seeded:   merged.Seeded,
		deps:     merged.Dependencies,
		groups:   merged.Groups,
		metadata: merged.Metadata,
	}

	if err := c.registry.register(b); err != nil {
		return err
	}

	c.graph.AddNode(key, b.deps)

	return nil
}

// Use adds middleware to the container.
func (c *containerImpl) Use(mw Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware.add(mw)
}

// Validate checks the registered graph without building anything.
func (c *containerImpl) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result error
	for _, err := range c.declErrs {
		result = multierr.Append(result, err)
	}

	if _, err := c.graph.TopologicalSort(); err != nil {
		result = multierr.Append(result, err)
	}

	for _, b := range c.registry.all() {
		for _, dep := range b.deps {
			target, ok := c.registry.get(dep.Key)
			if !ok {
				result = multierr.Append(result,
					fmt.Errorf("%s depends on %w", b.key, ErrBindingNotFound(dep.Key.String())))

				continue
			}

			if !c.visibleLocked(target.scope, b.scope) {
				result = multierr.Append(result,
					fmt.Errorf("%s depends on %w", b.key, ErrScopeViolation(dep.Key.String(), target.scope, b.scope)))
			}
		}
	}

	return result
}

// Bindings returns every binding in registration order.
func (c *containerImpl) Bindings() []BindingInfo {
	all := c.registry.all()
	infos := make([]BindingInfo, 0, len(all))
	for _, b := range all {
		infos = append(infos, b.info())
	}

	return infos
}

// Inspect returns diagnostic information about a binding.
func (c *containerImpl) Inspect(key BindingKey) BindingInfo {
	b, ok := c.registry.get(key)
	if !ok {
		return BindingInfo{Key: key}
	}

	return b.info()
}

// Scopes returns the declared tags in declaration order.
func (c *containerImpl) Scopes() []ScopeTag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ScopeTag(nil), c.tags...)
}

// ScopeParent returns the declared parent of tag.
func (c *containerImpl) ScopeParent(tag ScopeTag) (ScopeTag, bool) {
	return c.parentOf(tag)
}
