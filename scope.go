package strata

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// scope implements Scope.
type scope struct {
	id           string
	tag          ScopeTag
	parent       *scope
	owner        *containerImpl
	instances    map[BindingKey]any
	order        []BindingKey // construction order, seeds excluded
	inflight     map[BindingKey]*pending
	children     []*scope
	ended        bool
	mu           sync.Mutex
}

// newScope creates a new scope instance.
func newScope(owner *containerImpl, tag ScopeTag, parent *scope) *scope {
	return &scope{
		id:           uuid.NewString(),
		tag:          tag,
		parent:       parent,
		owner:        owner,
		instances:    make(map[BindingKey]any),
		inflight:     make(map[BindingKey]*pending),
	}
}

// Tag returns the scope's tag.
func (s *scope) Tag() ScopeTag {
	return s.tag
}

// ID returns the scope instance id.
func (s *scope) ID() string {
	return s.id
}

// Parent returns the enclosing scope.
func (s *scope) Parent() Scope {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

// Ended reports whether the scope has ended.
func (s *scope) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Has checks if key is bound and visible from this scope.
func (s *scope) Has(key BindingKey) bool {
	b, ok := s.owner.registry.get(key)
	if !ok {
		return false
	}
	return s.owner.visible(b.scope, s.tag)
}

// Resolve returns the value bound to key.
func (s *scope) Resolve(key BindingKey) (any, error) {
	return s.resolve(key, nil)
}

// resolve runs the middleware chain around resolveInternal. path holds the
// keys whose factories are running on this resolution chain.
func (s *scope) resolve(key BindingKey, path []BindingKey) (any, error) {
	ctx := context.Background()
	chain := s.owner.chain()

	if err := chain.beforeResolve(ctx, s, key); err != nil {
		return nil, err
	}

	instance, err := s.resolveInternal(ctx, chain, key, path)

	if mwErr := chain.afterResolve(ctx, s, key, instance, err); mwErr != nil {
		return nil, mwErr
	}

	return instance, err
}

// resolveInternal finds the scope that owns key's tag and builds there.
func (s *scope) resolveInternal(ctx context.Context, chain *middlewareChain, key BindingKey, path []BindingKey) (any, error) {
	if s.Ended() {
		return nil, ErrScopeEnded
	}

	b, ok := s.owner.registry.get(key)
	if !ok {
		return nil, ErrBindingNotFound(key.String())
	}

	if b.unscoped {
		if !s.owner.visible(b.scope, s.tag) {
			return nil, ErrScopeViolation(key.String(), b.scope, s.tag)
		}
		return s.build(ctx, chain, b, false, path)
	}

	owner := s.ancestor(b.scope)
	if owner == nil {
		return nil, ErrScopeViolation(key.String(), b.scope, s.tag)
	}

	return owner.build(ctx, chain, b, true, path)
}

// ancestor returns the nearest scope in the chain with the given tag.
func (s *scope) ancestor(tag ScopeTag) *scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.tag == tag {
			return cur
		}
	}
	return nil
}

// pending is a cached build in progress. Concurrent callers wait on done.
type pending struct {
	done     chan struct{}
	instance any
	err      error
}

// resolution is the Resolver handed to a factory. Resolves made through it
// extend path, so a key requested again on the same chain is a cycle.
type resolution struct {
	*scope
	path []BindingKey
}

// Resolve implements Resolver.
func (r *resolution) Resolve(key BindingKey) (any, error) {
	return r.scope.resolve(key, r.path)
}

// detach drops the resolution path from r. A lazy value resolves after its
// owner's factory has returned and must not inherit that chain.
func detach(r Resolver) Resolver {
	if res, ok := r.(*resolution); ok {
		return res.scope
	}
	return r
}

// build returns the cached value of b or calls its factory. The lock is
// released while the factory runs so the factory can resolve its own
// dependencies; other callers of the same cached key wait for that build.
func (s *scope) build(ctx context.Context, chain *middlewareChain, b *binding, cache bool, path []BindingKey) (any, error) {
	s.mu.Lock()

	if s.ended {
		s.mu.Unlock()
		return nil, ErrScopeEnded
	}

	if cache {
		if instance, ok := s.instances[b.key]; ok {
			s.mu.Unlock()
			return instance, nil
		}
	}

	if b.seeded {
		s.mu.Unlock()
		return nil, ErrSeedMissing(b.key.String(), s.tag)
	}

	for _, k := range path {
		if k == b.key {
			s.mu.Unlock()
			return nil, ErrCircularDependency(cyclePath(path, b.key))
		}
	}

	var p *pending
	if cache {
		if running, ok := s.inflight[b.key]; ok {
			s.mu.Unlock()
			<-running.done
			return running.instance, running.err
		}

		p = &pending{done: make(chan struct{})}
		s.inflight[b.key] = p
	}
	s.mu.Unlock()

	next := make([]BindingKey, len(path), len(path)+1)
	copy(next, path)
	next = append(next, b.key)

	instance, err := b.factory(&resolution{scope: s, path: next})

	s.mu.Lock()
	if err != nil {
		err = NewConstructionError(b.key.String(), s.tag, err)
		instance = nil
	} else if cache && s.ended {
		err = ErrScopeEnded
		instance = nil
	} else if cache {
		s.instances[b.key] = instance
		s.order = append(s.order, b.key)
	}

	if p != nil {
		delete(s.inflight, b.key)
		p.instance, p.err = instance, err
		close(p.done)
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	chain.constructed(ctx, s, b.key)

	return instance, nil
}

// BeginScope opens a child scope.
func (s *scope) BeginScope(tag ScopeTag, seeds ...SeedBinding) (Scope, error) {
	parent, ok := s.owner.parentOf(tag)
	if !ok {
		return nil, ErrUnknownScope(tag)
	}

	if parent != s.tag {
		return nil, fmt.Errorf("%w: scope '%s' opens under '%s', not '%s'",
			ErrScopeViolationSentinel, tag, parent, s.tag)
	}

	child := newScope(s.owner, tag, s)

	for _, seed := range seeds {
		b, ok := s.owner.registry.get(seed.key)
		if !ok || !b.seeded {
			return nil, fmt.Errorf("seed for %w", ErrBindingNotFound(seed.key.String()))
		}

		if b.scope != tag {
			return nil, ErrScopeViolation(seed.key.String(), b.scope, tag)
		}

		child.instances[seed.key] = seed.value
	}

	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return nil, ErrScopeEnded
	}
	s.children = append(s.children, child)
	s.mu.Unlock()

	s.owner.chain().scopeBegan(context.Background(), child)

	return child, nil
}

// End ends child scopes, then disposes this scope's values in reverse
// construction order.
func (s *scope) End() error {
	s.mu.Lock()

	if s.ended {
		s.mu.Unlock()
		return ErrScopeEnded
	}

	s.ended = true
	children := s.children
	order := s.order
	instances := s.instances
	s.children = nil
	s.order = nil
	s.instances = nil
	s.mu.Unlock()

	var result error

	for i := len(children) - 1; i >= 0; i-- {
		if err := children[i].End(); err != nil && !errors.Is(err, ErrScopeEnded) {
			result = multierr.Append(result, err)
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		key := order[i]
		if disposable, ok := instances[key].(Disposable); ok {
			if err := disposable.Dispose(); err != nil {
				result = multierr.Append(result, fmt.Errorf("failed to dispose %s: %w", key, err))
			}
		}
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	s.owner.chain().scopeEnded(context.Background(), s, result)

	return result
}

// removeChild forgets an ended child.
func (s *scope) removeChild(child *scope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}
