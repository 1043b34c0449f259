// Package strata resolves dependencies through a hierarchy of lifetime scopes.
//
// A Container is the root scope. Child scopes are opened with BeginScope and
// may only be opened under the parent declared for their tag:
//
//	c := strata.New(
//	    strata.WithScope("activity", strata.Singleton),
//	    strata.WithScope("viewmodel", strata.Singleton),
//	)
//
// Bindings are keyed by Go type and an optional name and are installed in
// one scope tag. A scope sees the bindings of its own tag and of every
// ancestor tag; the instance is cached in the scope that owns the tag, so a
// singleton resolved from an activity scope is shared process-wide while an
// activity binding is built once per activity scope.
package strata

// ScopeTag names a level of the scope hierarchy.
type ScopeTag string

// Singleton is the tag of the root scope owned by the container.
const Singleton ScopeTag = "singleton"

// Factory creates a binding's value. The Resolver is the scope that will
// own the value.
type Factory func(r Resolver) (any, error)

// Resolver resolves bindings visible from one scope.
type Resolver interface {
	// Resolve returns the value bound to key, building it in the owning
	// scope on first use.
	Resolve(key BindingKey) (any, error)

	// Has reports whether key is bound and visible from this scope.
	Has(key BindingKey) bool

	// Tag returns the scope's tag.
	Tag() ScopeTag

	// ID returns the scope instance's unique id.
	ID() string
}

// Scope is one instance of a lifetime in the hierarchy.
type Scope interface {
	Resolver

	// BeginScope opens a child scope. tag must be declared with this
	// scope's tag as its parent. Seeds supply the values of seeded bindings
	// installed in tag.
	BeginScope(tag ScopeTag, seeds ...SeedBinding) (Scope, error)

	// Parent returns the enclosing scope, or nil for the root.
	Parent() Scope

	// End ends all child scopes, disposes the values this scope built in
	// reverse construction order and rejects further resolution.
	End() error

	// Ended reports whether End has been called.
	Ended() bool
}

// Container owns the binding registry and is the root (Singleton) scope.
type Container interface {
	Scope

	// Register installs a factory for key.
	Register(key BindingKey, factory Factory, opts ...RegisterOption) error

	// Use appends middleware. Middleware is called in the order added.
	Use(mw Middleware)

	// Validate checks the static graph for cycles, missing bindings and
	// dependencies on bindings not visible from the dependent's scope.
	Validate() error

	// Bindings returns every registered binding in registration order.
	Bindings() []BindingInfo

	// Inspect returns diagnostic information about one binding.
	Inspect(key BindingKey) BindingInfo

	// Scopes returns the declared tags, root first.
	Scopes() []ScopeTag

	// ScopeParent returns the declared parent of tag. The root has none.
	ScopeParent(tag ScopeTag) (ScopeTag, bool)
}

// Disposable values are disposed when the scope that built them ends.
type Disposable interface {
	Dispose() error
}

// BindingInfo contains diagnostic information about a binding.
type BindingInfo struct {
	Key          BindingKey
	Scope        ScopeTag
	Unscoped     bool
	Seeded       bool
	Dependencies []Dep
	Groups       []string
	Metadata     map[string]string
}

// New creates a container with the given scope hierarchy.
func New(opts ...ContainerOption) Container {
	return newContainer(opts...)
}
