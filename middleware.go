package strata

import "context"

// Middleware provides hooks for intercepting container operations.
// Middleware can be used for logging, metrics, testing, etc.
type Middleware interface {
	// BeforeResolve is called before resolving a binding from r.
	// Return error to abort resolution.
	BeforeResolve(ctx context.Context, r Resolver, key BindingKey) error

	// AfterResolve is called after resolving a binding.
	// Called even if resolution failed.
	AfterResolve(ctx context.Context, r Resolver, key BindingKey, instance any, err error) error

	// Constructed is called when a factory built a new value in owner.
	Constructed(ctx context.Context, owner Resolver, key BindingKey)

	// ScopeBegan is called after a child scope is opened.
	ScopeBegan(ctx context.Context, s Scope)

	// ScopeEnded is called after a scope ended, with any disposal error.
	ScopeEnded(ctx context.Context, s Scope, err error)
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{
		middleware: make([]Middleware, 0),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	m.middleware = append(m.middleware, middleware)
}

// snapshot returns a copy safe to iterate without the container lock.
func (m *middlewareChain) snapshot() *middlewareChain {
	return &middlewareChain{middleware: append([]Middleware(nil), m.middleware...)}
}

func (m *middlewareChain) beforeResolve(ctx context.Context, r Resolver, key BindingKey) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(ctx, r, key); err != nil {
			return err
		}
	}
	return nil
}

func (m *middlewareChain) afterResolve(ctx context.Context, r Resolver, key BindingKey, instance any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(ctx, r, key, instance, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

func (m *middlewareChain) constructed(ctx context.Context, owner Resolver, key BindingKey) {
	for _, mw := range m.middleware {
		mw.Constructed(ctx, owner, key)
	}
}

func (m *middlewareChain) scopeBegan(ctx context.Context, s Scope) {
	for _, mw := range m.middleware {
		mw.ScopeBegan(ctx, s)
	}
}

func (m *middlewareChain) scopeEnded(ctx context.Context, s Scope, err error) {
	for _, mw := range m.middleware {
		mw.ScopeEnded(ctx, s, err)
	}
}

// FuncMiddleware wraps functions as Middleware. Nil fields are no-ops.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, r Resolver, key BindingKey) error
	AfterResolveFunc  func(ctx context.Context, r Resolver, key BindingKey, instance any, err error) error
	ConstructedFunc   func(ctx context.Context, owner Resolver, key BindingKey)
	ScopeBeganFunc    func(ctx context.Context, s Scope)
	ScopeEndedFunc    func(ctx context.Context, s Scope, err error)
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, r Resolver, key BindingKey) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(ctx, r, key)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, r Resolver, key BindingKey, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(ctx, r, key, instance, err)
	}
	return nil
}

// Constructed implements Middleware.
func (f *FuncMiddleware) Constructed(ctx context.Context, owner Resolver, key BindingKey) {
	if f.ConstructedFunc != nil {
		f.ConstructedFunc(ctx, owner, key)
	}
}

// ScopeBegan implements Middleware.
func (f *FuncMiddleware) ScopeBegan(ctx context.Context, s Scope) {
	if f.ScopeBeganFunc != nil {
		f.ScopeBeganFunc(ctx, s)
	}
}

// ScopeEnded implements Middleware.
func (f *FuncMiddleware) ScopeEnded(ctx context.Context, s Scope, err error) {
	if f.ScopeEndedFunc != nil {
		f.ScopeEndedFunc(ctx, s, err)
	}
}
