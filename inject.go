package strata

import (
	"reflect"
)

// InjectOption describes one factory parameter for Provide.
type InjectOption struct {
	Dep Dep
	// ParamType is the type the factory parameter must accept.
	ParamType reflect.Type
	resolve   func(r Resolver) (any, error)
}

// Inject creates an eager injection option. The dependency is resolved
// before the factory runs; failure to resolve fails the construction.
//
// Usage:
//
//	strata.Provide[string](c, "MainActivity.string1",
//	    strata.In("activity"),
//	    strata.Inject[*ScreenContext](""),
//	    strata.Inject[string]("FirstNamedTestString"),
//	    func(ctx *ScreenContext, first string) (string, error) { ... },
//	)
func Inject[T any](name string) InjectOption {
	key := NewKey[T](name)

	return InjectOption{
		Dep:       Dep{Key: key.Binding()},
		ParamType: typeOf[T](),
		resolve: func(r Resolver) (any, error) {
			return ResolveKey(r, key)
		},
	}
}

// LazyInject creates a lazy injection option. The factory receives a
// *Lazy[T] that resolves on first Get.
//
// Usage:
//
//	strata.Provide[*Screen](c, "",
//	    strata.LazyInject[*Report]("weekly"),
//	    func(report *strata.Lazy[*Report]) *Screen { ... },
//	)
func LazyInject[T any](name string) InjectOption {
	key := NewKey[T](name)

	return InjectOption{
		Dep:       Dep{Key: key.Binding(), Lazy: true},
		ParamType: typeOf[*Lazy[T]](),
		resolve: func(r Resolver) (any, error) {
			return NewLazy(detach(r), key), nil
		},
	}
}

// ExtractDeps extracts dependency specifications from inject options.
func ExtractDeps(opts []InjectOption) []Dep {
	deps := make([]Dep, len(opts))
	for i, opt := range opts {
		deps[i] = opt.Dep
	}

	return deps
}
