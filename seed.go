package strata

import "fmt"

// SeedBinding carries a value supplied when a scope begins, such as the
// screen instance an activity scope is opened for.
type SeedBinding struct {
	key   BindingKey
	value any
}

// Key returns the binding key the seed fills.
func (s SeedBinding) Key() BindingKey {
	return s.key
}

// Seed declares a binding of T in tag whose value is supplied by
// BeginScope rather than built by a factory.
//
// Example:
//
//	strata.Seed[*Screen](c, "", "activity")
//	act, err := c.BeginScope("activity", strata.SeedValue("", screen))
func Seed[T any](c Container, name string, tag ScopeTag, opts ...RegisterOption) error {
	key := NewKey[T](name).Binding()
	factory := func(Resolver) (any, error) {
		return nil, fmt.Errorf("seed %s has no factory", key)
	}

	opts = append(opts, In(tag), seeded())

	return c.Register(key, factory, opts...)
}

// SeedValue creates a seed for the binding of T with the given name.
func SeedValue[T any](name string, value T) SeedBinding {
	return SeedBinding{key: NewKey[T](name).Binding(), value: value}
}
