package strata

import (
	"fmt"
)

// Resolve resolves the binding of T with the given name.
func Resolve[T any](r Resolver, name string) (T, error) {
	return ResolveKey(r, NewKey[T](name))
}

// Must resolves or panics. A missing dependency means the object cannot
// exist, so use it only where that is fatal anyway.
func Must[T any](r Resolver, name string) T {
	instance, err := Resolve[T](r, name)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", NewKey[T](name), err))
	}

	return instance
}

// ResolveGroup resolves every binding in group that is visible from r, in
// registration order. Members that are not of type T are a type mismatch.
func ResolveGroup[T any](c Container, r Resolver, group string) ([]T, error) {
	var out []T

	for _, info := range Query(c, BindingQuery{Group: group}) {
		if !r.Has(info.Key) {
			continue
		}

		instance, err := r.Resolve(info.Key)
		if err != nil {
			return nil, err
		}

		typed, ok := instance.(T)
		if !ok {
			return nil, ErrTypeMismatch(info.Key.String(), instance)
		}

		out = append(out, typed)
	}

	return out, nil
}
