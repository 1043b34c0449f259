package strata

import (
	"fmt"
	"reflect"
)

// BindingKey identifies a binding by its Go type and an optional name.
// Two bindings of the same type are told apart by name, the way a named
// qualifier separates two strings.
type BindingKey struct {
	Type reflect.Type
	Name string
}

// String returns a human-readable representation of the key.
func (k BindingKey) String() string {
	typeName := "<nil>"
	if k.Type != nil {
		typeName = k.Type.String()
	}
	if k.Name == "" {
		return typeName
	}
	return fmt.Sprintf("%s[name=%s]", typeName, k.Name)
}

// Key provides type-safe binding identification.
type Key[T any] struct {
	name string
}

// NewKey creates a typed key. An empty name is the unnamed binding of T.
//
// Example:
//
//	var FirstString = strata.NewKey[string]("FirstNamedTestString")
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the key's name.
func (k Key[T]) Name() string {
	return k.name
}

// Binding returns the untyped key.
func (k Key[T]) Binding() BindingKey {
	return BindingKey{Type: typeOf[T](), Name: k.name}
}

// String returns a human-readable representation of the key.
func (k Key[T]) String() string {
	return k.Binding().String()
}

// typeOf returns the reflect.Type of T, including interface types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterKey registers a typed factory for key.
//
// Example:
//
//	strata.RegisterKey(c, FirstString, func(r strata.Resolver) (string, error) {
//	    return "This is a named test string", nil
//	})
func RegisterKey[T any](c Container, key Key[T], factory func(Resolver) (T, error), opts ...RegisterOption) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	return c.Register(key.Binding(), func(r Resolver) (any, error) {
		return factory(r)
	}, opts...)
}

// ResolveKey resolves a typed key from r.
func ResolveKey[T any](r Resolver, key Key[T]) (T, error) {
	var zero T

	instance, err := r.Resolve(key.Binding())
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(key.String(), instance)
	}

	return typed, nil
}

// MustKey resolves a typed key and panics on error.
func MustKey[T any](r Resolver, key Key[T]) T {
	result, err := ResolveKey(r, key)
	if err != nil {
		panic(err)
	}
	return result
}

// HasKey checks whether a typed key is bound and visible from r.
func HasKey[T any](r Resolver, key Key[T]) bool {
	return r.Has(key.Binding())
}

// InspectKey returns diagnostic information about a typed key.
func InspectKey[T any](c Container, key Key[T]) BindingInfo {
	return c.Inspect(key.Binding())
}
