package strata

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Provide registers the binding of T with the given name. It accepts
// InjectOption and RegisterOption arguments followed by a factory function.
//
// The factory receives the resolved dependencies in order and returns the
// value and optionally an error. Its signature is checked here, so a
// mismatched factory fails at registration rather than at first use.
//
// Usage:
//
//	strata.Provide[string](c, "TestViewModel.string1",
//	    strata.In("viewmodel"),
//	    strata.Inject[*ApplicationContext](""),
//	    strata.Inject[string]("FirstNamedTestString"),
//	    func(app *ApplicationContext, first string) (string, error) {
//	        return compose(app, first)
//	    },
//	)
func Provide[T any](c Container, name string, args ...any) error {
	key := NewKey[T](name)

	var (
		injectOpts   []InjectOption
		registerOpts []RegisterOption
		factoryFn    any
	)

	for _, arg := range args {
		switch v := arg.(type) {
		case InjectOption:
			injectOpts = append(injectOpts, v)
		case RegisterOption:
			registerOpts = append(registerOpts, v)
		default:
			if factoryFn != nil {
				return fmt.Errorf("provide %s: multiple factory functions provided", key)
			}

			factoryFn = arg
		}
	}

	if factoryFn == nil {
		return fmt.Errorf("provide %s: %w", key, ErrInvalidFactory)
	}

	if err := checkFactory(factoryFn, typeOf[T](), injectOpts); err != nil {
		return fmt.Errorf("provide %s: %w", key, err)
	}

	factory := func(r Resolver) (any, error) {
		resolved := make([]any, len(injectOpts))

		for i, opt := range injectOpts {
			value, err := opt.resolve(r)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve dependency %s: %w", opt.Dep.Key, err)
			}

			resolved[i] = value
		}

		return callFactory(factoryFn, resolved)
	}

	if deps := ExtractDeps(injectOpts); len(deps) > 0 {
		registerOpts = append(registerOpts, WithDeps(deps...))
	}

	return c.Register(key.Binding(), factory, registerOpts...)
}

// ProvideValue registers a pre-built value as the binding of T.
func ProvideValue[T any](c Container, name string, value T, opts ...RegisterOption) error {
	return c.Register(NewKey[T](name).Binding(), func(Resolver) (any, error) {
		return value, nil
	}, opts...)
}

// checkFactory verifies fn is func(params...) (out[, error]) with params
// matching the inject options and out assignable to the binding type.
func checkFactory(fn any, out reflect.Type, injectOpts []InjectOption) error {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return fmt.Errorf("factory must be a function, got %T", fn)
	}

	if fnType.IsVariadic() {
		return fmt.Errorf("factory must not be variadic")
	}

	if fnType.NumIn() != len(injectOpts) {
		return fmt.Errorf("factory expects %d parameters, got %d dependencies", fnType.NumIn(), len(injectOpts))
	}

	for i, opt := range injectOpts {
		if !opt.ParamType.AssignableTo(fnType.In(i)) {
			return fmt.Errorf("factory parameter %d is %s, dependency %s provides %s",
				i, fnType.In(i), opt.Dep.Key, opt.ParamType)
		}
	}

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return fmt.Errorf("factory second return value must be error, got %s", fnType.Out(1))
		}
	default:
		return fmt.Errorf("factory must return (T) or (T, error), got %d return values", fnType.NumOut())
	}

	if !fnType.Out(0).AssignableTo(out) {
		return fmt.Errorf("factory returns %s, not assignable to %s", fnType.Out(0), out)
	}

	return nil
}

// callFactory calls the factory function with the resolved dependencies.
func callFactory(factoryFn any, deps []any) (any, error) {
	fnValue := reflect.ValueOf(factoryFn)
	fnType := fnValue.Type()

	args := make([]reflect.Value, len(deps))
	for i, dep := range deps {
		if dep == nil {
			args[i] = reflect.Zero(fnType.In(i))
		} else {
			args[i] = reflect.ValueOf(dep)
		}
	}

	results := fnValue.Call(args)

	if len(results) == 2 && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}

	return results[0].Interface(), nil
}
