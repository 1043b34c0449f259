package strata

import "fmt"

// ProviderFunc registers one or more bindings.
type ProviderFunc func(c Container) error

// Module is a named set of providers installed into one scope tag, the way
// a module groups the bindings of one component.
type Module struct {
	Name      string
	Scope     ScopeTag
	Providers []ProviderFunc
}

// NewModule creates a module.
//
// Example:
//
//	var AppModule = strata.NewModule("AppModule", strata.Singleton,
//	    func(c strata.Container) error {
//	        return strata.ProvideValue(c, "", "hello")
//	    },
//	)
func NewModule(name string, tag ScopeTag, providers ...ProviderFunc) Module {
	return Module{Name: name, Scope: tag, Providers: providers}
}

// Install registers every provider of every module. Each registration
// defaults to the module's scope and carries a "module" metadata entry;
// options passed by the provider itself win.
func Install(c Container, modules ...Module) error {
	for _, m := range modules {
		scoped := &moduleContainer{Container: c, module: m}

		for _, provide := range m.Providers {
			if err := provide(scoped); err != nil {
				return fmt.Errorf("install module %s: %w", m.Name, err)
			}
		}
	}

	return nil
}

// moduleContainer prepends module defaults to every registration.
type moduleContainer struct {
	Container
	module Module
}

// Register implements Container.
func (m *moduleContainer) Register(key BindingKey, factory Factory, opts ...RegisterOption) error {
	defaults := []RegisterOption{WithMetadata("module", m.module.Name)}
	if m.module.Scope != "" {
		defaults = append(defaults, In(m.module.Scope))
	}

	return m.Container.Register(key, factory, append(defaults, opts...)...)
}
