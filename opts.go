package strata

// RegisterOptions is the merged result of RegisterOption values.
type RegisterOptions struct {
	Scope        ScopeTag
	Unscoped     bool
	Seeded       bool
	Dependencies []Dep
	Groups       []string
	Metadata     map[string]string
}

// RegisterOption configures a binding registration.
type RegisterOption func(*RegisterOptions)

// In installs the binding in the given scope tag. Bindings default to Singleton.
func In(tag ScopeTag) RegisterOption {
	return func(o *RegisterOptions) {
		o.Scope = tag
	}
}

// Unscoped builds the binding on every resolve instead of caching it. The
// binding is still only visible from its scope tag and the tags below it.
func Unscoped() RegisterOption {
	return func(o *RegisterOptions) {
		o.Unscoped = true
	}
}

// WithDependencies declares eager dependencies for validation and ordering.
func WithDependencies(keys ...BindingKey) RegisterOption {
	return func(o *RegisterOptions) {
		for _, k := range keys {
			o.Dependencies = append(o.Dependencies, Dep{Key: k})
		}
	}
}

// WithDeps declares dependencies with full specs.
func WithDeps(deps ...Dep) RegisterOption {
	return func(o *RegisterOptions) {
		o.Dependencies = append(o.Dependencies, deps...)
	}
}

// WithMetadata adds diagnostic metadata to the binding.
func WithMetadata(key, value string) RegisterOption {
	return func(o *RegisterOptions) {
		if o.Metadata == nil {
			o.Metadata = make(map[string]string)
		}
		o.Metadata[key] = value
	}
}

// WithGroup adds the binding to a named group.
func WithGroup(group string) RegisterOption {
	return func(o *RegisterOptions) {
		o.Groups = append(o.Groups, group)
	}
}

// seeded marks a binding whose value is supplied when its scope begins.
func seeded() RegisterOption {
	return func(o *RegisterOptions) {
		o.Seeded = true
	}
}

// mergeOptions applies opts over the defaults.
func mergeOptions(opts []RegisterOption) RegisterOptions {
	merged := RegisterOptions{Scope: Singleton}
	for _, opt := range opts {
		if opt != nil {
			opt(&merged)
		}
	}

	return merged
}

// ContainerOption configures a container.
type ContainerOption func(*containerImpl)

// WithScope declares tag as a child of parent. parent must already be
// declared; Singleton always is.
func WithScope(tag, parent ScopeTag) ContainerOption {
	return func(c *containerImpl) {
		c.declare(tag, parent)
	}
}

// WithMiddleware installs middleware at construction time.
func WithMiddleware(mw ...Middleware) ContainerOption {
	return func(c *containerImpl) {
		for _, m := range mw {
			c.middleware.add(m)
		}
	}
}
