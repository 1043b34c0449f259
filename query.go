package strata

// BindingQuery defines criteria for querying bindings.
type BindingQuery struct {
	// Scope filters by installed scope tag. Empty matches all.
	Scope ScopeTag

	// Group filters by group. Empty matches all.
	Group string

	// Metadata filters by metadata key-value pairs.
	// All specified metadata must match for a binding to be included.
	Metadata map[string]string

	// Unscoped filters by caching behaviour. nil matches all.
	Unscoped *bool
}

// Query returns the bindings matching the query, in registration order.
//
// Example:
//
//	// All bindings installed by MainModule
//	infos := strata.Query(c, strata.BindingQuery{
//	    Metadata: map[string]string{"module": "MainModule"},
//	})
func Query(c Container, query BindingQuery) []BindingInfo {
	var results []BindingInfo

	for _, info := range c.Bindings() {
		if query.Scope != "" && info.Scope != query.Scope {
			continue
		}

		if query.Group != "" && !contains(info.Groups, query.Group) {
			continue
		}

		if len(query.Metadata) > 0 {
			allMatch := true
			for key, value := range query.Metadata {
				if info.Metadata[key] != value {
					allMatch = false
					break
				}
			}
			if !allMatch {
				continue
			}
		}

		if query.Unscoped != nil && info.Unscoped != *query.Unscoped {
			continue
		}

		results = append(results, info)
	}

	return results
}

// FindByScope returns all bindings installed in a scope tag.
func FindByScope(c Container, tag ScopeTag) []BindingInfo {
	return Query(c, BindingQuery{Scope: tag})
}

// FindByGroup returns all bindings in a group.
func FindByGroup(c Container, group string) []BindingInfo {
	return Query(c, BindingQuery{Group: group})
}

// FindByModule returns all bindings installed by a module.
func FindByModule(c Container, module string) []BindingInfo {
	return Query(c, BindingQuery{Metadata: map[string]string{"module": module}})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
