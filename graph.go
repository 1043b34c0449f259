package strata

// Dep is one declared dependency of a binding.
type Dep struct {
	Key BindingKey
	// Lazy dependencies are resolved on first access and do not take part
	// in cycle detection.
	Lazy bool
}

// DependencyGraph manages binding dependencies.
type DependencyGraph struct {
	nodes map[BindingKey]*node
	order []BindingKey // Preserve registration order
}

type node struct {
	key  BindingKey
	deps []Dep
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[BindingKey]*node),
		order: make([]BindingKey, 0),
	}
}

// AddNode adds a node with its dependencies.
func (g *DependencyGraph) AddNode(key BindingKey, deps []Dep) {
	if _, exists := g.nodes[key]; !exists {
		g.order = append(g.order, key)
	}
	g.nodes[key] = &node{key: key, deps: deps}
}

// Dependencies returns the declared dependencies of key.
func (g *DependencyGraph) Dependencies(key BindingKey) []Dep {
	if n, ok := g.nodes[key]; ok {
		return n.deps
	}

	return nil
}

// HasNode checks if a node exists in the graph.
func (g *DependencyGraph) HasNode(key BindingKey) bool {
	_, ok := g.nodes[key]

	return ok
}

// TopologicalSort returns nodes in dependency order, dependencies first.
// Nodes without dependencies keep their registration order. Lazy edges are
// ignored. Returns an error naming the cycle if one exists.
func (g *DependencyGraph) TopologicalSort() ([]BindingKey, error) {
	visited := make(map[BindingKey]bool)
	visiting := make(map[BindingKey]bool)
	result := make([]BindingKey, 0, len(g.nodes))

	for _, key := range g.order {
		if err := g.visit(key, visited, visiting, nil, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal; path holds the keys currently being visited.
func (g *DependencyGraph) visit(key BindingKey, visited, visiting map[BindingKey]bool, path []BindingKey, result *[]BindingKey) error {
	if visited[key] {
		return nil
	}

	if visiting[key] {
		return ErrCircularDependency(cyclePath(path, key))
	}

	n := g.nodes[key]
	if n == nil {
		// Missing bindings are reported by validation, not here.
		return nil
	}

	visiting[key] = true
	path = append(path, key)

	for _, dep := range n.deps {
		if dep.Lazy {
			continue
		}
		if err := g.visit(dep.Key, visited, visiting, path, result); err != nil {
			return err
		}
	}

	visiting[key] = false
	visited[key] = true
	*result = append(*result, key)

	return nil
}

// cyclePath returns the names from the first occurrence of key in path,
// closed with key again.
func cyclePath(path []BindingKey, key BindingKey) []string {
	start := 0
	for i, k := range path {
		if k == key {
			start = i
			break
		}
	}

	cycle := make([]string, 0, len(path)-start+1)
	for _, k := range path[start:] {
		cycle = append(cycle, k.String())
	}

	return append(cycle, key.String())
}
