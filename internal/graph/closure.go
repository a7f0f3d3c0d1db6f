package graph

// ClosureTable maps every node to the set of nodes reachable from it,
// including itself and every member of its strongly connected component.
// A table is never modified after Closures returns it.
type ClosureTable map[string]Set

// Closures computes the transitive dependency closure of every node in g.
//
// Each strongly connected component is resolved as a unit, dependencies first,
// so the closure of a dependency is always available when a dependent
// component is processed. All members of a component share one closure set.
func Closures(g Graph) ClosureTable {
	table := make(ClosureTable, len(g))

	for _, component := range Components(g) {
		closure := NewSet(component...)
		for _, node := range component {
			for _, dep := range g[node] {
				if closure.Contains(dep) {
					continue
				}
				depClosure, ok := table[dep]
				if !ok {
					// Unknown dependency; nothing to propagate.
					continue
				}
				closure.Union(depClosure)
			}
		}
		for _, node := range component {
			table[node] = closure
		}
	}

	return table
}

// Of returns the closure of name in sorted order, or nil if name is unknown.
func (t ClosureTable) Of(name string) []string {
	closure, ok := t[name]
	if !ok {
		return nil
	}
	return closure.Sorted()
}

// Dependents returns, for every node, the set of nodes whose closure contains it.
// The node itself is always included.
func (t ClosureTable) Dependents() ClosureTable {
	result := make(ClosureTable, len(t))
	for name := range t {
		result[name] = NewSet(name)
	}
	for name, closure := range t {
		for dep := range closure {
			if set, ok := result[dep]; ok {
				set.Add(name)
			}
		}
	}
	return result
}
