package graph

// Components returns the strongly connected components of g.
//
// Components are returned dependencies first: a component appears only after
// every component reachable from it. Tarjan's algorithm emits a component once
// all of its successors are finished, and since edges point from a node to its
// dependencies, the emission order already satisfies this.
//
// Node indices are assigned in sorted name order. Members of each component
// are sorted. Edges to nodes that are not keys of g are ignored.
//
// The traversal uses an explicit frame stack so deep dependency chains do not
// overflow the goroutine stack.
func Components(g Graph) [][]string {
	nodes := g.Nodes()

	index := 0
	nodeIndex := make(map[string]int, len(nodes))
	lowLink := make(map[string]int, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var stack []string
	var components [][]string

	type frame struct {
		node    string
		edge    int
		started bool
	}

	strongConnect := func(start string) {
		frames := []frame{{node: start}}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]

			if !f.started {
				f.started = true
				nodeIndex[f.node] = index
				lowLink[f.node] = index
				index++
				stack = append(stack, f.node)
				onStack[f.node] = true
			}

			deps := g[f.node]
			pushed := false
			for f.edge < len(deps) {
				dep := deps[f.edge]
				f.edge++

				if _, known := g[dep]; !known {
					continue
				}
				if _, visited := nodeIndex[dep]; !visited {
					frames = append(frames, frame{node: dep})
					pushed = true
					break
				}
				if onStack[dep] && nodeIndex[dep] < lowLink[f.node] {
					lowLink[f.node] = nodeIndex[dep]
				}
			}
			if pushed {
				continue
			}

			node := f.node
			if lowLink[node] == nodeIndex[node] {
				var component []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					component = append(component, w)
					if w == node {
						break
					}
				}
				components = append(components, NewSet(component...).Sorted())
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowLink[node] < lowLink[parent] {
					lowLink[parent] = lowLink[node]
				}
			}
		}
	}

	for _, node := range nodes {
		if _, visited := nodeIndex[node]; !visited {
			strongConnect(node)
		}
	}

	return components
}
