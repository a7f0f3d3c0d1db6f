// Package graph computes strongly connected components and transitive
// dependency closures over a file dependency graph.
package graph

import "sort"

// Graph represents a directed dependency graph.
// The keys are node names, values are lists of dependencies (edges point to dependencies).
// Dependencies that are not keys of the graph are ignored.
type Graph map[string][]string

// Nodes returns all node names in sorted order.
func (g Graph) Nodes() []string {
	nodes := make([]string, 0, len(g))
	for name := range g {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// Set is an unordered set of node names.
type Set map[string]struct{}

// NewSet creates a set from the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// Contains reports whether name is a member of the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Union adds every member of other to s.
func (s Set) Union(other Set) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Sorted returns the members in sorted order.
// Always returns a non-nil slice.
func (s Set) Sorted() []string {
	result := make([]string, 0, len(s))
	for name := range s {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
