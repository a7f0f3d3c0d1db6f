// Package resolver exposes filtered dependency relations between files for
// reporting. It does not influence which files are verified.
package resolver

import (
	"sort"

	"github.com/AndreyAkinshin/verifyhelper/internal/graph"
	"github.com/AndreyAkinshin/verifyhelper/internal/model"
)

// Resolver holds the depends_on, required_by and verified_with relations of
// an input with excluded files removed from both ends of every relation.
type Resolver struct {
	excluded     graph.Set
	dependsOn    map[string]graph.Set
	requiredBy   map[string]graph.Set
	verifiedWith map[string]graph.Set
}

// New builds the relations for in, ignoring every path in excluded.
func New(in *model.Input, excluded []string) *Resolver {
	r := &Resolver{
		excluded:     graph.NewSet(excluded...),
		dependsOn:    make(map[string]graph.Set),
		requiredBy:   make(map[string]graph.Set),
		verifiedWith: make(map[string]graph.Set),
	}

	for _, p := range in.Paths() {
		if r.excluded.Contains(p) {
			continue
		}
		r.dependsOn[p] = graph.NewSet()
		r.requiredBy[p] = graph.NewSet()
		r.verifiedWith[p] = graph.NewSet()
	}

	for _, p := range in.Paths() {
		if r.excluded.Contains(p) {
			continue
		}
		f, _ := in.File(p)
		for _, dep := range f.Dependencies {
			if dep == p || r.excluded.Contains(dep) {
				continue
			}
			if _, known := r.dependsOn[dep]; !known {
				continue
			}
			r.dependsOn[p].Add(dep)
			r.requiredBy[dep].Add(p)
		}
		if !f.IsTest() {
			continue
		}
		for _, dep := range in.Closure(p) {
			if dep == p || r.excluded.Contains(dep) {
				continue
			}
			r.verifiedWith[dep].Add(p)
		}
	}

	return r
}

// DependsOn returns the known files p declares as dependencies, excluding p.
func (r *Resolver) DependsOn(p string) []string {
	return sorted(r.dependsOn[p])
}

// RequiredBy returns the files that declare p as a dependency.
func (r *Resolver) RequiredBy(p string) []string {
	return sorted(r.requiredBy[p])
}

// VerifiedWith returns the test files whose dependency closure contains p.
func (r *Resolver) VerifiedWith(p string) []string {
	return sorted(r.verifiedWith[p])
}

// IsExcluded reports whether p was excluded.
func (r *Resolver) IsExcluded(p string) bool {
	return r.excluded.Contains(p)
}

// Paths returns every non-excluded file in sorted order.
func (r *Resolver) Paths() []string {
	out := make([]string, 0, len(r.dependsOn))
	for p := range r.dependsOn {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func sorted(s graph.Set) []string {
	if s == nil {
		return nil
	}
	return s.Sorted()
}
