// Package depgraph orders views and materialized views so that every
// relation comes after the relations its definition depends on.
package depgraph

import (
	"slices"
	"sort"

	"github.com/gnames/gnviews/pkg/relation"
)

// Graph is a directed graph of relations keyed by relation.Name.Key.
// Edges point from a dependency to its dependents.
type Graph struct {
	names        map[string]relation.Name
	dependents   map[string][]string
	dependencies map[string][]string
}

// New creates a graph from relation names and dependency edges. Every
// node and every edge endpoint becomes a node, so relations without
// dependencies are still ordered.
func New(nodes []relation.Name, edges []relation.Edge) *Graph {
	res := Graph{
		names:        make(map[string]relation.Name),
		dependents:   make(map[string][]string),
		dependencies: make(map[string][]string),
	}
	for _, n := range nodes {
		res.add(n)
	}

	seen := make(map[[2]string]struct{})
	for _, e := range edges {
		dependency := res.add(e.Dependency)
		dependent := res.add(e.Dependent)
		if dependency == dependent {
			continue
		}
		pair := [2]string{dependency, dependent}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		res.dependents[dependency] = append(res.dependents[dependency], dependent)
		res.dependencies[dependent] = append(res.dependencies[dependent], dependency)
	}
	return &res
}

func (g *Graph) add(n relation.Name) string {
	key := n.Key()
	if _, ok := g.names[key]; !ok {
		g.names[key] = n
	}
	return key
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.names)
}

// Name returns the relation name stored for a key.
func (g *Graph) Name(key string) (relation.Name, bool) {
	n, ok := g.names[key]
	return n, ok
}

// Keys returns all node keys in lexicographic order.
func (g *Graph) Keys() []string {
	res := make([]string, 0, len(g.names))
	for k := range g.names {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// FullOrder returns every node with dependencies placed before their
// dependents. Nodes without an ordering constraint between them are sorted
// by key, so the same graph always produces the same order.
func (g *Graph) FullOrder() ([]string, error) {
	all := make(map[string]struct{}, len(g.names))
	for k := range g.names {
		all[k] = struct{}{}
	}
	return g.kahn(all)
}

// UpstreamOf returns every node that the target depends on, directly or
// transitively, in dependency order. The target itself is never included.
// An unknown target has nothing upstream.
func (g *Graph) UpstreamOf(target string) ([]string, error) {
	key, ok, err := g.Resolve(target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	sub := map[string]struct{}{key: {}}
	stack := []string{key}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dep := range g.dependencies[cur] {
			if _, seen := sub[dep]; seen {
				continue
			}
			sub[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}

	order, err := g.kahn(sub)
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(order)-1)
	for _, k := range order {
		if k != key {
			res = append(res, k)
		}
	}
	return res, nil
}

// Resolve finds the node for a name given with or without a schema.
// An exact key match wins. An unqualified name also matches a single node
// in another schema with the same local name; several such nodes make the
// name ambiguous.
func (g *Graph) Resolve(name string) (string, bool, error) {
	n, err := relation.ParseName(name)
	if err != nil {
		return "", false, err
	}

	key := n.Key()
	if _, ok := g.names[key]; ok {
		return key, true, nil
	}
	if n.Schema != "" {
		return "", false, nil
	}

	var matches []string
	for k, v := range g.names {
		if v.Local == n.Local {
			matches = append(matches, k)
		}
	}
	switch len(matches) {
	case 0:
		return "", false, nil
	case 1:
		return matches[0], true, nil
	default:
		sort.Strings(matches)
		return "", false, AmbiguousNameError(name, matches)
	}
}

// kahn sorts the given subset of nodes, keeping the ready set sorted.
func (g *Graph) kahn(nodes map[string]struct{}) ([]string, error) {
	inDegree := make(map[string]int, len(nodes))
	for k := range nodes {
		inDegree[k] = 0
	}
	for k := range nodes {
		for _, dep := range g.dependencies[k] {
			if _, ok := nodes[dep]; ok {
				inDegree[k]++
			}
		}
	}

	var ready []string
	for k, d := range inDegree {
		if d == 0 {
			ready = append(ready, k)
		}
	}
	sort.Strings(ready)

	res := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]
		res = append(res, cur)

		for _, next := range g.dependents[cur] {
			if _, ok := nodes[next]; !ok {
				continue
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				i, _ := slices.BinarySearch(ready, next)
				ready = slices.Insert(ready, i, next)
			}
		}
	}

	if len(res) != len(nodes) {
		var left []string
		for k, d := range inDegree {
			if d > 0 {
				left = append(left, k)
			}
		}
		sort.Strings(left)
		return nil, CyclicDependencyError(left)
	}
	return res, nil
}
