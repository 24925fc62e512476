// Package dag provides a small directed acyclic graph used to order
// feature-derivation stages by the columns they read and produce.
// It supports cycle detection and deterministic topological sorting.
package dag

import (
	"fmt"
	"sort"
)

// Graph is a directed acyclic graph keyed by node ID.
type Graph struct {
	ids      []string
	edges    map[string][]string // node -> dependents
	parents  map[string][]string // node -> dependencies
	existing map[string]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		edges:    make(map[string][]string),
		parents:  make(map[string][]string),
		existing: make(map[string]struct{}),
	}
}

// AddNode adds a node. Adding an existing ID is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.existing[id]; ok {
		return
	}
	g.existing[id] = struct{}{}
	g.ids = append(g.ids, id)
}

// AddEdge records that to depends on from. Both nodes must exist and
// self-loops are rejected.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.existing[from]; !ok {
		return fmt.Errorf("node %q does not exist", from)
	}
	if _, ok := g.existing[to]; !ok {
		return fmt.Errorf("node %q does not exist", to)
	}
	if from == to {
		return fmt.Errorf("self-loop on %q", from)
	}
	if !contains(g.edges[from], to) {
		g.edges[from] = append(g.edges[from], to)
	}
	if !contains(g.parents[to], from) {
		g.parents[to] = append(g.parents[to], from)
	}
	return nil
}

// Parents returns the dependencies of a node.
func (g *Graph) Parents(id string) []string { return g.parents[id] }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.ids) }

// HasCycle reports whether the graph contains a cycle, along with one
// offending path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	cameFrom := make(map[string]string)

	var cycle []string
	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		for _, next := range g.edges[id] {
			if !visited[next] {
				cameFrom[next] = id
				if dfs(next) {
					return true
				}
			} else if onStack[next] {
				cycle = []string{next}
				for cur := id; cur != next; cur = cameFrom[cur] {
					cycle = append([]string{cur}, cycle...)
				}
				cycle = append([]string{next}, cycle...)
				return true
			}
		}
		onStack[id] = false
		return false
	}

	for _, id := range g.ids {
		if !visited[id] && dfs(id) {
			return true, cycle
		}
	}
	return false, nil
}

// TopologicalSort returns node IDs with every dependency before its
// dependents. Output is deterministic for a given graph. Returns an
// error when the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, fmt.Errorf("cycle detected: %v", path)
	}

	visited := make(map[string]bool)
	var order []string
	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		deps := append([]string(nil), g.parents[id]...)
		sort.Strings(deps)
		for _, dep := range deps {
			visit(dep)
		}
		order = append(order, id)
	}

	ids := append([]string(nil), g.ids...)
	sort.Strings(ids)
	for _, id := range ids {
		visit(id)
	}
	return order, nil
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
