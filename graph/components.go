// vgunfold: a phase-unfolding toolchain for variation graphs.
// Copyright (c) 2024 vgunfold contributors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://www.gnu.org/licenses/>.

package graph

import "github.com/exascience/vgunfold/handle"

// Components splits g into its weakly connected components: two nodes
// are in the same component if they are joined by a path of edges
// ignoring orientation. Used by the complement builder (spec.md §4.1)
// to bound the size of each unfolding round.
//
// The clustering itself is union-find over a dense local numbering of
// g's nodes, the same approach the optical-duplicate grouping in this
// codebase's ancestry uses for clustering reads by genomic distance.
func (g *Graph) Components() []*Graph {
	g.mu.RLock()
	ids := make([]uint64, 0, len(g.nodes))
	nodeCopy := make(map[uint64]*Node, len(g.nodes))
	for id, n := range g.nodes {
		ids = append(ids, id)
		nodeCopy[id] = n
	}
	adjacencyCopy := make(map[uint64][]handle.Edge, len(g.adjacency))
	for id, edges := range g.adjacency {
		cp := make([]handle.Edge, len(edges))
		copy(cp, edges)
		adjacencyCopy[id] = cp
	}
	g.mu.RUnlock()

	index := make(map[uint64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	set := newDisjointSet(len(ids))
	for id, edges := range adjacencyCopy {
		from := index[id]
		for _, e := range edges {
			set.union(from, index[e.To.ID()])
		}
	}

	byRoot := make(map[int]*Graph)
	for _, id := range ids {
		root := set.find(index[id])
		comp, ok := byRoot[root]
		if !ok {
			comp = New()
			byRoot[root] = comp
		}
		n := nodeCopy[id]
		comp.nodes[id] = &Node{ID: n.ID, Sequence: n.Sequence}
		comp.adjacency[id] = nil
	}
	for id, edges := range adjacencyCopy {
		comp := byRoot[set.find(index[id])]
		for _, e := range edges {
			comp.addEdgeLocked(e)
		}
	}

	components := make([]*Graph, 0, len(byRoot))
	for _, comp := range byRoot {
		components = append(components, comp)
	}
	return components
}
