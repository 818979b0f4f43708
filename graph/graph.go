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

// Package graph implements the mutable variation graph store (G in
// the unfolding algorithm's terms): node and edge membership queries,
// insertion, per-node edge enumeration, weakly-connected-component
// decomposition, and graph merge. It is the only collaborator package
// that mutates shared state outside of a single unfolding pass, so its
// methods take a write or read lock the way the teacher's in-memory
// graph implementations do.
package graph

import (
	"sync"

	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/utils/nibbles"
)

// Node is a single node of the variation graph: an id and its DNA
// sequence, stored 4 bits per base.
type Node struct {
	ID       uint64
	Sequence nibbles.Nibbles
}

// NodeDescriptor is the external representation of a node used when
// adding it to a Graph: an id plus its sequence as plain bytes. X and
// the CLI loaders produce these; the graph nibble-packs them on
// insertion.
type NodeDescriptor struct {
	ID       uint64
	Sequence []byte
}

// Graph is a mutable, thread-safe variation graph.
//
// Edge membership is bidirected: Graph does not distinguish (from, to)
// from its reverse complement (to.RC(), from.RC()) when answering
// HasEdge, matching spec.md §3's "canonical flipping" convention.
type Graph struct {
	mu        sync.RWMutex
	nodes     map[uint64]*Node
	edgeSet   map[handle.Edge]struct{}  // canonical edges, membership only
	adjacency map[uint64][]handle.Edge  // id -> edges e with e.From.ID() == id
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[uint64]*Node),
		edgeSet:   make(map[handle.Edge]struct{}),
		adjacency: make(map[uint64][]handle.Edge),
	}
}

// HasNode reports whether id is present in the graph.
func (g *Graph) HasNode(id uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether e (in either bidirected encoding) is present.
func (g *Graph) HasEdge(e handle.Edge) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edgeSet[e.Canonical()]
	return ok
}

// Node returns the node with the given id, or nil if absent.
func (g *Graph) Node(id uint64) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[id]
}

// AddNode inserts desc into the graph if its id is not already present.
func (g *Graph) AddNode(desc NodeDescriptor) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(desc)
}

func (g *Graph) addNodeLocked(desc NodeDescriptor) {
	if _, ok := g.nodes[desc.ID]; ok {
		return
	}
	g.nodes[desc.ID] = &Node{ID: desc.ID, Sequence: nibbles.FromBytes(desc.Sequence)}
	if _, ok := g.adjacency[desc.ID]; !ok {
		g.adjacency[desc.ID] = nil
	}
}

// AddEdge inserts e into the graph. Both endpoints must already have
// been added with AddNode; AddEdge does not synthesize nodes.
func (g *Graph) AddEdge(e handle.Edge) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addEdgeLocked(e)
}

func (g *Graph) addEdgeLocked(e handle.Edge) {
	canon := e.Canonical()
	if _, ok := g.edgeSet[canon]; ok {
		return
	}
	g.edgeSet[canon] = struct{}{}
	g.adjacency[e.From.ID()] = append(g.adjacency[e.From.ID()], e)
	rc := e.RC()
	if rc != e {
		g.adjacency[rc.From.ID()] = append(g.adjacency[rc.From.ID()], rc)
	}
}

// EdgesOf returns every edge e with e.From.ID() == id, in either
// orientation of id. Extending a walk from an oriented handle h is
// then a matter of filtering the result for e.From == h.
func (g *Graph) EdgesOf(id uint64) []handle.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	edges := g.adjacency[id]
	out := make([]handle.Edge, len(edges))
	copy(out, edges)
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of distinct canonical edges in the graph.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edgeSet)
}

// ForEachNode calls f once for every node in the graph. f must not
// mutate the graph.
func (g *Graph) ForEachNode(f func(*Node)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, n := range g.nodes {
		f(n)
	}
}

// Extend merges other into g. Nodes and edges already present in g
// (border nodes shared between the unfolded fragment and the original
// graph) are unified by id, matching spec.md §4.5.
func (g *Graph) Extend(other *Graph) {
	other.mu.RLock()
	defer other.mu.RUnlock()
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, n := range other.nodes {
		if _, ok := g.nodes[id]; !ok {
			g.nodes[id] = &Node{ID: n.ID, Sequence: n.Sequence}
			if _, ok := g.adjacency[id]; !ok {
				g.adjacency[id] = nil
			}
		}
	}
	for e := range other.edgeSet {
		g.addEdgeLocked(e)
	}
}
