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

// Package unfold implements the phase-unfolding core: complement
// discovery, border-to-border walk enumeration from reference paths
// and haplotype threads, trie duplication, assembly, and parallel
// verification. See spec.md and SPEC_FULL.md for the algorithm this
// package is grounded on.
package unfold

import (
	"log"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/haplotype"
	"github.com/exascience/vgunfold/refpath"
)

// ComplementComponents scans x and h for edges missing from g, adds
// them (with both endpoints resolved against x) to a scratch graph,
// and splits that scratch graph into weakly connected components
// (spec.md §4.1).
func ComplementComponents(g *graph.Graph, x *refpath.Index, h *haplotype.Index, progress bool) []*graph.Graph {
	scratch := graph.New()
	addReferencePathComplement(scratch, g, x)
	addHaplotypeComplement(scratch, g, h, x)

	components := scratch.Components()
	if progress {
		log.Printf("unfold: complement graph: %d nodes, %d edges in %d components",
			scratch.NodeCount(), scratch.EdgeCount(), len(components))
	}
	return components
}

// addReferencePathComplement adds every edge along every path in x
// that is absent from g to target.
func addReferencePathComplement(target, g *graph.Graph, x *refpath.Index) {
	for rank := 0; rank <= x.MaxPathRank(); rank++ {
		p := x.Path(rank)
		if p.Len() == 0 {
			continue
		}
		prev := p.HandleAt(0)
		for i := 1; i < p.Len(); i++ {
			curr := p.HandleAt(i)
			addMissingEdge(target, g, x, handle.MakeEdge(prev, curr))
			prev = curr
		}
	}
}

// addHaplotypeComplement adds every edge observed in h's threads,
// from every node h records in either orientation, that is absent
// from g to target.
func addHaplotypeComplement(target, g *graph.Graph, h *haplotype.Index, x *refpath.Index) {
	for comp := 1; comp <= h.Effective(); comp++ {
		base := h.ToNode(comp)
		for _, oriented := range [2]handle.Handle{base, base.RC()} {
			for _, e := range h.OutgoingEdges(oriented) {
				addMissingEdge(target, g, x, e)
			}
		}
	}
}

// addMissingEdge adds e to target, with both endpoint nodes resolved
// against x, unless e is already present in g. An endpoint that x
// cannot resolve is inconsistent evidence (spec.md §7): it is logged
// and skipped rather than allowed to corrupt target.
func addMissingEdge(target, g *graph.Graph, x *refpath.Index, e handle.Edge) {
	if g.HasEdge(e) {
		return
	}
	fromSeq := x.Sequence(e.From.ID())
	toSeq := x.Sequence(e.To.ID())
	if fromSeq == nil || toSeq == nil {
		log.Printf("unfold: skipping edge %+v: endpoint not resolvable via reference-path index", e)
		return
	}
	target.AddNode(graph.NodeDescriptor{ID: e.From.ID(), Sequence: fromSeq})
	target.AddNode(graph.NodeDescriptor{ID: e.To.ID(), Sequence: toSeq})
	target.AddEdge(e)
}
