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

package unfold

import (
	"log"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/haplotype"
	"github.com/exascience/vgunfold/nodemap"
	"github.com/exascience/vgunfold/refpath"
)

// Unfold restores the evidence-supported walks pruned out of g:
// it discovers the complement components missing from g (§4.1),
// enumerates border-to-border walks from x and h within each one
// (§4.2, §4.3), duplicates their interior nodes into a private
// acyclic chain per walk (§4.4), materializes the result, and merges
// it back into g (§4.5). Unfold is single-threaded and mutates g and
// m; it must not run concurrently with another call on the same g, m.
func Unfold(g *graph.Graph, x *refpath.Index, h *haplotype.Index, m *nodemap.Mapping, progress bool) {
	components := ComplementComponents(g, x, h, progress)

	unfolded := graph.New()
	walkCount := 0
	for _, component := range components {
		walkCount += unfoldComponent(component, g, x, h, m, unfolded)
	}
	if progress {
		log.Printf("unfold: unfolded graph: %d nodes, %d edges on %d walks",
			unfolded.NodeCount(), unfolded.EdgeCount(), walkCount)
	}

	g.Extend(unfolded)
}

// unfoldComponent runs the per-component enumerate/duplicate pass of
// spec.md §4.2–§4.4 and assembles the result into unfolded, returning
// the number of walks duplicated (one crossing edge per walk).
func unfoldComponent(component, g *graph.Graph, x *refpath.Index, h *haplotype.Index, m *nodemap.Mapping, unfolded *graph.Graph) int {
	border := newBorderSet(component, g)
	duplicator := newTrieDuplicator(m)

	for _, from := range border.ids() {
		for _, w := range enumerateReferenceWalks(component, x, from, border) {
			duplicator.insertWalk(w)
		}
		for _, w := range enumerateHaplotypeWalks(component, h, from, border) {
			duplicator.insertWalk(w)
		}
	}

	assembleComponent(unfolded, duplicator, x, m)
	return len(duplicator.crossing)
}
