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
	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/refpath"
)

// enumerateReferenceWalks produces every border-to-border walk
// starting from a node occurrence of from on one of x's reference
// paths within component (spec.md §4.2). Every occurrence of from on
// every path contributes independently a forward and a backward walk;
// both are emitted unconditionally, per the Open Question in spec.md
// §9 resolved in DESIGN.md by following original_source's behavior.
func enumerateReferenceWalks(component *graph.Graph, x *refpath.Index, from uint64, border *borderSet) []handle.Walk {
	var walks []handle.Walk
	for rank := 0; rank <= x.MaxPathRank(); rank++ {
		p := x.Path(rank)
		for _, occurrence := range x.NodeRanksInPath(from, rank) {
			if w := extendForward(component, p, occurrence, border); len(w) >= 2 {
				walks = append(walks, w)
			}
			if w := extendBackward(component, p, occurrence, border); len(w) >= 2 {
				walks = append(walks, w)
			}
		}
	}
	return walks
}

// extendForward walks p from occurrence toward its end, in p's own
// orientation, stopping at the first edge absent from component or
// the first border node reached.
func extendForward(component *graph.Graph, p *refpath.Path, occurrence int, border *borderSet) handle.Walk {
	prev := p.HandleAt(occurrence)
	walk := handle.Walk{prev}
	for i := occurrence + 1; i < p.Len(); i++ {
		curr := p.HandleAt(i)
		if !component.HasEdge(handle.MakeEdge(prev, curr)) {
			break
		}
		walk = append(walk, curr)
		if border.Has(curr.ID()) {
			break
		}
		prev = curr
	}
	return walk
}

// extendBackward walks p from occurrence toward position 0, with
// every handle's orientation flipped, stopping at the first edge
// absent from component or the first border node reached.
func extendBackward(component *graph.Graph, p *refpath.Path, occurrence int, border *borderSet) handle.Walk {
	prev := p.HandleAt(occurrence).RC()
	walk := handle.Walk{prev}
	for i := occurrence; i > 0; i-- {
		curr := p.HandleAt(i - 1).RC()
		if !component.HasEdge(handle.MakeEdge(prev, curr)) {
			break
		}
		walk = append(walk, curr)
		if border.Has(curr.ID()) {
			break
		}
		prev = curr
	}
	return walk
}
