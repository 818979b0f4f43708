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
	"github.com/exascience/vgunfold/haplotype"
)

// haplotypeState pairs a haplotype-index search cursor with the walk
// it has extended so far (spec.md §4.3's "(search_state, walk)").
type haplotypeState struct {
	search haplotype.SearchState
	walk   handle.Walk
}

// enumerateHaplotypeWalks produces every border-to-border or maximal
// walk starting from from that h's threads support within component,
// via explicit-stack threaded DFS. Stack order carries no semantic
// meaning since every walk is canonicalized before insertion (spec.md
// §4.3, §5).
func enumerateHaplotypeWalks(component *graph.Graph, h *haplotype.Index, from uint64, border *borderSet) []handle.Walk {
	var walks []handle.Walk
	var stack []haplotypeState

	for _, reverse := range [2]bool{false, true} {
		start := handle.Pack(from, reverse)
		if s := h.Find(start); !s.Empty() {
			stack = append(stack, haplotypeState{search: s, walk: handle.Walk{start}})
		}
	}

	for len(stack) > 0 {
		n := len(stack) - 1
		state := stack[n]
		stack = stack[:n]

		head := state.walk[len(state.walk)-1]
		if len(state.walk) >= 2 && border.Has(head.ID()) {
			walks = append(walks, state.walk)
			continue
		}

		extended := false
		for _, e := range component.EdgesOf(head.ID()) {
			if e.From != head {
				continue
			}
			next := h.Extend(state.search, e.To)
			if next.Empty() {
				continue
			}
			extended = true
			walk := make(handle.Walk, len(state.walk)+1)
			copy(walk, state.walk)
			walk[len(state.walk)] = e.To
			stack = append(stack, haplotypeState{search: next, walk: walk})
		}
		if !extended {
			walks = append(walks, state.walk) // maximal walk: dead end within evidence
		}
	}
	return walks
}
