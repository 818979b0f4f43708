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
	"sort"

	"github.com/willf/bitset"

	"github.com/exascience/vgunfold/graph"
)

// borderSet is B: the ids shared between one complement component and
// the original graph, the only legitimate endpoints of a
// border-to-border walk (spec.md §3). Backed by a bitset over a dense
// local numbering of the component's nodes, since component node ids
// are not assumed dense.
type borderSet struct {
	index map[uint64]int
	bits  *bitset.BitSet
}

// newBorderSet marks every node of component that is also present in
// g as a border node.
func newBorderSet(component, g *graph.Graph) *borderSet {
	count := component.NodeCount()
	b := &borderSet{
		index: make(map[uint64]int, count),
		bits:  bitset.New(uint(count)),
	}
	i := uint(0)
	component.ForEachNode(func(n *graph.Node) {
		b.index[n.ID] = int(i)
		if g.HasNode(n.ID) {
			b.bits.Set(i)
		}
		i++
	})
	return b
}

// Has reports whether id is a border node of the component this set
// was built from.
func (b *borderSet) Has(id uint64) bool {
	i, ok := b.index[id]
	if !ok {
		return false
	}
	return b.bits.Test(uint(i))
}

// ids returns the border ids in ascending order. Iteration order over
// border nodes carries no semantic meaning for the unfolding result
// (spec.md §5), but a deterministic order makes the rest of the
// pipeline reproducible to read and test.
func (b *borderSet) ids() []uint64 {
	out := make([]uint64, 0, b.bits.Count())
	for id, i := range b.index {
		if b.bits.Test(uint(i)) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
