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

// Package nodemap implements M, the persistent duplicate→original
// node identifier map. It is an append-only, flat-array table: every
// duplicate id d in [FirstNode, NextNode) has exactly one original id
// Originals[d-FirstNode]; any id below FirstNode maps to itself.
package nodemap

import "log"

// Mapping is the duplicate→original identifier table.
type Mapping struct {
	FirstNode uint64
	NextNode  uint64
	Originals []uint64
}

// New returns a Mapping that will allocate duplicate ids starting at
// firstNode. firstNode is ordinarily max_node_id()+1 of the graph
// being unfolded, so that duplicates never collide with real ids.
func New(firstNode uint64) *Mapping {
	return &Mapping{FirstNode: firstNode, NextNode: firstNode}
}

// Insert allocates a fresh duplicate id for original and returns it.
//
// Insert panics if NextNode would overflow uint64: this is a
// programmer error (an unfolding run large enough to exhaust the id
// space), not a data-dependent condition, per spec.md §7.
func (m *Mapping) Insert(original uint64) uint64 {
	if m.NextNode == ^uint64(0) {
		log.Panic("nodemap: next duplicate id would overflow")
	}
	id := m.NextNode
	m.Originals = append(m.Originals, original)
	m.NextNode++
	return id
}

// Lookup returns the original id corresponding to id: id itself if id
// is below FirstNode (identity on the originals), or the recorded
// original otherwise.
func (m *Mapping) Lookup(id uint64) uint64 {
	if id < m.FirstNode {
		return id
	}
	offset := id - m.FirstNode
	if offset >= uint64(len(m.Originals)) {
		log.Panicf("nodemap: id %d was never allocated by this mapping", id)
	}
	return m.Originals[offset]
}

// Size returns the number of duplicates allocated so far.
func (m *Mapping) Size() int {
	return len(m.Originals)
}
