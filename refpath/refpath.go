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

// Package refpath implements X, the immutable index of named reference
// paths over the original graph that the complement builder and the
// reference-path evidence enumerator consult. A refpath.Index never
// mutates after it is built: callers load one from a text file (or
// build one with New/AddPath) before handing it to unfold.Unfold.
package refpath

import (
	"github.com/exascience/pargo/sync"

	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/utils"
)

// Path is one named reference path: an ordered sequence of oriented
// handles. Its handles' ids are resolved against the sequence store of
// the Index that holds it.
type Path struct {
	name    string
	handles []handle.Handle
}

// Len returns the number of positions (ranks) on the path.
func (p *Path) Len() int {
	return len(p.handles)
}

// HandleAt returns the oriented handle at rank i.
func (p *Path) HandleAt(i int) handle.Handle {
	return p.handles[i]
}

// IsReverseAt reports whether the handle at rank i runs against the
// node's stored orientation.
func (p *Path) IsReverseAt(i int) bool {
	return p.handles[i].IsReverse()
}

// Name returns the path's interned name.
func (p *Path) Name() string {
	return p.name
}

// Index is X: a fixed collection of named reference paths plus the
// sequence store their node ids resolve against.
type Index struct {
	paths     []*Path
	seqs      *SeqStore
	ranksByID map[uint64][]pathRank
	names     *sync.Map
}

type pathRank struct {
	path int
	rank int
}

// symbolKey adapts a utils.Symbol for use as a pargo/sync.Map key: a
// Symbol is a named pointer type, which Go does not allow to carry
// methods directly, so Hash is attached to this wrapper instead.
type symbolKey struct {
	sym utils.Symbol
}

func (k symbolKey) Hash() uint64 {
	return utils.SymbolHash(k.sym)
}

// New returns an empty Index backed by store. AddPath populates it;
// once built it is treated as immutable by the rest of this module.
func New(store *SeqStore) *Index {
	return &Index{seqs: store, ranksByID: make(map[uint64][]pathRank), names: sync.NewMap(0)}
}

// AddPath appends a named path to the index and indexes its
// occurrences for NodeRanksInPath. Reports false without modifying the
// index if a path under this name was already added: X's path
// namespace holds one entry per name, the same way a reference dict
// cannot name the same contig twice.
func (x *Index) AddPath(name string, handles []handle.Handle) bool {
	sym := utils.Intern(name)
	if _, found := x.names.LoadOrStore(symbolKey{sym}, len(x.paths)); found {
		return false
	}
	idx := len(x.paths)
	x.paths = append(x.paths, &Path{name: name, handles: handles})
	for rank, h := range handles {
		x.ranksByID[h.ID()] = append(x.ranksByID[h.ID()], pathRank{path: idx, rank: rank})
	}
	return true
}

// MaxPathRank returns the number of paths in the index minus one, the
// largest valid argument to Path.
func (x *Index) MaxPathRank() int {
	return len(x.paths) - 1
}

// Path returns the path at the given rank.
func (x *Index) Path(rank int) *Path {
	return x.paths[rank]
}

// NodeRanksInPath returns the positions at which nodeID occurs on the
// path at the given rank, in increasing order. Returns nil if the node
// never occurs on that path.
func (x *Index) NodeRanksInPath(nodeID uint64, rank int) []int {
	var out []int
	for _, pr := range x.ranksByID[nodeID] {
		if pr.path == rank {
			out = append(out, pr.rank)
		}
	}
	return out
}

// Sequence returns the stored sequence for nodeID.
func (x *Index) Sequence(nodeID uint64) []byte {
	return x.seqs.Get(nodeID)
}
