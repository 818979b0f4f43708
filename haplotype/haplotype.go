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

// Package haplotype implements H, the immutable succinct index of
// haplotype threads that spec.md §9 describes as "a haplotype-aware
// FM-index style interface": Find seeds a search on a single handle,
// Extend advances it by one, and an empty SearchState means the
// pattern searched so far occurs in no thread. This module stores
// threads directly rather than a true GBWT bitvector encoding, but
// keeps to the same query surface so the unfold package never knows
// the difference.
package haplotype

import (
	"sort"
	"sync"

	"github.com/exascience/vgunfold/handle"
)

// EndMarker is the reserved sentinel handle that terminates every
// thread in a true GBWT. Threads stored in an Index never contain it;
// loaders strip it on read, per spec.md §6's "an H end-marker sentinel
// must be filtered from edge enumeration".
const EndMarker handle.Handle = handle.Handle(^uint64(0))

// Index is H: a fixed collection of haplotype threads.
type Index struct {
	threads []handle.Walk

	once     sync.Once
	alphabet []uint64 // distinct node ids across all threads, ascending
}

// New returns an empty Index. AddThread populates it.
func New() *Index {
	return &Index{}
}

// AddThread appends a thread. walk must not contain EndMarker.
func (idx *Index) AddThread(walk handle.Walk) {
	idx.threads = append(idx.threads, walk)
}

// Sequences returns the number of threads in the index.
func (idx *Index) Sequences() int {
	return len(idx.threads)
}

// Extract returns the i-th thread in full.
func (idx *Index) Extract(i int) handle.Walk {
	return idx.threads[i]
}

type threadPos struct {
	thread, offset int
}

// SearchState is a cursor into a prefix search over H's threads: the
// set of (thread, offset) pairs whose thread, read up to offset,
// matches the pattern searched so far.
type SearchState struct {
	positions []threadPos
}

// Empty reports whether the search has no remaining matches.
func (s SearchState) Empty() bool {
	return len(s.positions) == 0
}

// Find seeds a search on a single handle: every occurrence of h in any
// thread becomes a candidate match.
func (idx *Index) Find(h handle.Handle) SearchState {
	var positions []threadPos
	for t, walk := range idx.threads {
		for i, hh := range walk {
			if hh == h {
				positions = append(positions, threadPos{thread: t, offset: i})
			}
		}
	}
	return SearchState{positions: positions}
}

// Extend advances s by one handle, keeping only the candidates whose
// thread continues with h at the next offset. Returns an empty state
// if no candidate survives.
func (idx *Index) Extend(s SearchState, h handle.Handle) SearchState {
	var next []threadPos
	for _, p := range s.positions {
		walk := idx.threads[p.thread]
		ni := p.offset + 1
		if ni < len(walk) && walk[ni] == h {
			next = append(next, threadPos{thread: p.thread, offset: ni})
		}
	}
	return SearchState{positions: next}
}

func (idx *Index) buildAlphabet() {
	idx.once.Do(func() {
		seen := make(map[uint64]struct{})
		for _, walk := range idx.threads {
			for _, h := range walk {
				seen[h.ID()] = struct{}{}
			}
		}
		ids := make([]uint64, 0, len(seen))
		for id := range seen {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		idx.alphabet = ids
	})
}

// Effective returns the number of distinct node ids recorded in H, the
// upper bound of ToNode's 1-based argument per spec.md §4.1 ("for
// every node component enumerated by H (1..effective)").
func (idx *Index) Effective() int {
	idx.buildAlphabet()
	return len(idx.alphabet)
}

// ToNode returns the forward-oriented handle for the comp-th node in
// H's alphabet, comp in [1, Effective()].
func (idx *Index) ToNode(comp int) handle.Handle {
	idx.buildAlphabet()
	return handle.Pack(idx.alphabet[comp-1], false)
}

// OutgoingEdges returns every distinct edge (h, next) observed
// immediately following h in any thread, skipping the end marker: a
// thread that ends at h simply contributes no edge, since EndMarker is
// never stored in a thread's handle sequence. Used by the complement
// builder (spec.md §4.1) in place of a true GBWT's per-node edge
// table.
func (idx *Index) OutgoingEdges(h handle.Handle) []handle.Edge {
	seen := make(map[handle.Handle]struct{})
	var out []handle.Edge
	for _, walk := range idx.threads {
		for i, hh := range walk {
			if hh != h || i+1 >= len(walk) {
				continue
			}
			next := walk[i+1]
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			out = append(out, handle.Edge{From: h, To: next})
		}
	}
	return out
}
