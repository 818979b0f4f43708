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
	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/nodemap"
)

// prefixKey is a prefix-trie P entry key: (parent_handle,
// original_child_handle).
type prefixKey struct {
	from handle.Handle
	orig handle.Handle
}

// suffixKey is a suffix-trie S entry key: (original_child_handle,
// parent_handle).
type suffixKey struct {
	orig handle.Handle
	to   handle.Handle
}

// trieDuplicator is the per-component prefix trie P, reverse-suffix
// trie S, and crossing-edge set C of spec.md §3/§4.4. It is scratch
// state, built fresh for one complement component and discarded after
// assembleComponent materializes it.
type trieDuplicator struct {
	mapping  *nodemap.Mapping
	prefix   map[prefixKey]handle.Handle
	suffix   map[suffixKey]handle.Handle
	crossing map[handle.Edge]struct{}
}

func newTrieDuplicator(m *nodemap.Mapping) *trieDuplicator {
	return &trieDuplicator{
		mapping:  m,
		prefix:   make(map[prefixKey]handle.Handle),
		suffix:   make(map[suffixKey]handle.Handle),
		crossing: make(map[handle.Edge]struct{}),
	}
}

// insertWalk duplicates the interior of w, sharing trie state with
// any previously inserted walk that shares a prefix or suffix, and
// records one crossing edge bridging the duplicated prefix to the
// duplicated suffix (spec.md §4.4). Walks shorter than 2 handles carry
// no structural information and are silently discarded.
func (t *trieDuplicator) insertWalk(w handle.Walk) {
	if len(w) < 2 {
		return
	}
	// Canonicalize first so that w and w.RC() always produce identical
	// trie mutations (spec.md §3 "Orientation symmetry", §9
	// "Canonicalization hash").
	w = w.Canonical()
	mid := w.Midpoint()

	from := w[0]
	for i := 1; i < mid; i++ {
		key := prefixKey{from: from, orig: w[i]}
		dup, ok := t.prefix[key]
		if !ok {
			d := t.mapping.Insert(w[i].ID())
			dup = handle.Pack(d, w[i].IsReverse())
			t.prefix[key] = dup
		}
		from = dup
	}

	to := w[len(w)-1]
	for i := len(w) - 2; i >= mid; i-- {
		key := suffixKey{orig: w[i], to: to}
		dup, ok := t.suffix[key]
		if !ok {
			d := t.mapping.Insert(w[i].ID())
			dup = handle.Pack(d, w[i].IsReverse())
			t.suffix[key] = dup
		}
		to = dup
	}

	t.crossing[handle.MakeEdge(from, to)] = struct{}{}
}
