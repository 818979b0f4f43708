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
	"sync/atomic"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/haplotype"
	"github.com/exascience/vgunfold/nodemap"
	"github.com/exascience/vgunfold/refpath"
)

// Verify checks that every reference-path walk in x and every
// haplotype thread in h is realized in unfolded, modulo duplication
// (spec.md §4.7, §8 invariant 1). It returns the number of walks for
// which no realization could be found; a clean unfolding returns 0.
//
// unfolded, x, h, and m must not be mutated while Verify runs. Verify
// first takes a snapshot of unfolded, builds a reverse mapping from m
// and collects the walks of x and h; the worker pool then reads only
// those, one walk per worker, dynamically scheduled because walk
// length varies widely (spec.md §5).
func Verify(unfolded *graph.Graph, x *refpath.Index, h *haplotype.Index, m *nodemap.Mapping) int {
	snapshot := unfolded.Snapshot()
	reverseMapping := buildReverseMapping(snapshot, m)

	var walks []handle.Walk
	for rank := 0; rank <= x.MaxPathRank(); rank++ {
		p := x.Path(rank)
		if p.Len() == 0 {
			continue
		}
		w := make(handle.Walk, p.Len())
		for i := 0; i < p.Len(); i++ {
			w[i] = p.HandleAt(i)
		}
		walks = append(walks, w)
	}
	for i := 0; i < h.Sequences(); i++ {
		walks = append(walks, h.Extract(i))
	}

	var failures int64
	parallel.Range(0, len(walks), 1, func(low, high int) {
		for i := low; i < high; i++ {
			if !verifyWalk(walks[i], snapshot, reverseMapping) {
				atomic.AddInt64(&failures, 1)
			}
		}
	})
	return int(failures)
}

// buildReverseMapping inverts m into original_id -> candidate ids:
// every duplicate under the key of its original, plus the original
// id itself whenever it is still present in the unfolded graph
// (spec.md §4.7). Duplicate ids are always >= m.FirstNode and
// originals are always below it, so the two halves of each list never
// overlap and no further deduplication is needed.
func buildReverseMapping(snapshot *graph.ReadSnapshot, m *nodemap.Mapping) map[uint64][]uint64 {
	reverse := make(map[uint64][]uint64, len(m.Originals))
	for offset, original := range m.Originals {
		duplicate := m.FirstNode + uint64(offset)
		reverse[original] = append(reverse[original], duplicate)
	}
	for original, duplicates := range reverse {
		if snapshot.HasNode(original) {
			reverse[original] = append(duplicates, original)
		}
	}
	return reverse
}

// pathBranch is one pending choice point in verifyWalk's DFS: try
// candidate index curr at offset, having already committed to trying
// candidate index next for offset+1.
type pathBranch struct {
	offset, curr, next int
}

// verifyWalk checks whether w has a node-disjoint-except-endpoints
// realization in snapshot, choosing among reverseMapping's candidates
// at each offset. Whenever the next offset has at most one candidate,
// every pending branch is discarded: the trie's sharing structure
// guarantees any successful completion must route through that unique
// candidate regardless of earlier choices, so backtracking past this
// point can never help (spec.md §4.7, §8 boundary case (f)).
func verifyWalk(w handle.Walk, snapshot *graph.ReadSnapshot, reverseMapping map[uint64][]uint64) bool {
	if len(w) < 2 {
		return true
	}

	branches := []pathBranch{{0, 0, 0}}
	for len(branches) > 0 {
		branch := branches[len(branches)-1]
		branches = branches[:len(branches)-1]

		currDuplicates := 0
		nodeID := w[branch.offset].ID()
		if duplicates, ok := reverseMapping[nodeID]; ok {
			currDuplicates = len(duplicates)
			nodeID = duplicates[branch.curr]
		}
		curr := handle.Pack(nodeID, w[branch.offset].IsReverse())

		for branch.offset+1 < len(w) {
			nextDuplicates := 0
			nextID := w[branch.offset+1].ID()
			if duplicates, ok := reverseMapping[nextID]; ok {
				nextDuplicates = len(duplicates)
				nextID = duplicates[branch.next]
				if branch.next+1 < len(duplicates) {
					branches = append(branches, pathBranch{branch.offset, branch.curr, branch.next + 1})
				} else if branch.curr+1 < currDuplicates {
					branches = append(branches, pathBranch{branch.offset, branch.curr + 1, 0})
				}
			} else if branch.curr+1 < currDuplicates {
				branches = append(branches, pathBranch{branch.offset, branch.curr + 1, 0})
			}

			next := handle.Pack(nextID, w[branch.offset+1].IsReverse())
			if !snapshot.HasEdge(handle.MakeEdge(curr, next)) {
				break
			}
			if nextDuplicates <= 1 {
				branches = branches[:0] // commit: no other candidate can realize the remainder
			}
			curr = next
			currDuplicates = nextDuplicates
			branch.offset++
			branch.curr = branch.next
			branch.next = 0
		}
		if branch.offset+1 >= len(w) {
			return true
		}
	}
	return false
}
