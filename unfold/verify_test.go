package unfold

import (
	"testing"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/haplotype"
	"github.com/exascience/vgunfold/nodemap"
)

func newVerifyGraph(nodes []uint64, edges [][2]uint64) *graph.Graph {
	g := graph.New()
	for _, id := range nodes {
		g.AddNode(graph.NodeDescriptor{ID: id, Sequence: []byte("ACGT")})
	}
	for _, e := range edges {
		g.AddEdge(handle.MakeEdge(handle.Pack(e[0], false), handle.Pack(e[1], false)))
	}
	return g
}

func fwdWalk(ids ...uint64) handle.Walk {
	w := make(handle.Walk, len(ids))
	for i, id := range ids {
		w[i] = handle.Pack(id, false)
	}
	return w
}

func TestVerifyWalkShortWalkAlwaysSucceeds(t *testing.T) {
	g := newVerifyGraph([]uint64{1}, nil)
	if !verifyWalk(fwdWalk(1), g.Snapshot(), nil) {
		t.Fatal("a length-1 walk carries no structural evidence and must always verify")
	}
}

func TestVerifyWalkDirectNoDuplicates(t *testing.T) {
	g := newVerifyGraph([]uint64{1, 2, 3}, [][2]uint64{{1, 2}, {2, 3}})
	if !verifyWalk(fwdWalk(1, 2, 3), g.Snapshot(), map[uint64][]uint64{}) {
		t.Fatal("walk realized directly by original ids must verify")
	}
}

func TestVerifyWalkThroughSingleDuplicate(t *testing.T) {
	g := newVerifyGraph([]uint64{1, 100, 3}, [][2]uint64{{1, 100}, {100, 3}})
	reverse := map[uint64][]uint64{2: {100}}
	if !verifyWalk(fwdWalk(1, 2, 3), g.Snapshot(), reverse) {
		t.Fatal("walk realized through its unique duplicate must verify")
	}
}

// Scenario (c) of spec.md §8: a haplotype thread that cycles through a
// border node, e.g. 1+ 2+ 2+ 3+, duplicates the revisited original into
// two distinct ids (100 and 101, one per occurrence). Verify must try
// both assignments and settle on the one that is actually wired.
func TestVerifyWalkCycleThroughBorderNodeWithTwoDuplicates(t *testing.T) {
	g := newVerifyGraph([]uint64{1, 100, 101, 3}, [][2]uint64{{1, 100}, {100, 101}, {101, 3}})
	reverse := map[uint64][]uint64{2: {100, 101}}
	if !verifyWalk(fwdWalk(1, 2, 2, 3), g.Snapshot(), reverse) {
		t.Fatal("cyclic thread through a duplicated border node must verify via backtracking")
	}
}

// Boundary case (f) of spec.md §8: every offset along a longer walk
// offers two duplicate candidates, but the commit-on-unique-candidate
// pruning of verifyWalk (spec.md §4.7) still resolves it without
// exploring every combination. This is a correctness check, not a
// timing one: the assertion is that a long alternating-candidate walk
// still terminates and succeeds.
func TestVerifyWalkLongAlternatingCandidatesStillResolves(t *testing.T) {
	// 1 -> 100 -> 200 -> 300 -> 400 -> 9, where each internal hop has a
	// decoy duplicate (101, 201, 301, 401) that dead-ends.
	g := newVerifyGraph(
		[]uint64{1, 100, 101, 200, 201, 300, 301, 400, 401, 9},
		[][2]uint64{
			{1, 100}, {1, 101},
			{100, 200}, {101, 201},
			{200, 300}, {201, 301},
			{300, 400}, {301, 401},
			{400, 9}, // 401 is a dead end: no edge to 9
		},
	)
	reverse := map[uint64][]uint64{
		2: {100, 101},
		3: {200, 201},
		4: {300, 301},
		5: {400, 401},
	}
	if !verifyWalk(fwdWalk(1, 2, 3, 4, 5, 9), g.Snapshot(), reverse) {
		t.Fatal("walk with a valid realization through decoy duplicates must still verify")
	}
}

func TestVerifyWalkFailsWhenEvidenceIsMissing(t *testing.T) {
	g := newVerifyGraph([]uint64{1, 100, 3}, [][2]uint64{{1, 100}})
	reverse := map[uint64][]uint64{2: {100}}
	if verifyWalk(fwdWalk(1, 2, 3), g.Snapshot(), reverse) {
		t.Fatal("walk missing its final edge must fail verification")
	}
}

func TestBuildReverseMappingOmitsNodesWithoutDuplicates(t *testing.T) {
	g := newVerifyGraph([]uint64{1, 2, 3}, [][2]uint64{{1, 2}, {2, 3}})
	m := &nodemap.Mapping{FirstNode: 100, NextNode: 100}
	reverse := buildReverseMapping(g.Snapshot(), m)
	if _, ok := reverse[2]; ok {
		t.Fatal("a node with no recorded duplicates should not appear in the reverse mapping")
	}
}

func TestBuildReverseMappingExcludesPrunedOriginal(t *testing.T) {
	g := newVerifyGraph([]uint64{1, 100, 3}, [][2]uint64{{1, 100}, {100, 3}})
	m := &nodemap.Mapping{FirstNode: 100, NextNode: 101, Originals: []uint64{2}}
	reverse := buildReverseMapping(g.Snapshot(), m)
	candidates := reverse[2]
	if len(candidates) != 1 || candidates[0] != 100 {
		t.Fatalf("candidates for pruned original 2 = %v, want [100] (original itself absent from unfolded graph)", candidates)
	}
}

func TestBuildReverseMappingIncludesBothWhenOriginalSurvives(t *testing.T) {
	g := newVerifyGraph([]uint64{1, 2, 100, 3}, [][2]uint64{{1, 2}, {1, 100}, {2, 3}, {100, 3}})
	m := &nodemap.Mapping{FirstNode: 100, NextNode: 101, Originals: []uint64{2}}
	reverse := buildReverseMapping(g.Snapshot(), m)
	candidates := reverse[2]
	if len(candidates) != 2 {
		t.Fatalf("candidates for surviving original 2 = %v, want 2 entries (duplicate and original)", candidates)
	}
}

// Invariant 1 of spec.md §8: every walk Unfold drew evidence from must
// be realizable in the unfolded graph. A full Unfold/Verify round trip
// over reference paths and haplotype threads must report zero failures.
func TestVerifyRoundTripAfterUnfold(t *testing.T) {
	g := newTestGraph(1, 3)
	x := newTestIndex([]uint64{1, 2, 3}, []uint64{1, 4, 3})
	h := haplotype.New()
	m := nodemap.New(100)

	Unfold(g, x, h, m, false)

	if failures := Verify(g, x, h, m); failures != 0 {
		t.Fatalf("Verify() = %d failures after a clean Unfold, want 0", failures)
	}
}

// The converse of the round trip: if the unfolded graph is missing
// evidence a source walk relied on, Verify must report it rather than
// silently passing.
func TestVerifyDetectsMissingEvidenceAfterUnfold(t *testing.T) {
	g := newTestGraph(1, 3)
	x := newTestIndex([]uint64{1, 2, 3}, []uint64{1, 4, 3})
	h := haplotype.New()
	m := nodemap.New(100)

	Unfold(g, x, h, m, false)

	// Introduce a reference path the unfolded graph has never seen
	// evidence for.
	missing := newTestIndex([]uint64{1, 2, 3}, []uint64{1, 4, 3}, []uint64{1, 9, 3})
	if failures := Verify(g, missing, h, m); failures == 0 {
		t.Fatal("Verify() = 0 failures with an unrealized path in x, want at least 1")
	}
}
