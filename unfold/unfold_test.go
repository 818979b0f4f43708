package unfold

import (
	"testing"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/haplotype"
	"github.com/exascience/vgunfold/nodemap"
	"github.com/exascience/vgunfold/refpath"
)

func newTestGraph(ids ...uint64) *graph.Graph {
	g := graph.New()
	for _, id := range ids {
		g.AddNode(graph.NodeDescriptor{ID: id, Sequence: []byte("ACGT")})
	}
	return g
}

func newTestIndex(paths ...[]uint64) *refpath.Index {
	store := refpath.NewSeqStore()
	seen := make(map[uint64]bool)
	x := refpath.New(store)
	for pi, path := range paths {
		handles := make([]handle.Handle, len(path))
		for i, id := range path {
			if !seen[id] {
				store.Put(id, []byte("ACGT"))
				seen[id] = true
			}
			handles[i] = handle.Pack(id, false)
		}
		x.AddPath(pathName(pi), handles)
	}
	return x
}

func pathName(i int) string {
	names := []string{"ref0", "ref1", "ref2", "ref3", "ref4", "ref5"}
	return names[i]
}

// Scenario (a) of spec.md §8: a single reference path over nodes
// already present in G produces no duplicates.
func TestUnfoldSingleWalkNoDuplication(t *testing.T) {
	g := newTestGraph(1, 2, 3)
	x := newTestIndex([]uint64{1, 2, 3})
	h := haplotype.New()
	m := nodemap.New(100)

	Unfold(g, x, h, m, false)

	if !g.HasEdge(handle.MakeEdge(handle.Pack(1, false), handle.Pack(2, false))) {
		t.Error("missing edge 1+ -> 2+")
	}
	if !g.HasEdge(handle.MakeEdge(handle.Pack(2, false), handle.Pack(3, false))) {
		t.Error("missing edge 2+ -> 3+")
	}
	if m.Size() != 0 {
		t.Errorf("m.Size() = %d, want 0 (single walk, no interior branching)", m.Size())
	}
}

// Scenario (b) of spec.md §8: two reference paths diverging and
// reconverging produce two distinct interior duplicates. G retains
// only the shared endpoints 1 and 3: the pruning that produced this
// complement removed nodes 2 and 4 along with their edges, so neither
// is a border node of the component.
func TestUnfoldTwoWalksDiverge(t *testing.T) {
	g := newTestGraph(1, 3)
	x := newTestIndex([]uint64{1, 2, 3}, []uint64{1, 4, 3})
	h := haplotype.New()
	m := nodemap.New(100)

	Unfold(g, x, h, m, false)

	if m.Size() != 2 {
		t.Fatalf("m.Size() = %d, want 2 (one duplicate each for 2+ and 4+)", m.Size())
	}
	if m.NextNode != 102 {
		t.Fatalf("m.NextNode = %d, want 102", m.NextNode)
	}
	for _, dup := range []uint64{100, 101} {
		if !g.HasNode(dup) {
			t.Errorf("expected duplicate node %d in g", dup)
		}
	}
}

// Scenario (d) of spec.md §8: an identical walk supported by both X
// and H is inserted once. G retains only the endpoints 1 and 3, so
// node 2 is genuinely interior and gets duplicated exactly once
// regardless of how many sources attest to the same walk.
func TestUnfoldIdenticalWalkFromBothSources(t *testing.T) {
	g := newTestGraph(1, 3)
	x := newTestIndex([]uint64{1, 2, 3})
	h := haplotype.New()
	h.AddThread(handle.Walk{handle.Pack(1, false), handle.Pack(2, false), handle.Pack(3, false)})
	m := nodemap.New(100)

	Unfold(g, x, h, m, false)

	if m.Size() != 1 {
		t.Fatalf("m.Size() = %d, want 1 (same walk from X and H shares trie state)", m.Size())
	}
}

// Scenario (e) of spec.md §8: a complement that splits into two
// unrelated components unfolds each independently, and the total
// number of duplicates is the sum over components.
func TestUnfoldSplitsIntoIndependentComponents(t *testing.T) {
	g := newTestGraph(1, 3, 11, 13)
	x := newTestIndex(
		[]uint64{1, 2, 3}, []uint64{1, 20, 3},
		[]uint64{11, 12, 13}, []uint64{11, 21, 13},
	)
	h := haplotype.New()
	m := nodemap.New(100)

	components := ComplementComponents(g, x, h, false)
	if len(components) != 2 {
		t.Fatalf("ComplementComponents returned %d components, want 2", len(components))
	}

	Unfold(g, x, h, m, false)
	if m.Size() != 4 {
		t.Fatalf("m.Size() = %d, want 4 (one duplicate for each of 2,20,12,21)", m.Size())
	}
}

// Scenario §8 invariant 5: with empty H, Unfold and RestorePaths
// produce structurally identical graphs, and RestorePaths allocates
// no duplicate ids.
func TestRestorePathsEquivalence(t *testing.T) {
	x := newTestIndex([]uint64{1, 2, 3})

	gUnfold := newTestGraph(1, 2, 3)
	hIdx := haplotype.New()
	m := nodemap.New(100)
	Unfold(gUnfold, x, hIdx, m, false)

	gRestore := newTestGraph(1, 2, 3)
	RestorePaths(gRestore, x, false)

	if gUnfold.NodeCount() != gRestore.NodeCount() {
		t.Errorf("node counts differ: unfold=%d restore=%d", gUnfold.NodeCount(), gRestore.NodeCount())
	}
	if gUnfold.EdgeCount() != gRestore.EdgeCount() {
		t.Errorf("edge counts differ: unfold=%d restore=%d", gUnfold.EdgeCount(), gRestore.EdgeCount())
	}
	if m.Size() != 0 {
		t.Errorf("m.Size() = %d after empty-H Unfold, want 0", m.Size())
	}
}

func TestRestorePathsAllocatesNoDuplicates(t *testing.T) {
	g := newTestGraph(1, 2, 3)
	x := newTestIndex([]uint64{1, 2, 3}, []uint64{1, 4, 3})
	RestorePaths(g, x, false)

	if !g.HasNode(4) {
		t.Fatal("expected node 4 (original id) restored directly into g")
	}
	if g.HasNode(100) {
		t.Fatal("RestorePaths must not allocate duplicate ids")
	}
}
