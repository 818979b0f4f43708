package unfold

import (
	"testing"

	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/nodemap"
)

func TestInsertWalkDiscardsShortWalks(t *testing.T) {
	d := newTrieDuplicator(nodemap.New(100))
	d.insertWalk(handle.Walk{handle.Pack(1, false)})
	if len(d.prefix) != 0 || len(d.suffix) != 0 || len(d.crossing) != 0 {
		t.Fatal("insertWalk(length-1 walk) mutated trie state, want no-op")
	}
	if d.mapping.Size() != 0 {
		t.Fatal("insertWalk(length-1 walk) allocated a duplicate, want none")
	}
}

func TestInsertWalkOrientationSymmetry(t *testing.T) {
	w := handle.Walk{
		handle.Pack(1, false),
		handle.Pack(2, false),
		handle.Pack(3, false),
		handle.Pack(4, false),
		handle.Pack(5, false),
	}

	forward := newTrieDuplicator(nodemap.New(100))
	forward.insertWalk(w)

	backward := newTrieDuplicator(nodemap.New(100))
	backward.insertWalk(w.RC())

	if len(forward.prefix) != len(backward.prefix) {
		t.Fatalf("prefix sizes differ: %d vs %d", len(forward.prefix), len(backward.prefix))
	}
	if len(forward.suffix) != len(backward.suffix) {
		t.Fatalf("suffix sizes differ: %d vs %d", len(forward.suffix), len(backward.suffix))
	}
	if len(forward.crossing) != 1 || len(backward.crossing) != 1 {
		t.Fatalf("want exactly one crossing edge each, got %d and %d", len(forward.crossing), len(backward.crossing))
	}
	if forward.mapping.Size() != backward.mapping.Size() {
		t.Fatalf("duplicate counts differ: %d vs %d", forward.mapping.Size(), backward.mapping.Size())
	}
}

func TestInsertWalkMidpointSplitCounts(t *testing.T) {
	cases := []struct {
		length      int
		prefixEdges int
		suffixEdges int
	}{
		{2, 0, 0},
		{3, 1, 0},
		{4, 1, 1},
		{5, 2, 1},
		{6, 2, 2},
	}
	for _, c := range cases {
		w := make(handle.Walk, c.length)
		for i := range w {
			w[i] = handle.Pack(uint64(i+1), false)
		}
		d := newTrieDuplicator(nodemap.New(100))
		d.insertWalk(w)
		if len(d.prefix) != c.prefixEdges {
			t.Errorf("length %d: prefix edges = %d, want %d", c.length, len(d.prefix), c.prefixEdges)
		}
		if len(d.suffix) != c.suffixEdges {
			t.Errorf("length %d: suffix edges = %d, want %d", c.length, len(d.suffix), c.suffixEdges)
		}
		if len(d.crossing) != 1 {
			t.Errorf("length %d: crossing edges = %d, want 1", c.length, len(d.crossing))
		}
	}
}

func TestInsertWalkSharesPrefixAcrossWalks(t *testing.T) {
	d := newTrieDuplicator(nodemap.New(100))
	d.insertWalk(handle.Walk{
		handle.Pack(1, false), handle.Pack(2, false), handle.Pack(3, false), handle.Pack(9, false),
	})
	sizeAfterFirst := d.mapping.Size()
	d.insertWalk(handle.Walk{
		handle.Pack(1, false), handle.Pack(2, false), handle.Pack(3, false), handle.Pack(8, false),
	})
	// Only the diverging tail (one node on each walk's suffix half) should
	// allocate new duplicates; the shared prefix duplicate is reused.
	if got := d.mapping.Size(); got != sizeAfterFirst+1 {
		t.Fatalf("second insertWalk allocated %d duplicates beyond the first, want 1", got-sizeAfterFirst)
	}
	if len(d.crossing) != 2 {
		t.Fatalf("crossing edges = %d, want 2 (one per distinct walk)", len(d.crossing))
	}
}

func TestInsertWalkDedupsIdenticalWalks(t *testing.T) {
	d := newTrieDuplicator(nodemap.New(100))
	w := handle.Walk{handle.Pack(1, false), handle.Pack(2, false), handle.Pack(3, false)}
	d.insertWalk(w)
	sizeAfterFirst := d.mapping.Size()
	d.insertWalk(w)
	if d.mapping.Size() != sizeAfterFirst {
		t.Fatal("inserting an identical walk twice allocated new duplicates")
	}
	if len(d.crossing) != 1 {
		t.Fatalf("crossing edges = %d, want 1 (set dedup)", len(d.crossing))
	}
}
