package haplotype

import (
	"testing"

	"github.com/exascience/vgunfold/handle"
)

func TestFindExtend(t *testing.T) {
	idx := New()
	idx.AddThread(handle.Walk{
		handle.Pack(1, false),
		handle.Pack(2, false),
		handle.Pack(2, false),
		handle.Pack(3, false),
	})
	idx.AddThread(handle.Walk{
		handle.Pack(1, false),
		handle.Pack(4, false),
		handle.Pack(3, false),
	})

	s := idx.Find(handle.Pack(1, false))
	if s.Empty() {
		t.Fatal("Find(1+) is empty, want a match")
	}

	s = idx.Extend(s, handle.Pack(2, false))
	if s.Empty() {
		t.Fatal("Extend to 2+ is empty, want thread 0 to survive")
	}

	s = idx.Extend(s, handle.Pack(4, false))
	if !s.Empty() {
		t.Fatal("Extend to 4+ should be empty: thread 0 continues with 2+ or 3+, not 4+")
	}
}

func TestEffectiveAndToNode(t *testing.T) {
	idx := New()
	idx.AddThread(handle.Walk{handle.Pack(5, false), handle.Pack(2, false)})
	idx.AddThread(handle.Walk{handle.Pack(2, true), handle.Pack(9, false)})

	if got := idx.Effective(); got != 3 {
		t.Fatalf("Effective() = %d, want 3", got)
	}
	if got := idx.ToNode(1); got.ID() != 2 {
		t.Fatalf("ToNode(1).ID() = %d, want 2", got.ID())
	}
	if got := idx.ToNode(3); got.ID() != 9 {
		t.Fatalf("ToNode(3).ID() = %d, want 9", got.ID())
	}
}

func TestSequencesAndExtract(t *testing.T) {
	idx := New()
	w := handle.Walk{handle.Pack(1, false), handle.Pack(2, false)}
	idx.AddThread(w)

	if idx.Sequences() != 1 {
		t.Fatalf("Sequences() = %d, want 1", idx.Sequences())
	}
	got := idx.Extract(0)
	if len(got) != 2 || got[0] != w[0] || got[1] != w[1] {
		t.Fatalf("Extract(0) = %v, want %v", got, w)
	}
}
