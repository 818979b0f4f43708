package refpath

import (
	"testing"

	"github.com/exascience/vgunfold/handle"
)

func TestIndexNodeRanksInPath(t *testing.T) {
	store := NewSeqStore()
	store.Put(1, []byte("ACGT"))
	store.Put(2, []byte("TTTT"))
	store.Put(3, []byte("GGGG"))

	x := New(store)
	x.AddPath("ref", []handle.Handle{
		handle.Pack(1, false),
		handle.Pack(2, false),
		handle.Pack(3, false),
		handle.Pack(2, false),
	})

	ranks := x.NodeRanksInPath(2, 0)
	if len(ranks) != 2 || ranks[0] != 1 || ranks[1] != 3 {
		t.Fatalf("NodeRanksInPath(2, 0) = %v, want [1 3]", ranks)
	}

	if got := x.NodeRanksInPath(99, 0); got != nil {
		t.Fatalf("NodeRanksInPath for absent node = %v, want nil", got)
	}

	if x.MaxPathRank() != 0 {
		t.Fatalf("MaxPathRank() = %d, want 0", x.MaxPathRank())
	}

	p := x.Path(0)
	if p.Len() != 4 {
		t.Fatalf("Path(0).Len() = %d, want 4", p.Len())
	}
	if p.HandleAt(2) != handle.Pack(3, false) {
		t.Fatalf("Path(0).HandleAt(2) = %v, want handle for node 3", p.HandleAt(2))
	}
	if p.Name() != "ref" {
		t.Fatalf("Path(0).Name() = %q, want \"ref\"", p.Name())
	}
}

func TestAddPathRejectsDuplicateName(t *testing.T) {
	store := NewSeqStore()
	store.Put(1, []byte("ACGT"))

	x := New(store)
	if !x.AddPath("ref", []handle.Handle{handle.Pack(1, false)}) {
		t.Fatal("AddPath(\"ref\", ...) = false on first insertion, want true")
	}
	if x.AddPath("ref", []handle.Handle{handle.Pack(1, false)}) {
		t.Fatal("AddPath(\"ref\", ...) = true on duplicate name, want false")
	}
	if x.MaxPathRank() != 0 {
		t.Fatalf("MaxPathRank() = %d after rejected duplicate, want 0", x.MaxPathRank())
	}
}

func TestSeqStoreGetPut(t *testing.T) {
	store := NewSeqStore()
	store.Put(42, []byte("ACGTN"))

	if !store.Has(42) {
		t.Fatal("Has(42) = false, want true")
	}
	if got := string(store.Get(42)); got != "ACGTN" {
		t.Fatalf("Get(42) = %q, want %q", got, "ACGTN")
	}
	if store.Has(7) {
		t.Fatal("Has(7) = true, want false")
	}
}
