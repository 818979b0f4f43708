package nodemap

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func corruptMappingSize(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	field := make([]byte, 8)
	binary.LittleEndian.PutUint64(field, 999)
	_, err = f.WriteAt(field, 16)
	return err
}

// Invariant 6 of spec.md §8: M only ever grows. NextNode is
// monotonically increasing and every id it has ever handed out keeps
// resolving to the same original forever.
func TestInsertIsMonotonicAndStable(t *testing.T) {
	m := New(100)

	d1 := m.Insert(7)
	d2 := m.Insert(9)
	d3 := m.Insert(7) // same original, second occurrence: still a fresh id

	if d1 != 100 || d2 != 101 || d3 != 102 {
		t.Fatalf("Insert ids = %d, %d, %d, want 100, 101, 102", d1, d2, d3)
	}
	if m.NextNode != 103 {
		t.Fatalf("NextNode = %d, want 103", m.NextNode)
	}
	if m.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", m.Size())
	}

	for _, want := range []struct{ id, original uint64 }{
		{d1, 7}, {d2, 9}, {d3, 7},
	} {
		if got := m.Lookup(want.id); got != want.original {
			t.Errorf("Lookup(%d) = %d, want %d", want.id, got, want.original)
		}
	}

	// Original ids below FirstNode are unaffected by any amount of
	// duplicate allocation: Lookup is the identity there.
	for _, id := range []uint64{0, 1, 99} {
		if got := m.Lookup(id); got != id {
			t.Errorf("Lookup(%d) = %d, want %d (identity below FirstNode)", id, got, id)
		}
	}
}

func TestLookupPanicsOnUnallocatedDuplicate(t *testing.T) {
	m := New(100)
	m.Insert(1)
	defer func() {
		if recover() == nil {
			t.Fatal("Lookup on an id never allocated by this mapping should panic")
		}
	}()
	m.Lookup(101)
}

func TestInsertPanicsOnOverflow(t *testing.T) {
	m := &Mapping{FirstNode: ^uint64(0), NextNode: ^uint64(0)}
	defer func() {
		if recover() == nil {
			t.Fatal("Insert at the top of the id space should panic rather than wrap around")
		}
	}()
	m.Insert(1)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := New(100)
	m.Insert(7)
	m.Insert(9)
	m.Insert(7)

	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.bin")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := &Mapping{}
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.FirstNode != m.FirstNode || loaded.NextNode != m.NextNode {
		t.Fatalf("loaded header = {%d, %d}, want {%d, %d}", loaded.FirstNode, loaded.NextNode, m.FirstNode, m.NextNode)
	}
	if len(loaded.Originals) != len(m.Originals) {
		t.Fatalf("loaded %d originals, want %d", len(loaded.Originals), len(m.Originals))
	}
	for i := range m.Originals {
		if loaded.Originals[i] != m.Originals[i] {
			t.Errorf("Originals[%d] = %d, want %d", i, loaded.Originals[i], m.Originals[i])
		}
	}
}

func TestSaveLoadRoundTripEmptyMapping(t *testing.T) {
	m := New(42)

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := &Mapping{}
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.FirstNode != 42 || loaded.NextNode != 42 || len(loaded.Originals) != 0 {
		t.Fatalf("loaded = %+v, want FirstNode=42, NextNode=42, no originals", loaded)
	}
}

func TestLoadRejectsInconsistentHeader(t *testing.T) {
	m := New(100)
	m.Insert(1)

	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.bin")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Corrupt mapping_size in place: a save/load cycle must notice a
	// header whose fields no longer agree rather than silently
	// truncating or overrunning the body.
	if err := corruptMappingSize(path); err != nil {
		t.Fatalf("corruptMappingSize: %v", err)
	}

	loaded := &Mapping{}
	if err := loaded.Load(path); err != errInconsistentHeader {
		t.Fatalf("Load() error = %v, want errInconsistentHeader", err)
	}
}
