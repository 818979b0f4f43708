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

package refpath

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/exascience/vgunfold/internal"
	"github.com/exascience/vgunfold/utils/nibbles"
)

// seqStoreMagic identifies the on-disk nibble-packed sequence store
// format, the same magic-bytes-plus-offset-table shape as this
// codebase's .elfasta format, adapted to key by node id instead of by
// contig name.
var seqStoreMagic = [4]byte{0x56, 0x47, 0x53, 0x31} // "VGS1"

// SeqStore is a nibble-packed store of node sequences, X's answer to
// spec.md §4.1/§4.5's "original sequences fetched from X". It can be
// built incrementally with Put, or mapped read-only off disk with
// OpenSeqStore without copying the packed bytes into the heap.
type SeqStore struct {
	mu   sync.RWMutex
	seqs map[uint64]nibbles.Nibbles

	// mapped holds the backing mmap region when this store was opened
	// from disk, so it can be unmapped on Close; nil for an
	// in-memory-built store.
	mapped []byte
}

// NewSeqStore returns an empty, mutable sequence store.
func NewSeqStore() *SeqStore {
	return &SeqStore{seqs: make(map[uint64]nibbles.Nibbles)}
}

// Put records nodeID's sequence. seq is copied into nibble-packed
// storage; the caller's slice is not retained.
func (s *SeqStore) Put(nodeID uint64, seq []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[nodeID] = nibbles.FromBytes(seq)
}

// Get returns nodeID's sequence as ASCII bases, or nil if unknown.
func (s *SeqStore) Get(nodeID uint64) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.seqs[nodeID]
	if !ok {
		return nil
	}
	return nibbles.Bytes(n)
}

// Has reports whether nodeID has a stored sequence.
func (s *SeqStore) Has(nodeID uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seqs[nodeID]
	return ok
}

// Close unmaps the backing region if this store was opened from disk.
// It is a no-op for an in-memory-built store.
func (s *SeqStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapped == nil {
		return nil
	}
	err := unix.Munmap(s.mapped)
	s.mapped = nil
	return err
}

// WriteSeqStore writes s to path in the on-disk format OpenSeqStore
// reads: a magic header, a record count, a fixed-size offset table
// (node id, byte offset, base count), and the nibble-packed bytes of
// every sequence concatenated in table order.
func WriteSeqStore(s *SeqStore, path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint64, 0, len(s.seqs))
	for id := range s.seqs {
		ids = append(ids, id)
	}

	var blob bytes.Buffer
	type entry struct {
		id     uint64
		offset uint64
		length uint64
	}
	entries := make([]entry, 0, len(ids))
	var offset uint64
	for _, id := range ids {
		packed := s.seqs[id]
		raw := nibbles.Bytes(packed)
		nb := nibblePackedBytes(packed)
		entries = append(entries, entry{id: id, offset: offset, length: uint64(len(raw))})
		blob.Write(nb)
		offset += uint64(len(nb))
	}

	file, err := internal.FileCreate(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	header := make([]byte, 4+8)
	copy(header[0:4], seqStoreMagic[:])
	binary.LittleEndian.PutUint64(header[4:12], uint64(len(entries)))
	if _, err := internal.Write(file, header); err != nil {
		return err
	}

	table := make([]byte, 24*len(entries))
	for i, e := range entries {
		binary.LittleEndian.PutUint64(table[i*24:i*24+8], e.id)
		binary.LittleEndian.PutUint64(table[i*24+8:i*24+16], e.offset)
		binary.LittleEndian.PutUint64(table[i*24+16:i*24+24], e.length)
	}
	if _, err := internal.Write(file, table); err != nil {
		return err
	}
	if _, err := internal.Write(file, blob.Bytes()); err != nil {
		return err
	}
	return nil
}

// nibblePackedBytes returns the raw packed byte slice backing n,
// reflecting out its representation the way fasta's elfasta writer
// reflects out a Nibbles field before writing it to disk.
func nibblePackedBytes(n nibbles.Nibbles) []byte {
	length, offset, bytesSlice := n.ReflectValue()
	if offset == 0 {
		need := (length + 1) / 2
		return bytesSlice[:need]
	}
	// Re-pack to a zero offset so stored records are self-contained.
	aligned := nibbles.Make(length)
	aligned.Copy(n)
	_, _, out := aligned.ReflectValue()
	need := (length + 1) / 2
	return out[:need]
}

// OpenSeqStore mmaps path read-only and returns a SeqStore whose
// sequences reference the mapped region directly rather than copies,
// mirroring fasta.OpenElfasta's zero-copy read path.
func OpenSeqStore(path string) (*SeqStore, error) {
	file, err := internal.FileOpen(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := int(info.Size())
	if size < 12 {
		return nil, fmt.Errorf("refpath: %s is too small to be a sequence store", path)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(data[0:4], seqStoreMagic[:]) {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("refpath: %s has the wrong magic bytes for a sequence store", path)
	}
	count := binary.LittleEndian.Uint64(data[4:12])

	tableStart := 12
	tableEnd := tableStart + 24*int(count)
	if tableEnd > size {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("refpath: %s has a truncated offset table", path)
	}
	blobStart := tableEnd

	seqs := make(map[uint64]nibbles.Nibbles, count)
	for i := uint64(0); i < count; i++ {
		rec := data[tableStart+int(i)*24 : tableStart+int(i)*24+24]
		id := binary.LittleEndian.Uint64(rec[0:8])
		offset := binary.LittleEndian.Uint64(rec[8:16])
		length := binary.LittleEndian.Uint64(rec[16:24])
		packedLen := (length + 1) / 2
		start := blobStart + int(offset)
		end := start + int(packedLen)
		if end > size {
			_ = unix.Munmap(data)
			return nil, fmt.Errorf("refpath: %s has a truncated sequence blob", path)
		}
		seqs[id] = nibbles.ReflectMake(int(length), 0, data[start:end])
	}

	return &SeqStore{seqs: seqs, mapped: data}, nil
}
