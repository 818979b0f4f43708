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

package nodemap

import (
	"encoding/binary"
	"log"

	"github.com/exascience/vgunfold/internal"
)

// headerSize is the byte size of the fixed {first_node, next_node,
// mapping_size} header described in spec.md §6.
const headerSize = 3 * 8

// Save writes m to path in the binary format of spec.md §6: a fixed
// header of three little-endian uint64s, followed by mapping_size
// little-endian uint64 entries (the original id of duplicate
// FirstNode+i). I/O failures are logged and returned as a plain
// error, never fatal, matching spec.md §7 ("I/O (M load/save):
// logged, non-fatal, caller continues").
func (m *Mapping) Save(path string) error {
	file, err := internal.FileCreate(path)
	if err != nil {
		log.Printf("nodemap: cannot create mapping file %v: %v", path, err)
		return err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(header[0:8], m.FirstNode)
	binary.LittleEndian.PutUint64(header[8:16], m.NextNode)
	binary.LittleEndian.PutUint64(header[16:24], uint64(len(m.Originals)))
	if _, err := internal.Write(file, header); err != nil {
		log.Printf("nodemap: cannot write mapping header to %v: %v", path, err)
		return err
	}

	buf := internal.ReserveByteBuffer()
	defer internal.ReleaseByteBuffer(buf)
	entry := make([]byte, 8)
	for _, original := range m.Originals {
		binary.LittleEndian.PutUint64(entry, original)
		buf = append(buf, entry...)
	}
	if _, err := internal.Write(file, buf); err != nil {
		log.Printf("nodemap: cannot write mapping entries to %v: %v", path, err)
		return err
	}
	return nil
}

// Load replaces m's contents with the mapping stored at path. Use
// before calling Unfold so new duplicate ids continue after the ones
// already on file.
func (m *Mapping) Load(path string) error {
	file, err := internal.FileOpen(path)
	if err != nil {
		log.Printf("nodemap: cannot open mapping file %v: %v", path, err)
		return err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	header := make([]byte, headerSize)
	if _, err := file.Read(header); err != nil {
		log.Printf("nodemap: cannot read mapping header from %v: %v", path, err)
		return err
	}
	firstNode := binary.LittleEndian.Uint64(header[0:8])
	nextNode := binary.LittleEndian.Uint64(header[8:16])
	mappingSize := binary.LittleEndian.Uint64(header[16:24])
	if mappingSize != nextNode-firstNode {
		log.Printf("nodemap: inconsistent header in %v: mapping_size %d != next_node-first_node %d", path, mappingSize, nextNode-firstNode)
		return errInconsistentHeader
	}

	body := make([]byte, mappingSize*8)
	if mappingSize > 0 {
		if _, err := file.Read(body); err != nil {
			log.Printf("nodemap: cannot read mapping entries from %v: %v", path, err)
			return err
		}
	}

	originals := make([]uint64, mappingSize)
	for i := range originals {
		originals[i] = binary.LittleEndian.Uint64(body[i*8 : i*8+8])
	}

	m.FirstNode = firstNode
	m.NextNode = nextNode
	m.Originals = originals
	return nil
}

var errInconsistentHeader = &inconsistentHeaderError{}

type inconsistentHeaderError struct{}

func (*inconsistentHeaderError) Error() string {
	return "nodemap: mapping file header is inconsistent"
}
