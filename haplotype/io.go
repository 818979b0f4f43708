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

package haplotype

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/internal"
)

// Load reads an Index from vgunfold's own text format: one "T" line
// per thread giving its packed handles, tab-separated. A trailing
// field equal to the packed value of EndMarker is stripped, matching
// how a true GBWT terminates every thread with its end-marker.
func Load(path string) (*Index, error) {
	file, err := internal.FileOpen(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	idx := New()
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 1 || fields[0] != "T" {
			return nil, fmt.Errorf("haplotype: malformed thread line %q", line)
		}
		walk := make(handle.Walk, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("haplotype: bad handle in %q: %w", line, err)
			}
			h := handle.Handle(v)
			if h == EndMarker {
				continue
			}
			walk = append(walk, h)
		}
		idx.AddThread(walk)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Save writes idx to path in the format Load reads, terminating every
// thread with the end marker.
func Save(idx *Index, path string) error {
	file, err := internal.FileCreate(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	w := bufio.NewWriter(file)
	for _, walk := range idx.threads {
		if _, err := w.WriteString("T"); err != nil {
			return err
		}
		for _, h := range walk {
			if _, err := fmt.Fprintf(w, "\t%d", uint64(h)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\t%d\n", uint64(EndMarker)); err != nil {
			return err
		}
	}
	return w.Flush()
}
