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
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/internal"
	"github.com/exascience/vgunfold/utils"
)

// Load reads an Index from vgunfold's own text format: one "P" line
// per path giving its (interned) name followed by its packed handles,
// tab-separated. The sequence store backing the index is opened
// separately and passed in, since several indexes may share one store.
func Load(path string, seqs *SeqStore) (*Index, error) {
	file, err := internal.FileOpen(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	x := New(seqs)
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] != "P" {
			return nil, fmt.Errorf("refpath: malformed path line %q", line)
		}
		name := *utils.Intern(fields[1])
		handles := make([]handle.Handle, 0, len(fields)-2)
		for _, f := range fields[2:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("refpath: bad handle in %q: %w", line, err)
			}
			handles = append(handles, handle.Handle(v))
		}
		if !x.AddPath(name, handles) {
			return nil, fmt.Errorf("refpath: duplicate path name %q", name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return x, nil
}

// Save writes x to path in the format Load reads.
func Save(x *Index, path string) error {
	file, err := internal.FileCreate(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	w := bufio.NewWriter(file)
	for _, p := range x.paths {
		if _, err := fmt.Fprintf(w, "P\t%s", p.name); err != nil {
			return err
		}
		for _, h := range p.handles {
			if _, err := fmt.Fprintf(w, "\t%d", uint64(h)); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
