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

package graph

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/internal"
	"github.com/exascience/vgunfold/utils/nibbles"
)

// Load reads a Graph from vgunfold's own text format: a "N" line per
// node (id and sequence, tab-separated) followed by an "E" line per
// edge (packed from-handle and to-handle, tab-separated). This is
// this module's own interchange format for G, not a reimplementation
// of any upstream variation-graph file format (spec.md treats G as an
// external collaborator reached only through its interface).
func Load(path string) (*Graph, error) {
	file, err := internal.FileOpen(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	g := New()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "N":
			if len(fields) < 2 {
				return nil, fmt.Errorf("graph: malformed node line %q", line)
			}
			id, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("graph: bad node id in %q: %w", line, err)
			}
			var seq []byte
			if len(fields) > 2 {
				seq = []byte(fields[2])
			}
			g.AddNode(NodeDescriptor{ID: id, Sequence: seq})
		case "E":
			if len(fields) < 3 {
				return nil, fmt.Errorf("graph: malformed edge line %q", line)
			}
			from, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("graph: bad from-handle in %q: %w", line, err)
			}
			to, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("graph: bad to-handle in %q: %w", line, err)
			}
			g.AddEdge(handle.MakeEdge(handle.Handle(from), handle.Handle(to)))
		default:
			return nil, fmt.Errorf("graph: unrecognized line %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// Save writes g to path in the format Load reads.
func Save(g *Graph, path string) error {
	file, err := internal.FileCreate(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = internal.Close(file)
	}()

	w := bufio.NewWriter(file)
	g.mu.RLock()
	for id, n := range g.nodes {
		if _, err := fmt.Fprintf(w, "N\t%d\t%s\n", id, nibbles.Bytes(n.Sequence)); err != nil {
			g.mu.RUnlock()
			return err
		}
	}
	for e := range g.edgeSet {
		if _, err := fmt.Fprintf(w, "E\t%d\t%d\n", uint64(e.From), uint64(e.To)); err != nil {
			g.mu.RUnlock()
			return err
		}
	}
	g.mu.RUnlock()
	return w.Flush()
}
