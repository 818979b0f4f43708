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

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/haplotype"
	"github.com/exascience/vgunfold/nodemap"
	"github.com/exascience/vgunfold/refpath"
	"github.com/exascience/vgunfold/unfold"
)

// UnfoldHelp is the help string for the unfold command.
const UnfoldHelp = "\nunfold parameters:\n" +
	"vgunfold unfold graph-in x-path h-path graph-out\n" +
	"[--mapping-in path]\n" +
	"[--mapping-out path]\n" +
	"[--progress]\n"

// Unfold implements the vgunfold unfold command: it restores the
// evidence-supported walks pruned out of graph-in by duplicating their
// interior nodes, and writes the result to graph-out (spec.md §6).
func Unfold() error {
	var mappingIn, mappingOut string
	var progress bool

	var flags flag.FlagSet
	flags.StringVar(&mappingIn, "mapping-in", "", "load a previously saved node mapping before unfolding")
	flags.StringVar(&mappingOut, "mapping-out", "", "save the node mapping after unfolding")
	flags.BoolVar(&progress, "progress", false, "log timing and sizing information for each phase")

	parseFlags(flags, 6, UnfoldHelp)

	graphIn := getFilename(os.Args[2], UnfoldHelp)
	xPath := getFilename(os.Args[3], UnfoldHelp)
	hPath := getFilename(os.Args[4], UnfoldHelp)
	graphOut := getFilename(os.Args[5], UnfoldHelp)

	if !checkExist("graph-in", graphIn) || !checkExist("x-path", xPath) || !checkExist("h-path", hPath) {
		fmt.Fprint(os.Stderr, UnfoldHelp)
		os.Exit(1)
	}
	if !checkCreate("graph-out", graphOut) {
		fmt.Fprint(os.Stderr, UnfoldHelp)
		os.Exit(1)
	}
	if mappingIn != "" && !checkExist("--mapping-in", mappingIn) {
		fmt.Fprint(os.Stderr, UnfoldHelp)
		os.Exit(1)
	}
	if mappingOut != "" && !checkCreate("--mapping-out", mappingOut) {
		fmt.Fprint(os.Stderr, UnfoldHelp)
		os.Exit(1)
	}

	logRunStart("unfold")

	var g *graph.Graph
	var x *refpath.Index
	var h *haplotype.Index
	var m *nodemap.Mapping

	if err := timedRun(progress, "Loading graph, reference paths and haplotype threads.", func() error {
		var err error
		if g, err = graph.Load(graphIn); err != nil {
			return err
		}
		seqs, err := refpath.OpenSeqStore(seqStorePath(xPath))
		if err != nil {
			return err
		}
		if x, err = refpath.Load(xPath, seqs); err != nil {
			return err
		}
		if h, err = haplotype.Load(hPath); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return err
	}

	m = nodemap.New(nextNodeID(g))
	if mappingIn != "" {
		if err := m.Load(mappingIn); err != nil {
			return err
		}
	}

	if err := timedRun(progress, "Unfolding.", func() error {
		unfold.Unfold(g, x, h, m, progress)
		return nil
	}); err != nil {
		return err
	}

	if err := timedRun(progress, "Writing unfolded graph.", func() error {
		return graph.Save(g, graphOut)
	}); err != nil {
		return err
	}

	if mappingOut != "" {
		if err := m.Save(mappingOut); err != nil {
			return err
		}
	}
	return nil
}

// nextNodeID returns g's highest node id plus one, the conventional
// start of the duplicate id range a fresh nodemap.Mapping allocates
// from (spec.md §3's "FirstNode is ordinarily max_node_id()+1").
func nextNodeID(g *graph.Graph) uint64 {
	var max uint64
	g.ForEachNode(func(n *graph.Node) {
		if n.ID > max {
			max = n.ID
		}
	})
	return max + 1
}

// seqStorePath derives the sequence-store file that accompanies an X
// path-index file: vgunfold's own text format for X separates the
// ordered handle lists (the "P" lines) from the nibble-packed sequence
// data, so a single CLI argument names the path-index file and the
// sequence store sits alongside it under a fixed suffix.
func seqStorePath(xPath string) string {
	return xPath + ".seq"
}
