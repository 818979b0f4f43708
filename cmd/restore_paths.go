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
	"github.com/exascience/vgunfold/refpath"
	"github.com/exascience/vgunfold/unfold"
)

// RestorePathsHelp is the help string for the restore-paths command.
const RestorePathsHelp = "\nrestore-paths parameters:\n" +
	"vgunfold restore-paths graph-in x-path graph-out\n" +
	"[--progress]\n"

// RestorePaths implements the vgunfold restore-paths command: it adds
// back every reference-path edge missing from graph-in, without
// duplicating any node (spec.md §4.6), and writes the result to
// graph-out.
func RestorePaths() error {
	var progress bool
	var flags flag.FlagSet
	flags.BoolVar(&progress, "progress", false, "log timing and sizing information")

	parseFlags(flags, 5, RestorePathsHelp)

	graphIn := getFilename(os.Args[2], RestorePathsHelp)
	xPath := getFilename(os.Args[3], RestorePathsHelp)
	graphOut := getFilename(os.Args[4], RestorePathsHelp)

	if !checkExist("graph-in", graphIn) || !checkExist("x-path", xPath) {
		fmt.Fprint(os.Stderr, RestorePathsHelp)
		os.Exit(1)
	}
	if !checkCreate("graph-out", graphOut) {
		fmt.Fprint(os.Stderr, RestorePathsHelp)
		os.Exit(1)
	}

	logRunStart("restore-paths")

	var g *graph.Graph
	var x *refpath.Index
	if err := timedRun(progress, "Loading graph and reference paths.", func() error {
		var err error
		if g, err = graph.Load(graphIn); err != nil {
			return err
		}
		seqs, err := refpath.OpenSeqStore(seqStorePath(xPath))
		if err != nil {
			return err
		}
		x, err = refpath.Load(xPath, seqs)
		return err
	}); err != nil {
		return err
	}

	if err := timedRun(progress, "Restoring reference-path edges.", func() error {
		unfold.RestorePaths(g, x, progress)
		return nil
	}); err != nil {
		return err
	}

	return timedRun(progress, "Writing graph.", func() error {
		return graph.Save(g, graphOut)
	})
}
