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
	"log"
	"os"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/haplotype"
	"github.com/exascience/vgunfold/nodemap"
	"github.com/exascience/vgunfold/refpath"
	"github.com/exascience/vgunfold/unfold"
)

// VerifyHelp is the help string for the verify command.
const VerifyHelp = "\nverify parameters:\n" +
	"vgunfold verify graph-in x-path h-path mapping-in\n" +
	"[--progress]\n"

// Verify implements the vgunfold verify command: it checks that every
// reference-path walk and haplotype thread is realized in graph-in
// modulo the node mapping, and exits non-zero if any is not (spec.md
// §4.7, §6).
func Verify() error {
	var progress bool
	var flags flag.FlagSet
	flags.BoolVar(&progress, "progress", false, "log timing and sizing information")

	parseFlags(flags, 6, VerifyHelp)

	graphIn := getFilename(os.Args[2], VerifyHelp)
	xPath := getFilename(os.Args[3], VerifyHelp)
	hPath := getFilename(os.Args[4], VerifyHelp)
	mappingIn := getFilename(os.Args[5], VerifyHelp)

	if !checkExist("graph-in", graphIn) || !checkExist("x-path", xPath) ||
		!checkExist("h-path", hPath) || !checkExist("mapping-in", mappingIn) {
		fmt.Fprint(os.Stderr, VerifyHelp)
		os.Exit(1)
	}

	logRunStart("verify")

	var g *graph.Graph
	var x *refpath.Index
	var h *haplotype.Index
	m := &nodemap.Mapping{}

	if err := timedRun(progress, "Loading graph, reference paths, haplotype threads and node mapping.", func() error {
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
		return m.Load(mappingIn)
	}); err != nil {
		return err
	}

	var failures int
	if err := timedRun(progress, "Verifying.", func() error {
		failures = unfold.Verify(g, x, h, m)
		return nil
	}); err != nil {
		return err
	}

	log.Printf("verify: %d walk(s) could not be realized in the unfolded graph", failures)
	if failures > 0 {
		os.Exit(1)
	}
	return nil
}
