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

// vgunfold restores the evidence-supported walks a variation graph's
// upstream pruning step removed, by duplicating their interior nodes
// into private acyclic chains.
//
// See https://github.com/exascience/vgunfold for documentation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/vgunfold/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: unfold, restore-paths, verify")
	fmt.Fprint(os.Stderr, "\n", cmd.UnfoldHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.RestorePathsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.VerifyHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "unfold":
		err = cmd.Unfold()
	case "restore-paths":
		err = cmd.RestorePaths()
	case "verify":
		err = cmd.Verify()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
