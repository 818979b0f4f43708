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

package unfold

import (
	"log"

	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/refpath"
)

// RestorePaths restores the edges missing from g that x's reference
// paths imply, writing directly into g under the original node ids
// (spec.md §4.6). It allocates no duplicate ids and is used when h is
// empty or unavailable, in which case it produces a graph structurally
// identical to Unfold's (spec.md §8 invariant 5).
func RestorePaths(g *graph.Graph, x *refpath.Index, progress bool) {
	addReferencePathComplement(g, g, x)
	if progress {
		log.Printf("unfold: restored graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}
