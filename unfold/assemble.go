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
	"github.com/exascience/vgunfold/graph"
	"github.com/exascience/vgunfold/handle"
	"github.com/exascience/vgunfold/nodemap"
	"github.com/exascience/vgunfold/refpath"
)

// assembleComponent materializes t's prefix trie, suffix trie, and
// crossing-edge set as real nodes and edges in unfolded (spec.md
// §4.5). Every synthesized node carries a duplicate id but the
// sequence of its original, fetched from x via m.
func assembleComponent(unfolded *graph.Graph, t *trieDuplicator, x *refpath.Index, m *nodemap.Mapping) {
	for key, dup := range t.prefix {
		addAssembledEdge(unfolded, x, m, handle.MakeEdge(key.from, dup))
	}
	for key, dup := range t.suffix {
		addAssembledEdge(unfolded, x, m, handle.MakeEdge(dup, key.to))
	}
	for e := range t.crossing {
		addAssembledEdge(unfolded, x, m, e)
	}
}

func addAssembledEdge(unfolded *graph.Graph, x *refpath.Index, m *nodemap.Mapping, e handle.Edge) {
	addAssembledNode(unfolded, x, m, e.From)
	addAssembledNode(unfolded, x, m, e.To)
	unfolded.AddEdge(e)
}

func addAssembledNode(unfolded *graph.Graph, x *refpath.Index, m *nodemap.Mapping, h handle.Handle) {
	id := h.ID()
	if unfolded.HasNode(id) {
		return
	}
	original := m.Lookup(id)
	unfolded.AddNode(graph.NodeDescriptor{ID: id, Sequence: x.Sequence(original)})
}
