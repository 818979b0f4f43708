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

// disjointSet is a union-find structure over the dense local indices
// assigned to a scratch graph's nodes while splitting it into weakly
// connected components.
type disjointSet []int

func newDisjointSet(size int) disjointSet {
	set := make(disjointSet, size)
	for i := range set {
		set[i] = i
	}
	return set
}

func (set disjointSet) find(index int) int {
	root := index
	for root != set[root] {
		root = set[root]
	}
	for index != root {
		next := set[index]
		set[index] = root
		index = next
	}
	return root
}

func (set disjointSet) union(a, b int) {
	rootA, rootB := set.find(a), set.find(b)
	if rootA == rootB {
		return
	}
	set[rootA] = rootB
}
