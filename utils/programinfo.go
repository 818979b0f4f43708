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

package utils

const (
	// ProgramName is "vgunfold"
	ProgramName = "vgunfold"

	// ProgramVersion is the version of the vgunfold binary
	ProgramVersion = "1.0.0"

	// ProgramURL is the repository for the vgunfold source code
	ProgramURL = "http://github.com/exascience/vgunfold"
)
