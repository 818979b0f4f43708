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

package nibbles

// baseToCode maps an IUPAC nucleotide code to the 4-bit value stored
// per base in a node's Nibbles sequence. Bases outside this table
// (anything but the 16 IUPAC letters) map to N.
var baseToCode = map[byte]byte{
	'A': 0, 'C': 1, 'G': 2, 'T': 3, 'N': 4,
	'R': 5, 'Y': 6, 'M': 7, 'K': 8,
	'S': 9, 'W': 10, 'B': 11, 'D': 12, 'H': 13, 'V': 14,
	'U': 15,
}

var codeToBase = func() [16]byte {
	var table [16]byte
	for base, code := range baseToCode {
		table[code] = base
	}
	return table
}()

// FromBytes packs an ASCII nucleotide sequence into Nibbles, 4 bits
// per base. Lower-case input is upper-cased first.
func FromBytes(seq []byte) Nibbles {
	n := Make(len(seq))
	for i, b := range seq {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		code, ok := baseToCode[b]
		if !ok {
			code = baseToCode['N']
		}
		n.Set(i, code)
	}
	return n
}

// Bytes unpacks Nibbles back into an ASCII nucleotide sequence.
func Bytes(n Nibbles) []byte {
	out := make([]byte, n.Len())
	for i := range out {
		out[i] = codeToBase[n.Get(i)]
	}
	return out
}
