// TekkFS - Entry name hashing
// Copyright (C) 2026 RuneTekk Development; All Rights Reserved
// <tekkfs (at) runetekk (dot) dev>

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tekkfs

// HashName computes the 32-bit signed name hash used as the sole lookup key
// for entries inside a package. The hash is taken over the ASCII-uppercased
// form of name (only 'a'-'z' are folded; anything else passes through
// unchanged, unlike strings.ToUpper's Unicode-aware case folding); arithmetic
// wraps the way Go's int32 naturally does.
//
// h = 0; for c in uppercase(name): h = h*61 + c - 32
func HashName(name string) int32 {
	var h int32

	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}

		h = h*61 + r - 32
	}

	return h
}

// EOF
