// TekkFS - Error sentinels
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

import "errors"

// Errors returned by the *Err variants of BlockStore and Package operations.
// The legacy boolean/absent APIs (Get, Put) collapse all of these to a plain
// false/absent result, per SPEC_FULL.md section 7.
var (
	// ErrShortRead is returned when an index or main file read came back
	// with fewer bytes than required.
	ErrShortRead = errors.New("tekkfs: short read")

	// ErrChainCorrupt is returned when a block's header does not match the
	// archive id, chunk index or index id expected at that position in the
	// chain.
	ErrChainCorrupt = errors.New("tekkfs: block chain corrupt")

	// ErrBlockOutOfRange is returned when a first_block or next_block value
	// falls outside [1, main_file_length/520].
	ErrBlockOutOfRange = errors.New("tekkfs: block number out of range")

	// ErrNegativeSize is returned when the 24-bit size field in an
	// IndexEntry decodes as negative when interpreted as signed.
	ErrNegativeSize = errors.New("tekkfs: negative archive size")

	// ErrTruncatedPackage is returned when a package blob is too short to
	// contain the header or footer it claims to have.
	ErrTruncatedPackage = errors.New("tekkfs: truncated package blob")

	// ErrEntryOutOfBounds is returned when an entry's offset+compressed
	// size runs past the end of the decoded footer data.
	ErrEntryOutOfBounds = errors.New("tekkfs: entry offset out of bounds")

	// ErrEntryNotFound is returned by GetErr when no entry matches the
	// requested name hash.
	ErrEntryNotFound = errors.New("tekkfs: entry not found")

	// ErrDecompress wraps a failure from the BZip2 codec.
	ErrDecompress = errors.New("tekkfs: bzip2 decompression failed")

	// ErrClosed is returned by operations attempted on a BlockStore after
	// Close has been called.
	ErrClosed = errors.New("tekkfs: store closed")
)
