// TekkFS - BZip2 stream compression/decompression
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

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// bzip2Compress runs payload through a BZip2 writer at the given level.
// Go's standard library compress/bzip2 only implements decompression, so
// this (like the disk codec it's grounded on) reaches for dsnet/compress.
func bzip2Compress(payload []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	cfg := &bzip2.WriterConfig{Level: level}

	w, err := bzip2.NewWriter(&buf, cfg)
	if err != nil {
		return nil, fmt.Errorf("tekkfs: bzip2 writer: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		w.Close()
		return nil, fmt.Errorf("tekkfs: bzip2 compress: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("tekkfs: bzip2 compress: %w", err)
	}

	return buf.Bytes(), nil
}

// bzip2DecompressExact decompresses a BZip2 stream into a buffer of exactly
// uncompressedSize bytes, the way the package codec's size-budgeted decode
// requires (SPEC_FULL.md section 4.2).
func bzip2DecompressExact(stream []byte, uncompressedSize int) ([]byte, error) {
	r, err := bzip2.NewReader(bytes.NewReader(stream), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	defer r.Close()

	out := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}

	return out, nil
}

// EOF
