// TekkFS - Archive package codec - encoder
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

import "github.com/dsnet/compress/bzip2"

// defaultCompressionLevel mirrors the teacher's choice of -9 equivalent
// (mem2disk.go's mem2DiskBzip2block): best compression by default.
const defaultCompressionLevel = bzip2.BestCompression

type bundleSlot struct {
	active           bool
	nameHash         int32
	uncompressedSize uint32
	compressedSize   uint32
	payload          []byte
}

// Bundle is the write side of the archive package codec: a fixed-capacity
// slot table that Pack emits as a single package blob. A Bundle is
// single-use and single-goroutine: construct, Put/Remove slots, Pack once.
// See SPEC_FULL.md section 4.3.
type Bundle struct {
	wholyCompressed bool
	level           int

	slots               []bundleSlot
	activeCount         int
	totalCompressedSize int
}

// BundleOption configures a Bundle at construction time.
type BundleOption func(*Bundle)

// WithCompressionLevel overrides the BZip2 compression level (default:
// defaultCompressionLevel, i.e. best compression).
func WithCompressionLevel(level int) BundleOption {
	return func(b *Bundle) {
		b.level = level
	}
}

// NewBundle constructs a Bundle with amountEntries fixed slots.
// wholyCompressed selects whether Pack BZip2-compresses the entire footer
// as one stream (true) or each entry individually (false).
func NewBundle(amountEntries int, wholyCompressed bool, opts ...BundleOption) *Bundle {
	b := &Bundle{
		wholyCompressed: wholyCompressed,
		level:           defaultCompressionLevel,
		slots:           make([]bundleSlot, amountEntries),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Put stores payload at index under name. If !wholyCompressed, payload is
// BZip2-compressed immediately and the slot records the true pre-compression
// length alongside the compressed length -- unlike the original reference
// implementation, which left the uncompressed-size field unset for
// per-entry-compressed payloads (see SPEC_FULL.md section 9).
func (b *Bundle) Put(index int, name string, payload []byte) error {
	nameHash := HashName(name)

	uncompressedSize := uint32(len(payload))
	stored := payload

	if !b.wholyCompressed {
		compressed, err := bzip2Compress(payload, b.level)
		if err != nil {
			return err
		}

		stored = compressed
	}

	compressedSize := uint32(len(stored))

	if b.slots[index].active {
		b.totalCompressedSize -= int(b.slots[index].compressedSize)
	} else {
		b.activeCount++
	}
	b.totalCompressedSize += int(compressedSize)

	b.slots[index] = bundleSlot{
		active:           true,
		nameHash:         nameHash,
		uncompressedSize: uncompressedSize,
		compressedSize:   compressedSize,
		payload:          stored,
	}

	return nil
}

// Remove clears the slot at index, if active.
func (b *Bundle) Remove(index int) {
	if b.slots[index].active {
		b.activeCount--
		b.totalCompressedSize -= int(b.slots[index].compressedSize)
	}

	b.slots[index] = bundleSlot{}
}

// Pack emits the bundle as a single package blob (SPEC_FULL.md section 6).
func (b *Bundle) Pack() ([]byte, error) {
	footer := make([]byte, b.activeCount*entryMetaLen+b.totalCompressedSize+entryCountLen)
	putUint16(footer[0:entryCountLen], uint16(b.activeCount))

	metaOffset := entryCountLen
	dataOffset := entryCountLen + b.activeCount*entryMetaLen

	for _, s := range b.slots {
		if !s.active {
			continue
		}

		putInt32(footer[metaOffset:metaOffset+4], s.nameHash)
		putUint24(footer[metaOffset+4:metaOffset+7], s.uncompressedSize)
		putUint24(footer[metaOffset+7:metaOffset+10], s.compressedSize)
		metaOffset += entryMetaLen
	}

	cursor := dataOffset
	for _, s := range b.slots {
		if !s.active {
			continue
		}

		copy(footer[cursor:cursor+len(s.payload)], s.payload)
		cursor += len(s.payload)
	}

	footerOut := footer
	if b.wholyCompressed {
		compressed, err := bzip2Compress(footer, b.level)
		if err != nil {
			return nil, err
		}

		footerOut = compressed
	}

	out := make([]byte, packageHeaderLen, packageHeaderLen+len(footerOut))
	putUint24(out[0:3], uint32(len(footer)))
	putUint24(out[3:6], uint32(len(footerOut)))
	out = append(out, footerOut...)

	return out, nil
}

// EOF
