// TekkFS - Big-endian wire-format codec helpers
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

// Big-endian multi-byte helpers for the block store's fixed-width fields.
// Grounded on the teacher's addMultibyteToData/getUintFromData helpers
// (mem2disk.go / disk2mem.go), generalized from little-endian LSB-first
// disk fields to the big-endian fields this wire format uses.

func putUint24(buf []byte, v uint32) {
	buf[0] = byte(v >> 16)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v)
}

func getUint24(buf []byte) uint32 {
	return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])
}

func putUint16(buf []byte, v uint16) {
	buf[0] = byte(v >> 8)
	buf[1] = byte(v)
}

func getUint16(buf []byte) uint16 {
	return uint16(buf[0])<<8 | uint16(buf[1])
}

func putInt32(buf []byte, v int32) {
	u := uint32(v)
	buf[0] = byte(u >> 24)
	buf[1] = byte(u >> 16)
	buf[2] = byte(u >> 8)
	buf[3] = byte(u)
}

func getInt32(buf []byte) int32 {
	u := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return int32(u)
}

// indexEntry is the decoded form of the 6-byte on-disk IndexEntry.
type indexEntry struct {
	size       uint32
	firstBlock uint32
}

func encodeIndexEntry(e indexEntry) []byte {
	buf := make([]byte, indexEntrySize)
	putUint24(buf[0:3], e.size)
	putUint24(buf[3:6], e.firstBlock)
	return buf
}

func decodeIndexEntry(buf []byte) indexEntry {
	return indexEntry{
		size:       getUint24(buf[0:3]),
		firstBlock: getUint24(buf[3:6]),
	}
}

// blockHeader is the decoded form of the 8-byte on-disk BlockHeader.
type blockHeader struct {
	archiveID uint16
	chunk     uint16
	nextBlock uint32
	indexID   uint8
}

func encodeBlockHeader(h blockHeader) []byte {
	buf := make([]byte, blockHeaderLen)
	putUint16(buf[0:2], h.archiveID)
	putUint16(buf[2:4], h.chunk)
	putUint24(buf[4:7], h.nextBlock)
	buf[7] = h.indexID
	return buf
}

func decodeBlockHeader(buf []byte) blockHeader {
	return blockHeader{
		archiveID: getUint16(buf[0:2]),
		chunk:     getUint16(buf[2:4]),
		nextBlock: getUint24(buf[4:7]),
		indexID:   buf[7],
	}
}

// EOF
