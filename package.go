// TekkFS - Archive package codec - decoder
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

// EntryMeta describes one named entry inside a Package: its name hash and
// its uncompressed/compressed sizes. offsetInRaw is only meaningful to the
// Package that owns it, so it stays unexported.
type EntryMeta struct {
	NameHash         int32
	UncompressedSize uint32
	CompressedSize   uint32

	offsetInRaw uint32
}

// Package is the read side of the archive package codec: it parses a blob
// produced by Bundle.Pack and serves named entries on demand. See
// SPEC_FULL.md section 4.2 for the parsing algorithm and wire format.
type Package struct {
	wholyCompressed bool
	entries         []EntryMeta
	raw             []byte

	// entriesCache is nil until Unpack is called; once populated, raw (and
	// the offset/size bookkeeping) may be dropped.
	entriesCache [][]byte
}

// ParsePackage parses a package blob (SPEC_FULL.md section 6, "Package blob
// format"). It does not decompress any entry bodies; entries are decoded
// lazily by Get/GetErr, or all at once by Unpack.
func ParsePackage(src []byte) (*Package, error) {
	if len(src) < packageHeaderLen {
		return nil, ErrTruncatedPackage
	}

	uSize := getUint24(src[0:3])
	cSize := getUint24(src[3:6])

	var raw []byte
	wholly := cSize != uSize

	if wholly {
		body := src[packageHeaderLen:]
		if uint32(len(body)) < cSize {
			return nil, ErrTruncatedPackage
		}

		decompressed, err := bzip2DecompressExact(body[:cSize], int(uSize))
		if err != nil {
			return nil, err
		}

		raw = decompressed
	} else {
		raw = src
	}

	base := 0
	if !wholly {
		base = packageHeaderLen
	}

	if len(raw) < base+entryCountLen {
		return nil, ErrTruncatedPackage
	}

	amount := int(getUint16(raw[base : base+entryCountLen]))
	metaBase := base + entryCountLen
	dataCursor := metaBase + amount*entryMetaLen

	if dataCursor < 0 || len(raw) < dataCursor {
		return nil, ErrTruncatedPackage
	}

	entries := make([]EntryMeta, amount)
	offset := metaBase

	for i := 0; i < amount; i++ {
		nameHash := getInt32(raw[offset : offset+4])
		uSz := getUint24(raw[offset+4 : offset+7])
		cSz := getUint24(raw[offset+7 : offset+10])
		offset += entryMetaLen

		if dataCursor+int(cSz) > len(raw) {
			return nil, ErrEntryOutOfBounds
		}

		entries[i] = EntryMeta{
			NameHash:         nameHash,
			UncompressedSize: uSz,
			CompressedSize:   cSz,
			offsetInRaw:      uint32(dataCursor),
		}
		dataCursor += int(cSz)
	}

	return &Package{wholyCompressed: wholly, entries: entries, raw: raw}, nil
}

// Entries returns a copy of the package's entry metadata, in declaration
// order. Useful for manifest listing (see manifest.go); it does not
// decompress anything.
func (p *Package) Entries() []EntryMeta {
	out := make([]EntryMeta, len(p.entries))
	copy(out, p.entries)
	return out
}

// IsWhollyCompressed reports whether the package's entire footer was
// BZip2-compressed as a single stream, as opposed to each entry
// individually.
func (p *Package) IsWhollyCompressed() bool {
	return p.wholyCompressed
}

// Get returns the bytes of the entry matching name (hashed per
// SPEC_FULL.md section 3 invariant 5), or (nil, false) if there is no match
// or the entry fails to decompress.
func (p *Package) Get(name string) ([]byte, bool) {
	data, err := p.GetErr(name)
	if err != nil {
		return nil, false
	}

	return data, true
}

// GetErr is Get with a distinguishable error: ErrEntryNotFound for no
// match, or a decompression error for a corrupt entry.
func (p *Package) GetErr(name string) ([]byte, error) {
	hash := HashName(name)

	for i := range p.entries {
		if p.entries[i].NameHash == hash {
			return p.fetch(i)
		}
	}

	return nil, ErrEntryNotFound
}

// EntryAt returns the decompressed bytes of the i'th entry, in the
// declaration order Entries() reports. Unlike GetErr, it needs no name --
// useful for callers that only have the original name hash, or no name at
// all (e.g. unpacking without the original name list).
func (p *Package) EntryAt(i int) ([]byte, error) {
	if i < 0 || i >= len(p.entries) {
		return nil, ErrEntryOutOfBounds
	}

	return p.fetch(i)
}

func (p *Package) fetch(i int) ([]byte, error) {
	if p.entriesCache != nil {
		out := make([]byte, len(p.entriesCache[i]))
		copy(out, p.entriesCache[i])
		return out, nil
	}

	e := p.entries[i]

	if p.wholyCompressed {
		// The whole footer was already decompressed into raw; entries
		// within it are plain bytes, and compressed_size == uncompressed_size.
		out := make([]byte, e.UncompressedSize)
		copy(out, p.raw[e.offsetInRaw:e.offsetInRaw+e.UncompressedSize])
		return out, nil
	}

	return bzip2DecompressExact(p.raw[e.offsetInRaw:e.offsetInRaw+e.CompressedSize], int(e.UncompressedSize))
}

// Unpack eagerly decompresses every entry and caches the result, after
// which raw (and the compressed sizes/offsets) may be dropped.
func (p *Package) Unpack() error {
	if p.entriesCache != nil {
		return nil
	}

	cache := make([][]byte, len(p.entries))

	for i, e := range p.entries {
		var b []byte

		if p.wholyCompressed {
			b = make([]byte, e.UncompressedSize)
			copy(b, p.raw[e.offsetInRaw:e.offsetInRaw+e.UncompressedSize])
		} else {
			var err error
			b, err = bzip2DecompressExact(p.raw[e.offsetInRaw:e.offsetInRaw+e.CompressedSize], int(e.UncompressedSize))
			if err != nil {
				return err
			}
		}

		cache[i] = b
	}

	p.entriesCache = cache
	p.raw = nil

	return nil
}

// EOF
