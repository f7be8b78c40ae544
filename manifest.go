// TekkFS - Manifest export
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

// Manifest export: flatten a Package's entry metadata into a single-level
// map, suitable for JSON output from the CLI's list verb.
//
// Grounded on the teacher's json.go, which used nqd/flat to flatten
// arbitrarily nested ingested JSON into the KV store's flat key space. Here
// the roles are reversed: the source is already flat Go structs (EntryMeta),
// and flat.Flatten is used to turn a slice of them into the nested
// "entries.N.field" shape a manifest file naturally wants, without hand
// writing that indexing logic.

package tekkfs

import (
	"encoding/json"
	"fmt"

	"github.com/nqd/flat" // third party library, same as the teacher
)

// ManifestEntry is one entry's description in a manifest.
type ManifestEntry struct {
	NameHash         int32  `json:"name_hash"`
	UncompressedSize uint32 `json:"uncompressed_size"`
	CompressedSize   uint32 `json:"compressed_size"`
}

// Manifest describes a single archive: whether its package is wholly
// compressed, and its entries in declaration order.
type Manifest struct {
	ArchiveID       uint32          `json:"archive_id"`
	WhollyCompressed bool           `json:"wholly_compressed"`
	Entries         []ManifestEntry `json:"entries"`
}

// BuildManifest summarizes pkg's entry table under archiveID, without
// decompressing any entry bodies.
func BuildManifest(archiveID uint32, pkg *Package) Manifest {
	metas := pkg.Entries()
	entries := make([]ManifestEntry, len(metas))

	for i, m := range metas {
		entries[i] = ManifestEntry{
			NameHash:         m.NameHash,
			UncompressedSize: m.UncompressedSize,
			CompressedSize:   m.CompressedSize,
		}
	}

	return Manifest{
		ArchiveID:        archiveID,
		WhollyCompressed: pkg.IsWhollyCompressed(),
		Entries:          entries,
	}
}

// FlattenManifest renders m as a single-level "dotted key" map, the shape
// the CLI's `list --flat` output and the old Haystack KV ingestion path both
// ultimately share: arbitrary nesting collapsed to dot-joined string keys.
func FlattenManifest(m Manifest) (map[string]interface{}, error) {
	blob, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("tekkfs: marshal manifest: %w", err)
	}

	var nested map[string]interface{}
	if err := json.Unmarshal(blob, &nested); err != nil {
		return nil, fmt.Errorf("tekkfs: unmarshal manifest: %w", err)
	}

	flatmap, err := flat.Flatten(nested, &flat.Options{
		Delimiter: ".",
		MaxDepth:  1000,
		Safe:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("tekkfs: flatten manifest: %w", err)
	}

	return flatmap, nil
}

// EOF
