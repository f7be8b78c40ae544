// TekkFS - Store convenience wrapper
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

import "fmt"

// Store composes a BlockStore with the package codec for the common
// id + name -> entry bytes path (SPEC_FULL.md section 2). It has no
// invariants of its own beyond delegating to its two leaf components in
// order, and holds no state besides the BlockStore it wraps.
type Store struct {
	Blocks *BlockStore
}

// NewStore wraps an existing BlockStore.
func NewStore(blocks *BlockStore) *Store {
	return &Store{Blocks: blocks}
}

// GetEntry resolves archiveID -> blob via the BlockStore, parses it as a
// package, and returns the named entry's bytes.
func (s *Store) GetEntry(archiveID uint32, name string) ([]byte, error) {
	blob, err := s.Blocks.GetErr(archiveID)
	if err != nil {
		return nil, fmt.Errorf("tekkfs: archive %d: %w", archiveID, err)
	}

	pkg, err := ParsePackage(blob)
	if err != nil {
		return nil, fmt.Errorf("tekkfs: archive %d: %w", archiveID, err)
	}

	data, err := pkg.GetErr(name)
	if err != nil {
		return nil, fmt.Errorf("tekkfs: archive %d entry %q: %w", archiveID, name, err)
	}

	return data, nil
}

// PutPackage packs bundle and writes the resulting blob as archiveID.
func (s *Store) PutPackage(archiveID uint32, bundle *Bundle) error {
	blob, err := bundle.Pack()
	if err != nil {
		return fmt.Errorf("tekkfs: pack archive %d: %w", archiveID, err)
	}

	if err := s.Blocks.PutErr(blob, archiveID, uint32(len(blob))); err != nil {
		return fmt.Errorf("tekkfs: put archive %d: %w", archiveID, err)
	}

	return nil
}

// EOF
