// TekkFS - Package overview
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

// Package tekkfs implements the core of a content-addressed asset store in
// the style of classic game-cache file systems.
//
// Two tightly coupled subsystems make up the core:
//
//   - BlockStore persists opaque variable-length "archive" blobs into a pair
//     of flat files (an index table and a block-chunked data file), keyed by
//     a numeric archive id.
//   - The package codec (Bundle encodes, Package decodes) packs and unpacks
//     a directory-like collection of named entries into a single blob, with
//     whole-package or per-entry BZip2 compression and a compact name-hash
//     lookup.
//
// BlockStore resolves id -> blob; Package resolves blob + name -> entry
// bytes. Store composes the two for the common id + name -> entry bytes path.
//
// Process launch, the higher-level cache manager that decides which index to
// query, network delivery and any game-specific decoding of entry bytes are
// all external collaborators. File opening and lifetime are external too:
// tekkfs consumes already-opened random-access file handles.
package tekkfs
