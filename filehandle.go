// TekkFS - Random-access file handle capability
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

import "os"

// FileHandle is the capability BlockStore needs from an already-opened
// random-access file: positioned read/write of byte ranges and a length
// query. *os.File provides ReadAt, WriteAt and Close; NewOSFileHandle wraps
// it and adds Len on top of Stat.
//
// Opening and lifetime management of the underlying file are external to
// this package; BlockStore only ever receives an already-open handle.
type FileHandle interface {
	ReadAt(buf []byte, off int64) (int, error)
	WriteAt(buf []byte, off int64) (int, error)
	Len() (int64, error)
	Close() error
}

// osFileHandle adapts *os.File to FileHandle.
type osFileHandle struct {
	*os.File
}

// NewOSFileHandle wraps an already-opened *os.File as a FileHandle.
func NewOSFileHandle(f *os.File) FileHandle {
	return osFileHandle{f}
}

func (h osFileHandle) Len() (int64, error) {
	st, err := h.File.Stat()
	if err != nil {
		return 0, err
	}

	return st.Size(), nil
}

// EOF
