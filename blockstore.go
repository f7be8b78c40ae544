// TekkFS - Block-chained file store
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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// BlockStore maps archive_id -> byte blob over a pair of flat files: a dense
// index table (index_file) and a block-chunked data file (main_file). See
// SPEC_FULL.md section 4.1 for the on-disk layout and algorithm.
//
// A BlockStore is safe for one writer at a time; Put serializes internally.
// Get is also serialized behind the same lock unless WithPerCallScratch is
// used, in which case concurrent reads are safe too (SPEC_FULL.md section 5).
type BlockStore struct {
	indexID uint8
	main    FileHandle
	index   FileHandle

	mu      sync.Mutex
	scratch []byte // blockSize-byte buffer shared by Put and (by default) Get

	perCallScratch bool
	closed         atomic.Bool

	// sessionID has no cryptographic or integrity role; it's purely a
	// correlation tag for log lines emitted against this store instance.
	sessionID uuid.UUID
}

// Option configures a BlockStore at construction time.
type Option func(*BlockStore)

// WithPerCallScratch switches Get to allocate a fresh scratch buffer per
// call instead of sharing the store's buffer under its mutex. This is the
// documented opt-in for concurrent reads (SPEC_FULL.md section 5); Put
// always serializes through the shared buffer regardless of this option.
func WithPerCallScratch() Option {
	return func(s *BlockStore) {
		s.perCallScratch = true
	}
}

// NewBlockStore constructs a BlockStore over already-opened main and index
// file handles. indexID is stamped into every block header written by this
// store and checked on every block read, to detect cross-index corruption.
func NewBlockStore(indexID uint8, main, index FileHandle, opts ...Option) *BlockStore {
	s := &BlockStore{
		indexID:   indexID,
		main:      main,
		index:     index,
		scratch:   make([]byte, blockSize),
		sessionID: uuid.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SessionID is a non-cryptographic identifier for this BlockStore instance,
// useful for correlating log lines across a batch of operations.
func (s *BlockStore) SessionID() uuid.UUID {
	return s.sessionID
}

type scratchLease struct {
	buf     []byte
	release func()
}

func (s *BlockStore) leaseScratch() scratchLease {
	if s.perCallScratch {
		return scratchLease{buf: make([]byte, blockSize), release: func() {}}
	}

	s.mu.Lock()
	return scratchLease{buf: s.scratch, release: s.mu.Unlock}
}

// isNegative24 reports whether a 24-bit field, if interpreted as a signed
// integer, would be negative. Retained as a defensive guard per
// SPEC_FULL.md section 9; real sizes never legitimately reach this range
// within the tested workloads.
func isNegative24(v uint32) bool {
	return v&0x800000 != 0
}

// Get returns the archive stored under archiveID, or (nil, false) on any
// validation failure or IO error -- failure is conflated with absence, per
// SPEC_FULL.md section 7. Use GetErr to distinguish failure modes.
func (s *BlockStore) Get(archiveID uint32) ([]byte, bool) {
	data, err := s.GetErr(archiveID)
	if err != nil {
		return nil, false
	}

	return data, true
}

// GetErr is Get with a distinguishable error instead of a bare absent.
func (s *BlockStore) GetErr(archiveID uint32) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	lease := s.leaseScratch()
	defer lease.release()

	buf := lease.buf

	idxBuf := buf[:indexEntrySize]
	n, err := s.index.ReadAt(idxBuf, int64(archiveID)*indexEntrySize)
	if err != nil || n < indexEntrySize {
		return nil, fmt.Errorf("%w: index entry for archive %d: %v", ErrShortRead, archiveID, err)
	}

	entry := decodeIndexEntry(idxBuf)
	if isNegative24(entry.size) {
		return nil, ErrNegativeSize
	}

	if entry.firstBlock == 0 {
		return nil, fmt.Errorf("%w: first_block=0", ErrBlockOutOfRange)
	}

	// A zero-length archive is a legitimate Put, not a hole: its
	// first_block was stamped non-zero at write time (see putAttempt) even
	// though no block was ever chained for it, so there is nothing to walk.
	if entry.size == 0 {
		return []byte{}, nil
	}

	mainLen, err := s.main.Len()
	if err != nil {
		return nil, err
	}
	maxBlock := uint32(mainLen / blockSize)

	if entry.firstBlock > maxBlock {
		return nil, fmt.Errorf("%w: first_block=%d max=%d", ErrBlockOutOfRange, entry.firstBlock, maxBlock)
	}

	out := make([]byte, entry.size)

	var written uint32
	chunk := uint16(0)
	block := entry.firstBlock

	for written < entry.size {
		if block == 0 {
			return nil, ErrChainCorrupt
		}

		remain := entry.size - written
		readLen := remain
		if readLen > blockPayload {
			readLen = blockPayload
		}

		blockBuf := buf[:blockHeaderLen+readLen]
		n, err := s.main.ReadAt(blockBuf, int64(block)*blockSize)
		if err != nil || uint32(n) < blockHeaderLen+readLen {
			return nil, fmt.Errorf("%w: block %d of archive %d: %v", ErrShortRead, block, archiveID, err)
		}

		hdr := decodeBlockHeader(blockBuf[:blockHeaderLen])
		if hdr.archiveID != uint16(archiveID) || hdr.chunk != chunk || hdr.indexID != s.indexID {
			return nil, fmt.Errorf("%w: block %d expected (archive=%d chunk=%d index=%d) got (archive=%d chunk=%d index=%d)",
				ErrChainCorrupt, block, archiveID, chunk, s.indexID, hdr.archiveID, hdr.chunk, hdr.indexID)
		}
		if hdr.nextBlock > maxBlock {
			return nil, fmt.Errorf("%w: next_block=%d max=%d", ErrBlockOutOfRange, hdr.nextBlock, maxBlock)
		}

		copy(out[written:written+readLen], blockBuf[blockHeaderLen:])
		written += readLen
		block = hdr.nextBlock
		chunk++
	}

	return out, nil
}

// Put writes src (of length length) as archiveID, retrying as a fresh
// append if the existing chain (if any) turns out malformed. It returns
// false on any IO error or validation failure; partial writes are not
// rolled back. Use PutErr for a distinguishable error.
func (s *BlockStore) Put(src []byte, archiveID uint32, length uint32) bool {
	return s.PutErr(src, archiveID, length) == nil
}

// PutErr is Put with a distinguishable error instead of a bare false.
func (s *BlockStore) PutErr(src []byte, archiveID uint32, length uint32) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.putAttempt(src, archiveID, length, true); err == nil {
		return nil
	}

	return s.putAttempt(src, archiveID, length, false)
}

// putAttempt implements the inner routine shared by both phases of PutErr.
// Callers must hold s.mu.
func (s *BlockStore) putAttempt(src []byte, archiveID uint32, length uint32, exists bool) error {
	buf := s.scratch

	var firstBlock uint32

	if exists {
		idxBuf := buf[:indexEntrySize]
		n, err := s.index.ReadAt(idxBuf, int64(archiveID)*indexEntrySize)
		if err != nil || n < indexEntrySize {
			return fmt.Errorf("%w: index entry for archive %d: %v", ErrShortRead, archiveID, err)
		}

		entry := decodeIndexEntry(idxBuf)

		mainLen, err := s.main.Len()
		if err != nil {
			return err
		}
		maxBlock := uint32(mainLen / blockSize)

		if entry.firstBlock == 0 || entry.firstBlock > maxBlock {
			return fmt.Errorf("%w: first_block=%d max=%d", ErrBlockOutOfRange, entry.firstBlock, maxBlock)
		}

		firstBlock = entry.firstBlock
	} else {
		mainLen, err := s.main.Len()
		if err != nil {
			return err
		}

		firstBlock = uint32((mainLen + blockSize - 1) / blockSize)
		if firstBlock < firstValidBlock {
			firstBlock = firstValidBlock
		}
	}

	idxOut := encodeIndexEntry(indexEntry{size: length, firstBlock: firstBlock})
	if _, err := s.index.WriteAt(idxOut, int64(archiveID)*indexEntrySize); err != nil {
		return err
	}

	var written uint32
	chunk := uint16(0)
	cur := firstBlock

	for written < length {
		var nextBlock uint32

		if exists {
			hdrBuf := buf[:blockHeaderLen]
			n, err := s.main.ReadAt(hdrBuf, int64(cur)*blockSize)
			if err == nil && n == blockHeaderLen {
				hdr := decodeBlockHeader(hdrBuf)

				mainLen, err := s.main.Len()
				if err != nil {
					return err
				}
				maxBlock := uint32(mainLen / blockSize)

				if hdr.archiveID != uint16(archiveID) || hdr.chunk != chunk || hdr.indexID != s.indexID {
					return fmt.Errorf("%w: block %d expected (archive=%d chunk=%d index=%d) got (archive=%d chunk=%d index=%d)",
						ErrChainCorrupt, cur, archiveID, chunk, s.indexID, hdr.archiveID, hdr.chunk, hdr.indexID)
				}
				if hdr.nextBlock > maxBlock {
					return fmt.Errorf("%w: next_block=%d max=%d", ErrBlockOutOfRange, hdr.nextBlock, maxBlock)
				}

				nextBlock = hdr.nextBlock
			}
			// Short/failed read: behave as if next_block == 0 (append from here).
		}

		if nextBlock == 0 {
			exists = false

			mainLen, err := s.main.Len()
			if err != nil {
				return err
			}

			nextBlock = uint32((mainLen + blockSize - 1) / blockSize)
			if nextBlock < firstValidBlock {
				nextBlock = firstValidBlock
			}
			if nextBlock == cur {
				nextBlock++
			}
		}

		remain := length - written
		if remain <= blockPayload {
			nextBlock = 0
		}

		hdrOut := encodeBlockHeader(blockHeader{
			archiveID: uint16(archiveID),
			chunk:     chunk,
			nextBlock: nextBlock,
			indexID:   s.indexID,
		})
		if _, err := s.main.WriteAt(hdrOut, int64(cur)*blockSize); err != nil {
			return err
		}

		payloadLen := remain
		if payloadLen > blockPayload {
			payloadLen = blockPayload
		}
		if payloadLen > 0 {
			if _, err := s.main.WriteAt(src[written:written+payloadLen], int64(cur)*blockSize+blockHeaderLen); err != nil {
				return err
			}
		}

		written += payloadLen
		cur = nextBlock
		chunk++
	}

	return nil
}

// Close releases the injected file handles. Any operation on s after Close
// is a programmer error.
func (s *BlockStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	errMain := s.main.Close()
	errIndex := s.index.Close()
	s.scratch = nil

	if errMain != nil {
		return errMain
	}

	return errIndex
}

// EOF
