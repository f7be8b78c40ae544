package tekkfs

import (
	"bytes"
	"errors"
	"testing"
)

func newTestStore() *BlockStore {
	return NewBlockStore(0, newMemFileHandle(), newMemFileHandle())
}

func TestBlockStorePutGetRoundTrip(t *testing.T) {
	s := newTestStore()

	payload := bytes.Repeat([]byte("tekk"), 200) // spans multiple 512-byte blocks

	if !s.Put(payload, 7, uint32(len(payload))) {
		t.Fatalf("Put failed")
	}

	got, ok := s.Get(7)
	if !ok {
		t.Fatalf("Get failed")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

func TestBlockStoreGetMissingArchive(t *testing.T) {
	s := newTestStore()

	if _, ok := s.Get(99); ok {
		t.Fatalf("Get of never-written archive should fail")
	}
}

func TestBlockStoreOverwriteShrink(t *testing.T) {
	s := newTestStore()

	big := bytes.Repeat([]byte("X"), 1200)
	small := []byte("small")

	if !s.Put(big, 3, uint32(len(big))) {
		t.Fatalf("Put big failed")
	}
	if !s.Put(small, 3, uint32(len(small))) {
		t.Fatalf("Put small failed")
	}

	got, ok := s.Get(3)
	if !ok || !bytes.Equal(got, small) {
		t.Fatalf("overwrite mismatch: got %q, want %q", got, small)
	}
}

func TestBlockStoreOverwriteGrow(t *testing.T) {
	s := newTestStore()

	small := []byte("small")
	big := bytes.Repeat([]byte("Y"), 1200)

	if !s.Put(small, 3, uint32(len(small))) {
		t.Fatalf("Put small failed")
	}
	if !s.Put(big, 3, uint32(len(big))) {
		t.Fatalf("Put big failed")
	}

	got, ok := s.Get(3)
	if !ok || !bytes.Equal(got, big) {
		t.Fatalf("overwrite-grow mismatch: got %d bytes, want %d", len(got), len(big))
	}
}

func TestBlockStoreCrossIndexIsolation(t *testing.T) {
	mainA, idxA := newMemFileHandle(), newMemFileHandle()

	a := NewBlockStore(1, mainA, idxA)
	payload := []byte("belongs to index 1")
	if !a.Put(payload, 5, uint32(len(payload))) {
		t.Fatalf("Put failed")
	}

	// A second store, same files, but stamped with a different index id,
	// must refuse to read a's blocks as its own.
	b := NewBlockStore(2, mainA, idxA)
	if _, err := b.GetErr(5); !errors.Is(err, ErrChainCorrupt) {
		t.Fatalf("cross-index read: got err %v, want ErrChainCorrupt", err)
	}
}

func TestBlockStoreClosedRejectsOps(t *testing.T) {
	s := newTestStore()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := s.PutErr([]byte("x"), 1, 1); !errors.Is(err, ErrClosed) {
		t.Fatalf("PutErr after Close: got %v, want ErrClosed", err)
	}
	if _, err := s.GetErr(1); !errors.Is(err, ErrClosed) {
		t.Fatalf("GetErr after Close: got %v, want ErrClosed", err)
	}
}

func TestBlockStoreConcurrentReadsWithPerCallScratch(t *testing.T) {
	main, index := newMemFileHandle(), newMemFileHandle()
	writer := NewBlockStore(0, main, index)

	payload := bytes.Repeat([]byte("concurrent"), 100)
	if !writer.Put(payload, 1, uint32(len(payload))) {
		t.Fatalf("Put failed")
	}

	reader := NewBlockStore(0, main, index, WithPerCallScratch())

	done := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		go func() {
			got, ok := reader.Get(1)
			done <- ok && bytes.Equal(got, payload)
		}()
	}

	for i := 0; i < 8; i++ {
		if !<-done {
			t.Fatalf("concurrent Get produced a wrong or failed read")
		}
	}
}

// chainLength walks archiveID's block chain directly (bypassing Get's
// payload copy) and counts how many blocks it is made of.
func chainLength(t *testing.T, s *BlockStore, archiveID uint32) int {
	t.Helper()

	idxBuf := make([]byte, indexEntrySize)
	if _, err := s.index.ReadAt(idxBuf, int64(archiveID)*indexEntrySize); err != nil {
		t.Fatalf("read index entry: %v", err)
	}

	n := 0
	block := decodeIndexEntry(idxBuf).firstBlock

	for block != 0 {
		n++

		hdrBuf := make([]byte, blockHeaderLen)
		if _, err := s.main.ReadAt(hdrBuf, int64(block)*blockSize); err != nil {
			t.Fatalf("read block %d header: %v", block, err)
		}

		block = decodeBlockHeader(hdrBuf).nextBlock
	}

	return n
}

// TestBlockStoreChunkBoundaries checks chain length at the exact byte sizes
// where a blob spills from one 512-byte payload chunk into the next
// (SPEC_FULL.md section 8).
func TestBlockStoreChunkBoundaries(t *testing.T) {
	cases := []struct {
		size      int
		wantChain int
	}{
		{512, 1},
		{513, 2},
		{1024, 2},
		{1025, 3},
	}

	for _, c := range cases {
		s := newTestStore()
		payload := bytes.Repeat([]byte{0xBB}, c.size)

		if !s.Put(payload, 9, uint32(len(payload))) {
			t.Fatalf("size %d: Put failed", c.size)
		}

		got, ok := s.Get(9)
		if !ok || !bytes.Equal(got, payload) {
			t.Fatalf("size %d: round trip mismatch", c.size)
		}

		if n := chainLength(t, s, 9); n != c.wantChain {
			t.Errorf("size %d: chain length = %d, want %d", c.size, n, c.wantChain)
		}
	}
}

// TestBlockStoreByteLayoutScenario1 replicates SPEC_FULL.md section 8's
// concrete scenario 1 byte-for-byte: Put([0xAA]*700, id=3) against a fresh
// store must produce these exact header bytes at these exact main-file
// offsets.
func TestBlockStoreByteLayoutScenario1(t *testing.T) {
	main, index := newMemFileHandle(), newMemFileHandle()
	s := NewBlockStore(0, main, index)

	payload := bytes.Repeat([]byte{0xAA}, 700)
	if !s.Put(payload, 3, uint32(len(payload))) {
		t.Fatalf("Put failed")
	}

	want1 := []byte{0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00}
	if got := main.buf[520:528]; !bytes.Equal(got, want1) {
		t.Errorf("header at offset 520 = % X, want % X", got, want1)
	}

	want2 := []byte{0x00, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}
	if got := main.buf[1040:1048]; !bytes.Equal(got, want2) {
		t.Errorf("header at offset 1040 = % X, want % X", got, want2)
	}
}

// TestBlockStoreCorruptionDetected flips a single byte in a written block's
// header -- owning_archive_id, chunk_index or owning_index_id -- and checks
// that Get notices, instead of only exercising the weaker cross-instance
// check TestBlockStoreCrossIndexIsolation performs.
func TestBlockStoreCorruptionDetected(t *testing.T) {
	const payloadSize = 700 // spans two blocks; first block header at offset 520
	const firstHeaderOffset = 520

	fields := []struct {
		name string
		off  int // offset within the 8-byte header
	}{
		{"owning_archive_id", 0},
		{"chunk_index", 2},
		{"owning_index_id", 7},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			main, index := newMemFileHandle(), newMemFileHandle()
			s := NewBlockStore(0, main, index)

			payload := bytes.Repeat([]byte{0xCC}, payloadSize)
			if !s.Put(payload, 4, uint32(len(payload))) {
				t.Fatalf("Put failed")
			}

			main.buf[firstHeaderOffset+f.off] ^= 0xFF

			if _, ok := s.Get(4); ok {
				t.Fatalf("Get should fail after corrupting %s", f.name)
			}

			if _, err := s.GetErr(4); !errors.Is(err, ErrChainCorrupt) {
				t.Fatalf("GetErr after corrupting %s: got %v, want ErrChainCorrupt", f.name, err)
			}
		})
	}
}

// TestBlockStoreZeroLengthRoundTrip checks that a deliberately zero-length
// Put round-trips as present-but-empty, not absent.
func TestBlockStoreZeroLengthRoundTrip(t *testing.T) {
	s := newTestStore()

	if !s.Put(nil, 11, 0) {
		t.Fatalf("Put of zero-length archive failed")
	}

	got, ok := s.Get(11)
	if !ok {
		t.Fatalf("Get of zero-length archive should report present")
	}
	if got == nil {
		t.Fatalf("Get should return a non-nil empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("Get returned %d bytes, want 0", len(got))
	}
}

// TestBlockStorePutIOFailureMidChain simulates the main file's underlying
// device failing partway through a multi-block Put, then checks that Get
// reports the archive absent instead of panicking or returning partial data.
func TestBlockStorePutIOFailureMidChain(t *testing.T) {
	main, index := newMemFileHandle(), newMemFileHandle()

	// 700 bytes needs two blocks: header+payload writes for the first
	// block succeed, the second block's header write is where it dies.
	faultyMain := newFaultyFileHandle(main, 2)
	s := NewBlockStore(0, faultyMain, index)

	payload := bytes.Repeat([]byte{0xDD}, 700)
	if s.Put(payload, 6, uint32(len(payload))) {
		t.Fatalf("Put should fail when the underlying device fails mid-chain")
	}

	if _, ok := s.Get(6); ok {
		t.Fatalf("Get should report the archive absent after a failed Put")
	}
}

// EOF
