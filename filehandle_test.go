package tekkfs

import "errors"

var errSimulatedWriteFailure = errors.New("tekkfs: simulated write failure")

// memFileHandle is an in-memory FileHandle for tests, avoiding any real
// file IO the way the teacher's in-memory structures let its tests avoid
// disk entirely.
type memFileHandle struct {
	buf []byte
}

func newMemFileHandle() *memFileHandle {
	return &memFileHandle{}
}

func (h *memFileHandle) ReadAt(buf []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(h.buf)) {
		return 0, nil
	}

	n := copy(buf, h.buf[off:])
	return n, nil
}

func (h *memFileHandle) WriteAt(buf []byte, off int64) (int, error) {
	end := off + int64(len(buf))
	if end > int64(len(h.buf)) {
		grown := make([]byte, end)
		copy(grown, h.buf)
		h.buf = grown
	}

	return copy(h.buf[off:end], buf), nil
}

func (h *memFileHandle) Len() (int64, error) {
	return int64(len(h.buf)), nil
}

func (h *memFileHandle) Close() error {
	return nil
}

// faultyFileHandle wraps a FileHandle and fails every WriteAt call once more
// than writesBeforeFailure writes have already gone through, simulating a
// device that dies partway through a multi-block Put.
type faultyFileHandle struct {
	FileHandle
	writesBeforeFailure int
	writes              int
}

func newFaultyFileHandle(h FileHandle, writesBeforeFailure int) *faultyFileHandle {
	return &faultyFileHandle{FileHandle: h, writesBeforeFailure: writesBeforeFailure}
}

func (h *faultyFileHandle) WriteAt(buf []byte, off int64) (int, error) {
	h.writes++
	if h.writes > h.writesBeforeFailure {
		return 0, errSimulatedWriteFailure
	}

	return h.FileHandle.WriteAt(buf, off)
}

// EOF
