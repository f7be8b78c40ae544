package tekkfs

import (
	"bytes"
	"testing"
)

func TestBundlePackRoundTripPerEntryCompressed(t *testing.T) {
	names := []string{"a.txt", "b.dat", "c.cfg"}
	payloads := [][]byte{
		bytes.Repeat([]byte("alpha"), 50),
		bytes.Repeat([]byte("beta!"), 5),
		[]byte("tiny"),
	}

	b := NewBundle(len(names), false)
	for i, n := range names {
		if err := b.Put(i, n, payloads[i]); err != nil {
			t.Fatalf("Put(%d, %q): %v", i, n, err)
		}
	}

	blob, err := b.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	pkg, err := ParsePackage(blob)
	if err != nil {
		t.Fatalf("ParsePackage: %v", err)
	}

	if pkg.IsWhollyCompressed() {
		t.Fatalf("expected per-entry compression, got wholly compressed")
	}

	for i, n := range names {
		got, ok := pkg.Get(n)
		if !ok {
			t.Fatalf("Get(%q) failed", n)
		}
		if !bytes.Equal(got, payloads[i]) {
			t.Fatalf("Get(%q) = %q, want %q", n, got, payloads[i])
		}
	}
}

func TestBundlePackRoundTripWhollyCompressed(t *testing.T) {
	names := []string{"one", "two"}
	payloads := [][]byte{[]byte("hello world"), bytes.Repeat([]byte("z"), 300)}

	b := NewBundle(len(names), true)
	for i, n := range names {
		if err := b.Put(i, n, payloads[i]); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	blob, err := b.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	pkg, err := ParsePackage(blob)
	if err != nil {
		t.Fatalf("ParsePackage: %v", err)
	}

	if !pkg.IsWhollyCompressed() {
		t.Fatalf("expected wholly compressed package")
	}

	for i, n := range names {
		got, ok := pkg.Get(n)
		if !ok || !bytes.Equal(got, payloads[i]) {
			t.Fatalf("Get(%q) = %q, ok=%v, want %q", n, got, ok, payloads[i])
		}
	}
}

func TestPackageGetUnknownName(t *testing.T) {
	b := NewBundle(1, false)
	if err := b.Put(0, "known", []byte("data")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	blob, err := b.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	pkg, err := ParsePackage(blob)
	if err != nil {
		t.Fatalf("ParsePackage: %v", err)
	}

	if _, ok := pkg.Get("unknown"); ok {
		t.Fatalf("Get(unknown) should fail")
	}
}

// TestBundleUncompressedSizeFidelity regression-tests SPEC_FULL.md section 9:
// unlike the original reference implementation, a per-entry-compressed
// slot's UncompressedSize must reflect the true pre-compression length, not
// zero.
func TestBundleUncompressedSizeFidelity(t *testing.T) {
	payload := bytes.Repeat([]byte("q"), 4096)

	b := NewBundle(1, false)
	if err := b.Put(0, "entry", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	blob, err := b.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	pkg, err := ParsePackage(blob)
	if err != nil {
		t.Fatalf("ParsePackage: %v", err)
	}

	entries := pkg.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].UncompressedSize != uint32(len(payload)) {
		t.Fatalf("UncompressedSize = %d, want %d", entries[0].UncompressedSize, len(payload))
	}
}

func TestPackageUnpackCachesAndDropsRaw(t *testing.T) {
	b := NewBundle(2, false)
	if err := b.Put(0, "a", []byte("aaa")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := b.Put(1, "b", []byte("bbb")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	blob, err := b.Pack()
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	pkg, err := ParsePackage(blob)
	if err != nil {
		t.Fatalf("ParsePackage: %v", err)
	}

	if err := pkg.Unpack(); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	if pkg.entriesCache == nil {
		t.Fatalf("Unpack did not populate the entries cache")
	}
	if pkg.raw != nil {
		t.Fatalf("Unpack did not drop raw")
	}

	got, err := pkg.EntryAt(0)
	if err != nil || !bytes.Equal(got, []byte("aaa")) {
		t.Fatalf("EntryAt(0) = %q, err=%v", got, err)
	}
}

// EOF
