package tekkfs

import "testing"

func TestHashName(t *testing.T) {
	// Hand-computed per SPEC_FULL.md section 8's quantified invariants and
	// concrete scenario 3 ("MODEL.DAT"), in the style of the teacher's
	// TestFindOrAddKeyhash (dictionary_test.go): parallel name/hash slices.
	names := []string{"", "A", "foo", "bar", "Foo", "MODEL.DAT"}
	hashes := []int32{0, 33, 144312, 128577, 144312, -1772718092}

	for i := range names {
		if got := HashName(names[i]); got != hashes[i] {
			t.Errorf("HashName(%q) = %v, want %v", names[i], got, hashes[i])
		}
	}
}

func TestHashNameCaseInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"config.json", "CONFIG.JSON"},
		{"Foo", "foo"},
		{"MixedCase", "mixedcase"},
	}

	for _, p := range pairs {
		if HashName(p[0]) != HashName(p[1]) {
			t.Errorf("HashName(%q) != HashName(%q), want equal", p[0], p[1])
		}
	}
}

func TestHashNameASCIIOnlyFold(t *testing.T) {
	// strings.ToUpper would case-fold beyond ASCII; HashName must not, per
	// SPEC_FULL.md section 3 invariant 5 ("ASCII-upper-cased form").
	if HashName("a") != HashName("A") {
		t.Errorf("HashName(%q) != HashName(%q), want equal", "a", "A")
	}

	// A non-ASCII rune must pass through unchanged rather than being
	// Unicode-folded, so HashName("é") must differ from the hash of its
	// Unicode upper-case form "É".
	if HashName("é") == HashName("É") {
		t.Errorf("HashName should not Unicode-fold non-ASCII runes")
	}
}

// EOF
