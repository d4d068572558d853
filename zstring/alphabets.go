package zstring

// Alphabets holds the three 26-entry Z-character tables (A0 lowercase,
// A1 uppercase, A2 punctuation/digits), indexed uniformly by zchr-6 so
// a single lookup path serves all three (adapted from the reference
// interpreter's a0_default/a1_default/a2_v2_default arrays in
// zstring/zstring.go, which used the same characters but three
// different array shapes and per-version special casing; this module
// only targets versions 3-8, so the v1-only a2_v1 layout is dropped).
//
// A2[0] (zchr 6) is never read as a character: it is always the
// trigger for the 10-bit ZSCII escape (spec.md section 4.1).
type Alphabets struct {
	A0 [26]byte
	A1 [26]byte
	A2 [26]byte
}

const a2Chars = "\n0123456789.,!?_#'\"/\\-:()"

// Default returns the Standard's default alphabet table.
func Default() *Alphabets {
	a := &Alphabets{}
	for i := 0; i < 26; i++ {
		a.A0[i] = 'a' + byte(i)
		a.A1[i] = 'A' + byte(i)
	}
	copy(a.A2[1:], a2Chars)
	return a
}

// LoadAlphabets returns the default alphabet table for versions below
// 5, or a custom table decoded from memory at alphabetTableAddr for
// v5+ if that address is non-zero (Standard section 3.8.5.2). memory
// is the full story file image; alphabetTableAddr is read verbatim
// from the header's "alphabet table address" extension.
func LoadAlphabets(version uint8, memory []byte, alphabetTableAddr uint16) *Alphabets {
	if version < 5 || alphabetTableAddr == 0 {
		return Default()
	}

	a := &Alphabets{}
	base := uint32(alphabetTableAddr)
	copy(a.A0[:], memory[base:base+26])
	copy(a.A1[:], memory[base+26:base+52])
	copy(a.A2[:], memory[base+52:base+78])
	return a
}

// zchrFor returns the zchr value (6..31) that encodes r in the given
// alphabet row, and whether r appears in that row at all.
func (a *Alphabets) zchrFor(row *[26]byte, r byte) (uint8, bool) {
	for i, c := range row {
		if c == r && (i != 0 || row != &a.A2) {
			return uint8(i) + 6, true
		}
	}
	return 0, false
}
