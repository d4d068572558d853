// Package zstring implements the Text Encoder and its inverse (spec.md
// section 4.1): Z-character encoding/decoding for strings and object
// short names. Adapted from the reference interpreter's
// zstring.ReadZString, which already carried the shift/alphabet
// bookkeeping this module needs for v3-8 - but that function only
// ever decoded, panicked on abbreviations, and had no ZSCII-escape or
// encode-direction counterpart. This module keeps the same
// zchr-stream-then-decode structure and fills in both gaps, so that
// Decode can round-trip what Encode produced (the validator itself
// checks only the header and does not decode strings).
package zstring

import "encoding/binary"

const (
	zchrSpace       = 0
	zchrAbbrev1     = 1
	zchrAbbrev2     = 2
	zchrAbbrev3     = 3
	zchrShiftA1     = 4
	zchrShiftA2     = 5
	zchrZsciiEscape = 6
)

// Encode produces the Z-character encoding of text (spec.md section
// 4.1): three 5-bit Z-characters packed per 16-bit big-endian word,
// the final word's bit 15 set. Characters outside the three alphabets
// are emitted as a 4-Z-character ZSCII escape. Empty input encodes to
// exactly the two bytes 0x80 0x00 (spec.md Testable Properties,
// Boundary behaviors, and scenario S4).
func Encode(text []rune, version uint8, alphabets *Alphabets) []byte {
	if len(text) == 0 {
		return []byte{0x80, 0x00}
	}

	var zchars []uint8
	for _, r := range text {
		zchars = append(zchars, encodeRune(r, alphabets)...)
	}

	for len(zchars)%3 != 0 {
		zchars = append(zchars, 5) // pad
	}

	out := make([]byte, 0, len(zchars)/3*2)
	for i := 0; i < len(zchars); i += 3 {
		word := uint16(zchars[i])<<10 | uint16(zchars[i+1])<<5 | uint16(zchars[i+2])
		if i+3 >= len(zchars) {
			word |= 0x8000
		}
		out = append(out, byte(word>>8), byte(word))
	}
	return out
}

func encodeRune(r rune, alphabets *Alphabets) []uint8 {
	if zc, alphabet, ok := lookupZchr(r, alphabets); ok {
		switch alphabet {
		case 0:
			return []uint8{zc}
		case 1:
			return []uint8{zchrShiftA1, zc}
		default:
			return []uint8{zchrShiftA2, zc}
		}
	}

	code := uint8(r)
	if zscii, ok := unicodeToZscii(r, nil, 0); ok {
		code = zscii
	}
	hi := (code >> 5) & 0b11111
	lo := code & 0b11111
	return []uint8{zchrShiftA2, zchrZsciiEscape, hi, lo}
}

// lookupZchr finds r's Z-character and the alphabet it belongs to (0,
// 1, or 2), reporting false when r has no representation in any of
// the three alphabets and must fall back to a ZSCII escape.
func lookupZchr(r rune, alphabets *Alphabets) (zc uint8, alphabet int, ok bool) {
	switch {
	case r == ' ':
		return zchrSpace, 0, true
	case r >= 'a' && r <= 'z':
		if zc, ok := alphabets.zchrFor(&alphabets.A0, byte(r)); ok {
			return zc, 0, true
		}
	case r >= 'A' && r <= 'Z':
		if zc, ok := alphabets.zchrFor(&alphabets.A1, byte(r)); ok {
			return zc, 1, true
		}
	case r >= 0 && r < 256:
		if zc, ok := alphabets.zchrFor(&alphabets.A2, byte(r)); ok {
			return zc, 2, true
		}
	}
	return 0, 0, false
}

// Representable reports whether r encodes directly in one of the
// three alphabets, without falling back to a ZSCII escape. The
// dictionary encoder uses this: the Standard forbids ZSCII escapes in
// dictionary entries, unlike ordinary string encoding.
func Representable(r rune, alphabets *Alphabets) bool {
	_, _, ok := lookupZchr(r, alphabets)
	return ok
}

// Decode reads one Z-encoded string starting at addr and returns its
// text plus the number of bytes consumed (always a multiple of 2).
// abbreviationTableBase of 0 disables abbreviation expansion (used
// when decoding an abbreviation string itself, which may not
// recursively reference another abbreviation).
func Decode(memory []byte, addr uint32, version uint8, alphabets *Alphabets, abbreviationTableBase uint16) (string, uint32) {
	zchrStream, bytesRead := readZchrStream(memory, addr)

	var out []rune
	currentAlphabet := 0
	nextAlphabet := 0

	for i := 0; i < len(zchrStream); i++ {
		zchr := zchrStream[i]
		currentAlphabet = nextAlphabet
		nextAlphabet = 0

		switch {
		case zchr == zchrSpace:
			out = append(out, ' ')
		case zchr == zchrAbbrev1 || zchr == zchrAbbrev2 || zchr == zchrAbbrev3:
			if abbreviationTableBase == 0 || i+1 >= len(zchrStream) {
				continue
			}
			x := zchrStream[i+1]
			i++
			abbr := FindAbbreviation(version, abbreviationTableBase, memory, alphabets, zchr, x)
			out = append(out, []rune(abbr)...)
		case zchr == zchrShiftA1:
			nextAlphabet = 1
		case zchr == zchrShiftA2:
			nextAlphabet = 2
		case currentAlphabet == 2 && zchr == zchrZsciiEscape:
			if i+2 >= len(zchrStream) {
				return string(out), bytesRead // an escape cut off by the end of the string is dropped
			}
			code := zchrStream[i+1]<<5 | zchrStream[i+2]
			i += 2
			if r, ok := ZsciiToUnicode(code, nil, 0); ok {
				out = append(out, r)
			} else {
				out = append(out, rune(code))
			}
		default:
			out = append(out, rune(alphabetChar(alphabets, currentAlphabet, zchr)))
		}
	}

	return string(out), bytesRead
}

// readZchrStream converts the 16-bit words starting at addr into a
// flat stream of 5-bit Z-characters, stopping at the first word with
// bit 15 set.
func readZchrStream(memory []byte, addr uint32) ([]uint8, uint32) {
	var stream []uint8
	bytesRead := uint32(0)
	ptr := addr

	for {
		word := binary.BigEndian.Uint16(memory[ptr : ptr+2])
		bytesRead += 2
		ptr += 2

		stream = append(stream,
			uint8((word>>10)&0b11111),
			uint8((word>>5)&0b11111),
			uint8(word&0b11111),
		)

		if word&0x8000 != 0 {
			break
		}
	}

	return stream, bytesRead
}

func alphabetChar(alphabets *Alphabets, alphabet int, zchr uint8) byte {
	switch alphabet {
	case 0:
		return alphabets.A0[zchr-6]
	case 1:
		return alphabets.A1[zchr-6]
	default:
		return alphabets.A2[zchr-6]
	}
}
