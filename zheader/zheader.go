// Package zheader implements the Header Emitter and Checksum pass
// (spec.md section 4.6) and its inverse, a header reader adapted from
// the reference interpreter's zcore.LoadCore (zcore/core.go). Reading
// and writing share the same 64-byte field layout so that
// Load(Write(fields)) reproduces the configured header fields exactly
// (spec.md Testable Properties, invariant 6).
package zheader

import (
	"encoding/binary"
	"fmt"

	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zversion"
)

// Header mirrors the fields of a 64-byte Z-Machine header this module
// cares about, in both directions. Fields the reference interpreter
// tracked purely for the runtime (interpreter number/version, screen
// geometry, terminating characters, player login name, ...) are kept
// here too, since Write needs somewhere to put non-zero defaults and
// Load needs somewhere to put what it finds when analyze points at a
// real story file.
type Header struct {
	Version               uint8
	Flags1                uint8
	ReleaseNumber         uint16
	HighMemoryBase        uint16
	InitialPC             uint16 // packed start-routine address
	DictionaryAddress     uint16
	ObjectTableAddress    uint16
	GlobalVariableAddress uint16
	StaticMemoryBase      uint16
	Flags2                uint16
	Serial                [6]byte
	AbbreviationTableBase uint16
	ScaledFileLength      uint16
	Checksum              uint16

	InterpreterNumber  uint8
	InterpreterVersion uint8
	ScreenHeightLines  uint8
	ScreenWidthChars   uint8
	ScreenWidthUnits   uint16
	ScreenHeightUnits  uint16
	FontWidth          uint8
	FontHeight         uint8
	RoutinesOffset     uint16
	StringOffset       uint16
	DefaultBackground  uint8
	DefaultForeground  uint8

	AlphabetTableAddress             uint16
	ExtensionTableBaseAddress        uint16
	UnicodeExtensionTableBaseAddress uint16
}

// Fields is the subset of Header the Layout Planner has settled by
// the time it calls Write: the rest (screen geometry, interpreter
// identification) are ambient defaults Write fills in itself, the way
// zcore.LoadCore's interpreter claimed a fixed IBM-PC identity and a
// fixed 80x25 screen regardless of what story file it loaded.
type Fields struct {
	Version               uint8
	ReleaseNumber         uint16
	Serial                [6]byte
	HighMemoryBase        uint16
	InitialPC             uint16
	DictionaryAddress     uint16
	ObjectTableAddress    uint16
	GlobalVariableAddress uint16
	StaticMemoryBase      uint16
	AbbreviationTableBase uint16
	TotalLength           int
}

// Write renders the 64-byte header for fields, computing the
// length-scaled field from TotalLength (spec.md section 9's Open
// Question resolution: always the actual length, never an estimate)
// and leaving the checksum bytes (28-29) zero - callers patch those
// with Checksum after the full image is known, per spec.md section
// 4.6's "computed last."
func Write(fields Fields) ([]byte, error) {
	profile, err := zversion.For(fields.Version)
	if err != nil {
		return nil, err
	}

	scaled := fields.TotalLength / int(profile.LengthScale)
	if scaled > 0xFFFF {
		return nil, zerrors.New(zerrors.MemoryLayoutOverflow, "header",
			fmt.Sprintf("scaled file length %d exceeds 16 bits", scaled))
	}

	buf := make([]byte, 64)
	buf[0] = fields.Version
	buf[1] = 0 // flags 1: interpreter-set, emit 0

	binary.BigEndian.PutUint16(buf[2:4], fields.ReleaseNumber)
	binary.BigEndian.PutUint16(buf[4:6], fields.HighMemoryBase)
	binary.BigEndian.PutUint16(buf[6:8], fields.InitialPC)
	binary.BigEndian.PutUint16(buf[8:10], fields.DictionaryAddress)
	binary.BigEndian.PutUint16(buf[10:12], fields.ObjectTableAddress)
	binary.BigEndian.PutUint16(buf[12:14], fields.GlobalVariableAddress)
	binary.BigEndian.PutUint16(buf[14:16], fields.StaticMemoryBase)
	binary.BigEndian.PutUint16(buf[16:18], profile.Flags2Default)

	copy(buf[18:24], fields.Serial[:])

	// The Layout Planner always reserves a real (possibly zero-entry)
	// abbreviations table and supplies its address here; spec.md
	// section 4.6 offers "point at dictionary if none" as an
	// alternative, but this module always has a real table to point
	// at instead (SPEC_FULL.md Open Question 4).
	binary.BigEndian.PutUint16(buf[24:26], fields.AbbreviationTableBase)
	binary.BigEndian.PutUint16(buf[26:28], uint16(scaled))
	// buf[28:30] (checksum) left zero; patched by Checksum.

	// Interpreter-facing fields (30-63): fixed, conservative defaults,
	// matching zcore.LoadCore's own hardcoded screen geometry and
	// interpreter identity (an emitted file has no running interpreter
	// yet, so these describe the emitter's own conservative baseline).
	buf[0x1e] = 6 // interpreter number: IBM PC, closest stable match
	buf[0x1f] = 1 // interpreter version
	buf[0x20] = 25
	buf[0x21] = 80
	buf[0x23] = 80
	buf[0x25] = 25
	buf[0x26] = 1
	buf[0x27] = 1
	buf[0x32] = 1 // standard revision 1.
	buf[0x33] = 0

	return buf, nil
}

// Load parses the 64-byte header at the front of image, the inverse of
// Write. Adapted from zcore.LoadCore, which read the same fields out of
// a freshly loaded story file; this version stops at the header proper
// and leaves runtime state (the running interpreter's own screen mode,
// current window, etc) to whatever loads the rest of the file.
func Load(image []byte) (Header, error) {
	if len(image) < 64 {
		return Header{}, zerrors.New(zerrors.MemoryLayoutOverflow, "header", "image shorter than 64 bytes")
	}

	h := Header{
		Version:               image[0],
		Flags1:                image[1],
		ReleaseNumber:         binary.BigEndian.Uint16(image[2:4]),
		HighMemoryBase:        binary.BigEndian.Uint16(image[4:6]),
		InitialPC:             binary.BigEndian.Uint16(image[6:8]),
		DictionaryAddress:     binary.BigEndian.Uint16(image[8:10]),
		ObjectTableAddress:    binary.BigEndian.Uint16(image[10:12]),
		GlobalVariableAddress: binary.BigEndian.Uint16(image[12:14]),
		StaticMemoryBase:      binary.BigEndian.Uint16(image[14:16]),
		Flags2:                binary.BigEndian.Uint16(image[16:18]),
		AbbreviationTableBase: binary.BigEndian.Uint16(image[24:26]),
		ScaledFileLength:      binary.BigEndian.Uint16(image[26:28]),
		Checksum:              binary.BigEndian.Uint16(image[28:30]),

		InterpreterNumber:  image[0x1e],
		InterpreterVersion: image[0x1f],
		ScreenHeightLines:  image[0x20],
		ScreenWidthChars:   image[0x21],
		ScreenWidthUnits:   binary.BigEndian.Uint16(image[0x22:0x24]),
		ScreenHeightUnits:  binary.BigEndian.Uint16(image[0x24:0x26]),
		FontWidth:          image[0x26],
		FontHeight:         image[0x27],
		RoutinesOffset:     binary.BigEndian.Uint16(image[0x28:0x2a]),
		StringOffset:       binary.BigEndian.Uint16(image[0x2a:0x2c]),
		DefaultBackground:         image[0x2c],
		DefaultForeground:         image[0x2d],
		AlphabetTableAddress:      binary.BigEndian.Uint16(image[0x34:0x36]),
		ExtensionTableBaseAddress: binary.BigEndian.Uint16(image[0x36:0x38]),
	}
	copy(h.Serial[:], image[18:24])

	if h.ExtensionTableBaseAddress != 0 {
		base := uint32(h.ExtensionTableBaseAddress)
		if base+4 <= uint32(len(image)) {
			count := binary.BigEndian.Uint16(image[base : base+2])
			if count >= 3 {
				h.UnicodeExtensionTableBaseAddress = binary.BigEndian.Uint16(image[base+6 : base+8])
			}
		}
	}

	return h, nil
}

// Checksum sums image bytes 0..28 and 30..end modulo 2^16 and patches
// the result, big-endian, into bytes 28-29 (spec.md section 4.6). The
// image's own checksum bytes must be zero (or anything - they are
// excluded from the sum either way) before this call.
func Checksum(image []byte) uint16 {
	var sum uint16
	for i, b := range image {
		if i == 28 || i == 29 {
			continue
		}
		sum += uint16(b)
	}
	binary.BigEndian.PutUint16(image[28:30], sum)
	return sum
}
