// Package zversion centralizes the version-dependent constants of the
// Z-Machine Standard (object record size, scale factors, table widths,
// feature flags) behind a single lookup table, per the Design Notes'
// instruction to parameterize hard-coded v6/v8 assumptions rather than
// scattering version switches through every component.
package zversion

import "fmt"

// Profile holds every constant whose value depends on the story file
// version. Exactly one Profile exists per version 3..8.
type Profile struct {
	Version uint8

	// ObjectRecordSize is the byte length of one object record: 9 for
	// v3, 14 for v4+.
	ObjectRecordSize uint16

	// MaxObjects is the largest legal object id: 255 for v3, 65535 for
	// v4+.
	MaxObjects uint16

	// MaxAttributes is the number of flag attributes an object carries:
	// 32 for v3, 48 for v4+.
	MaxAttributes uint16

	// PropertyDefaultsCount is the number of words in the property
	// defaults table: 31 for v3, 63 for v4+.
	PropertyDefaultsCount uint16

	// MaxPropertyDataSize is the largest legal property payload: 8
	// bytes for v3, 64 bytes for v4+.
	MaxPropertyDataSize uint8

	// DictionaryWordChars is the number of Z-characters a dictionary
	// entry is truncated/padded to: 6 for v3, 9 for v4+.
	DictionaryWordChars uint8

	// DictionaryEntryHeaderBytes is the encoded Z-word length of a
	// dictionary entry: 4 bytes for v3, 6 bytes for v4+.
	DictionaryEntryHeaderBytes uint8

	// RoutineScale and StringScale are the packed-address divisors.
	// Equal for every version except v6/v7, where routines and strings
	// pack on different scales.
	RoutineScale uint32
	StringScale  uint32

	// DefaultStaticBase and DefaultHighBase are the Layout Planner's
	// minimum region bases (spec.md section 4.5): region content can
	// push a base higher, never lower.
	DefaultStaticBase uint16
	DefaultHighBase   uint16

	// LengthScale divides the total byte count to produce the header's
	// scaled file length field.
	LengthScale uint16

	// Flags2Default is the value written to header bytes 16-17 absent
	// any model-supplied override.
	Flags2Default uint16

	// UsesPackedAddressOffsets reports whether this version's packed
	// addresses are biased by a routine/string offset (v6/v7 only).
	UsesPackedAddressOffsets bool
}

var profiles = map[uint8]Profile{
	3: {
		Version: 3, ObjectRecordSize: 9, MaxObjects: 255, MaxAttributes: 32,
		PropertyDefaultsCount: 31, MaxPropertyDataSize: 8,
		DictionaryWordChars: 6, DictionaryEntryHeaderBytes: 4,
		RoutineScale: 2, StringScale: 2,
		DefaultStaticBase: 0x4000, DefaultHighBase: 0x8000,
		LengthScale: 2, Flags2Default: 0x0040,
	},
	4: {
		Version: 4, ObjectRecordSize: 14, MaxObjects: 65535, MaxAttributes: 48,
		PropertyDefaultsCount: 63, MaxPropertyDataSize: 64,
		DictionaryWordChars: 9, DictionaryEntryHeaderBytes: 6,
		RoutineScale: 4, StringScale: 4,
		DefaultStaticBase: 0x8000, DefaultHighBase: 0xC000,
		LengthScale: 4, Flags2Default: 0x0002,
	},
	5: {
		Version: 5, ObjectRecordSize: 14, MaxObjects: 65535, MaxAttributes: 48,
		PropertyDefaultsCount: 63, MaxPropertyDataSize: 64,
		DictionaryWordChars: 9, DictionaryEntryHeaderBytes: 6,
		RoutineScale: 4, StringScale: 4,
		DefaultStaticBase: 0x8000, DefaultHighBase: 0xC000,
		LengthScale: 4, Flags2Default: 0x0002,
	},
	6: {
		Version: 6, ObjectRecordSize: 14, MaxObjects: 65535, MaxAttributes: 48,
		PropertyDefaultsCount: 63, MaxPropertyDataSize: 64,
		DictionaryWordChars: 9, DictionaryEntryHeaderBytes: 6,
		RoutineScale: 4, StringScale: 8,
		DefaultStaticBase: 0xA000, DefaultHighBase: 0xF000,
		LengthScale: 8, Flags2Default: 0x0002,
		UsesPackedAddressOffsets: true,
	},
	7: {
		Version: 7, ObjectRecordSize: 14, MaxObjects: 65535, MaxAttributes: 48,
		PropertyDefaultsCount: 63, MaxPropertyDataSize: 64,
		DictionaryWordChars: 9, DictionaryEntryHeaderBytes: 6,
		RoutineScale: 4, StringScale: 8,
		DefaultStaticBase: 0xA000, DefaultHighBase: 0xF000,
		LengthScale: 8, Flags2Default: 0x0002,
		UsesPackedAddressOffsets: true,
	},
	8: {
		Version: 8, ObjectRecordSize: 14, MaxObjects: 65535, MaxAttributes: 48,
		PropertyDefaultsCount: 63, MaxPropertyDataSize: 64,
		DictionaryWordChars: 9, DictionaryEntryHeaderBytes: 6,
		RoutineScale: 8, StringScale: 8,
		DefaultStaticBase: 0xA000, DefaultHighBase: 0xF000,
		LengthScale: 8, Flags2Default: 0x0002,
	},
}

// For looks up the Profile for a story file version, failing for any
// version outside the 3..8 range this module supports.
func For(version uint8) (Profile, error) {
	p, ok := profiles[version]
	if !ok {
		return Profile{}, fmt.Errorf("zversion: unsupported version %d", version)
	}
	return p, nil
}

// MustFor is For, panicking on an unsupported version. Intended for
// call sites that have already validated the version (e.g. after
// model.Validate), mirroring the reference interpreter's preference
// for panicking on invariant violations it considers impossible.
func MustFor(version uint8) Profile {
	p, err := For(version)
	if err != nil {
		panic(err)
	}
	return p
}
