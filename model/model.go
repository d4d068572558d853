// Package model defines the emitter's input contract (spec.md section
// 3 / section 6): the populated program the Layout Planner consumes.
// These types are owned by the caller (the ZAP assembler, in the full
// toolchain) and borrowed immutably by this module: emission reads
// them and never writes back.
package model

// Program is the fully populated model handed to the emitter. Every
// field here corresponds to one row of spec.md section 3's data model
// table or one bullet of section 6's "Inputs" list.
type Program struct {
	Version uint8

	Objects []ObjectModel

	// Globals always holds exactly 240 entries; index 0 is global
	// variable 16 (the first usable global per the Standard).
	Globals [240]uint16

	DictionarySeparators []byte
	DictionaryWords      []DictionaryWord

	// Strings is stable insertion order; address assignment happens in
	// the Layout Planner, not here.
	Strings []StringEntry

	Code CodeImage

	// PropertyDefaults overrides slots in the zero-initialized property
	// defaults array. Keys must be in [1, profile.PropertyDefaultsCount].
	PropertyDefaults map[uint8]uint16

	ReleaseNumber uint16
	Serial        [6]byte
}

// ObjectModel is one entry of the object table (spec.md section 3,
// "Object record"). Parent/Sibling/Child are object ids, 0 meaning
// "none". Attributes is a bitset left-aligned at bit 63 regardless of
// the version's attribute ceiling: bit N (0-indexed) is set as
// Attributes |= 1 << (63-N), and the emitter slices the top
// maxAttributes bits off the high end when packing the record's
// attribute bytes.
type ObjectModel struct {
	Id         uint16
	Parent     uint16
	Sibling    uint16
	Child      uint16
	Attributes uint64
	ShortName  string

	// Properties need not be supplied in any particular order; the
	// Object & Property Emitter sorts them into strictly descending
	// number order, and Validate rejects duplicates (spec.md section 7,
	// DuplicatePropertyNumber).
	Properties []PropertyModel
}

// PropertyModel is one property entry prior to size validation.
type PropertyModel struct {
	Number uint8
	Data   []byte
}

// DictionaryWord is one entry prior to normalization/encoding. Data is
// the 3 caller-supplied data bytes that follow the encoded Z-word;
// the zero value is three zero bytes.
type DictionaryWord struct {
	Word string
	Data [3]byte
}

// StringEntry is one high-memory string prior to address assignment.
type StringEntry struct {
	ID      uint32
	Content string
}

// CodeImage is the assembler's finalized routine bytecode (spec.md
// section 3, "Code image"): already contains each routine's
// local-count prologue. StartRoutineOffset is a byte offset within
// this image, not yet packed.
type CodeImage struct {
	Bytes              []byte
	StartRoutineOffset uint32
}
