// Package layout implements the Layout Planner (spec.md section 4.5):
// it chooses region bases, reserves the header, and orders emission of
// the property-defaults array, object records, property tables,
// dictionary, abbreviations stub, strings, and code image so that
// every forward reference (property-table pointers, the dictionary's
// own address, packed string/routine addresses) is resolvable by a
// later patch - the same two-phase "lay out then patch" shape the
// reference interpreter uses when it loads a core image and then
// patches in its own runtime state (zcore.LoadCore followed by the
// opcode handlers in zmachine/objects.go).
package layout

import (
	"github.com/alanquatermain/zilc/dictionary"
	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/zaddr"
	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zheader"
	"github.com/alanquatermain/zilc/zobject"
	"github.com/alanquatermain/zilc/zstring"
	"github.com/alanquatermain/zilc/zversion"
)

const (
	headerSize  = 64
	globalsSize = 240 * 2

	// abbreviation table: 96 pointer words (32 per set x 3 sets),
	// always present per the Standard even when empty (spec.md
	// section 9's Open Question 4: this module always emits a real
	// table rather than pointing elsewhere).
	abbreviationCount = 96
)

// Image is the final emitted story file plus the addresses the
// Validator (spec.md section 4.7) needs to re-check them.
type Image struct {
	Bytes []byte

	StaticBase            uint16
	HighBase              uint16
	ObjectTableAddress    uint16
	GlobalVariableAddress uint16
	DictionaryAddress     uint16
	AbbreviationTableBase uint16
	StringAddresses       map[uint32]uint16
	InitialPC             uint16
}

// Emit runs the full Planner -> encoders -> header -> checksum
// pipeline over p and returns the finished image, with the string
// addresses and initial PC it assigned. It does no symbol resolution:
// model.Program already carries resolved property bytes.
func Emit(p *model.Program) (Image, error) {
	profile, err := zversion.For(p.Version)
	if err != nil {
		return Image{}, err
	}

	alphabets := zstring.Default()

	buf := make([]byte, headerSize)

	globalsAddr := len(buf)
	globalsBytes := make([]byte, globalsSize)
	for i, g := range p.Globals {
		globalsBytes[i*2] = byte(g >> 8)
		globalsBytes[i*2+1] = byte(g)
	}
	buf = append(buf, globalsBytes...)

	abbrevBase := len(buf)
	abbrevBytes, _ := emitAbbreviationStub(abbrevBase)
	buf = append(buf, abbrevBytes...)

	objectTableAddress := len(buf)
	records, ptrOffsets, err := zobject.EmitDefaultsAndRecords(p)
	if err != nil {
		return Image{}, err
	}
	buf = append(buf, records...)

	propTables, err := zobject.EmitPropertyTables(p, alphabets)
	if err != nil {
		return Image{}, err
	}
	propTablesBase := len(buf)
	buf = append(buf, propTables.Bytes...)

	for _, obj := range p.Objects {
		addr := propTablesBase + int(propTables.Offsets[obj.Id])
		if addr > 0xFFFF {
			return Image{}, zerrors.New(zerrors.MemoryLayoutOverflow, "property table", "address exceeds 16 bits")
		}
		zobject.PatchPropertyPointer(records, ptrOffsets, obj.Id, uint16(addr))
	}
	copy(buf[objectTableAddress:propTablesBase], records)

	staticBase := propTablesBase
	if staticBase%int(profile.LengthScale) != 0 {
		pad := int(profile.LengthScale) - staticBase%int(profile.LengthScale)
		buf = append(buf, make([]byte, pad)...)
		staticBase += pad
	}
	// dynamic memory floors at the version's default static base
	// (spec.md section 4.5); actual content only grows it further.
	if staticBase < int(profile.DefaultStaticBase) {
		pad := int(profile.DefaultStaticBase) - staticBase
		buf = append(buf, make([]byte, pad)...)
		staticBase += pad
	}
	if staticBase > 0xFFFF {
		return Image{}, zerrors.New(zerrors.MemoryLayoutOverflow, "static memory base", "exceeds 16 bits")
	}

	dictionaryAddress := len(buf)
	dictBytes, err := dictionary.Emit(p.DictionaryWords, p.DictionarySeparators, p.Version, alphabets)
	if err != nil {
		return Image{}, err
	}
	buf = append(buf, dictBytes...)

	highBase := len(buf)
	if highBase%2 != 0 {
		buf = append(buf, 0)
		highBase++
	}
	// static memory floors at the version's default high memory base
	// (spec.md section 4.5); actual content only grows it further.
	if highBase < int(profile.DefaultHighBase) {
		pad := int(profile.DefaultHighBase) - highBase
		buf = append(buf, make([]byte, pad)...)
		highBase += pad
	}
	if highBase > 0xFFFF {
		return Image{}, zerrors.New(zerrors.MemoryLayoutOverflow, "high memory base", "exceeds 16 bits")
	}

	stringAddrs := make(map[uint32]uint16, len(p.Strings))
	for _, s := range p.Strings {
		addr := len(buf)
		if addr > 0xFFFF {
			return Image{}, zerrors.New(zerrors.MemoryLayoutOverflow, "string table", "address exceeds 16 bits")
		}
		stringAddrs[s.ID] = uint16(addr)

		encoded := zstring.Encode([]rune(s.Content), p.Version, alphabets)
		buf = append(buf, encoded...)
		if len(buf)%2 != 0 {
			buf = append(buf, 0)
		}
	}

	codeBase, err := zaddr.Align(uint32(len(buf)), p.Version, zaddr.Routine)
	if err != nil {
		return Image{}, err
	}
	if codeBase > uint32(len(buf)) {
		buf = append(buf, make([]byte, codeBase-uint32(len(buf)))...)
	}
	buf = append(buf, p.Code.Bytes...)

	startAddr := codeBase + p.Code.StartRoutineOffset
	initialPC, err := zaddr.Pack(startAddr, p.Version, zaddr.Routine, 0, 0)
	if err != nil {
		return Image{}, zerrors.Wrap(zerrors.AddressAlignment, "initial PC", "packing start routine address", err)
	}

	// the file length recorded in the header is scaled, so the file
	// itself must come out to an exact multiple of that scale.
	if rem := len(buf) % int(profile.LengthScale); rem != 0 {
		buf = append(buf, make([]byte, int(profile.LengthScale)-rem)...)
	}

	fields := zheader.Fields{
		Version:               p.Version,
		ReleaseNumber:         p.ReleaseNumber,
		Serial:                p.Serial,
		HighMemoryBase:        uint16(highBase),
		InitialPC:             initialPC,
		DictionaryAddress:     uint16(dictionaryAddress),
		ObjectTableAddress:    uint16(objectTableAddress),
		GlobalVariableAddress: uint16(globalsAddr),
		StaticMemoryBase:      uint16(staticBase),
		AbbreviationTableBase: uint16(abbrevBase),
		TotalLength:           len(buf),
	}

	header, err := zheader.Write(fields)
	if err != nil {
		return Image{}, err
	}
	copy(buf[0:headerSize], header)

	zheader.Checksum(buf)

	return Image{
		Bytes:                 buf,
		StaticBase:            uint16(staticBase),
		HighBase:              uint16(highBase),
		ObjectTableAddress:    uint16(objectTableAddress),
		GlobalVariableAddress: uint16(globalsAddr),
		DictionaryAddress:     uint16(dictionaryAddress),
		AbbreviationTableBase: uint16(abbrevBase),
		StringAddresses:       stringAddrs,
		InitialPC:             initialPC,
	}, nil
}

// emitAbbreviationStub builds the Non-goal-compliant abbreviation
// table (spec.md section 1's "abbreviation-table compression (produce
// a valid empty/stub abbreviations table only)"): 96 pointer words, all
// pointing at one shared empty string placed right after the pointer
// table itself.
func emitAbbreviationStub(base int) ([]byte, uint16) {
	pointerTableSize := abbreviationCount * 2
	emptyStringAddr := uint16(base + pointerTableSize)
	wordAddr := emptyStringAddr / 2 // abbreviation table entries are word addresses

	buf := make([]byte, pointerTableSize+2)
	for i := 0; i < abbreviationCount; i++ {
		buf[i*2] = byte(wordAddr >> 8)
		buf[i*2+1] = byte(wordAddr)
	}
	buf[pointerTableSize] = 0x80
	buf[pointerTableSize+1] = 0x00

	return buf, emptyStringAddr
}
