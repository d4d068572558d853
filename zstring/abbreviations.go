package zstring

import "encoding/binary"

// FindAbbreviation decodes the abbreviation selected by set z (1-3)
// and index x (0-31). Per the Standard, an abbreviation string may not
// itself reference another abbreviation, so the nested Decode call
// passes an abbreviation table base of 0 rather than recursing.
func FindAbbreviation(version uint8, abbreviationTableBase uint16, memory []uint8, alphabets *Alphabets, z uint8, x uint8) string {
	abbrIx := 32*(z-1) + x
	addr := uint32(abbreviationTableBase) + 2*uint32(abbrIx)
	strAddr := 2 * uint32(binary.BigEndian.Uint16(memory[addr:addr+2]))

	str, _ := Decode(memory, strAddr, version, alphabets, 0)

	return str
}
