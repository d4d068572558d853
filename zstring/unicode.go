package zstring

import "encoding/binary"

var DefaultUnicodeTranslationTable = map[rune]uint8{
	'ä': 155,
	'ö': 156,
	'ü': 157,
	'Ä': 158,
	'Ö': 159,
	'Ü': 160,
	'ß': 161,
	'»': 162,
	'«': 163,
	'ë': 164,
	'ï': 165,
	'ÿ': 166,
	'Ë': 167,
	'Ï': 168,
	'á': 169,
	'é': 170,
	'í': 171,
	'ó': 172,
	'ú': 173,
	'ý': 174,
	'Á': 175,
	'É': 176,
	'Í': 177,
	'Ó': 178,
	'Ú': 179,
	'Ý': 180,
	'à': 181,
	'è': 182,
	'ì': 183,
	'ò': 184,
	'ù': 185,
	'À': 186,
	'È': 187,
	'Ì': 188,
	'Ò': 189,
	'Ù': 190,
	'â': 191,
	'ê': 192,
	'î': 193,
	'ô': 194,
	'û': 195,
	'Â': 196,
	'Ê': 197,
	'Î': 198,
	'Ô': 199,
	'Û': 200,
	'å': 201,
	'Å': 202,
	'ø': 203,
	'Ø': 204,
	'ã': 205,
	'ñ': 206,
	'õ': 207,
	'Ã': 208,
	'Ñ': 209,
	'Õ': 210,
	'æ': 211,
	'Æ': 212,
	'ç': 213,
	'Ç': 214,
	'þ': 215,
	'ð': 216,
	'Þ': 217,
	'Ð': 218,
	'£': 219,
	'œ': 220,
	'Œ': 221,
	'¡': 222,
	'¿': 223,
}

// unicodeToZscii finds the ZSCII code for r, consulting a custom
// translation table at unicodeExtTableAddr within memory if one is
// present (Standard section 3.8.5.3), falling back to the default
// table otherwise. memory is the full story file image.
func unicodeToZscii(r rune, memory []byte, unicodeExtTableAddr uint16) (uint8, bool) {
	table := DefaultUnicodeTranslationTable
	if unicodeExtTableAddr != 0 {
		table = parseUnicodeTranslationTable(memory, unicodeExtTableAddr)
	}
	zchr, ok := table[r]
	return zchr, ok
}

// ZsciiToUnicode is the inverse of unicodeToZscii.
func ZsciiToUnicode(zchr uint8, memory []byte, unicodeExtTableAddr uint16) (rune, bool) {
	table := DefaultUnicodeTranslationTable
	if unicodeExtTableAddr != 0 {
		table = parseUnicodeTranslationTable(memory, unicodeExtTableAddr)
	}
	for r, ix := range table {
		if ix == zchr {
			return r, true
		}
	}
	return 0, false
}

// parseUnicodeTranslationTable decodes the unicode translation table
// format from Standard section 3.8.5.3: a byte count N followed by N
// 16-bit big-endian Unicode code points, assigned ZSCII codes 155..
func parseUnicodeTranslationTable(memory []byte, tableAddr uint16) map[rune]uint8 {
	result := make(map[rune]uint8)

	count := memory[tableAddr]
	start := uint32(tableAddr) + 1
	for i := 0; i < int(count); i++ {
		off := start + uint32(i)*2
		result[rune(binary.BigEndian.Uint16(memory[off:off+2]))] = uint8(i + 155)
	}

	return result
}
