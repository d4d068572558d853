package dictionary

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zstring"
	"github.com/alanquatermain/zilc/zversion"
)

// Entries exposes the decoded dictionary as a read-only view, used by
// the analyze inspector without reaching into the unexported entry
// slice.
func (d *Dictionary) Entries() []string {
	words := make([]string, len(d.entries))
	for i, e := range d.entries {
		words[i] = e.decodedWord
	}
	return words
}

// Emit renders the dictionary table (spec.md section 4.2): the word
// separator list, the per-version entry length, a sorted, deduplicated
// list of Z-encoded words, and their data bytes. Words longer than the
// version's Z-word character limit are truncated before encoding, per
// the Standard (Inform truncates rather than rejecting). Duplicate
// words after truncation are coalesced, OR-combining their data bytes
// - a later word redefining a property of an earlier, truncated-equal
// word augments rather than silently overwrites it. Unlike ordinary
// string encoding, dictionary entries permit no ZSCII escapes (spec.md
// section 4.2): a word containing a character outside the three
// alphabets fails with EncodingUnsupported rather than growing past
// the entry's fixed width.
func Emit(words []model.DictionaryWord, separators []byte, version uint8, alphabets *zstring.Alphabets) ([]byte, error) {
	profile, err := zversion.For(version)
	if err != nil {
		return nil, err
	}

	type encoded struct {
		zword []byte
		data  [3]byte
	}

	byZword := make(map[string]*encoded)
	var order []string

	for _, w := range words {
		truncated := []rune(w.Word)
		if len(truncated) > int(profile.DictionaryWordChars) {
			truncated = truncated[:profile.DictionaryWordChars]
		}
		for _, r := range truncated {
			if !zstring.Representable(r, alphabets) {
				return nil, zerrors.New(zerrors.EncodingUnsupported, fmt.Sprintf("dictionary word %q", w.Word),
					fmt.Sprintf("character %q requires a ZSCII escape, not permitted in dictionary entries", r))
			}
		}
		encodedWord := zstring.Encode(truncated, version, alphabets)

		// fit the encoding to the entry's fixed Z-word width: pad with
		// words of Z-character 5, cut any excess, end bit on the last word only.
		zword := make([]byte, profile.DictionaryEntryHeaderBytes)
		for i := 0; i < len(zword); i += 2 {
			word := uint16(5<<10 | 5<<5 | 5)
			if i+1 < len(encodedWord) {
				word = (uint16(encodedWord[i])<<8 | uint16(encodedWord[i+1])) &^ 0x8000
			}
			if i+2 == len(zword) {
				word |= 0x8000
			}
			zword[i], zword[i+1] = byte(word>>8), byte(word)
		}

		key := string(zword)
		if existing, ok := byZword[key]; ok {
			existing.data[0] |= w.Data[0]
			existing.data[1] |= w.Data[1]
			existing.data[2] |= w.Data[2]
			continue
		}
		byZword[key] = &encoded{zword: zword, data: w.Data}
		order = append(order, key)
	}

	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare([]byte(order[i]), []byte(order[j])) < 0
	})

	entryHeaderLen := profile.DictionaryEntryHeaderBytes
	dataBytesPerEntry := 3
	entryLen := int(entryHeaderLen) + dataBytesPerEntry

	if len(separators) > 255 {
		return nil, zerrors.New(zerrors.MemoryLayoutOverflow, "dictionary", "more than 255 word separators")
	}
	if len(order) > 0x7FFF {
		return nil, zerrors.New(zerrors.MemoryLayoutOverflow, "dictionary", "more than 32767 dictionary entries")
	}

	out := make([]byte, 0, 4+len(separators)+len(order)*entryLen)
	out = append(out, byte(len(separators)))
	out = append(out, separators...)
	out = append(out, byte(entryLen))
	out = append(out, byte(len(order)>>8), byte(len(order)))

	for _, key := range order {
		e := byZword[key]
		entry := make([]byte, entryLen)
		copy(entry, e.zword)
		copy(entry[entryHeaderLen:], e.data[:])
		out = append(out, entry...)
	}

	return out, nil
}
