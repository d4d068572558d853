package dictionary_test

import (
	"testing"

	"github.com/alanquatermain/zilc/dictionary"
	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zstring"
)

func TestEmitParseRoundTrip(t *testing.T) {
	words := []model.DictionaryWord{
		{Word: "north", Data: [3]byte{0x01, 0x00, 0x00}},
		{Word: "south", Data: [3]byte{0x01, 0x00, 0x00}},
		{Word: "take", Data: [3]byte{0x02, 0x00, 0x00}},
	}
	separators := []byte{'.', ',', '"'}

	alphabets := zstring.Default()
	table, err := dictionary.Emit(words, separators, 3, alphabets)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	d := dictionary.ParseDictionary(table, 0, 3, alphabets, 0)
	entries := d.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(entries), entries)
	}

	// entries must come back sorted by encoded Z-word, which for these
	// three words matches alphabetical order.
	want := []string{"north", "south", "take"}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, entries[i])
		}
	}
}

func TestEmitCoalescesDuplicates(t *testing.T) {
	words := []model.DictionaryWord{
		{Word: "look", Data: [3]byte{0x01, 0x00, 0x00}},
		{Word: "look", Data: [3]byte{0x02, 0x00, 0x00}},
	}

	alphabets := zstring.Default()
	table, err := dictionary.Emit(words, nil, 3, alphabets)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	d := dictionary.ParseDictionary(table, 0, 3, alphabets, 0)
	if len(d.Entries()) != 1 {
		t.Fatalf("expected duplicates to coalesce into 1 entry, got %d", len(d.Entries()))
	}
}

func TestEmitTruncatesLongWords(t *testing.T) {
	words := []model.DictionaryWord{
		{Word: "extraordinarily", Data: [3]byte{}},
	}

	alphabets := zstring.Default()
	table, err := dictionary.Emit(words, nil, 3, alphabets)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	d := dictionary.ParseDictionary(table, 0, 3, alphabets, 0)
	entries := d.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0] != "extrao" {
		t.Errorf("expected word truncated to 6 z-chars 'extrao', got %q", entries[0])
	}
}

func TestEmitRejectsWordsNeedingZsciiEscape(t *testing.T) {
	words := []model.DictionaryWord{
		{Word: "café", Data: [3]byte{}},
	}

	alphabets := zstring.Default()
	_, err := dictionary.Emit(words, nil, 3, alphabets)
	if err == nil {
		t.Fatal("expected an error for a word requiring a ZSCII escape")
	}

	emitErr, ok := err.(*zerrors.EmitError)
	if !ok {
		t.Fatalf("expected a *zerrors.EmitError, got %T", err)
	}
	if emitErr.Kind != zerrors.EncodingUnsupported {
		t.Errorf("expected EncodingUnsupported, got %s", emitErr.Kind)
	}
}
