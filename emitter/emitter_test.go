package emitter_test

import (
	"testing"

	"github.com/alanquatermain/zilc/emitter"
	"github.com/alanquatermain/zilc/model"
)

func program() *model.Program {
	return &model.Program{
		Version:       3,
		ReleaseNumber: 1,
		Serial:        [6]byte{'2', '6', '0', '7', '3', '1'},
		Objects: []model.ObjectModel{
			{Id: 1, ShortName: "lantern", Properties: []model.PropertyModel{
				{Number: 1, Data: []byte{0x00}},
			}},
		},
		DictionaryWords: []model.DictionaryWord{
			{Word: "lantern"},
		},
		PropertyDefaults: map[uint8]uint16{},
		Code: model.CodeImage{
			Bytes: []byte{0x00, 0xb0},
		},
	}
}

func TestEmitSucceedsAndValidates(t *testing.T) {
	bytes, warnings, err := emitter.Emit(program(), emitter.Options{Validate: true})
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if len(bytes) == 0 {
		t.Fatal("expected non-empty image")
	}
	for _, w := range warnings {
		t.Errorf("unexpected warning: %s", w.String())
	}
}

func TestEmitRejectsInvalidModel(t *testing.T) {
	p := program()
	p.Objects[0].Id = 0 // reserved

	if _, _, err := emitter.Emit(p, emitter.Options{}); err == nil {
		t.Fatal("expected validation error for reserved object id 0")
	}
}
