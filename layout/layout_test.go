package layout_test

import (
	"testing"

	"github.com/alanquatermain/zilc/layout"
	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/validate"
	"github.com/alanquatermain/zilc/zheader"
)

func smallProgram() *model.Program {
	p := &model.Program{
		Version:       3,
		ReleaseNumber: 1,
		Serial:        [6]byte{'2', '6', '0', '7', '3', '1'},
		Objects: []model.ObjectModel{
			{Id: 1, ShortName: "forest", Properties: []model.PropertyModel{
				{Number: 18, Data: []byte{0x85}},
			}},
			{Id: 2, Parent: 1, ShortName: "path", Properties: []model.PropertyModel{
				{Number: 7, Data: []byte{0x00, 0x01}},
			}},
		},
		DictionarySeparators: []byte{'.', ','},
		DictionaryWords: []model.DictionaryWord{
			{Word: "north", Data: [3]byte{0x01, 0x00, 0x00}},
			{Word: "look", Data: [3]byte{0x02, 0x00, 0x00}},
		},
		Strings: []model.StringEntry{
			{ID: 1, Content: "hello world"},
		},
		PropertyDefaults: map[uint8]uint16{1: 0},
		Code: model.CodeImage{
			Bytes:              []byte{0x00, 0xb0}, // trivial routine: 0 locals, rtrue
			StartRoutineOffset: 0,
		},
	}
	return p
}

func TestEmitProducesValidImage(t *testing.T) {
	p := smallProgram()
	img, err := layout.Emit(p)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	if len(img.Bytes) < 64 {
		t.Fatalf("image too short: %d bytes", len(img.Bytes))
	}

	h, err := zheader.Load(img.Bytes)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if h.Version != 3 {
		t.Errorf("expected version 3, got %d", h.Version)
	}
	if h.StaticMemoryBase != img.StaticBase {
		t.Errorf("header static base 0x%04x does not match planner's 0x%04x", h.StaticMemoryBase, img.StaticBase)
	}
	if h.ObjectTableAddress != img.ObjectTableAddress {
		t.Errorf("header object table address mismatch")
	}

	warnings := validate.Image(img.Bytes, p.Version)
	for _, w := range warnings {
		t.Errorf("unexpected validator warning: %s", w.String())
	}
}

// TestEmitFloorsRegionBasesAtVersionDefaults covers spec.md's scenario
// S1: an empty v3 model still lands static_base at 0x4000 and
// high_base at 0x8000, the version's default region bases, even
// though actual content would fit in a few hundred bytes.
func TestEmitFloorsRegionBasesAtVersionDefaults(t *testing.T) {
	p := &model.Program{
		Version:          3,
		ReleaseNumber:    1,
		Serial:           [6]byte{'2', '6', '0', '7', '3', '1'},
		PropertyDefaults: map[uint8]uint16{},
		Code: model.CodeImage{
			Bytes: []byte{0x00, 0xb0},
		},
	}

	img, err := layout.Emit(p)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	if img.StaticBase != 0x4000 {
		t.Errorf("StaticBase = 0x%04x, want 0x4000", img.StaticBase)
	}
	if img.HighBase != 0x8000 {
		t.Errorf("HighBase = 0x%04x, want 0x8000", img.HighBase)
	}
	if len(img.Bytes) < 0x8000 {
		t.Errorf("image is %d bytes, want at least 0x8000", len(img.Bytes))
	}

	warnings := validate.Image(img.Bytes, p.Version)
	for _, w := range warnings {
		t.Errorf("unexpected validator warning: %s", w.String())
	}
}

func TestEmitRejectsUnsupportedVersion(t *testing.T) {
	p := smallProgram()
	p.Version = 9
	if _, err := layout.Emit(p); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
