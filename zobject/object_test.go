package zobject_test

import (
	"testing"

	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/zobject"
	"github.com/alanquatermain/zilc/zstring"
)

func TestZerothObjectRetrieval(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Retrieving object with id 0 should panic")
		}
	}()

	memory := []uint8{}
	zobject.GetObject(0, 0, memory, 3, zstring.Default(), 0)
}

func testProgram() *model.Program {
	return &model.Program{
		Version: 3,
		Objects: []model.ObjectModel{
			{Id: 1, Parent: 0, Sibling: 2, Child: 0, ShortName: "forest", Attributes: 1 << 61, Properties: []model.PropertyModel{
				{Number: 18, Data: []byte{0x85}},
				{Number: 7, Data: []byte{0x01, 0x02}},
			}},
			{Id: 2, Parent: 0, Sibling: 0, Child: 0, ShortName: "", Properties: []model.PropertyModel{
				{Number: 3, Data: []byte{0x00}},
			}},
		},
		PropertyDefaults: map[uint8]uint16{1: 0, 2: 7},
	}
}

// layoutObjectTable mimics what the Layout Planner does: records first
// (dynamic memory), property tables appended right after (static
// memory), then pointers patched back into the records.
func layoutObjectTable(t *testing.T, p *model.Program, base uint16) ([]byte, map[uint16]uint32) {
	t.Helper()

	records, offsets, err := zobject.EmitDefaultsAndRecords(p)
	if err != nil {
		t.Fatalf("EmitDefaultsAndRecords failed: %v", err)
	}

	tables, err := zobject.EmitPropertyTables(p, zstring.Default())
	if err != nil {
		t.Fatalf("EmitPropertyTables failed: %v", err)
	}

	propTableBase := base + uint16(len(records))
	for _, obj := range p.Objects {
		zobject.PatchPropertyPointer(records, offsets, obj.Id, propTableBase+uint16(tables.Offsets[obj.Id]))
	}

	return append(records, tables.Bytes...), tables.Offsets
}

func TestEmitRoundTrip(t *testing.T) {
	p := testProgram()
	const base = 0x0100

	combined, _ := layoutObjectTable(t, p, base)

	memory := make([]byte, int(base)+len(combined))
	copy(memory[base:], combined)

	obj := zobject.GetObject(1, base, memory, p.Version, zstring.Default(), 0)
	if obj.Name != "forest" {
		t.Errorf("expected name 'forest', got %q", obj.Name)
	}
	if obj.Sibling != 2 {
		t.Errorf("expected sibling 2, got %d", obj.Sibling)
	}
	if !obj.TestAttribute(2) {
		t.Errorf("expected attribute 2 set")
	}

	prop18 := obj.GetProperty(18, memory, p.Version, base)
	if prop18.Length != 1 || prop18.Data[0] != 0x85 {
		t.Errorf("property 18 mismatch: length=%d data=%v", prop18.Length, prop18.Data)
	}

	prop7 := obj.GetProperty(7, memory, p.Version, base)
	if prop7.Length != 2 || prop7.Data[0] != 0x01 || prop7.Data[1] != 0x02 {
		t.Errorf("property 7 mismatch: length=%d data=%v", prop7.Length, prop7.Data)
	}

	// property 2 isn't defined on object 1 but has a default ->
	// falls back to the property-defaults table entry for property 2.
	prop2 := obj.GetProperty(2, memory, p.Version, base)
	if len(prop2.Data) != 2 {
		t.Errorf("expected default property data length 2, got %d", len(prop2.Data))
	}
}

func TestEmitDescendingPropertyOrder(t *testing.T) {
	p := testProgram()
	_, offsets := layoutObjectTable(t, p, 0x0100)

	tables, err := zobject.EmitPropertyTables(p, zstring.Default())
	if err != nil {
		t.Fatalf("EmitPropertyTables failed: %v", err)
	}

	offset := offsets[1]
	nameLenBytes := int(tables.Bytes[offset]) * 2
	firstPropHeader := tables.Bytes[offset+1+uint32(nameLenBytes)]
	firstID := firstPropHeader & 0b1_1111
	if firstID != 18 {
		t.Errorf("expected property 18 first (descending order), got %d", firstID)
	}
}
