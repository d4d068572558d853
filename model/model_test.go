package model_test

import (
	"testing"

	"github.com/alanquatermain/zilc/model"
)

func validProgram() *model.Program {
	return &model.Program{
		Version: 3,
		Objects: []model.ObjectModel{
			{Id: 1, ShortName: "forest", Child: 2},
			{Id: 2, ShortName: "leaflet", Parent: 1, Properties: []model.PropertyModel{
				{Number: 4, Data: []byte{0x01}},
			}},
		},
		PropertyDefaults: map[uint8]uint16{1: 0},
	}
}

func TestValidateAcceptsWellFormedProgram(t *testing.T) {
	if err := model.Validate(validProgram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsObjectZero(t *testing.T) {
	p := validProgram()
	p.Objects[0].Id = 0

	if err := model.Validate(p); err == nil {
		t.Fatal("expected error for object id 0")
	}
}

func TestValidateRejectsDuplicateObjectId(t *testing.T) {
	p := validProgram()
	p.Objects[1].Id = 1

	if err := model.Validate(p); err == nil {
		t.Fatal("expected error for duplicate object id")
	}
}

func TestValidateRejectsDanglingParentReference(t *testing.T) {
	p := validProgram()
	p.Objects[1].Parent = 99

	if err := model.Validate(p); err == nil {
		t.Fatal("expected error for dangling parent reference")
	}
}

func TestValidateRejectsDuplicatePropertyNumber(t *testing.T) {
	p := validProgram()
	p.Objects[1].Properties = append(p.Objects[1].Properties, model.PropertyModel{Number: 4, Data: []byte{0x02}})

	if err := model.Validate(p); err == nil {
		t.Fatal("expected error for duplicate property number")
	}
}

func TestValidateRejectsOversizedPropertyForVersion3(t *testing.T) {
	p := validProgram()
	p.Objects[1].Properties[0].Data = make([]byte, 9) // v3 ceiling is 8

	if err := model.Validate(p); err == nil {
		t.Fatal("expected error for oversized property data")
	}
}

func TestObjectBuilderAccumulatesAttributeError(t *testing.T) {
	b := model.NewObjectBuilder(1).SetAttribute(40, 32) // out of range for a 32-attribute object

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for out-of-range attribute")
	}
}

func TestAddResolvedPropertyFailsOnUnresolvedReference(t *testing.T) {
	symbols := model.NewSymbolTable()
	b := model.NewObjectBuilder(1).AddResolvedProperty(1, model.PropertyValue{
		Kind:  model.KindObjectRef,
		Ref:   "nonexistent-room",
		Width: 2,
	}, symbols)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for unresolved object reference")
	}
}

func TestAddResolvedPropertySucceedsWhenResolved(t *testing.T) {
	symbols := model.NewSymbolTable()
	symbols.Objects["lantern"] = 7

	obj, err := model.NewObjectBuilder(1).AddResolvedProperty(3, model.PropertyValue{
		Kind:  model.KindObjectRef,
		Ref:   "lantern",
		Width: 1,
	}, symbols).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(obj.Properties) != 1 || obj.Properties[0].Data[0] != 7 {
		t.Errorf("unexpected properties: %+v", obj.Properties)
	}
}
