package model

import "fmt"

// ObjectBuilder replaces the reference compiler's implicit "current
// object" (startObject/endObject with ambient package state) with an
// explicit, owned builder: no two goroutines or call sites can step on
// each other's in-progress object, and Build seals the result so later
// code can't keep mutating it by accident (spec.md section 9, Design
// Notes).
type ObjectBuilder struct {
	obj ObjectModel
	err error
}

// NewObjectBuilder starts building the object with the given id.
func NewObjectBuilder(id uint16) *ObjectBuilder {
	return &ObjectBuilder{obj: ObjectModel{Id: id}}
}

func (b *ObjectBuilder) SetParent(id uint16) *ObjectBuilder  { b.obj.Parent = id; return b }
func (b *ObjectBuilder) SetSibling(id uint16) *ObjectBuilder { b.obj.Sibling = id; return b }
func (b *ObjectBuilder) SetChild(id uint16) *ObjectBuilder   { b.obj.Child = id; return b }
func (b *ObjectBuilder) SetShortName(name string) *ObjectBuilder {
	b.obj.ShortName = name
	return b
}

// SetAttribute sets bit n (0-indexed from the most significant bit,
// per the Standard-conformant ordering spec.md section 9 locks in).
func (b *ObjectBuilder) SetAttribute(n uint16, maxAttributes uint16) *ObjectBuilder {
	if n >= maxAttributes {
		b.err = fmt.Errorf("attribute %d out of range for %d-attribute object", n, maxAttributes)
		return b
	}
	b.obj.Attributes |= uint64(1) << (63 - n)
	return b
}

// AddProperty appends a resolved property. Duplicate numbers are
// caught later by Validate (DuplicatePropertyNumber), not here, since a builder may legitimately accumulate properties
// from multiple passes before the caller dedupes them.
func (b *ObjectBuilder) AddProperty(number uint8, data []byte) *ObjectBuilder {
	b.obj.Properties = append(b.obj.Properties, PropertyModel{Number: number, Data: data})
	return b
}

// AddResolvedProperty resolves value against symbols and appends it,
// recording the first resolution failure (an unresolved object,
// routine, or string reference) as the builder's error rather than
// panicking mid-build.
func (b *ObjectBuilder) AddResolvedProperty(number uint8, value PropertyValue, symbols *SymbolTable) *ObjectBuilder {
	if b.err != nil {
		return b
	}
	data, err := value.Resolve(symbols)
	if err != nil {
		b.err = fmt.Errorf("object %d property %d: %w", b.obj.Id, number, err)
		return b
	}
	return b.AddProperty(number, data)
}

// Build seals and returns the ObjectModel, or the first error recorded
// during construction.
func (b *ObjectBuilder) Build() (ObjectModel, error) {
	if b.err != nil {
		return ObjectModel{}, b.err
	}
	return b.obj, nil
}
