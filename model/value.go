package model

import "fmt"

// ValueKind tags a PropertyValue the way the reference ZIL compiler's
// ZValue sum type tags a compile-time value - except here every
// non-Raw case must be resolved to bytes before it ever reaches an
// ObjectModel (spec.md section 9's Design Notes call the source's
// "2-byte placeholder for unresolved atoms" accidental, not a
// feature). A SymbolTable resolves the reference-bearing kinds;
// anything still unresolved when Resolve is called is a hard error,
// never a placeholder.
type ValueKind int

const (
	KindRaw ValueKind = iota
	KindNumber
	KindObjectRef
	KindRoutineRef
	KindStringRef
)

// PropertyValue is a property payload before resolution. Exactly one
// of the fields below is meaningful, selected by Kind.
type PropertyValue struct {
	Kind ValueKind

	Raw    []byte // KindRaw
	Number uint16 // KindNumber: emitted as a big-endian word or byte, by width

	// Width is the byte width of a KindNumber/resolved-reference value:
	// 1 or 2. Most property values are 1 or 2 bytes; wider values must
	// be supplied as KindRaw.
	Width uint8

	Ref string // KindObjectRef / KindRoutineRef / KindStringRef: a symbol name
}

// SymbolTable maps the symbolic names used by KindObjectRef,
// KindRoutineRef, and KindStringRef to their resolved numeric values:
// an object id for KindObjectRef, an unpacked byte address for
// KindRoutineRef/KindStringRef (packing happens later, in zaddr, once
// the Layout Planner knows final addresses - so routine/string refs
// used as property data are unusual and mostly apply to globals, not
// properties, but the type supports both).
type SymbolTable struct {
	Objects  map[string]uint16
	Routines map[string]uint32
	Strings  map[string]uint32
}

// NewSymbolTable returns an empty, ready-to-populate SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Objects:  make(map[string]uint16),
		Routines: make(map[string]uint32),
		Strings:  make(map[string]uint32),
	}
}

// Resolve converts a PropertyValue into its final big-endian byte
// representation. It never substitutes a placeholder: an unresolved
// reference is an error the caller must fix before emission, matching
// the Design Notes' decision to reject the source's accidental
// 2-byte-placeholder behavior.
func (v PropertyValue) Resolve(symbols *SymbolTable) ([]byte, error) {
	switch v.Kind {
	case KindRaw:
		return v.Raw, nil
	case KindNumber:
		return widthBytes(v.Number, v.Width), nil
	case KindObjectRef:
		id, ok := symbols.Objects[v.Ref]
		if !ok {
			return nil, fmt.Errorf("unresolved object reference %q", v.Ref)
		}
		return widthBytes(id, v.Width), nil
	case KindRoutineRef:
		addr, ok := symbols.Routines[v.Ref]
		if !ok {
			return nil, fmt.Errorf("unresolved routine reference %q", v.Ref)
		}
		return widthBytes(uint16(addr), v.Width), nil
	case KindStringRef:
		addr, ok := symbols.Strings[v.Ref]
		if !ok {
			return nil, fmt.Errorf("unresolved string reference %q", v.Ref)
		}
		return widthBytes(uint16(addr), v.Width), nil
	default:
		return nil, fmt.Errorf("unknown property value kind %d", v.Kind)
	}
}

func widthBytes(v uint16, width uint8) []byte {
	if width == 1 {
		return []byte{uint8(v)}
	}
	return []byte{uint8(v >> 8), uint8(v)}
}
