package zobject

import (
	"encoding/binary"
	"fmt"

	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zstring"
	"github.com/alanquatermain/zilc/zversion"
)

// RecordPointerOffsets maps an object id to the byte offset, within
// the buffer EmitDefaultsAndRecords returned, of that object's
// property-table-pointer field. The Layout Planner holds onto this so
// it can patch in each object's real property-table address once the
// property tables (which the Standard places in a separately sized
// region) have themselves been emitted - the same "write now, patch
// later" shape as the header's checksum field.
type RecordPointerOffsets map[uint16]int

// EmitDefaultsAndRecords lays out the property-defaults array followed
// by one fixed-size object record per object, in object order (spec.md
// section 4.3). Property-table-pointer fields are left zero; callers
// patch them in with PatchPropertyPointer once table addresses are
// known.
func EmitDefaultsAndRecords(p *model.Program) ([]byte, RecordPointerOffsets, error) {
	profile, err := zversion.For(p.Version)
	if err != nil {
		return nil, nil, err
	}

	defaultsSize := int(profile.PropertyDefaultsCount) * 2
	buf := make([]byte, defaultsSize+len(p.Objects)*int(profile.ObjectRecordSize))

	for num := uint16(1); num <= profile.PropertyDefaultsCount; num++ {
		off := int(num-1) * 2
		binary.BigEndian.PutUint16(buf[off:off+2], p.PropertyDefaults[uint8(num)])
	}

	offsets := make(RecordPointerOffsets, len(p.Objects))
	for ix, obj := range p.Objects {
		start := defaultsSize + ix*int(profile.ObjectRecordSize)
		record := buf[start : start+int(profile.ObjectRecordSize)]
		if err := writeRecord(record, obj, profile); err != nil {
			return nil, nil, zerrors.Wrap(zerrors.MemoryLayoutOverflow, fmt.Sprintf("object %d", obj.Id), "writing object record", err)
		}

		if profile.ObjectRecordSize == 9 {
			offsets[obj.Id] = start + 7
		} else {
			offsets[obj.Id] = start + 12
		}
	}

	return buf, offsets, nil
}

// PatchPropertyPointer writes propTableAddr, big-endian, into buf at
// the object's reserved pointer field.
func PatchPropertyPointer(buf []byte, offsets RecordPointerOffsets, objId uint16, propTableAddr uint16) {
	off := offsets[objId]
	binary.BigEndian.PutUint16(buf[off:off+2], propTableAddr)
}

// PropertyTables is the result of emitting every object's property
// table into one contiguous buffer: the concatenated bytes, and each
// object's table offset within that buffer (Layout Planner adds the
// region base to get a final address for PatchPropertyPointer).
type PropertyTables struct {
	Bytes   []byte
	Offsets map[uint16]uint32
}

// EmitPropertyTables encodes each object's short name and properties
// (spec.md section 4.3): a length-prefixed encoded short name,
// properties in strictly descending number order, terminated by a
// zero byte. Properties need not arrive pre-sorted; Emit sorts
// defensively rather than trusting caller order, since model.Validate
// only checks property uniqueness, not order.
func EmitPropertyTables(p *model.Program, alphabets *zstring.Alphabets) (PropertyTables, error) {
	out := PropertyTables{Offsets: make(map[uint16]uint32, len(p.Objects))}

	for _, obj := range p.Objects {
		table, err := encodePropertyTable(obj, p.Version, alphabets)
		if err != nil {
			return PropertyTables{}, zerrors.Wrap(zerrors.PropertyTooLarge, fmt.Sprintf("object %d", obj.Id), "encoding property table", err)
		}
		out.Offsets[obj.Id] = uint32(len(out.Bytes))
		out.Bytes = append(out.Bytes, table...)
	}

	return out, nil
}

func writeRecord(record []byte, obj model.ObjectModel, profile zversion.Profile) error {
	if profile.MaxAttributes < 64 {
		unusedBits := uint64(1)<<(64-profile.MaxAttributes) - 1
		if obj.Attributes&unusedBits != 0 {
			return zerrors.New(zerrors.InvalidObjectId, fmt.Sprintf("object %d", obj.Id), "attribute set beyond version ceiling")
		}
	}

	if profile.ObjectRecordSize == 9 {
		binary.BigEndian.PutUint32(record[0:4], uint32(obj.Attributes>>32))
		record[4] = byte(obj.Parent)
		record[5] = byte(obj.Sibling)
		record[6] = byte(obj.Child)
	} else {
		binary.BigEndian.PutUint32(record[0:4], uint32(obj.Attributes>>32))
		binary.BigEndian.PutUint16(record[4:6], uint16(obj.Attributes>>16))
		binary.BigEndian.PutUint16(record[6:8], obj.Parent)
		binary.BigEndian.PutUint16(record[8:10], obj.Sibling)
		binary.BigEndian.PutUint16(record[10:12], obj.Child)
	}
	return nil
}

func encodePropertyTable(obj model.ObjectModel, version uint8, alphabets *zstring.Alphabets) ([]byte, error) {
	nameBytes := zstring.Encode([]rune(obj.ShortName), version, alphabets)

	out := make([]byte, 0, 1+len(nameBytes)+16)
	out = append(out, byte(len(nameBytes)/2))
	out = append(out, nameBytes...)

	sorted := make([]model.PropertyModel, len(obj.Properties))
	copy(sorted, obj.Properties)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Number > sorted[j-1].Number; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	for _, prop := range sorted {
		header, err := propertyHeader(prop, version)
		if err != nil {
			return nil, err
		}
		out = append(out, header...)
		out = append(out, prop.Data...)
	}
	out = append(out, 0)

	return out, nil
}

func propertyHeader(prop model.PropertyModel, version uint8) ([]byte, error) {
	length := len(prop.Data)
	if length == 0 {
		return nil, zerrors.New(zerrors.PropertyTooLarge, fmt.Sprintf("property %d", prop.Number), "zero-length property data")
	}

	if version <= 3 {
		if length > 8 {
			return nil, zerrors.New(zerrors.PropertyTooLarge, fmt.Sprintf("property %d", prop.Number), "length exceeds 8 bytes for version <= 3")
		}
		return []byte{byte(length-1)<<5 | prop.Number}, nil
	}

	if length <= 2 && prop.Number <= 63 {
		sizeBit := byte(0)
		if length == 2 {
			sizeBit = 1 << 6
		}
		return []byte{sizeBit | prop.Number}, nil
	}

	if length > 64 {
		return nil, zerrors.New(zerrors.PropertyTooLarge, fmt.Sprintf("property %d", prop.Number), "length exceeds 64 bytes")
	}
	lengthByte := byte(length)
	if length == 64 {
		lengthByte = 0
	}
	return []byte{0x80 | prop.Number, 0x80 | lengthByte}, nil
}
