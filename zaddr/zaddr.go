// Package zaddr implements the Address Packer (spec.md section 4.4):
// converting between byte addresses and the packed addresses Z-Machine
// instructions use to reference routines and strings. Grounded on the
// reference interpreter's packed address arithmetic in
// zmachine/zmachine.go (PackedAddressToAddress and its call sites),
// generalized here into a pair of version-aware functions driven by
// zversion.Profile instead of the interpreter's inline version
// switches.
package zaddr

import (
	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zversion"
)

// Kind selects which scale factor and (for v6/v7) which header offset
// applies: routines and strings diverge only on versions 6 and 7.
type Kind int

const (
	Routine Kind = iota
	String
)

// Pack converts a byte address into a packed address for the given
// version and Kind. addr must already be aligned to the version's
// scale factor (Standard section 1.2.3); misaligned input is an
// authoring bug in the Layout Planner, not a user-facing condition, so
// it is reported via zerrors.AddressAlignment rather than silently
// rounded.
func Pack(addr uint32, version uint8, kind Kind, routinesOffset, stringOffset uint16) (uint16, error) {
	profile, err := zversion.For(version)
	if err != nil {
		return 0, err
	}

	scale := profile.RoutineScale
	offset := uint32(0)
	if kind == String {
		scale = profile.StringScale
	}
	if profile.UsesPackedAddressOffsets {
		if kind == Routine {
			offset = uint32(routinesOffset) * 8
		} else {
			offset = uint32(stringOffset) * 8
		}
	}

	if addr < offset {
		return 0, zerrors.New(zerrors.AddressAlignment, "packed address", "address below region offset")
	}

	biased := addr - offset
	if biased%scale != 0 {
		return 0, zerrors.New(zerrors.AddressAlignment, "packed address", "address not aligned to version scale factor")
	}

	packed := biased / scale
	if packed > 0xFFFF {
		return 0, zerrors.New(zerrors.MemoryLayoutOverflow, "packed address", "address exceeds 16-bit packed range")
	}

	return uint16(packed), nil
}

// Unpack is the inverse of Pack.
func Unpack(packed uint16, version uint8, kind Kind, routinesOffset, stringOffset uint16) (uint32, error) {
	profile, err := zversion.For(version)
	if err != nil {
		return 0, err
	}

	scale := profile.RoutineScale
	offset := uint32(0)
	if kind == String {
		scale = profile.StringScale
	}
	if profile.UsesPackedAddressOffsets {
		if kind == Routine {
			offset = uint32(routinesOffset) * 8
		} else {
			offset = uint32(stringOffset) * 8
		}
	}

	return uint32(packed)*scale + offset, nil
}

// Align rounds addr up to the next multiple of the version's scale
// factor for kind, the way the Layout Planner must before placing a
// routine or string it intends to reference by packed address.
func Align(addr uint32, version uint8, kind Kind) (uint32, error) {
	profile, err := zversion.For(version)
	if err != nil {
		return 0, err
	}

	scale := profile.RoutineScale
	if kind == String {
		scale = profile.StringScale
	}

	if addr%scale == 0 {
		return addr, nil
	}
	return addr + (scale - addr%scale), nil
}
