// Package validate implements the post-emission Validator (spec.md
// section 4.7): it re-parses the finished image the way an
// interpreter would on load (grounded on zcore.LoadCore) and reports
// discrepancies as warnings. Emission has already succeeded by the
// time this runs, so nothing here is fatal - every finding is a
// zerrors.Warning, never an error return.
package validate

import (
	"fmt"

	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zheader"
	"github.com/alanquatermain/zilc/zversion"
)

// Image checks image against the configured version and against its
// own header: minimum size, version, region ordering, header overlap,
// scaled length, and checksum.
func Image(image []byte, wantVersion uint8) []zerrors.Warning {
	var warnings []zerrors.Warning
	warn := func(kind zerrors.Kind, format string, args ...interface{}) {
		warnings = append(warnings, zerrors.Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
	}

	if len(image) < 64 {
		warn(zerrors.MemoryLayoutOverflow, "image is %d bytes, shorter than the 64-byte header", len(image))
		return warnings
	}

	h, err := zheader.Load(image)
	if err != nil {
		warn(zerrors.MemoryLayoutOverflow, "failed to re-parse header: %v", err)
		return warnings
	}

	if h.Version != wantVersion {
		warn(zerrors.ValidationWarning, "header version %d does not match configured version %d", h.Version, wantVersion)
	}

	if h.HighMemoryBase < h.StaticMemoryBase {
		warn(zerrors.ValidationWarning, "high memory base 0x%04x is below static memory base 0x%04x", h.HighMemoryBase, h.StaticMemoryBase)
	}

	if h.DictionaryAddress < h.StaticMemoryBase {
		warn(zerrors.ValidationWarning, "dictionary address 0x%04x lies before static memory base 0x%04x", h.DictionaryAddress, h.StaticMemoryBase)
	}

	if h.ObjectTableAddress < 64 {
		warn(zerrors.ValidationWarning, "object table address 0x%04x overlaps the header", h.ObjectTableAddress)
	}
	if h.GlobalVariableAddress < 64 {
		warn(zerrors.ValidationWarning, "global variable address 0x%04x overlaps the header", h.GlobalVariableAddress)
	}
	if h.GlobalVariableAddress >= h.ObjectTableAddress {
		warn(zerrors.ValidationWarning, "global variable table (0x%04x) does not precede the object table (0x%04x)", h.GlobalVariableAddress, h.ObjectTableAddress)
	}

	if profile, err := zversion.For(h.Version); err == nil {
		scale := int(profile.LengthScale)
		if int(h.ScaledFileLength)*scale != len(image) {
			warn(zerrors.ValidationWarning, "scaled file length %d x %d = %d does not equal actual image length %d",
				h.ScaledFileLength, scale, int(h.ScaledFileLength)*scale, len(image))
		}
	}

	computed := checksumOf(image)
	if computed != h.Checksum {
		warn(zerrors.ValidationWarning, "computed checksum 0x%04x does not match stored checksum 0x%04x", computed, h.Checksum)
	}

	return warnings
}

func checksumOf(image []byte) uint16 {
	var sum uint16
	for i, b := range image {
		if i == 28 || i == 29 {
			continue
		}
		sum += uint16(b)
	}
	return sum
}
