package model

import (
	"fmt"

	"github.com/alanquatermain/zilc/zerrors"
	"github.com/alanquatermain/zilc/zversion"
)

// Validate checks the model-level invariants of spec.md section 3
// that don't depend on encoded sizes (those are checked downstream,
// where an offset is available to report): object ids dense from 1,
// parent/sibling/child referring only to existing ids or 0, and
// property payload sizes within the version's limit.
func Validate(p *Program) error {
	profile, err := zversion.For(p.Version)
	if err != nil {
		return err
	}

	if len(p.Objects) > int(profile.MaxObjects) {
		return zerrors.New(zerrors.InvalidObjectId, "program",
			fmt.Sprintf("%d objects exceeds version %d ceiling of %d", len(p.Objects), p.Version, profile.MaxObjects))
	}

	ids := make(map[uint16]bool, len(p.Objects))
	for _, o := range p.Objects {
		if o.Id == 0 {
			return zerrors.New(zerrors.InvalidObjectId, "object 0", "object id 0 is reserved and cannot be defined")
		}
		if ids[o.Id] {
			return zerrors.New(zerrors.InvalidObjectId, fmt.Sprintf("object %d", o.Id), "duplicate object id")
		}
		if int(o.Id) > len(p.Objects) {
			return zerrors.New(zerrors.InvalidObjectId, fmt.Sprintf("object %d", o.Id),
				fmt.Sprintf("object ids are not dense from 1: id %d exceeds object count %d", o.Id, len(p.Objects)))
		}
		ids[o.Id] = true
	}

	for _, o := range p.Objects {
		entity := fmt.Sprintf("object %d", o.Id)
		for _, ref := range []struct {
			name string
			id   uint16
		}{{"parent", o.Parent}, {"sibling", o.Sibling}, {"child", o.Child}} {
			if ref.id != 0 && !ids[ref.id] {
				return zerrors.New(zerrors.InvalidObjectId, entity,
					fmt.Sprintf("%s %d does not refer to a defined object", ref.name, ref.id))
			}
		}

		seen := make(map[uint8]bool, len(o.Properties))
		for _, prop := range o.Properties {
			if prop.Number == 0 || prop.Number > 63 {
				return zerrors.New(zerrors.InvalidObjectId, entity,
					fmt.Sprintf("property number %d out of range [1,63]", prop.Number))
			}
			if seen[prop.Number] {
				return zerrors.New(zerrors.DuplicatePropertyNumber, entity,
					fmt.Sprintf("property %d repeated", prop.Number))
			}
			seen[prop.Number] = true

			if len(prop.Data) == 0 || len(prop.Data) > int(profile.MaxPropertyDataSize) {
				return zerrors.New(zerrors.PropertyTooLarge, entity,
					fmt.Sprintf("property %d has %d data bytes, limit is %d", prop.Number, len(prop.Data), profile.MaxPropertyDataSize))
			}
		}
	}

	for num := range p.PropertyDefaults {
		if num == 0 || uint16(num) > profile.PropertyDefaultsCount {
			return zerrors.New(zerrors.InvalidObjectId, "property defaults",
				fmt.Sprintf("default for property %d out of range [1,%d]", num, profile.PropertyDefaultsCount))
		}
	}

	return nil
}
