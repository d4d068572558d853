package validate_test

import (
	"testing"

	"github.com/alanquatermain/zilc/emitter"
	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/validate"
)

func program() *model.Program {
	return &model.Program{
		Version:       3,
		ReleaseNumber: 1,
		Serial:        [6]byte{'2', '6', '0', '7', '3', '1'},
		Objects: []model.ObjectModel{
			{Id: 1, ShortName: "lamp"},
		},
		PropertyDefaults: map[uint8]uint16{},
		Code: model.CodeImage{
			Bytes: []byte{0x00, 0xb0},
		},
	}
}

func TestImageAcceptsCleanEmission(t *testing.T) {
	image, _, err := emitter.Emit(program(), emitter.Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	if warnings := validate.Image(image, 3); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestImageFlagsVersionMismatch(t *testing.T) {
	image, _, err := emitter.Emit(program(), emitter.Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	warnings := validate.Image(image, 5)
	if len(warnings) == 0 {
		t.Fatal("expected a version mismatch warning")
	}
}

func TestImageFlagsChecksumTamper(t *testing.T) {
	image, _, err := emitter.Emit(program(), emitter.Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	image[len(image)-1] ^= 0xff

	warnings := validate.Image(image, 3)
	if len(warnings) == 0 {
		t.Fatal("expected a checksum mismatch warning after tampering")
	}
}

func TestImageFlagsShortImage(t *testing.T) {
	warnings := validate.Image(make([]byte, 10), 3)
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning for a too-short image, got %d", len(warnings))
	}
}
