package zheader_test

import (
	"testing"

	"github.com/alanquatermain/zilc/zheader"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	fields := zheader.Fields{
		Version:               3,
		ReleaseNumber:         7,
		Serial:                [6]byte{'2', '6', '0', '7', '3', '1'},
		HighMemoryBase:        0x1000,
		InitialPC:             0x0800,
		DictionaryAddress:     0x0300,
		ObjectTableAddress:    0x00c0,
		GlobalVariableAddress: 0x0040,
		StaticMemoryBase:      0x0200,
		AbbreviationTableBase: 0x0050,
		TotalLength:           0x4000,
	}

	image, err := zheader.Write(fields)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(image) != 64 {
		t.Fatalf("header length = %d, want 64", len(image))
	}

	full := append(image, make([]byte, fields.TotalLength-len(image))...)
	zheader.Checksum(full)

	h, err := zheader.Load(full)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if h.Version != fields.Version {
		t.Errorf("Version = %d, want %d", h.Version, fields.Version)
	}
	if h.ReleaseNumber != fields.ReleaseNumber {
		t.Errorf("ReleaseNumber = %d, want %d", h.ReleaseNumber, fields.ReleaseNumber)
	}
	if h.HighMemoryBase != fields.HighMemoryBase {
		t.Errorf("HighMemoryBase = 0x%04x, want 0x%04x", h.HighMemoryBase, fields.HighMemoryBase)
	}
	if h.DictionaryAddress != fields.DictionaryAddress {
		t.Errorf("DictionaryAddress = 0x%04x, want 0x%04x", h.DictionaryAddress, fields.DictionaryAddress)
	}
	if h.ObjectTableAddress != fields.ObjectTableAddress {
		t.Errorf("ObjectTableAddress = 0x%04x, want 0x%04x", h.ObjectTableAddress, fields.ObjectTableAddress)
	}
	if h.Serial != fields.Serial {
		t.Errorf("Serial = %v, want %v", h.Serial, fields.Serial)
	}
	if h.ScaledFileLength != uint16(fields.TotalLength/2) {
		t.Errorf("ScaledFileLength = %d, want %d", h.ScaledFileLength, fields.TotalLength/2)
	}
}

func TestLoadRejectsShortImage(t *testing.T) {
	if _, err := zheader.Load(make([]byte, 10)); err == nil {
		t.Fatal("expected error for image shorter than 64 bytes")
	}
}

func TestChecksumIsStableAcrossRecomputation(t *testing.T) {
	image := make([]byte, 128)
	for i := range image {
		image[i] = byte(i)
	}

	first := zheader.Checksum(image)
	second := zheader.Checksum(image)

	if first != second {
		t.Errorf("checksum changed on recomputation: %d != %d", first, second)
	}
}
