package zaddr_test

import "testing"
import "github.com/alanquatermain/zilc/zaddr"

func TestPackUnpackRoundTripV3(t *testing.T) {
	addr := uint32(0x4000)
	packed, err := zaddr.Pack(addr, 3, zaddr.Routine, 0, 0)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if packed != 0x2000 {
		t.Errorf("expected packed 0x2000, got 0x%x", packed)
	}

	back, err := zaddr.Unpack(packed, 3, zaddr.Routine, 0, 0)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if back != addr {
		t.Errorf("round trip mismatch: got 0x%x, want 0x%x", back, addr)
	}
}

func TestPackRejectsMisalignment(t *testing.T) {
	_, err := zaddr.Pack(0x4001, 3, zaddr.Routine, 0, 0)
	if err == nil {
		t.Fatal("expected alignment error for odd address in v3")
	}
}

func TestPackV6UsesOffset(t *testing.T) {
	// v6 routine packed address = (addr - routinesOffset*8) / 4
	addr := uint32(0x10000)
	packed, err := zaddr.Pack(addr, 6, zaddr.Routine, 0x1000, 0)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	want := uint16((addr - 0x1000*8) / 4)
	if packed != want {
		t.Errorf("expected %d, got %d", want, packed)
	}
}

func TestAlignRoundsUp(t *testing.T) {
	addr, err := zaddr.Align(0x4001, 3, zaddr.Routine)
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if addr != 0x4002 {
		t.Errorf("expected 0x4002, got 0x%x", addr)
	}
}
