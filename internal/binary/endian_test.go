package binary

import (
	"bytes"
	"testing"
)

func TestReadEndian_BothOrders(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")

	be, err := ReadBE[uint32](sr, 0, "big-endian value")
	if err != nil {
		t.Fatalf("ReadBE error: %v", err)
	}
	if be != 0x12345678 {
		t.Errorf("ReadBE = 0x%08X, want 0x12345678", be)
	}

	le, err := ReadLE[uint32](sr, 0, "little-endian value")
	if err != nil {
		t.Fatalf("ReadLE error: %v", err)
	}
	if le != 0x78563412 {
		t.Errorf("ReadLE = 0x%08X, want 0x78563412", le)
	}
}

func TestReadEndian_Uint16(t *testing.T) {
	data := []byte{0xFE, 0xFF}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")

	be, err := ReadBE[uint16](sr, 0, "BOM")
	if err != nil || be != 0xFEFF {
		t.Errorf("ReadBE[uint16] = 0x%04X, %v", be, err)
	}
	le, err := ReadLE[uint16](sr, 0, "BOM")
	if err != nil || le != 0xFFFE {
		t.Errorf("ReadLE[uint16] = 0x%04X, %v", le, err)
	}
}

func TestReadEndian_OutOfBounds(t *testing.T) {
	data := []byte{0x01, 0x02}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")

	if _, err := ReadBE[uint32](sr, 0, "truncated value"); err == nil {
		t.Error("expected bounds error for 4-byte read of 2-byte source")
	}
}
