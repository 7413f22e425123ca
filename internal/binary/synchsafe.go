package binary

import "encoding/binary"

// DecodeSynchsafe decodes a 4-byte synchsafe integer as used by ID3v2.
//
// A synchsafe integer packs a 28-bit value into 4 bytes with the most
// significant bit of every byte forced to zero, so tag data can never
// produce a false MPEG frame-sync pattern.
//
// If any byte has its high bit set the field violates the encoding; ok is
// false and the returned value is a best-effort plain big-endian
// reinterpretation of the same 4 bytes. The caller decides how severe the
// violation is - decoding itself never fails.
func DecodeSynchsafe(b []byte) (v uint32, ok bool) {
	if len(b) < 4 {
		return 0, false
	}

	if b[0]&0x80 != 0 || b[1]&0x80 != 0 || b[2]&0x80 != 0 || b[3]&0x80 != 0 {
		return binary.BigEndian.Uint32(b[:4]), false
	}

	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F), true
}

// EncodeSynchsafe encodes the low 28 bits of v as a 4-byte synchsafe integer.
func EncodeSynchsafe(v uint32) [4]byte {
	return [4]byte{
		byte(v >> 21 & 0x7F),
		byte(v >> 14 & 0x7F),
		byte(v >> 7 & 0x7F),
		byte(v & 0x7F),
	}
}

// RemoveUnsync reverses ID3v2 unsynchronization by removing every 0x00
// byte that immediately follows 0xFF. The input is not modified.
//
// Applying RemoveUnsync to data that contains no 0xFF,0x00 pairs returns
// an identical copy, so the operation is idempotent.
func RemoveUnsync(data []byte) []byte {
	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); i++ {
		out = append(out, data[i])
		if data[i] == 0xFF && i+1 < len(data) && data[i+1] == 0x00 {
			i++ // Skip the stuffing byte
		}
	}

	return out
}
