package main

// readVarint decodes a big-endian base-128 varint starting at buf[offset].
// Each byte contributes its low 7 bits; the high bit signals continuation.
// At most 8 bytes are consumed -- the 9th-byte, all-8-bits convention real
// SQLite uses for the final byte is not implemented (§4.1, §9).
func readVarint(buf []byte, offset int) (value uint64, n int, err error) {
	for i := 0; i < 8; i++ {
		if offset+i >= len(buf) {
			return 0, 0, NewFormatError("read_varint", ErrInsufficientData, map[string]interface{}{
				"offset": offset,
				"have":   len(buf) - offset,
			})
		}
		b := buf[offset+i]
		value = (value << 7) | uint64(b&0x7f)
		if b&0x80 == 0 {
			return value, i + 1, nil
		}
	}
	return value, 8, nil
}

// putVarint encodes value using the same 7-bit-per-byte, 8-byte-max scheme
// as readVarint. It exists for the round-trip decode/re-encode property
// (§8) and is not used on the read path.
func putVarint(value uint64) []byte {
	if value == 0 {
		return []byte{0}
	}
	var bytes []byte
	for value > 0 && len(bytes) < 8 {
		bytes = append([]byte{byte(value & 0x7f)}, bytes...)
		value >>= 7
	}
	for i := 0; i < len(bytes)-1; i++ {
		bytes[i] |= 0x80
	}
	return bytes
}
