package main

import (
	"encoding/binary"
	"fmt"
)

// ValueKind classifies a decoded value (§3).
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindZero
	KindOne
	KindText
	KindOther // unsupported: float, blob, or any other reserved code
)

// serialTypeInfo maps a record's serial-type code to (kind, byte width),
// per the table in §3/§4.1. Code 7 (float) and even n>=12 (blob) are
// deliberately unsupported and map to KindOther.
func serialTypeInfo(code uint64) (kind ValueKind, width int) {
	switch {
	case code == 0:
		return KindNull, 0
	case code >= 1 && code <= 4:
		return KindInteger, int(code)
	case code == 5:
		return KindInteger, 6
	case code == 6:
		return KindInteger, 8
	case code == 8:
		return KindZero, 0
	case code == 9:
		return KindOne, 0
	case code >= 13 && code%2 == 1:
		return KindText, int((code - 13) / 2)
	default:
		return KindOther, 0
	}
}

// Value is one of NULL, a signed integer, the zero-width literals 0/1, or
// UTF-8 text (§3).
type Value struct {
	Kind ValueKind
	Int  int64
	Text string
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindZero:
		return "0"
	case KindOne:
		return "1"
	case KindInteger:
		return fmt.Sprintf("%d", v.Int)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// decodeValue reads the value described by serialType out of data[offset:],
// returning the value and the number of bytes consumed.
//
// Integer widths of 6 and 8 bytes (serial types 5 and 6) are recognized by
// serialTypeInfo but rejected here: this engine only decodes 1-4 byte
// integers. This is a documented, intentional limitation (§9) rather than
// an oversight -- it is preserved, not fixed.
func decodeValue(serialType uint64, data []byte, offset int) (Value, int, error) {
	kind, width := serialTypeInfo(serialType)
	switch kind {
	case KindNull:
		return Value{Kind: KindNull}, 0, nil
	case KindZero:
		return Value{Kind: KindZero}, 0, nil
	case KindOne:
		return Value{Kind: KindOne}, 0, nil
	case KindOther:
		return Value{}, 0, NewFormatError("decode_value", ErrUnsupportedSerial, map[string]interface{}{
			"serial_type": serialType,
		})
	case KindText:
		if offset+width > len(data) {
			return Value{}, 0, NewFormatError("decode_value", ErrInsufficientData, map[string]interface{}{
				"offset": offset, "width": width, "have": len(data) - offset,
			})
		}
		return Value{Kind: KindText, Text: string(data[offset : offset+width])}, width, nil
	case KindInteger:
		if width > 4 {
			return Value{}, 0, NewFormatError("decode_value", ErrUnsupportedSerial, map[string]interface{}{
				"serial_type": serialType,
				"reason":      "integer widths beyond 4 bytes are not supported",
			})
		}
		if offset+width > len(data) {
			return Value{}, 0, NewFormatError("decode_value", ErrInsufficientData, map[string]interface{}{
				"offset": offset, "width": width, "have": len(data) - offset,
			})
		}
		return Value{Kind: KindInteger, Int: decodeSignedInt(data[offset : offset+width])}, width, nil
	default:
		return Value{}, 0, NewFormatError("decode_value", ErrUnsupportedSerial, nil)
	}
}

// decodeSignedInt decodes a big-endian two's-complement integer of 1-4
// bytes, sign-extended to int64.
func decodeSignedInt(b []byte) int64 {
	switch len(b) {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(binary.BigEndian.Uint16(b)))
	case 3:
		u := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		if u&0x800000 != 0 {
			u |= 0xFF000000
		}
		return int64(int32(u))
	case 4:
		return int64(int32(binary.BigEndian.Uint32(b)))
	default:
		return 0
	}
}
