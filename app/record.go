package main

// Record is a parsed table/index record: a header of serial-type codes
// followed by packed values (§3). Per §4.3, individual field decoding is
// lazy -- the header is parsed eagerly (it's needed to know the record's
// shape and total length) but Field(i) decodes values on demand.
type Record struct {
	payload     []byte
	serialTypes []uint64
	fieldOffset []int // offset into payload of each field's packed value
	headerLen   int
}

// NumFields returns the number of columns in the record.
func (r *Record) NumFields() int {
	return len(r.serialTypes)
}

// Field lazily decodes and returns the i'th value.
func (r *Record) Field(i int) (Value, error) {
	if i < 0 || i >= len(r.serialTypes) {
		return Value{}, NewFormatError("record_field", ErrColumnNotFound, map[string]interface{}{"index": i})
	}
	v, _, err := decodeValue(r.serialTypes[i], r.payload, r.fieldOffset[i])
	return v, err
}

// decodeRecord parses a record (header varint stream + packed body) from
// payload. It reads the header varint stream until the declared header
// length is exhausted, then validates that the record length equals the
// header length plus the sum of the declared value sizes (§3 invariant).
func decodeRecord(payload []byte) (*Record, error) {
	headerLen, n, err := readVarint(payload, 0)
	if err != nil {
		return nil, err
	}
	offset := n
	var serialTypes []uint64
	for offset < int(headerLen) {
		st, n, err := readVarint(payload, offset)
		if err != nil {
			return nil, err
		}
		serialTypes = append(serialTypes, st)
		offset += n
	}
	if offset != int(headerLen) {
		return nil, NewFormatError("decode_record", ErrInvalidVarint, map[string]interface{}{
			"header_len": headerLen, "consumed": offset,
		})
	}

	fieldOffset := make([]int, len(serialTypes))
	bodyOffset := offset
	for i, st := range serialTypes {
		_, width := serialTypeInfo(st)
		fieldOffset[i] = bodyOffset
		bodyOffset += width
	}
	if bodyOffset != len(payload) {
		return nil, NewFormatError("decode_record", ErrInsufficientData, map[string]interface{}{
			"expected_len": bodyOffset, "payload_len": len(payload),
		})
	}

	return &Record{
		payload:     payload,
		serialTypes: serialTypes,
		fieldOffset: fieldOffset,
		headerLen:   int(headerLen),
	}, nil
}
