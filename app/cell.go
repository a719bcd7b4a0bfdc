package main

import "encoding/binary"

// The four cell variants (§3). These form a closed set with no shared
// behavior, so each is its own type with its own decoder -- a tagged
// union, not an inheritance hierarchy (§9 "Polymorphism").

// TableLeafCell: varint payload length, varint row-id, then a record.
type TableLeafCell struct {
	Rowid  uint64
	Record *Record
}

// TableInteriorCell: 4-byte left-child page, varint key (max row-id in the
// left subtree).
type TableInteriorCell struct {
	LeftChild uint32
	Key       uint64
}

// IndexLeafCell: varint payload length, then a record whose trailing
// column is the row-id pointer into the table.
type IndexLeafCell struct {
	Record *Record
	Rowid  uint64
}

// IndexInteriorCell: 4-byte left-child page, varint payload length, then a
// record whose trailing column is the row-id pointer.
type IndexInteriorCell struct {
	LeftChild uint32
	Record   *Record
	Rowid    uint64
}

func decodeTableLeafCell(page *Page, offset int) (*TableLeafCell, error) {
	data := page.Data
	payloadSize, n, err := readVarint(data, offset)
	if err != nil {
		return nil, err
	}
	offset += n
	rowid, n, err := readVarint(data, offset)
	if err != nil {
		return nil, err
	}
	offset += n
	if offset+int(payloadSize) > len(data) {
		return nil, NewFormatError("decode_table_leaf_cell", ErrInsufficientData, map[string]interface{}{
			"page": page.Number, "offset": offset, "payload_size": payloadSize,
		})
	}
	record, err := decodeRecord(data[offset : offset+int(payloadSize)])
	if err != nil {
		return nil, err
	}
	return &TableLeafCell{Rowid: rowid, Record: record}, nil
}

func decodeTableInteriorCell(page *Page, offset int) (*TableInteriorCell, error) {
	data := page.Data
	if offset+4 > len(data) {
		return nil, NewFormatError("decode_table_interior_cell", ErrInsufficientData, map[string]interface{}{
			"page": page.Number, "offset": offset,
		})
	}
	leftChild := binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4
	key, _, err := readVarint(data, offset)
	if err != nil {
		return nil, err
	}
	return &TableInteriorCell{LeftChild: leftChild, Key: key}, nil
}

func decodeIndexLeafCell(page *Page, offset int) (*IndexLeafCell, error) {
	data := page.Data
	payloadSize, n, err := readVarint(data, offset)
	if err != nil {
		return nil, err
	}
	offset += n
	if offset+int(payloadSize) > len(data) {
		return nil, NewFormatError("decode_index_leaf_cell", ErrInsufficientData, map[string]interface{}{
			"page": page.Number, "offset": offset, "payload_size": payloadSize,
		})
	}
	record, err := decodeRecord(data[offset : offset+int(payloadSize)])
	if err != nil {
		return nil, err
	}
	rowid, err := trailingRowid(record)
	if err != nil {
		return nil, err
	}
	return &IndexLeafCell{Record: record, Rowid: rowid}, nil
}

func decodeIndexInteriorCell(page *Page, offset int) (*IndexInteriorCell, error) {
	data := page.Data
	if offset+4 > len(data) {
		return nil, NewFormatError("decode_index_interior_cell", ErrInsufficientData, map[string]interface{}{
			"page": page.Number, "offset": offset,
		})
	}
	leftChild := binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4
	payloadSize, n, err := readVarint(data, offset)
	if err != nil {
		return nil, err
	}
	offset += n
	if offset+int(payloadSize) > len(data) {
		return nil, NewFormatError("decode_index_interior_cell", ErrInsufficientData, map[string]interface{}{
			"page": page.Number, "offset": offset, "payload_size": payloadSize,
		})
	}
	record, err := decodeRecord(data[offset : offset+int(payloadSize)])
	if err != nil {
		return nil, err
	}
	rowid, err := trailingRowid(record)
	if err != nil {
		return nil, err
	}
	return &IndexInteriorCell{LeftChild: leftChild, Record: record, Rowid: rowid}, nil
}

// trailingRowid extracts the final column of an index record, which is the
// row-id pointer into the associated table (§3).
func trailingRowid(record *Record) (uint64, error) {
	if record.NumFields() == 0 {
		return 0, NewFormatError("trailing_rowid", ErrInsufficientData, nil)
	}
	v, err := record.Field(record.NumFields() - 1)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case KindInteger:
		return uint64(v.Int), nil
	case KindZero:
		return 0, nil
	case KindOne:
		return 1, nil
	default:
		return 0, NewFormatError("trailing_rowid", ErrUnsupportedSerial, map[string]interface{}{"kind": v.Kind})
	}
}
