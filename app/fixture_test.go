package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// fieldSpec is a single record field's serial-type code and packed bytes,
// used by the fixture builders below to assemble synthetic table/index
// pages without needing a real SQLite file on disk.
type fieldSpec struct {
	code uint64
	data []byte
}

func nullField() fieldSpec { return fieldSpec{code: 0} }

func textFieldSpec(s string) fieldSpec {
	return fieldSpec{code: uint64(13 + 2*len(s)), data: []byte(s)}
}

func intField(v int64) fieldSpec {
	var width int
	switch {
	case v >= -128 && v <= 127:
		width = 1
	case v >= -32768 && v <= 32767:
		width = 2
	case v >= -8388608 && v <= 8388607:
		width = 3
	default:
		width = 4
	}
	data := make([]byte, width)
	switch width {
	case 1:
		data[0] = byte(int8(v))
	case 2:
		binary.BigEndian.PutUint16(data, uint16(int16(v)))
	case 3:
		u := uint32(int32(v)) & 0xFFFFFF
		data[0], data[1], data[2] = byte(u>>16), byte(u>>8), byte(u)
	case 4:
		binary.BigEndian.PutUint32(data, uint32(int32(v)))
	}
	return fieldSpec{code: uint64(width), data: data}
}

func encodeRecord(fields []fieldSpec) []byte {
	var serials []byte
	for _, f := range fields {
		serials = append(serials, putVarint(f.code)...)
	}

	var headerLen uint64
	for n := 1; n <= 9; n++ {
		if len(putVarint(uint64(n)+uint64(len(serials)))) == n {
			headerLen = uint64(n) + uint64(len(serials))
			break
		}
	}

	out := putVarint(headerLen)
	out = append(out, serials...)
	for _, f := range fields {
		out = append(out, f.data...)
	}
	return out
}

func encodeTableLeafCell(rowid uint64, payload []byte) []byte {
	cell := putVarint(uint64(len(payload)))
	cell = append(cell, putVarint(rowid)...)
	return append(cell, payload...)
}

func encodeIndexLeafCell(payload []byte) []byte {
	cell := putVarint(uint64(len(payload)))
	return append(cell, payload...)
}

// buildLeafPage lays cells from the end of a pageSize-byte page backward
// (the real on-disk convention) and fills in the cell-pointer array,
// matching the layout ReadPage/CellOffset expect.
func buildLeafPage(pageSize int, pageType byte, headerBase int, cells [][]byte) []byte {
	buf := make([]byte, pageSize)
	buf[headerBase] = pageType
	binary.BigEndian.PutUint16(buf[headerBase+1:headerBase+3], 0)
	binary.BigEndian.PutUint16(buf[headerBase+3:headerBase+5], uint16(len(cells)))

	cellPtrBase := headerBase + 8
	contentStart := pageSize
	offsets := make([]int, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		contentStart -= len(cells[i])
		copy(buf[contentStart:], cells[i])
		offsets[i] = contentStart
	}
	binary.BigEndian.PutUint16(buf[headerBase+5:headerBase+7], uint16(contentStart))
	buf[headerBase+7] = 0

	for i, off := range offsets {
		binary.BigEndian.PutUint16(buf[cellPtrBase+i*2:cellPtrBase+i*2+2], uint16(off))
	}
	return buf
}

// appleDBFixture is a 3-page synthetic database: sqlite_schema (page 1)
// describing a table "apples" (id integer primary key, name text) rooted
// at page 2, plus an index "idx_name" on apples(name) rooted at page 3.
// The table holds three rows: (1,"alice"), (2,"bob"), (3,"carol").
func appleDBFixture(t *testing.T) (path string, pageSize int) {
	t.Helper()
	pageSize = 512

	createTableSQL := "CREATE TABLE apples (id integer primary key, name text)"
	createIndexSQL := "CREATE INDEX idx_name ON apples (name)"

	schemaCells := [][]byte{
		encodeTableLeafCell(1, encodeRecord([]fieldSpec{
			textFieldSpec("table"), textFieldSpec("apples"), textFieldSpec("apples"),
			intField(2), textFieldSpec(createTableSQL),
		})),
		encodeTableLeafCell(2, encodeRecord([]fieldSpec{
			textFieldSpec("index"), textFieldSpec("idx_name"), textFieldSpec("apples"),
			intField(3), textFieldSpec(createIndexSQL),
		})),
	}
	page1 := buildLeafPage(pageSize, pageTypeTableLeaf, 100, schemaCells)
	binary.BigEndian.PutUint16(page1[16:18], uint16(pageSize))

	appleCells := [][]byte{
		encodeTableLeafCell(1, encodeRecord([]fieldSpec{nullField(), textFieldSpec("alice")})),
		encodeTableLeafCell(2, encodeRecord([]fieldSpec{nullField(), textFieldSpec("bob")})),
		encodeTableLeafCell(3, encodeRecord([]fieldSpec{nullField(), textFieldSpec("carol")})),
	}
	page2 := buildLeafPage(pageSize, pageTypeTableLeaf, 0, appleCells)

	indexCells := [][]byte{
		encodeIndexLeafCell(encodeRecord([]fieldSpec{textFieldSpec("alice"), intField(1)})),
		encodeIndexLeafCell(encodeRecord([]fieldSpec{textFieldSpec("bob"), intField(2)})),
		encodeIndexLeafCell(encodeRecord([]fieldSpec{textFieldSpec("carol"), intField(3)})),
	}
	page3 := buildLeafPage(pageSize, pageTypeIndexLeaf, 0, indexCells)

	var file []byte
	file = append(file, page1...)
	file = append(file, page2...)
	file = append(file, page3...)

	dir := t.TempDir()
	path = filepath.Join(dir, "apples.db")
	if err := os.WriteFile(path, file, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path, pageSize
}
