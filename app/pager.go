package main

import (
	"encoding/binary"
	"os"
)

// Page type bytes (§3, GLOSSARY).
const (
	pageTypeIndexInterior = 2
	pageTypeTableInterior = 5
	pageTypeIndexLeaf     = 10
	pageTypeTableLeaf     = 13
)

// Page is a decoded B-tree page: the header fields plus the raw bytes, with
// the cell-pointer array's base offset precomputed (§3, §4.2).
type Page struct {
	Number            int
	Type              byte
	FirstFreeblock    uint16
	CellCount         uint16
	CellContentStart  uint16
	FragmentedFree    byte
	RightmostPointer  uint32 // only meaningful for interior pages
	cellPointerOffset int
	Data              []byte
}

func (p *Page) IsInterior() bool {
	return p.Type == pageTypeIndexInterior || p.Type == pageTypeTableInterior
}

func (p *Page) IsLeaf() bool {
	return !p.IsInterior()
}

func (p *Page) IsTable() bool {
	return p.Type == pageTypeTableInterior || p.Type == pageTypeTableLeaf
}

func (p *Page) IsIndex() bool {
	return p.Type == pageTypeIndexInterior || p.Type == pageTypeIndexLeaf
}

// CellOffset returns the byte offset (relative to the start of the page)
// of the i'th cell, reading the 2-byte big-endian entry in the
// cell-pointer array.
func (p *Page) CellOffset(i int) int {
	base := p.cellPointerOffset + i*2
	return int(binary.BigEndian.Uint16(p.Data[base : base+2]))
}

// Pager opens a SQLite-format file read-only and decodes pages on demand
// (§4.2). It owns the file handle for the session.
type Pager struct {
	file            *os.File
	pageSize        int
	schemaCellCount int // cell count of page 1, published as "number of tables" (§4.2, §6)
	cfg             *PagerConfig
}

// OpenPager opens path read-only, reads the 100-byte database header, and
// reads page 1's B-tree page header to publish the schema cell count.
func OpenPager(path string, opts ...PagerOption) (*Pager, error) {
	cfg := defaultPagerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewIOError("open", err, map[string]interface{}{"path": path})
	}

	header := make([]byte, 100)
	if _, err := f.ReadAt(header, 0); err != nil {
		f.Close()
		return nil, NewIOError("read_header", err, nil)
	}

	// Offset 16: 2-byte big-endian page size. The "0 means 65536" SQLite
	// convention is deliberately not decoded (§4.2) -- the engine treats
	// this field as the literal page size.
	pageSize := int(binary.BigEndian.Uint16(header[16:18]))

	p := &Pager{file: f, pageSize: pageSize, cfg: cfg}

	page1, err := p.ReadPage(1)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.schemaCellCount = int(page1.CellCount)

	return p, nil
}

// Close releases the underlying file handle.
func (p *Pager) Close() error {
	if err := p.file.Close(); err != nil {
		return NewIOError("close", err, nil)
	}
	return nil
}

// PageSize returns the database's declared page size in bytes.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// SchemaCellCount returns the cell count of page 1, exposed as "number of
// tables" by the CLI (§4.2, §6) -- this over-counts indexes and any other
// schema object, a documented, preserved behavior.
func (p *Pager) SchemaCellCount() int {
	return p.schemaCellCount
}

// ReadPage reads and decodes page n (1-based). Page 1's B-tree page header
// starts at byte 100 (after the database header); every other page's
// header starts at byte 0 of the page. Cell offsets are always relative to
// byte 0 of the page, even on page 1.
func (p *Pager) ReadPage(n int) (*Page, error) {
	if n < 1 {
		return nil, NewFormatError("read_page", ErrInvalidPageType, map[string]interface{}{"page": n})
	}

	buf := make([]byte, p.pageSize)
	offset := int64(n-1) * int64(p.pageSize)
	if _, err := p.file.ReadAt(buf, offset); err != nil {
		return nil, NewIOError("read_page", err, map[string]interface{}{"page": n})
	}

	headerBase := 0
	if n == 1 {
		headerBase = 100
	}

	typ := buf[headerBase]
	switch typ {
	case pageTypeIndexInterior, pageTypeTableInterior, pageTypeIndexLeaf, pageTypeTableLeaf:
	default:
		return nil, NewFormatError("read_page", ErrInvalidPageType, map[string]interface{}{"page": n, "type": typ})
	}

	page := &Page{
		Number:           n,
		Type:             typ,
		FirstFreeblock:   binary.BigEndian.Uint16(buf[headerBase+1 : headerBase+3]),
		CellCount:        binary.BigEndian.Uint16(buf[headerBase+3 : headerBase+5]),
		CellContentStart: binary.BigEndian.Uint16(buf[headerBase+5 : headerBase+7]),
		FragmentedFree:   buf[headerBase+7],
		Data:             buf,
	}

	if page.IsInterior() {
		page.RightmostPointer = binary.BigEndian.Uint32(buf[headerBase+8 : headerBase+12])
		page.cellPointerOffset = headerBase + 12
	} else {
		page.cellPointerOffset = headerBase + 8
	}

	return page, nil
}
