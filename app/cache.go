package main

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// pageCache is the per-lookup page cache described in §4.2/§4.4/§9
// ("B-tree caching"): a single-query cache keyed by page number that
// memoizes the in-flight read, so concurrent descents for different
// row-ids share a pending page read instead of issuing duplicate I/O.
// It additionally memoizes each page's decoded interior cells, so the
// bisection in lookupOne never re-parses an offset it has already
// visited during the same batch.
type pageCache struct {
	pager *Pager
	group singleflight.Group

	mu            sync.Mutex
	pages         map[int]*Page
	interiorCells map[int][]*TableInteriorCell
	leafCells     map[int][]*TableLeafCell
}

func newPageCache(pager *Pager, cfg *PagerConfig) *pageCache {
	return &pageCache{
		pager:         pager,
		pages:         make(map[int]*Page, cfg.PageCacheSize),
		interiorCells: make(map[int][]*TableInteriorCell, cfg.PageCacheSize),
		leafCells:     make(map[int][]*TableLeafCell, cfg.PageCacheSize),
	}
}

// get fetches page n, reading it from disk at most once per batch even if
// multiple concurrent descents request it simultaneously.
func (c *pageCache) get(ctx context.Context, n int) (*Page, error) {
	c.mu.Lock()
	if p, ok := c.pages[n]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	key := strconv.Itoa(n)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A call for n may have completed between the check above and
		// this one starting; reuse its page rather than reading again.
		c.mu.Lock()
		if p, ok := c.pages[n]; ok {
			c.mu.Unlock()
			return p, nil
		}
		c.mu.Unlock()
		page, err := c.pager.ReadPage(n)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.pages[n] = page
		c.mu.Unlock()
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Page), nil
}

// interiorCellsOf returns the decoded interior cells of a table-interior
// page, decoding and memoizing them on first access.
func (c *pageCache) interiorCellsOf(page *Page) ([]*TableInteriorCell, error) {
	c.mu.Lock()
	if cells, ok := c.interiorCells[page.Number]; ok {
		c.mu.Unlock()
		return cells, nil
	}
	c.mu.Unlock()

	cells := make([]*TableInteriorCell, page.CellCount)
	for i := 0; i < int(page.CellCount); i++ {
		cell, err := decodeTableInteriorCell(page, page.CellOffset(i))
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}

	c.mu.Lock()
	c.interiorCells[page.Number] = cells
	c.mu.Unlock()
	return cells, nil
}

// leafCellsOf returns the decoded cells of a table-leaf page, decoding and
// memoizing them on first access so repeated lookups landing on the same
// leaf page within a batch don't redecode it.
func (c *pageCache) leafCellsOf(page *Page) ([]*TableLeafCell, error) {
	c.mu.Lock()
	if cells, ok := c.leafCells[page.Number]; ok {
		c.mu.Unlock()
		return cells, nil
	}
	c.mu.Unlock()

	cells := make([]*TableLeafCell, page.CellCount)
	for i := 0; i < int(page.CellCount); i++ {
		cell, err := decodeTableLeafCell(page, page.CellOffset(i))
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}

	c.mu.Lock()
	c.leafCells[page.Number] = cells
	c.mu.Unlock()
	return cells, nil
}
