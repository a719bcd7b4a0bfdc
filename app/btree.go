package main

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Row is a projected query result: a column name list paired positionally
// with decoded values.
type Row struct {
	Columns []string
	Values  []Value
}

// scanCells performs the full, unpruned traversal of a table B-tree
// (§4.4 "Full table scan"). It is breadth-first: each level's pages are
// read concurrently (§5a), then decoded in queue order to build the next
// level's page list, enqueuing every left-child pointer in cell-pointer order followed
// by the rightmost pointer. There is no cycle detection -- the B-tree is
// assumed acyclic, an invariant of the format.
func scanCells(ctx context.Context, pager *Pager, root int) ([]*TableLeafCell, error) {
	var leaves []*TableLeafCell
	queue := []int{root}

	for len(queue) > 0 {
		pages := make([]*Page, len(queue))
		g, _ := errgroup.WithContext(ctx)
		for i, pn := range queue {
			i, pn := i, pn
			g.Go(func() error {
				p, err := pager.ReadPage(pn)
				if err != nil {
					return err
				}
				pages[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []int
		for _, p := range pages {
			if p.IsLeaf() {
				for i := 0; i < int(p.CellCount); i++ {
					cell, err := decodeTableLeafCell(p, p.CellOffset(i))
					if err != nil {
						return nil, err
					}
					leaves = append(leaves, cell)
				}
				continue
			}
			for i := 0; i < int(p.CellCount); i++ {
				cell, err := decodeTableInteriorCell(p, p.CellOffset(i))
				if err != nil {
					return nil, err
				}
				next = append(next, int(cell.LeftChild))
			}
			next = append(next, int(p.RightmostPointer))
		}
		queue = next
	}

	return leaves, nil
}

// ScanTable runs the full scan and projects each leaf cell's record into a
// Row over `project`, substituting the cell's row-id into the primary-key
// column if the table has one (§3 "Row"), and applying an optional
// in-memory equality filter (§4.8 step 6, the no-index fallback).
func ScanTable(ctx context.Context, pager *Pager, root int, allColumns []string, pkColumn string, project []string, filterColumn string, filterValue *Value) ([]Row, error) {
	cells, err := scanCells(ctx, pager, root)
	if err != nil {
		return nil, err
	}
	return projectCells(cells, allColumns, pkColumn, project, filterColumn, filterValue)
}

// projectCells turns decoded table-leaf cells into projected Rows: it
// substitutes each cell's row-id into the primary-key column (§3 "Row"),
// optionally applies an in-memory equality filter, and keeps only the
// requested `project` columns.
func projectCells(cells []*TableLeafCell, allColumns []string, pkColumn string, project []string, filterColumn string, filterValue *Value) ([]Row, error) {
	pkIdx := -1
	if pkColumn != "" {
		pkIdx = indexOf(allColumns, pkColumn)
	}
	filterIdx := -1
	if filterColumn != "" {
		filterIdx = indexOf(allColumns, filterColumn)
	}
	projectIdx := make([]int, len(project))
	for i, name := range project {
		projectIdx[i] = indexOf(allColumns, name)
	}

	var rows []Row
	for _, cell := range cells {
		values := make([]Value, len(allColumns))
		for i := range allColumns {
			if i < cell.Record.NumFields() {
				v, err := cell.Record.Field(i)
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
		}
		if pkIdx >= 0 {
			values[pkIdx] = Value{Kind: KindInteger, Int: int64(cell.Rowid)}
		}

		if filterIdx >= 0 {
			if compareValues(values[filterIdx], *filterValue) != 0 {
				continue
			}
		}

		projected := make([]Value, len(project))
		for i, idx := range projectIdx {
			if idx >= 0 {
				projected[i] = values[idx]
			}
		}
		rows = append(rows, Row{Columns: project, Values: projected})
	}
	return rows, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// LookupMany descends from root to the leaf cell for each row-id in
// rowids, sharing one pageCache so concurrent descents for different
// row-ids reuse pages already fetched or in flight (§4.4 "Point lookup",
// §5b). Results are returned in the input row-id order.
func LookupMany(ctx context.Context, pager *Pager, root int, rowids []uint64, opts ...PagerOption) ([]*TableLeafCell, error) {
	cfg := defaultPagerConfig()
	if pager.cfg != nil {
		*cfg = *pager.cfg
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cache := newPageCache(pager, cfg)

	results := make([]*TableLeafCell, len(rowids))
	g, gctx := errgroup.WithContext(ctx)
	for i, rowid := range rowids {
		i, rowid := i, rowid
		g.Go(func() error {
			cell, err := lookupOne(gctx, cache, root, rowid)
			if err != nil {
				return err
			}
			results[i] = cell
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// lookupOne descends the table B-tree from root to the leaf cell with the
// given row-id, using binary search at every level: a lower-bound search
// over interior keys (falling to the rightmost pointer once every key is
// less than rowid), and an exact-match search at the leaf (§4.4, §9 --
// standard half-open bisection, not the inclusive-bound variant).
func lookupOne(ctx context.Context, cache *pageCache, root int, rowid uint64) (*TableLeafCell, error) {
	pageNum := root
	for {
		page, err := cache.get(ctx, pageNum)
		if err != nil {
			return nil, err
		}

		if page.IsLeaf() {
			cells, err := cache.leafCellsOf(page)
			if err != nil {
				return nil, err
			}
			lo, hi := 0, len(cells)
			for lo < hi {
				mid := (lo + hi) / 2
				switch {
				case cells[mid].Rowid == rowid:
					return cells[mid], nil
				case cells[mid].Rowid < rowid:
					lo = mid + 1
				default:
					hi = mid
				}
			}
			return nil, NewSemanticError("get_row_by_rowid", ErrRowidNotFound, map[string]interface{}{"rowid": rowid})
		}

		cells, err := cache.interiorCellsOf(page)
		if err != nil {
			return nil, err
		}
		lo, hi := 0, len(cells)
		for lo < hi {
			mid := (lo + hi) / 2
			if cells[mid].Key < rowid {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo == len(cells) {
			pageNum = int(page.RightmostPointer)
		} else {
			pageNum = int(cells[lo].LeftChild)
		}
	}
}

// FindRowIDs walks an index B-tree collecting the row-ids of every entry
// whose leading columns equal keyPrefix, per the pruned traversal in §4.4.
// Like scanCells (§5a), each level's pages are read concurrently via
// errgroup before their cells are pruned and the next level's page list is
// built, so a failed sibling read aborts the whole lookup.
func FindRowIDs(ctx context.Context, pager *Pager, indexRoot int, keyPrefix []Value) ([]uint64, error) {
	var rowids []uint64
	queue := []int{indexRoot}

	for len(queue) > 0 {
		pages := make([]*Page, len(queue))
		g, _ := errgroup.WithContext(ctx)
		for i, pn := range queue {
			i, pn := i, pn
			g.Go(func() error {
				p, err := pager.ReadPage(pn)
				if err != nil {
					return err
				}
				pages[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []int
		for _, page := range pages {
			if page.IsLeaf() {
				for i := 0; i < int(page.CellCount); i++ {
					cell, err := decodeIndexLeafCell(page, page.CellOffset(i))
					if err != nil {
						return nil, err
					}
					prefixVals, err := recordPrefixValues(cell.Record, len(keyPrefix))
					if err != nil {
						return nil, err
					}
					cmp := compareKeyPrefix(prefixVals, keyPrefix)
					if cmp == 0 {
						rowids = append(rowids, cell.Rowid)
					} else if cmp > 0 {
						break
					}
				}
				continue
			}

			sawGreater := false
			for i := 0; i < int(page.CellCount); i++ {
				cell, err := decodeIndexInteriorCell(page, page.CellOffset(i))
				if err != nil {
					return nil, err
				}
				prefixVals, err := recordPrefixValues(cell.Record, len(keyPrefix))
				if err != nil {
					return nil, err
				}
				cmp := compareKeyPrefix(prefixVals, keyPrefix)
				if cmp >= 0 {
					next = append(next, int(cell.LeftChild))
				}
				if cmp == 0 {
					rowids = append(rowids, cell.Rowid)
				}
				if cmp > 0 {
					sawGreater = true
					break
				}
			}
			if !sawGreater {
				next = append(next, int(page.RightmostPointer))
			}
		}
		queue = next
	}

	return rowids, nil
}

// recordPrefixValues decodes the first n fields of a record.
func recordPrefixValues(record *Record, n int) ([]Value, error) {
	if n > record.NumFields() {
		n = record.NumFields()
	}
	vals := make([]Value, n)
	for i := 0; i < n; i++ {
		v, err := record.Field(i)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
