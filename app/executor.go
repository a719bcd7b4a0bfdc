package main

import "context"

// QueryResult is what the executor hands to the CLI/formatter: either a
// bare count (for `count(*)`) or a set of projected rows.
type QueryResult struct {
	IsCount bool
	Count   int
	Columns []string
	Rows    []Row
}

// Execute runs a SELECT against db per §4.8's seven steps: parse, resolve
// the table, load its columns from its stored CREATE TABLE text, validate
// count(*) usage, resolve the requested+filter columns, choose an index or
// full scan, and project.
func Execute(ctx context.Context, db *Database, sqlText string) (*QueryResult, error) {
	parser, err := NewParser(sqlText)
	if err != nil {
		return nil, err
	}
	stmt, err := parser.ParseStatement()
	if err != nil {
		return nil, err
	}
	selectStmt, ok := stmt.(*SelectStmt)
	if !ok {
		return nil, NewSqlError("execute", ErrUnexpectedToken, map[string]interface{}{
			"reason": "only SELECT statements are executable",
		})
	}

	allColumns, pkColumn, rootPage, err := db.tableColumns(selectStmt.Table)
	if err != nil {
		return nil, err
	}

	hasCountStar := false
	var project []string
	for _, c := range selectStmt.Columns {
		if c.IsCountStar {
			hasCountStar = true
			continue
		}
		project = append(project, c.Name)
	}
	if hasCountStar && len(selectStmt.Columns) != 1 {
		return nil, NewSemanticError("validate_projection", ErrColumnNotFound, map[string]interface{}{
			"reason": "count(*) must be the only projected column",
		})
	}

	for _, name := range project {
		if indexOf(allColumns, name) < 0 {
			return nil, NewSemanticError("resolve_column", ErrColumnNotFound, map[string]interface{}{"column": name})
		}
	}
	var filterColumn string
	var filterValue *Value
	if selectStmt.Where != nil {
		filterColumn = selectStmt.Where.Column
		if indexOf(allColumns, filterColumn) < 0 {
			return nil, NewSemanticError("resolve_column", ErrColumnNotFound, map[string]interface{}{"column": filterColumn})
		}
		v := selectStmt.Where.Value
		filterValue = &v
	}

	var rows []Row
	if selectStmt.Where != nil {
		indexRoot, _, found, err := db.indexOnColumn(selectStmt.Table, filterColumn)
		if err != nil {
			return nil, err
		}
		if found {
			rowids, err := FindRowIDs(ctx, db.pager, indexRoot, []Value{*filterValue})
			if err != nil {
				return nil, err
			}
			cells, err := LookupMany(ctx, db.pager, rootPage, rowids)
			if err != nil {
				return nil, err
			}
			rows, err = projectCells(cells, allColumns, pkColumn, project, "", nil)
			if err != nil {
				return nil, err
			}
		} else {
			rows, err = ScanTable(ctx, db.pager, rootPage, allColumns, pkColumn, project, filterColumn, filterValue)
			if err != nil {
				return nil, err
			}
		}
	} else {
		rows, err = ScanTable(ctx, db.pager, rootPage, allColumns, pkColumn, project, "", nil)
		if err != nil {
			return nil, err
		}
	}

	if hasCountStar {
		return &QueryResult{IsCount: true, Count: len(rows)}, nil
	}
	return &QueryResult{Columns: project, Rows: rows}, nil
}
