package main

import "context"

// Database ties a Pager to its loaded schema and owns the file handle for
// the session (§3 "Lifecycles").
type Database struct {
	pager  *Pager
	schema *Schema
}

// OpenDatabase opens path read-only and loads its schema.
func OpenDatabase(ctx context.Context, path string, opts ...PagerOption) (*Database, error) {
	pager, err := OpenPager(path, opts...)
	if err != nil {
		return nil, err
	}
	schema, err := LoadSchema(ctx, pager)
	if err != nil {
		pager.Close()
		return nil, err
	}
	return &Database{pager: pager, schema: schema}, nil
}

// Close releases the underlying file handle.
func (d *Database) Close() error {
	return d.pager.Close()
}

func (d *Database) PageSize() int {
	return d.pager.PageSize()
}

// SchemaCellCount is the raw cell count of page 1, exposed verbatim as
// ".dbinfo"'s "number of tables" (§4.2, §6).
func (d *Database) SchemaCellCount() int {
	return d.pager.SchemaCellCount()
}

// TableNames returns every table's name in schema order (§6 ".tables").
func (d *Database) TableNames() []string {
	names := make([]string, 0, len(d.schema.Tables))
	for _, t := range d.schema.Tables {
		names = append(names, t.Name)
	}
	return names
}

// tableColumns parses the target table's stored CREATE TABLE text to
// obtain its column list and primary-key column name, if any (§4.8 step 3).
func (d *Database) tableColumns(tableName string) (columns []string, pkColumn string, rootPage int, err error) {
	obj, ok := d.schema.Table(tableName)
	if !ok {
		return nil, "", 0, NewSemanticError("resolve_table", ErrTableNotFound, map[string]interface{}{"table": tableName})
	}

	parser, err := NewParser(obj.SQL)
	if err != nil {
		return nil, "", 0, err
	}
	stmt, err := parser.ParseStatement()
	if err != nil {
		return nil, "", 0, err
	}
	createTable, ok := stmt.(*CreateTableStmt)
	if !ok {
		return nil, "", 0, NewFormatError("parse_table_sql", ErrUnexpectedToken, map[string]interface{}{"table": tableName})
	}

	columns = make([]string, len(createTable.Columns))
	for i, c := range createTable.Columns {
		columns[i] = c.Name
		if c.IsPrimaryKey {
			pkColumn = c.Name
		}
	}
	return columns, pkColumn, obj.RootPage, nil
}

// indexOnColumn finds an index on tableName whose first indexed column is
// column, re-parsing each candidate's stored CREATE INDEX text (§4.8
// step 6). Returns ok=false if none matches.
func (d *Database) indexOnColumn(tableName, column string) (rootPage int, indexedColumns []string, ok bool, err error) {
	for _, candidate := range d.schema.IndexesOn(tableName) {
		parser, perr := NewParser(candidate.SQL)
		if perr != nil {
			return 0, nil, false, perr
		}
		stmt, perr := parser.ParseStatement()
		if perr != nil {
			return 0, nil, false, perr
		}
		createIndex, isCreateIndex := stmt.(*CreateIndexStmt)
		if !isCreateIndex || len(createIndex.Columns) == 0 {
			continue
		}
		if createIndex.Columns[0] == column {
			return candidate.RootPage, createIndex.Columns, true, nil
		}
	}
	return 0, nil, false, nil
}
