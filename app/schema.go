package main

import "context"

// SchemaObject is one row of sqlite_schema (§3 "Schema table").
type SchemaObject struct {
	Type     string // "table", "index", "view", "trigger"
	Name     string
	TblName  string
	RootPage int
	SQL      string
}

// Schema is the materialized sqlite_schema table, partitioned by type
// (§4.5).
type Schema struct {
	Tables  []SchemaObject
	Indexes []SchemaObject
}

// Table looks up a table by name.
func (s *Schema) Table(name string) (*SchemaObject, bool) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// IndexesOn returns every index registered against the given table name.
func (s *Schema) IndexesOn(tableName string) []SchemaObject {
	var out []SchemaObject
	for _, idx := range s.Indexes {
		if idx.TblName == tableName {
			out = append(out, idx)
		}
	}
	return out
}

// LoadSchema reads page 1 as a table-leaf B-tree with the hardcoded
// sqlite_schema layout (type, name, tbl_name, rootpage, sql), all
// Text,Text,Text,Integer,Text (§4.5), and classifies rows by type.
func LoadSchema(ctx context.Context, pager *Pager) (*Schema, error) {
	cells, err := scanCells(ctx, pager, 1)
	if err != nil {
		return nil, err
	}

	schema := &Schema{}
	for _, cell := range cells {
		obj, err := decodeSchemaObject(cell)
		if err != nil {
			return nil, err
		}
		switch obj.Type {
		case "table":
			schema.Tables = append(schema.Tables, obj)
		case "index":
			schema.Indexes = append(schema.Indexes, obj)
		}
	}
	return schema, nil
}

// decodeSchemaObject validates and extracts the five fixed schema columns.
// A schema row whose type/name/tbl_name/sql isn't text, or whose rootpage
// isn't an integer, is a fatal format error (§3 invariant, §4.5).
func decodeSchemaObject(cell *TableLeafCell) (SchemaObject, error) {
	if cell.Record.NumFields() < 5 {
		return SchemaObject{}, NewFormatError("decode_schema_object", ErrInsufficientData, map[string]interface{}{
			"fields": cell.Record.NumFields(),
		})
	}

	typ, err := textField(cell.Record, 0, "type")
	if err != nil {
		return SchemaObject{}, err
	}
	name, err := textField(cell.Record, 1, "name")
	if err != nil {
		return SchemaObject{}, err
	}
	tblName, err := textField(cell.Record, 2, "tbl_name")
	if err != nil {
		return SchemaObject{}, err
	}
	rootPage, err := integerField(cell.Record, 3, "rootpage")
	if err != nil {
		return SchemaObject{}, err
	}
	sql, err := textField(cell.Record, 4, "sql")
	if err != nil {
		return SchemaObject{}, err
	}

	return SchemaObject{Type: typ, Name: name, TblName: tblName, RootPage: int(rootPage), SQL: sql}, nil
}

func textField(r *Record, i int, field string) (string, error) {
	v, err := r.Field(i)
	if err != nil {
		return "", err
	}
	if v.Kind != KindText {
		return "", NewFormatError("schema_field_kind", ErrUnsupportedSerial, map[string]interface{}{
			"field": field, "kind": v.Kind,
		})
	}
	return v.Text, nil
}

func integerField(r *Record, i int, field string) (int64, error) {
	v, err := r.Field(i)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case KindInteger:
		return v.Int, nil
	case KindZero:
		return 0, nil
	case KindOne:
		return 1, nil
	default:
		return 0, NewFormatError("schema_field_kind", ErrUnsupportedSerial, map[string]interface{}{
			"field": field, "kind": v.Kind,
		})
	}
}
