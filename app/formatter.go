package main

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDbinfo renders the ".dbinfo" command's two lines (§6).
func FormatDbinfo(db *Database) string {
	var b strings.Builder
	fmt.Fprintf(&b, "database page size: %v\n", db.PageSize())
	fmt.Fprintf(&b, "number of tables: %v\n", db.SchemaCellCount())
	return b.String()
}

// FormatTables renders the ".tables" command's single space-joined line
// (§6).
func FormatTables(db *Database) string {
	return strings.Join(db.TableNames(), " ")
}

// FormatQueryResult renders a query's result as the CLI prints it: a bare
// count for `count(*)`, otherwise one pipe-delimited line per row (§6, §4.8
// step 7).
func FormatQueryResult(res *QueryResult) string {
	if res.IsCount {
		return strconv.Itoa(res.Count)
	}
	lines := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		fields := make([]string, len(row.Values))
		for j, v := range row.Values {
			fields[j] = v.String()
		}
		lines[i] = strings.Join(fields, "|")
	}
	return strings.Join(lines, "\n")
}
