package main

import (
	"context"
	"fmt"
	"os"
)

// Usage: sqlite-query-engine sample.db .dbinfo
//
// Per §7, ".dbinfo" and ".tables" failures are structural and propagate as
// a non-zero exit; a failure while executing a SQL statement is reported to
// stderr but the program still exits 0 -- a bad query is not a crash.
func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: <database file> <command>")
		os.Exit(1)
	}
	databaseFilePath := os.Args[1]
	command := os.Args[2]

	ctx := context.Background()

	switch command {
	case ".dbinfo":
		db, err := OpenDatabase(ctx, databaseFilePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer db.Close()
		fmt.Print(FormatDbinfo(db))

	case ".tables":
		db, err := OpenDatabase(ctx, databaseFilePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer db.Close()
		fmt.Println(FormatTables(db))

	default:
		db, err := OpenDatabase(ctx, databaseFilePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		defer db.Close()

		result, err := Execute(ctx, db, command)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if out := FormatQueryResult(result); out != "" {
			fmt.Println(out)
		}
	}
}
