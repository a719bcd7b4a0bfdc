package main

import (
	"context"
	"testing"
)

func TestLoadSchema(t *testing.T) {
	path, _ := appleDBFixture(t)
	pager, err := OpenPager(path)
	if err != nil {
		t.Fatalf("OpenPager: %v", err)
	}
	defer pager.Close()

	schema, err := LoadSchema(context.Background(), pager)
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	tbl, ok := schema.Table("apples")
	if !ok {
		t.Fatal("expected to find table apples")
	}
	if tbl.RootPage != 2 {
		t.Errorf("apples RootPage = %d, want 2", tbl.RootPage)
	}

	if _, ok := schema.Table("missing"); ok {
		t.Error("expected Table(missing) to report not found")
	}

	indexes := schema.IndexesOn("apples")
	if len(indexes) != 1 || indexes[0].Name != "idx_name" || indexes[0].RootPage != 3 {
		t.Errorf("IndexesOn(apples) = %+v", indexes)
	}
}
