package jsonldb

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type testRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r testRow) Clone() testRow { return r }
func (r testRow) Key() string    { return r.ID }

func names(table *Table[testRow]) []string {
	var out []string
	for r := range table.All() {
		out = append(out, r.Name)
	}
	return out
}

func TestTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "test.jsonl")

	table, err := NewTable[testRow](path)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if got := names(table); len(got) != 0 {
		t.Fatalf("new table has rows %v", got)
	}

	for _, r := range []testRow{{ID: "1", Name: "One"}, {ID: "2", Name: "Two"}} {
		if err := table.Append(r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if got := names(table); len(got) != 2 {
		t.Errorf("expected 2 rows, got %v", got)
	}

	table2, err := NewTable[testRow](path)
	if err != nil {
		t.Fatalf("re-loading table failed: %v", err)
	}
	if got := names(table2); !slices.Equal(got, []string{"One", "Two"}) {
		t.Errorf("re-loaded data mismatch: %v", got)
	}

	row, err := table2.Get("2")
	if err != nil || row.Name != "Two" {
		t.Errorf("Get(2) = %+v, %v", row, err)
	}
	if _, err := table2.Get("3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(3) err = %v, want ErrNotFound", err)
	}

	if err := table2.Delete("1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := table2.Delete("1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete err = %v", err)
	}

	table3, err := NewTable[testRow](path)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(table3); !slices.Equal(got, []string{"Two"}) {
		t.Errorf("after delete: %v", got)
	}

}

func TestTableSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jsonl")
	data := "{\"id\":\"1\",\"name\":\"ok\"}\n{broken\n\n{\"id\":\"2\",\"name\":\"also ok\"}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := NewTable[testRow](path)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(table); !slices.Equal(got, []string{"ok", "also ok"}) {
		t.Errorf("rows = %v", got)
	}
}

func TestTableLongRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jsonl")
	table, err := NewTable[testRow](path)
	if err != nil {
		t.Fatal(err)
	}
	// Each '<' is escaped to 6 bytes, well past bufio.Scanner's 64KiB default.
	long := strings.Repeat("<", 20<<10)
	if err := table.Append(testRow{ID: "1", Name: long}); err != nil {
		t.Fatal(err)
	}
	if err := table.Append(testRow{ID: "2", Name: "short"}); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() < 100<<10 {
		t.Fatalf("file size = %v, %v", fi, err)
	}
	reopened, err := NewTable[testRow](path)
	if err != nil {
		t.Fatalf("reopening table with a long row failed: %v", err)
	}
	if got := names(reopened); !slices.Equal(got, []string{long, "short"}) {
		t.Errorf("reopened table has %d rows", len(got))
	}
}

func TestTableLastLineWithoutNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jsonl")
	if err := os.WriteFile(path, []byte(`{"id":"1","name":"tail"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := NewTable[testRow](path)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(table); !slices.Equal(got, []string{"tail"}) {
		t.Errorf("rows = %v", got)
	}
}
