package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var testColumns = []string{"id", "name", "email", "password", "role"}

func TestEnsureTableIsIdempotent(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.EnsureTable("users", testColumns); err != nil {
		t.Fatalf("first EnsureTable: %v", err)
	}
	tbl, err := s.Load("users", testColumns)
	if err != nil {
		t.Fatalf("Load after EnsureTable: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Fatalf("new table has %d rows, want 0", len(tbl.Rows))
	}

	// A second EnsureTable must not wipe existing rows.
	tbl.Rows = append(tbl.Rows, []string{"1", "Ann", "ann@x.com", "pw", "user"})
	if err := s.Save("users", tbl); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.EnsureTable("users", testColumns); err != nil {
		t.Fatalf("second EnsureTable: %v", err)
	}
	tbl, err = s.Load("users", testColumns)
	if err != nil {
		t.Fatalf("Load after second EnsureTable: %v", err)
	}
	if len(tbl.Rows) != 1 {
		t.Fatalf("table has %d rows after re-ensure, want 1", len(tbl.Rows))
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Load("users", testColumns)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Load of missing table: got %v, want ErrStorageUnavailable", err)
	}
}

func TestLoadCorruptData(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "id,name\n"},
		{"renamed column", "id,name,mail,password,role\n"},
		{"short row", "id,name,email,password,role\n1,Ann,ann@x.com\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "users.csv"), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := NewStore(dir)
			_, err := s.Load("users", testColumns)
			if !errors.Is(err, ErrCorruptData) {
				t.Fatalf("got %v, want ErrCorruptData", err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	rows := [][]string{
		{"1", "Ann", "ann@x.com", "pw", "user"},
		{"2", "Bo", "bo@x.com", "pw2", "staff"},
		{"3", "Cyd", "cyd@x.com", "pw3", "user"},
	}
	if err := s.Save("users", &Table{Columns: testColumns, Rows: rows}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tbl, err := s.Load("users", testColumns)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns, testColumns) {
		t.Errorf("columns = %v, want %v", tbl.Columns, testColumns)
	}
	if !reflect.DeepEqual(tbl.Rows, rows) {
		t.Errorf("rows = %v, want %v (same fields, same order)", tbl.Rows, rows)
	}
}

func TestSaveOverwritesInFull(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Save("users", &Table{Columns: testColumns, Rows: [][]string{
		{"1", "Ann", "ann@x.com", "pw", "user"},
		{"2", "Bo", "bo@x.com", "pw2", "staff"},
	}}); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	shorter := [][]string{{"1", "Ann", "ann@x.com", "pw", "user"}}
	if err := s.Save("users", &Table{Columns: testColumns, Rows: shorter}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	tbl, err := s.Load("users", testColumns)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(tbl.Rows, shorter) {
		t.Errorf("rows = %v, want %v", tbl.Rows, shorter)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Save("users", &Table{Columns: testColumns}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "users.csv" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("data folder contains %v, want only users.csv", names)
	}
}
