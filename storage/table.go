// Package storage implements the flat-file tabular store backing the
// librarian catalog. Each table is a single CSV file: a header row naming
// the columns followed by one row per record. Every load reads the whole
// file and every save rewrites it in full; concurrent writers are not
// coordinated, so the last save wins.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mhartmann/librarian/util/common"
)

var (
	// ErrStorageUnavailable means the backing file is missing or unreadable
	// at the time it is required, or a write failed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorruptData means the backing file exists but does not match the
	// expected column schema.
	ErrCorruptData = errors.New("corrupt table data")
)

// Table is an ordered sequence of rows sharing a fixed column schema.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Store reads and writes named tables under a single data folder. It is an
// explicit handle so callers can point it at a test folder.
type Store struct {
	folder string
}

func NewStore(folder string) *Store {
	return &Store{folder: folder}
}

func (s *Store) tablePath(name string) string {
	return filepath.Join(s.folder, name+".csv")
}

// EnsureTable creates the backing file with a header and zero rows if it
// does not exist yet. Idempotent: an existing file is left untouched.
func (s *Store) EnsureTable(name string, columns []string) error {
	if err := os.MkdirAll(s.folder, 0o750); err != nil {
		return fmt.Errorf("%w: create data folder %s: %v", ErrStorageUnavailable, s.folder, err)
	}
	if _, err := os.Stat(s.tablePath(name)); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat table %s: %v", ErrStorageUnavailable, name, err)
	}
	return s.Save(name, &Table{Columns: columns})
}

// Load parses the full backing file for name. The header must equal the
// expected columns and every row must have the same field count.
func (s *Store) Load(name string, columns []string) (*Table, error) {
	f, err := os.Open(s.tablePath(name))
	if err != nil {
		return nil, fmt.Errorf("%w: open table %s: %v", ErrStorageUnavailable, name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(columns)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: table %s: %v", ErrCorruptData, name, err)
	}
	if len(records) == 0 || !slices.Equal(records[0], columns) {
		return nil, fmt.Errorf("%w: table %s: header does not match schema %v", ErrCorruptData, name, columns)
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// Save rewrites the backing file for name with the full table contents,
// header first. The write goes to a temp file in the same folder and is
// moved into place, so readers never see a half-written table. A failed
// save leaves the previous file contents intact but must be treated as a
// data-loss risk for the rows being written.
func (s *Store) Save(name string, t *Table) error {
	tmp, err := os.CreateTemp(s.folder, name+"-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for table %s: %v", ErrStorageUnavailable, name, err)
	}

	w := csv.NewWriter(tmp)
	writeErr := w.Write(t.Columns)
	if writeErr == nil {
		writeErr = w.WriteAll(t.Rows)
	}
	if err := common.Combine(writeErr, tmp.Close()); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: write table %s: %v", ErrStorageUnavailable, name, err)
	}

	if err := os.Rename(tmp.Name(), s.tablePath(name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace table %s: %v", ErrStorageUnavailable, name, err)
	}
	return nil
}
