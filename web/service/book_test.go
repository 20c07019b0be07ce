package service

import (
	"testing"

	"github.com/mhartmann/librarian/storage"
	"github.com/mhartmann/librarian/storage/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookService(t *testing.T) *BookService {
	t.Helper()
	s := NewBookService(storage.NewStore(t.TempDir()))
	require.NoError(t, s.EnsureSeeded())
	return s
}

func TestBookSaveAndGetAllPreserveOrder(t *testing.T) {
	s := newBookService(t)

	books := []model.Book{
		{Id: 3, Title: "Dune", Author: "Frank Herbert", Year: 1965, Status: model.StatusAvailable},
		{Id: 1, Title: "Neuromancer", Author: "William Gibson", Year: 1984, Status: model.StatusBorrowed},
		{Id: 2, Title: "Hyperion", Author: "Dan Simmons", Year: 1989, Status: model.StatusAvailable},
	}
	require.NoError(t, s.Save(books))

	got, err := s.GetAll()
	require.NoError(t, err)
	assert.Equal(t, books, got, "listing must preserve file order")
}

func TestBookGetAllOnFreshTable(t *testing.T) {
	s := newBookService(t)
	books, err := s.GetAll()
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookGetAllOnCorruptYear(t *testing.T) {
	s := newBookService(t)
	require.NoError(t, s.store.Save("books", &storage.Table{
		Columns: model.BookColumns,
		Rows:    [][]string{{"1", "Dune", "Frank Herbert", "mcmlxv", "available"}},
	}))

	_, err := s.GetAll()
	assert.ErrorIs(t, err, storage.ErrCorruptData)
}
