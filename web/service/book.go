package service

import (
	"fmt"

	"github.com/mhartmann/librarian/storage"
	"github.com/mhartmann/librarian/storage/model"
)

const booksTable = "books"

// BookService reads and writes the books table.
type BookService struct {
	store *storage.Store
}

func NewBookService(store *storage.Store) *BookService {
	return &BookService{store: store}
}

// EnsureSeeded creates an empty books table on first run.
func (s *BookService) EnsureSeeded() error {
	return s.store.EnsureTable(booksTable, model.BookColumns)
}

// GetAll returns every book in file order.
func (s *BookService) GetAll() ([]model.Book, error) {
	t, err := s.store.Load(booksTable, model.BookColumns)
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0, len(t.Rows))
	for _, row := range t.Rows {
		var b model.Book
		if err := b.UnmarshalRow(row); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrCorruptData, err)
		}
		books = append(books, b)
	}
	return books, nil
}

// Save rewrites the books table in full. The current routes only read;
// this is the write path for the upcoming checkout/return flow.
func (s *BookService) Save(books []model.Book) error {
	t := &storage.Table{Columns: model.BookColumns, Rows: make([][]string, 0, len(books))}
	for i := range books {
		t.Rows = append(t.Rows, books[i].MarshalRow())
	}
	return s.store.Save(booksTable, t)
}
