// Package model defines the persisted records of the librarian catalog and
// their CSV row codecs.
package model

import (
	"strconv"

	"github.com/mhartmann/librarian/util/common"
)

// Role gates access to book-management operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleStaff
}

// Status tracks whether a book sits on the shelf or is checked out.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBorrowed  Status = "borrowed"
)

// Column schemas of the two backing tables. Order matters: it is the CSV
// header order and the row codec field order.
var (
	UserColumns = []string{"id", "name", "email", "password", "role"}
	BookColumns = []string{"id", "title", "author", "year", "status"}
)

// User is a registered account. The password is stored and compared in
// plain text, matching the legacy data files.
type User struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

func (u *User) MarshalRow() []string {
	return []string{strconv.Itoa(u.Id), u.Name, u.Email, u.Password, string(u.Role)}
}

func (u *User) UnmarshalRow(row []string) error {
	if len(row) != len(UserColumns) {
		return common.NewErrorf("user row has %d fields, want %d", len(row), len(UserColumns))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return common.NewErrorf("user id %q is not an integer", row[0])
	}
	u.Id = id
	u.Name = row[1]
	u.Email = row[2]
	u.Password = row[3]
	u.Role = Role(row[4])
	return nil
}

// Book is one catalog entry.
type Book struct {
	Id     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
}

func (b *Book) MarshalRow() []string {
	return []string{strconv.Itoa(b.Id), b.Title, b.Author, strconv.Itoa(b.Year), string(b.Status)}
}

func (b *Book) UnmarshalRow(row []string) error {
	if len(row) != len(BookColumns) {
		return common.NewErrorf("book row has %d fields, want %d", len(row), len(BookColumns))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return common.NewErrorf("book id %q is not an integer", row[0])
	}
	year, err := strconv.Atoi(row[3])
	if err != nil {
		return common.NewErrorf("book year %q is not an integer", row[3])
	}
	b.Id = id
	b.Title = row[1]
	b.Author = row[2]
	b.Year = year
	b.Status = Status(row[4])
	return nil
}
