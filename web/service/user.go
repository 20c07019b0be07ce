// Package service holds the domain repositories built on the tabular store.
package service

import (
	"errors"
	"fmt"

	"github.com/mhartmann/librarian/storage"
	"github.com/mhartmann/librarian/storage/model"
)

var (
	// ErrDuplicateEmail is returned by Register when the email is already
	// taken. The comparison is a case-sensitive exact match.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("wrong email or password")
)

const usersTable = "users"

// UserService reads and writes the users table. Every operation loads the
// full table; mutations rewrite it in full.
type UserService struct {
	store *storage.Store
}

func NewUserService(store *storage.Store) *UserService {
	return &UserService{store: store}
}

// EnsureSeeded creates an empty users table on first run.
func (s *UserService) EnsureSeeded() error {
	return s.store.EnsureTable(usersTable, model.UserColumns)
}

func (s *UserService) GetAll() ([]model.User, error) {
	t, err := s.store.Load(usersTable, model.UserColumns)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(t.Rows))
	for _, row := range t.Rows {
		var u model.User
		if err := u.UnmarshalRow(row); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrCorruptData, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// FindByEmail returns the first user with exactly that email, or nil.
func (s *UserService) FindByEmail(email string) (*model.User, error) {
	users, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Register appends a new user and persists the full table. The new id is
// one above the current maximum, or 1 for an empty table. The duplicate
// check runs against the snapshot loaded here; there is no guard against
// a concurrent registration racing this one.
func (s *UserService) Register(name, email, password string, role model.Role) (*model.User, error) {
	t, err := s.store.Load(usersTable, model.UserColumns)
	if err != nil {
		return nil, err
	}

	nextId := 1
	for _, row := range t.Rows {
		var u model.User
		if err := u.UnmarshalRow(row); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrCorruptData, err)
		}
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
		if u.Id >= nextId {
			nextId = u.Id + 1
		}
	}

	user := &model.User{Id: nextId, Name: name, Email: email, Password: password, Role: role}
	t.Rows = append(t.Rows, user.MarshalRow())
	if err := s.store.Save(usersTable, t); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the email and password against the stored values.
// Passwords are compared as plain strings, matching the legacy data files.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
