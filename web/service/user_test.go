package service

import (
	"testing"

	"github.com/mhartmann/librarian/storage"
	"github.com/mhartmann/librarian/storage/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	s := NewUserService(storage.NewStore(t.TempDir()))
	require.NoError(t, s.EnsureSeeded())
	return s
}

func TestRegisterAssignsSequentialIds(t *testing.T) {
	s := newUserService(t)

	ann, err := s.Register("Ann", "ann@x.com", "pw", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, 1, ann.Id)

	users, err := s.GetAll()
	require.NoError(t, err)
	require.Len(t, users, 1)

	bo, err := s.Register("Bo", "bo@x.com", "pw2", model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, 2, bo.Id)
	assert.Equal(t, model.RoleStaff, bo.Role)
}

func TestRegisterContinuesFromMaxId(t *testing.T) {
	s := newUserService(t)

	// Seed a table whose max id is ahead of the row count.
	require.NoError(t, s.store.Save("users", &storage.Table{
		Columns: model.UserColumns,
		Rows:    [][]string{{"7", "Ann", "ann@x.com", "pw", "user"}},
	}))

	bo, err := s.Register("Bo", "bo@x.com", "pw2", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, 8, bo.Id)
}

func TestRegisterDuplicateEmailLeavesTableUnchanged(t *testing.T) {
	s := newUserService(t)

	_, err := s.Register("Ann", "ann@x.com", "pw", model.RoleUser)
	require.NoError(t, err)
	before, err := s.GetAll()
	require.NoError(t, err)

	_, err = s.Register("Other Ann", "ann@x.com", "other", model.RoleStaff)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	after, err := s.GetAll()
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed registration must not change the table")
}

func TestAuthenticate(t *testing.T) {
	s := newUserService(t)
	_, err := s.Register("Ann", "ann@x.com", "pw", model.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"correct credentials", "ann@x.com", "pw", nil},
		{"wrong password", "ann@x.com", "nope", ErrInvalidCredentials},
		{"unknown email", "who@x.com", "pw", ErrInvalidCredentials},
		{"email case mismatch", "Ann@x.com", "pw", ErrInvalidCredentials},
		{"password case mismatch", "ann@x.com", "PW", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.Authenticate(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, user.Id)
			assert.Equal(t, "Ann", user.Name)
			assert.Equal(t, model.RoleUser, user.Role)
		})
	}
}

func TestFindByEmail(t *testing.T) {
	s := newUserService(t)
	_, err := s.Register("Ann", "ann@x.com", "pw", model.RoleUser)
	require.NoError(t, err)

	user, err := s.FindByEmail("ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ann", user.Name)

	missing, err := s.FindByEmail("who@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetAllOnMissingTable(t *testing.T) {
	s := NewUserService(storage.NewStore(t.TempDir()))
	_, err := s.GetAll()
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
}

func TestGetAllOnCorruptRow(t *testing.T) {
	s := newUserService(t)
	require.NoError(t, s.store.Save("users", &storage.Table{
		Columns: model.UserColumns,
		Rows:    [][]string{{"not-a-number", "Ann", "ann@x.com", "pw", "user"}},
	}))

	_, err := s.GetAll()
	assert.ErrorIs(t, err, storage.ErrCorruptData)
}
