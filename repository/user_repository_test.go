// file: repository/user_repository_test.go

package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-auth-api/model"
)

func newUserRepoTest(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), dbMock
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, dbMock := newUserRepoTest(t)

	createdAt := time.Now()
	dbMock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO users (email, password, role) VALUES ($1, $2, $3) RETURNING id, created_at`)).
		WithArgs("alice@example.com", "$2a$14$somebcrypthash", model.RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))

	user := &model.User{Email: "alice@example.com", Password: "$2a$14$somebcrypthash", Role: model.RoleUser}
	require.NoError(t, repo.CreateUser(user))

	assert.Equal(t, 1, user.ID)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, dbMock := newUserRepoTest(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(
			`SELECT id, email, password, role, created_at FROM users WHERE email=$1`)).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at"}).
				AddRow(1, "alice@example.com", "$2a$14$somebcrypthash", "user", time.Now()))

		user, err := repo.GetUserByEmail("alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, model.RoleUser, user.Role)
	})

	t.Run("not found", func(t *testing.T) {
		repo, dbMock := newUserRepoTest(t)

		dbMock.ExpectQuery(regexp.QuoteMeta(
			`SELECT id, email, password, role, created_at FROM users WHERE email=$1`)).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByEmail("nobody@example.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	repo, dbMock := newUserRepoTest(t)

	dbMock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, password, role, created_at FROM users WHERE id=$1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at"}).
			AddRow(1, "alice@example.com", "$2a$14$somebcrypthash", "admin", time.Now()))

	user, err := repo.GetUserByID(1)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.RoleAdmin, user.Role)
}
