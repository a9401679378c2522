package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/models"
)

var userColumns = []string{"user_id", "username", "first_name", "last_name", "email", "password_hash", "created_at"}

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with generated id and hashed password", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		user := &models.User{Username: "auth", Email: "auth@example.com"}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(sqlmock.AnyArg(), "auth", "", "", "auth@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.False(t, user.CreatedAt.IsZero())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

		err := repo.CreateUser(ctx, &models.User{Username: "auth"}, "password123")

		assert.ErrorIs(t, err, models.ErrUsernameTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(errors.New("connection reset"))

		err := repo.CreateUser(ctx, &models.User{Username: "auth"}, "password123")

		assert.ErrorContains(t, err, "failed to create user")
		assert.NotErrorIs(t, err, models.ErrUsernameTaken)
	})
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE username = $1")).
		WithArgs("auth").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "auth", "Leo", "", "auth@example.com", "hash", now))

	user, err := repo.GetUserByUsername(ctx, "auth")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, "Leo", user.FirstName)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err = repo.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByID(t *testing.T) {
	ctx := context.Background()
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "auth", "", "", "", "hash", time.Now()))

	user, err := repo.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "auth", user.Username)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE user_id = $1")).
		WithArgs("u2").
		WillReturnError(errors.New("boom"))

	_, err = repo.GetUserByID(ctx, "u2")
	assert.ErrorContains(t, err, "failed to get user")
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		rows     *sqlmock.Rows
		wantErr  error
	}{
		{
			name:     "valid password",
			username: "auth",
			password: "secret-pass",
			rows:     sqlmock.NewRows(userColumns).AddRow("u1", "auth", "", "", "", string(hash), time.Now()),
		},
		{
			name:     "wrong password",
			username: "auth",
			password: "wrong",
			rows:     sqlmock.NewRows(userColumns).AddRow("u1", "auth", "", "", "", string(hash), time.Now()),
			wantErr:  models.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "secret-pass",
			rows:     sqlmock.NewRows(userColumns),
			wantErr:  models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewUserRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE username = $1")).
				WithArgs(tt.username).
				WillReturnRows(tt.rows)

			user, err := repo.VerifyPassword(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "u1", user.UserID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_DeleteUser(t *testing.T) {
	ctx := context.Background()
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.DeleteUser(ctx, "u1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE user_id = $1")).
		WithArgs("u2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteUser(ctx, "u2"), models.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
