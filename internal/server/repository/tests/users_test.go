package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/samber/oops"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/models"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

func newUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Успех
func TestUsersRepository_Insert_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, time.Second)
	u := newUser()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "Ana", "ana@example.com", "$2a$10$hash", u.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(u.ID.String()))

	got, err := repo.Insert(context.Background(), u)
	require.NoError(t, err)
	require.Equal(t, u.ID, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Такой пользователь уже есть
func TestUsersRepository_Insert_AlreadyExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, time.Second)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_unique"})

	_, err = repo.Insert(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// Ошибка хранилища: наружу ErrStorageUnavailable, детали в oops
func TestUsersRepository_Insert_StorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, time.Second)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(sql.ErrConnDone)

	_, err = repo.Insert(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrStorageUnavailable)
	require.ErrorIs(t, err, sql.ErrConnDone)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	require.Equal(t, "USER_INSERT_FAILED", oopsErr.Code())
	require.Equal(t, "insert user", oopsErr.Context()["operation"])
}

// Другая ошибка Postgres (не unique) — не дубликат
func TestUsersRepository_Insert_OtherPgError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, time.Second)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})

	_, err = repo.Insert(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrStorageUnavailable)
	require.NotErrorIs(t, err, serr.ErrAlreadyExists)
}

// поиск по email
func TestUsersRepository_FindByEmail_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, time.Second)
	u := newUser()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at FROM users WHERE email=\$1`).
		WithArgs("ana@example.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
				AddRow(u.ID.String(), u.Name, u.Email, u.PasswordHash, u.CreatedAt),
		)

	got, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, u, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, time.Second)

	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at FROM users`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestUsersRepository_FindByEmail_StorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, time.Second)

	driverErr := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at FROM users`).
		WillReturnError(driverErr)

	_, err = repo.FindByEmail(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, serr.ErrStorageUnavailable)
	require.NotErrorIs(t, err, serr.ErrNotFound)
}

// Запрос дольше db.query_timeout обрывается и считается сбоем хранилища
func TestUsersRepository_FindByEmail_QueryTimeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db, 20*time.Millisecond)

	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at FROM users`).
		WithArgs("ana@example.com").
		WillDelayFor(time.Second).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}))

	start := time.Now()
	_, err = repo.FindByEmail(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, serr.ErrStorageUnavailable)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}
