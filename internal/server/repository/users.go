// Package repository хранит пользователей в PostgreSQL или MongoDB.
//
// Ошибки драйвера наружу не выходят как есть: они приводятся к доменным
// serr.ErrNotFound / serr.ErrAlreadyExists / serr.ErrStorageUnavailable,
// а детали (код, операция) сохраняются в oops-ошибке для логов.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/samber/oops"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

type UsersRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewUsersRepository создаёт репозиторий; timeout (db.query_timeout)
// ограничивает каждый запрос, 0 — без ограничения.
func NewUsersRepository(db *sql.DB, timeout time.Duration) *UsersRepository {
	return &UsersRepository{db: db, timeout: timeout}
}

// Insert сохраняет пользователя. Уникальность email гарантирует
// ограничение users_email_unique: конфликт — ErrAlreadyExists.
func (r *UsersRepository) Insert(ctx context.Context, u *models.User) (uuid.UUID, error) {
	var id uuid.UUID

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING id`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, serr.ErrAlreadyExists
		}
		return uuid.Nil, storageError("USER_INSERT_FAILED", "insert user", err)
	}

	return id, nil
}

// FindByEmail ищет пользователя по уже нормализованному email.
func (r *UsersRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, storageError("USER_LOOKUP_FAILED", "find user by email", err)
	}

	return &u, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// storageError оборачивает ошибку драйвера: errors.Is(err, serr.ErrStorageUnavailable)
// остаётся true, а код и операция видны в логах.
func storageError(code, operation string, err error) error {
	return oops.
		Code(code).
		With("operation", operation).
		Wrap(errors.Join(serr.ErrStorageUnavailable, err))
}
