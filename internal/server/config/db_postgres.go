package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenPostgres открывает подключение к PostgreSQL (драйвер pgx), дожидается
// доступности базы и, если включено, применяет миграции.
//
// База при старте в docker-compose часто поднимается позже сервера, поэтому
// Ping повторяется с экспоненциальной задержкой (db.connect_retries попыток).
// Закрыть *sql.DB должен вызывающий.
func OpenPostgres(ctx context.Context, db DBConfig, mig MigrationsConfig, log *zap.Logger) (*sql.DB, error) {
	conn, err := sql.Open("pgx", db.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if db.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(db.MaxOpenConns)
	}
	if db.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(db.MaxIdleConns)
	}
	conn.SetConnMaxLifetime(db.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(db.ConnMaxIdleTime)

	if err := PingWithRetry(ctx, conn, db.ConnectRetries, log); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if mig.Enabled {
		if err := migrateUp(conn, mig.Path); err != nil {
			_ = conn.Close()
			return nil, err
		}
		log.Info("migrations applied successfully")
	}

	return conn, nil
}

// PingWithRetry проверяет соединение, повторяя попытки с backoff.
func PingWithRetry(ctx context.Context, conn *sql.DB, retries uint64, log *zap.Logger) error {
	backoff := retry.WithMaxRetries(retries, retry.NewExponential(200*time.Millisecond))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := conn.PingContext(ctx); err != nil {
			log.Warn("db ping failed", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("check db connection: %w", err)
	}
	return nil
}

// migrateUp применяет миграции из source (file://migrations/postgres).
// migrate.ErrNoChange ошибкой не считается.
func migrateUp(conn *sql.DB, source string) error {
	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
