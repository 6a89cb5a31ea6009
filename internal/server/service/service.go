// Package service содержит бизнес-логику приложения (authflow).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_users_repo.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/config"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth *AuthService
}

// NewServices собирает все сервисы приложения из конфига.
// observe получает длительность каждого хэширования (может быть nil).
func NewServices(repos Repositories, cfg *config.Config, observe func(op string, d time.Duration)) (*Services, error) {
	hasher, err := crypto.NewHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		return nil, err
	}

	tokens := crypto.NewTokenIssuer(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		TTL:        cfg.Auth.TokenTTL,
	})

	pool := crypto.NewHashPool(hasher, cfg.Password.Workers, observe)

	auth, err := NewAuthService(repos.Users, pool, tokens)
	if err != nil {
		return nil, fmt.Errorf("init auth service: %w", err)
	}

	return &Services{Auth: auth}, nil
}

// UsersRepo — репозиторий пользователей (нужен для signup/login).
type UsersRepo interface {
	// FindByEmail ищет пользователя по нормализованному email.
	// Если пользователя нет — serr.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Insert сохраняет нового пользователя.
	// Email уже занят — serr.ErrAlreadyExists, сбой хранилища — serr.ErrStorageUnavailable.
	Insert(ctx context.Context, u *models.User) (uuid.UUID, error)
}
