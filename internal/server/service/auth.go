package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

// AuthService реализует регистрацию и вход по email + паролю.
//
// Ответственность:
//   - валидация и нормализация входных данных
//   - хэширование пароля через ограниченный пул
//   - проверка пароля и выпуск bearer токена
type AuthService struct {
	users  UsersRepo
	pool   *crypto.HashPool
	tokens *crypto.TokenIssuer
	now    func() time.Time

	// хэш случайного пароля: сверяемся с ним, если email не найден,
	// чтобы время ответа не выдавало существование пользователя
	dummyHash string
}

// LoginResult — выпущенный токен и момент его истечения.
type LoginResult struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// NewAuthService создаёт AuthService. Считает dummy хэш тем же алгоритмом,
// что и настоящие, поэтому может вернуть ошибку хэшера.
func NewAuthService(users UsersRepo, pool *crypto.HashPool, tokens *crypto.TokenIssuer) (*AuthService, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("dummy password: %w", err)
	}
	dummy, err := pool.Hash(context.Background(), hex.EncodeToString(buf))
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &AuthService{
		users:     users,
		pool:      pool,
		tokens:    tokens,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// WithClock подменяет часы для CreatedAt (в тестах).
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	cp := *s
	cp.now = now
	return &cp
}

// Register регистрирует нового пользователя.
//
// Токен при регистрации не выдаётся, за ним нужно прийти в Login.
//
// Ошибки:
//   - *serr.ValidationError (errors.Is ErrInvalidInput) при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован
//   - ErrStorageUnavailable / ErrInternal при сбоях
func (s *AuthService) Register(ctx context.Context, name, email, password string) (uuid.UUID, error) {
	in, err := ValidateSignup(name, email, password)
	if err != nil {
		return uuid.Nil, err
	}

	// быстрый путь; окончательно дубликат ловит уникальный индекс при Insert
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return uuid.Nil, serr.ErrAlreadyExists
	} else if !errors.Is(err, serr.ErrNotFound) {
		return uuid.Nil, err
	}

	hash, err := s.pool.Hash(ctx, in.Password)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return uuid.Nil, ctxErr
		}
		return uuid.Nil, errors.Join(serr.ErrInternal, err)
	}

	return s.users.Insert(ctx, &models.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
}

// Login проверяет email + пароль и выдаёт токен.
//
// Поведение:
//   - не раскрывает факт существования email: неизвестный email и
//     неверный пароль дают одну и ту же ErrInvalidCredentials
//   - для неизвестного email всё равно выполняется проверка хэша
//
// Ошибки:
//   - *serr.ValidationError
//   - ErrInvalidCredentials
//   - ErrStorageUnavailable / ErrInternal при сбоях
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	in, err := ValidateLogin(email, password)
	if err != nil {
		return LoginResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, serr.ErrNotFound) {
			return LoginResult{}, err
		}
		// выравниваем время ответа, результат не важен
		_, _ = s.pool.Verify(ctx, in.Password, s.dummyHash)
		return LoginResult{}, serr.ErrInvalidCredentials
	}

	ok, err := s.pool.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return LoginResult{}, ctxErr
		}
		return LoginResult{}, errors.Join(serr.ErrInternal, err)
	}
	if !ok {
		return LoginResult{}, serr.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return LoginResult{}, errors.Join(serr.ErrInternal, err)
	}

	return LoginResult{UserID: user.ID, Token: tok.Token, ExpiresAt: tok.ExpiresAt}, nil
}

// Authenticate проверяет bearer токен и возвращает его claims.
//
// Истёкший или битый токен — ErrUnauthorized (вместе с причиной).
func (s *AuthService) Authenticate(token string) (crypto.TokenClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return crypto.TokenClaims{}, errors.Join(serr.ErrUnauthorized, err)
	}
	return claims, nil
}
