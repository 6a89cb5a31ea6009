// Package crypto содержит криптографические примитивы,
// используемые сервером authflow.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей (bcrypt, argon2id);
//   - ограничение числа одновременных хэширований (HashPool);
//   - выпуск и проверку подписанных JWT (HS256, срок жизни).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken — подпись, алгоритм или claims токена не прошли проверку.
var ErrInvalidToken = errors.New("invalid token")

// JWTConfig описывает параметры выпуска и проверки токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен). Пустое значение не проверяется.
	Issuer string
	// Audience — значение поля aud. Пустое значение не проверяется.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// TTL — срок жизни токена.
	TTL time.Duration
}

// IssuedToken — подписанный токен и момент его истечения.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims — проверенное содержимое токена.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenIssuer выпускает и проверяет bearer токены.
//
// Токен самодостаточен: для проверки не нужен поход в хранилище.
type TokenIssuer struct {
	cfg JWTConfig
	now func() time.Time
}

// NewTokenIssuer создаёт TokenIssuer с системными часами.
func NewTokenIssuer(cfg JWTConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg, now: time.Now}
}

// WithClock возвращает копию TokenIssuer с другими часами.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	return &TokenIssuer{cfg: i.cfg, now: now}
}

// Issue создаёт и подписывает JWT для subject.
//
// Токен содержит стандартные RegisteredClaims:
//   - sub (id пользователя)
//   - iat (IssuedAt)
//   - exp (ExpiresAt = iat + TTL)
//   - iss/aud, если заданы в конфиге
func (i *TokenIssuer) Issue(subject string) (IssuedToken, error) {
	now := i.now()
	exp := now.Add(i.cfg.TTL)

	claims := jwt.RegisteredClaims{
		Issuer:    i.cfg.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	if i.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{i.cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(i.cfg.SigningKey))
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Parse проверяет подпись, алгоритм, срок действия и (если заданы) iss/aud.
//
// Истёкший токен возвращает ошибку, для которой errors.Is(err, jwt.ErrTokenExpired) == true.
// Любая другая проблема оборачивает ErrInvalidToken.
func (i *TokenIssuer) Parse(token string) (TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	}
	if i.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.cfg.Issuer))
	}
	if i.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(i.cfg.Audience))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(i.cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, err
		}
		return TokenClaims{}, errors.Join(ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return TokenClaims{}, ErrInvalidToken
	}
	return TokenClaims{Subject: sub, ExpiresAt: claims.ExpiresAt.Time}, nil
}
