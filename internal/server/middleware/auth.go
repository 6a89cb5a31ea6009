// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-authflow/internal/shared/models"
)

// Тексты 401 ответов.
const (
	MsgMissingToken = "Missing bearer token"
	MsgTokenExpired = "Token expired"
	MsgInvalidToken = "Invalid token"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// claimsKey — ключ контекста, под которым хранятся claims проверенного токена.
const claimsKey ctxKey = "token_claims"

// TokenAuthenticator проверяет bearer токен (реализует service.AuthService).
type TokenAuthenticator interface {
	Authenticate(token string) (crypto.TokenClaims, error)
}

// Authenticator — middleware проверки bearer токенов.
type Authenticator struct {
	tokens TokenAuthenticator
}

func NewAuthenticator(tokens TokenAuthenticator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// ClaimsFromContext извлекает claims токена из контекста.
func ClaimsFromContext(ctx context.Context) (crypto.TokenClaims, bool) {
	c, ok := ctx.Value(claimsKey).(crypto.TokenClaims)
	return c, ok
}

// WithClaims кладёт claims в контекст (нужно хендлерам в тестах).
func WithClaims(ctx context.Context, c crypto.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// AuthMiddleware возвращает HTTP middleware для проверки bearer токенов.
//
// Middleware:
//   - ожидает заголовок Authorization: Bearer <token>
//   - валидирует подпись, алгоритм и срок действия
//   - сохраняет claims в context.Context
//
// В случае ошибки возвращает HTTP 401 с {"msg": "..."}.
func (a *Authenticator) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				unauthorized(w, MsgMissingToken)
				return
			}

			claims, err := a.tokens.Authenticate(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, MsgTokenExpired)
					return
				}
				unauthorized(w, MsgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.MessageResponse{Msg: msg})
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
