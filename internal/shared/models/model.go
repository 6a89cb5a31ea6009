package models

import (
	"time"

	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

// Тексты ответов API. Клиенты (authctl) опираются на них, поэтому
// они вынесены в общий пакет.
const (
	MsgRegistered         = "User registered successfully"
	MsgLoginOK            = "Login successful"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidBody        = "Invalid request body"
	MsgServerError        = "Server error"
)

// SignupRequest — запрос регистрации.
//
// Используется в:
//
//	POST /api/auth/signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest — запрос входа.
//
// Используется в:
//
//	POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse — ответ с одним сообщением ({"msg": "..."}).
//
// Так отвечают успешная регистрация и все не-валидационные ошибки.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// LoginResponse — успешный ответ входа.
type LoginResponse struct {
	Token string `json:"token"`
	Msg   string `json:"msg"`
}

// ErrorsResponse — ответ с ошибками валидации по полям.
type ErrorsResponse struct {
	Errors []serr.FieldError `json:"errors"`
}

// MeResponse — информация о владельце bearer токена.
//
// Используется в:
//
//	GET /api/auth/me
type MeResponse struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
