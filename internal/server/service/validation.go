package service

import (
	"errors"
	"html"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

// Тексты ошибок валидации. Клиенты показывают их пользователю как есть.
const (
	MsgNameRequired     = "Name is required"
	MsgEmailInvalid     = "Please include a valid email"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgPasswordTooLong  = "Password must be at most 72 bytes"
	MsgPasswordRequired = "Password is required"
)

const (
	minPasswordRunes = 6
	// bcrypt молча обрезает всё, что длиннее 72 байт
	maxPasswordBytes = 72
)

// SignupInput — нормализованные данные регистрации.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput — нормализованные данные входа.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail приводит email к виду, в котором он хранится и ищется.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateSignup нормализует и проверяет данные регистрации.
//
// Проверяются все поля сразу, ошибки возвращаются одним *serr.ValidationError.
// Пароль не обрезается: пробелы в нём значимы.
func ValidateSignup(name, email, password string) (SignupInput, error) {
	in := SignupInput{
		Name:     strings.TrimSpace(name),
		Email:    NormalizeEmail(email),
		Password: password,
	}

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name,
			validation.Required.Error(MsgNameRequired),
		),
		validation.Field(&in.Email,
			validation.Required.Error(MsgEmailInvalid),
			is.Email.Error(MsgEmailInvalid),
		),
		validation.Field(&in.Password,
			validation.Required.Error(MsgPasswordTooShort),
			validation.RuneLength(minPasswordRunes, 0).Error(MsgPasswordTooShort),
			validation.Length(0, maxPasswordBytes).Error(MsgPasswordTooLong),
		),
	)
	if err != nil {
		return SignupInput{}, toValidationError(err)
	}

	in.Name = html.EscapeString(in.Name)
	return in, nil
}

// ValidateLogin нормализует и проверяет данные входа.
func ValidateLogin(email, password string) (LoginInput, error) {
	in := LoginInput{
		Email:    NormalizeEmail(email),
		Password: password,
	}

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email,
			validation.Required.Error(MsgEmailInvalid),
			is.Email.Error(MsgEmailInvalid),
		),
		validation.Field(&in.Password,
			validation.Required.Error(MsgPasswordRequired),
		),
	)
	if err != nil {
		return LoginInput{}, toValidationError(err)
	}
	return in, nil
}

// toValidationError переводит ошибки ozzo в доменную ValidationError.
func toValidationError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		// InternalError ozzo: правило само сломалось, это не ошибка клиента
		return errors.Join(serr.ErrInternal, err)
	}

	fields := make(map[string]string, len(errs))
	for path, e := range errs {
		fields[path] = e.Error()
	}
	return serr.NewValidationError(fields)
}
