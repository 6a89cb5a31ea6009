package tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

func fieldsOf(t *testing.T, err error) []serr.FieldError {
	t.Helper()
	var verr *serr.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestValidateSignup_OK_Normalizes(t *testing.T) {
	in, err := service.ValidateSignup("  Ana  ", "  Ana@Example.COM ", " secret1 ")
	require.NoError(t, err)
	require.Equal(t, "Ana", in.Name)
	require.Equal(t, "ana@example.com", in.Email)
	// пароль как есть
	require.Equal(t, " secret1 ", in.Password)
}

func TestValidateSignup_EscapesName(t *testing.T) {
	in, err := service.ValidateSignup(`<b>Ana</b> & "Co"`, "ana@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "&lt;b&gt;Ana&lt;/b&gt; &amp; &#34;Co&#34;", in.Name)
}

func TestValidateSignup_AllFieldsReported(t *testing.T) {
	_, err := service.ValidateSignup("   ", "bad", "")
	require.ErrorIs(t, err, serr.ErrInvalidInput)

	require.Equal(t, []serr.FieldError{
		{Msg: service.MsgEmailInvalid, Path: "email", Location: "body"},
		{Msg: service.MsgNameRequired, Path: "name", Location: "body"},
		{Msg: service.MsgPasswordTooShort, Path: "password", Location: "body"},
	}, fieldsOf(t, err))
}

func TestValidateSignup_PasswordLength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{name: "5 chars", password: "12345", wantMsg: service.MsgPasswordTooShort},
		{name: "6 chars", password: "123456"},
		// 6 символов, но 12 байт
		{name: "6 runes", password: "пароль"},
		{name: "72 bytes", password: strings.Repeat("a", 72)},
		{name: "73 bytes", password: strings.Repeat("a", 73), wantMsg: service.MsgPasswordTooLong},
		// 37 символов по 2 байта = 74 байта
		{name: "multibyte over 72 bytes", password: strings.Repeat("ж", 37), wantMsg: service.MsgPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateSignup("Ana", "ana@example.com", tt.password)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Equal(t, []serr.FieldError{
				{Msg: tt.wantMsg, Path: "password", Location: "body"},
			}, fieldsOf(t, err))
		})
	}
}

func TestValidateLogin(t *testing.T) {
	in, err := service.ValidateLogin(" ANA@example.com", "x")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", in.Email)

	_, err = service.ValidateLogin("", "")
	require.Equal(t, []serr.FieldError{
		{Msg: service.MsgEmailInvalid, Path: "email", Location: "body"},
		{Msg: service.MsgPasswordRequired, Path: "password", Location: "body"},
	}, fieldsOf(t, err))
}

// Формат проверяется локально, без DNS: домены из примеров тоже проходят
func TestValidateSignup_EmailFormat(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{email: "ana@example.com", ok: true},
		{email: "ana.b+tag@sub.example.org", ok: true},
		{email: "ana@nonexistent-domain.invalid", ok: true},
		{email: "ana@", ok: false},
		{email: "@example.com", ok: false},
		{email: "ana example@example.com", ok: false},
		{email: "ana", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			_, err := service.ValidateSignup("Ana", tt.email, "secret1")
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Equal(t, []serr.FieldError{
				{Msg: service.MsgEmailInvalid, Path: "email", Location: "body"},
			}, fieldsOf(t, err))
		})
	}
}
