package tests

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	crypt "github.com/IvanChernomyrdin/go-authflow/internal/server/crypto"
)

const testKey = "supersecretkeysupersecretkey123456"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newIssuer(at time.Time) *crypt.TokenIssuer {
	return crypt.NewTokenIssuer(crypt.JWTConfig{
		Issuer:     "authflow",
		Audience:   "authflow-cli",
		SigningKey: testKey,
		TTL:        time.Hour,
	}).WithClock(fixedClock(at))
}

func TestIssue_ClaimsAndSignature(t *testing.T) {
	t.Parallel()
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newIssuer(issuedAt)

	tok, err := issuer.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.True(t, issuedAt.Add(time.Hour).Equal(tok.ExpiresAt))

	// Парсим независимо от TokenIssuer
	parsed, err := jwt.ParseWithClaims(
		tok.Token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			require.Equal(t, jwt.SigningMethodHS256, token.Method)
			return []byte(testKey), nil
		},
		jwt.WithTimeFunc(fixedClock(issuedAt.Add(time.Minute))),
	)
	require.NoError(t, err)

	claims := parsed.Claims.(*jwt.RegisteredClaims)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "authflow", claims.Issuer)
	require.Equal(t, jwt.ClaimStrings{"authflow-cli"}, claims.Audience)
}

// Граница срока жизни: T+59m принимается, T+61m отклоняется
func TestParse_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tok, err := newIssuer(issuedAt).Issue("user-1")
	require.NoError(t, err)

	claims, err := newIssuer(issuedAt.Add(59 * time.Minute)).Parse(tok.Token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)

	_, err = newIssuer(issuedAt.Add(61 * time.Minute)).Parse(tok.Token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

// Любое изменение токена ломает подпись
func TestParse_TamperedToken(t *testing.T) {
	t.Parallel()
	now := time.Now()
	issuer := newIssuer(now)

	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(tok.Token, ".")
	require.Len(t, parts, 3)

	forged, err := newIssuer(now).Issue("user-2")
	require.NoError(t, err)
	forgedParts := strings.Split(forged.Token, ".")

	// payload от одного токена, подпись от другого
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = issuer.Parse(tampered)
	require.ErrorIs(t, err, crypt.ErrInvalidToken)
}

func TestParse_WrongKey(t *testing.T) {
	t.Parallel()
	now := time.Now()

	other := crypt.NewTokenIssuer(crypt.JWTConfig{
		Issuer:     "authflow",
		Audience:   "authflow-cli",
		SigningKey: "another-key-another-key-another-key",
		TTL:        time.Hour,
	})
	tok, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = newIssuer(now).Parse(tok.Token)
	require.ErrorIs(t, err, crypt.ErrInvalidToken)
}

// Принимаем только HS256
func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "authflow",
		Audience:  jwt.ClaimStrings{"authflow-cli"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = newIssuer(now).Parse(s)
	require.ErrorIs(t, err, crypt.ErrInvalidToken)
}

func TestParse_WrongAudience(t *testing.T) {
	t.Parallel()
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "authflow",
		Audience:  jwt.ClaimStrings{"someone-else"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = newIssuer(now).Parse(s)
	require.ErrorIs(t, err, crypt.ErrInvalidToken)
}

func TestParse_EmptySubject(t *testing.T) {
	t.Parallel()
	now := time.Now()

	tok, err := newIssuer(now).Issue("  ")
	require.NoError(t, err)

	_, err = newIssuer(now).Parse(tok.Token)
	require.ErrorIs(t, err, crypt.ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()
	_, err := newIssuer(time.Now()).Parse("not-a-jwt")
	require.ErrorIs(t, err, crypt.ErrInvalidToken)
}
