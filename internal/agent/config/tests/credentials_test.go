package tests

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	t.Setenv(config.EnvCredentialsPath, "")

	p, err := config.DefaultPath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".authflow", "credentials.json"), p)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "creds.json")
	t.Setenv(config.EnvCredentialsPath, want)

	p, err := config.DefaultPath()
	require.NoError(t, err)
	require.Equal(t, want, p)
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	require.NoError(t, err)
	require.NotNil(t, creds)
	require.Empty(t, creds.Token)
}

func TestSaveAndLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json") // вложенная директория

	want := &config.Credentials{
		Email:     "ana@example.com",
		Token:     "jwt-1",
		ExpiresAt: time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC),
	}
	require.NoError(t, config.Save(p, want))

	got, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, want.Email, got.Email)
	require.Equal(t, want.Token, got.Token)
	require.True(t, want.ExpiresAt.Equal(got.ExpiresAt))

	// на windows права не проверяем
	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		require.NoError(t, err)
		require.Zero(t, st.Mode().Perm()&0o077, "group/other must not have access")
	}
}

func TestLoad_BadJSON_ReturnsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{bad-json"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestCredentials_Expired(t *testing.T) {
	exp := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)
	c := &config.Credentials{Token: "t", ExpiresAt: exp}

	require.False(t, c.Expired(exp.Add(-time.Second)))
	require.True(t, c.Expired(exp))
	require.False(t, (&config.Credentials{Token: "t"}).Expired(exp))
}
