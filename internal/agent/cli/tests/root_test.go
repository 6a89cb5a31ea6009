package tests

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-authflow/internal/agent/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-01-16")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	for _, w := range []string{"signup", "login", "whoami", "logout", "version"} {
		require.True(t, names[w], "expected subcommand %q to exist", w)
	}
}

func TestNewRootCmd_PersistentPreRunE_LoadsCreds(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv(config.EnvCredentialsPath, p)
	require.NoError(t, config.Save(p, &config.Credentials{Token: "jwt-1"}))

	root := cli.NewRootCmd("1.0.0", "2026-01-16")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())

	got := out.String()
	require.True(t, strings.Contains(got, "version=1.0.0") && strings.Contains(got, "build_date="), "unexpected output: %q", got)
}

func TestNewRootCmd_PersistentPreRunE_ReturnsErrorOnBadCredsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv(config.EnvCredentialsPath, p)
	require.NoError(t, os.WriteFile(p, []byte("{not-json"), 0o600))

	root := cli.NewRootCmd("1.0.0", "2026-01-16")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"version"})

	require.Error(t, root.Execute())
}

func TestNewRootCmd_VersionShowsServerFlag(t *testing.T) {
	t.Setenv(config.EnvCredentialsPath, filepath.Join(t.TempDir(), "credentials.json"))

	root := cli.NewRootCmd("1.0.0", "2026-01-16")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--server", "https://auth.example.com", "version"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "server=https://auth.example.com")
}
