package tests

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/cli"
)

func runVersion(t *testing.T, app *cli.App, version, date string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewVersionCmd(app, version, date)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd_FullOutput(t *testing.T) {
	app := &cli.App{ServerURL: "https://auth.example.com"}

	got, err := runVersion(t, app, "1.2.3", "2026-01-16")
	require.NoError(t, err)

	assert.Contains(t, got, "authctl version=1.2.3\n")
	assert.Contains(t, got, "build_date=2026-01-16\n")
	assert.Contains(t, got, "go="+runtime.Version()+" "+runtime.GOOS+"/"+runtime.GOARCH+"\n")
	assert.Contains(t, got, "server=https://auth.example.com\n")
}

func TestVersionCmd_Short(t *testing.T) {
	got, err := runVersion(t, &cli.App{}, "1.2.3", "2026-01-16", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", got)
}

// Сборка без ldflags
func TestVersionCmd_EmptyVersionIsDev(t *testing.T) {
	got, err := runVersion(t, &cli.App{}, "", "unknown", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", got)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := runVersion(t, &cli.App{}, "1.2.3", "2026-01-16", "extra")
	require.Error(t, err)
}
