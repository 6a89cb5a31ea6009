package tests

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-authflow/internal/agent/config"
)

func newApp(t *testing.T, serverURL string) *cli.App {
	t.Helper()
	return &cli.App{
		ServerURL: serverURL,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     &config.Credentials{},
	}
}

// run выполняет команду и возвращает stdout и ошибку.
func run(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// stubPasswords подменяет интерактивный ввод пароля ответами по порядку.
func stubPasswords(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	prev := cli.ReadPassword
	cli.ReadPassword = func(_ *cobra.Command, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt %q", prompt)
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	t.Cleanup(func() { cli.ReadPassword = prev })
	return &prompts
}
