// Package cli реализует командный интерфейс клиента authflow (authctl).
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку сохранённого токена из локального файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/config"
)

const defaultServerURL = "http://127.0.0.1:5000"

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера authflow.
	ServerURL string
	// Insecure отключает проверку TLS сертификата (самоподписанный dev сертификат).
	Insecure bool

	// CredsPath — путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds — загруженные учётные данные. nil до PersistentPreRunE.
	Creds *config.Credentials
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// В PersistentPreRunE определяется путь к файлу учётных данных и
// загружается сохранённый токен.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "authctl",
		Short: "authctl — клиент сервиса регистрации и входа authflow",
		Long: `authctl — клиент сервиса authflow.

Команды:
  signup   Регистрация нового пользователя
  login    Вход (получить токен)
  whoami   Проверить сохранённый токен
  logout   Удалить сохранённый токен
  version  Версия и дата сборки

Примеры:
  authctl signup --name Ana --email ana@example.com --accept-terms
  authctl login --email ana@example.com
  authctl whoami
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return fmt.Errorf("load credentials %s: %w", p, err)
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", defaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")

	cmd.AddCommand(NewSignupCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewWhoamiCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewVersionCmd(app, buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
