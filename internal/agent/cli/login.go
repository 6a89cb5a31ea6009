package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/config"
)

// NewLoginCmd создаёт команду входа.
//
// Полученный токен сохраняется в локальный файл учётных данных вместе
// со сроком действия из claim exp.
//
// Пример использования:
//
//	authctl login --email ana@example.com
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email, password string
		passwordStdin   bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход пользователя (получить токен)",
		Long: `Вход пользователя.

Пример:
  authctl login --email ana@example.com
  echo 'StrongPass123' | authctl login --email ana@example.com --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch {
			case cmd.Flags().Changed("password"):
			case passwordStdin:
				if password, err = readPasswordStdin(cmd); err != nil {
					return err
				}
			default:
				if password, err = ReadPassword(cmd, "Password: "); err != nil {
					return err
				}
			}

			c := NewAPIClient(app.ServerURL, app.Insecure)
			resp, err := c.Login(email, password)
			if err != nil {
				return err
			}

			app.Creds.Email = strings.ToLower(strings.TrimSpace(email))
			app.Creds.Token = resp.Token
			app.Creds.ExpiresAt = tokenExpiry(resp.Token)

			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password (prefer --password-stdin or the prompt)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

// tokenExpiry достаёт exp без проверки подписи: ключа у клиента нет,
// подпись проверяет сервер. Ноль, если exp прочитать не удалось.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
