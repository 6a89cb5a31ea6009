package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/config"
)

var (
	ErrNotLoggedIn  = errors.New("not logged in: run authctl login")
	ErrTokenExpired = errors.New("token expired: run authctl login")
)

// NewWhoamiCmd проверяет сохранённый токен на сервере (GET /api/auth/me).
func NewWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Показать владельца сохранённого токена",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.Token == "" {
				return ErrNotLoggedIn
			}
			if app.Creds.Expired(Now()) {
				return ErrTokenExpired
			}

			me, err := NewAPIClient(app.ServerURL, app.Insecure).Me(app.Creds.Token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.Creds.Email != "" {
				fmt.Fprintf(out, "email=%s\n", app.Creds.Email)
			}
			fmt.Fprintf(out, "user_id=%s\nexpires_at=%s\n", me.ID, me.ExpiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
}

// NewLogoutCmd удаляет токен из локального файла.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённый токен",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(app.CredsPath, &config.Credentials{}); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
