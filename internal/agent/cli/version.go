package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd создаёт команду version.
//
// Выводит версию и дату сборки (ldflags -X main.buildVersion / main.buildDate),
// версию Go, платформу и адрес сервера, с которым работает authctl.
// С --short печатается только номер версии, удобно для скриптов:
//
//	authctl version --short
func NewVersionCmd(app *App, buildVersion, buildDate string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Показать версию authctl и параметры сборки",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if buildVersion == "" {
				buildVersion = "dev"
			}
			out := cmd.OutOrStdout()

			if short {
				_, err := fmt.Fprintln(out, buildVersion)
				return err
			}

			_, err := fmt.Fprintf(out,
				"authctl version=%s\nbuild_date=%s\ngo=%s %s/%s\nserver=%s\n",
				buildVersion, buildDate,
				runtime.Version(), runtime.GOOS, runtime.GOARCH,
				app.ServerURL,
			)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")

	return cmd
}
