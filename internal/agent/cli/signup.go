package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/cobra"
)

const minPasswordLen = 6

// signupForm повторяет проверки формы регистрации до обращения к серверу.
type signupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	TermsAccepted   bool
}

func (f signupForm) Validate() error {
	return validation.Errors{
		"name": validation.Validate(strings.TrimSpace(f.Name),
			validation.Required.Error("Name is required")),
		"email": validation.Validate(strings.TrimSpace(f.Email),
			validation.Required.Error("Email is required")),
		"password": validation.Validate(f.Password,
			validation.Required.Error("Password is required"),
			validation.By(func(any) error {
				if utf8.RuneCountInString(f.Password) < minPasswordLen {
					return errors.New("Password must be at least 6 characters")
				}
				return nil
			})),
		"confirmPassword": validation.Validate(f.ConfirmPassword,
			validation.Required.Error("Confirm Password is required"),
			validation.In(f.Password).Error("Passwords do not match")),
		"termsAccepted": validation.Validate(f.TermsAccepted,
			validation.Required.Error("You must accept the Terms and Conditions")),
	}.Filter()
}

// NewSignupCmd создаёт команду регистрации нового пользователя.
//
// Пароль берётся из --password, из stdin (--password-stdin) или
// запрашивается в терминале дважды. Токен при регистрации не выдаётся,
// после регистрации нужно выполнить login.
//
// Пример использования:
//
//	authctl signup --name Ana --email ana@example.com --accept-terms
func NewSignupCmd(app *App) *cobra.Command {
	var (
		form          signupForm
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Примеры:
  authctl signup --name Ana --email ana@example.com --accept-terms
  echo 'StrongPass123' | authctl signup --name Ana --email ana@example.com --password-stdin --accept-terms
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case cmd.Flags().Changed("password"):
				form.ConfirmPassword = form.Password
			case passwordStdin:
				pw, err := readPasswordStdin(cmd)
				if err != nil {
					return err
				}
				form.Password, form.ConfirmPassword = pw, pw
			default:
				pw, err := ReadPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				confirm, err := ReadPassword(cmd, "Confirm password: ")
				if err != nil {
					return err
				}
				form.Password, form.ConfirmPassword = pw, confirm
			}

			if err := form.Validate(); err != nil {
				return err
			}

			c := NewAPIClient(app.ServerURL, app.Insecure)
			resp, err := c.Signup(form.Name, form.Email, form.Password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "display name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email for registration")
	cmd.Flags().StringVar(&form.Password, "password", "", "password (prefer --password-stdin or the prompt)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.Flags().BoolVar(&form.TermsAccepted, "accept-terms", false, "accept the Terms and Conditions")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}
