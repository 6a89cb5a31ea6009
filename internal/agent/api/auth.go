// Методы клиента для эндпоинтов /api/auth: регистрация, вход и
// информация о текущем токене.
package api

import "github.com/IvanChernomyrdin/go-authflow/internal/shared/models"

// Signup регистрирует пользователя. Токен при регистрации не выдаётся.
func (c *Client) Signup(name, email, password string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.PostJSON("/api/auth/signup", models.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp, "")
	return resp, err
}

// Login выполняет вход и возвращает подписанный токен.
func (c *Client) Login(email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.PostJSON("/api/auth/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Me возвращает id пользователя и срок действия переданного токена.
func (c *Client) Me(token string) (models.MeResponse, error) {
	var resp models.MeResponse
	err := c.GetJSON("/api/auth/me", &resp, token)
	return resp, err
}
