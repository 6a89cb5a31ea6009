// Package api содержит HTTP-клиент для взаимодействия с сервером authflow.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET) с авторизацией
// через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Content-Type: application/json добавляется только при наличии тела запроса.
//   - Пустое тело успешного ответа не считается ошибкой.
//   - При ответах не 2xx возвращается *Error с текстом из {"msg"} или {"errors"}.
//
// ВНИМАНИЕ: при insecure=true проверка TLS сертификата отключается.
// Допустимо только для локальной разработки с самоподписанным сертификатом.
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

// Error — ответ сервера с кодом не 2xx.
type Error struct {
	Status int
	Msg    string
	Fields []serr.FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Msg)
	}
	return strings.Join(parts, "; ")
}

// Client реализует HTTP-клиент для общения с сервером authflow.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент с таймаутом 10 секунд.
func NewClient(baseURL string, insecure bool) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // только для dev
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: tr,
		},
	}
}

// readAPIError разбирает тело ошибки сервера.
//
// Сервер отвечает {"msg": "..."} либо {"errors": [...]}; если тело не JSON,
// в сообщение идёт сам текст, а если тело пустое — res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)
	apiErr := &Error{Status: res.StatusCode}

	var body struct {
		Msg    string              `json:"msg"`
		Errors []serr.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && (body.Msg != "" || len(body.Errors) > 0) {
		apiErr.Msg = body.Msg
		apiErr.Fields = body.Errors
		return apiErr
	}

	apiErr.Msg = strings.TrimSpace(string(raw))
	if apiErr.Msg == "" {
		apiErr.Msg = res.Status
	}
	return apiErr
}

// decodeJSONOrOK декодирует JSON из r в resp; пустое тело (io.EOF) не ошибка.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Client) do(method, path string, req any, resp any, authToken string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = &buf
	}

	r, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON.
//
// req == nil — тело не отправляется, resp == nil — ответ не декодируется.
// Непустой authToken добавляется как Authorization: Bearer <token>.
func (c *Client) PostJSON(path string, req any, resp any, authToken string) error {
	return c.do(http.MethodPost, path, req, resp, authToken)
}

// GetJSON выполняет GET-запрос и (опционально) декодирует JSON-ответ.
func (c *Client) GetJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodGet, path, nil, resp, authToken)
}
