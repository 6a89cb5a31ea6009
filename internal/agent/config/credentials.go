// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит токен последнего входа и размещается в домашней
// директории пользователя в файле:
//
//	~/.authflow/credentials.json
//
// Путь можно переопределить переменной окружения AUTHCTL_CREDENTIALS.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// EnvCredentialsPath переопределяет путь к файлу учётных данных.
const EnvCredentialsPath = "AUTHCTL_CREDENTIALS"

// Credentials содержит учётные данные, используемые CLI-клиентом.
type Credentials struct {
	Email     string    `json:"email,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired сообщает, истёк ли сохранённый токен на момент now.
// Нулевой ExpiresAt (срок неизвестен) истёкшим не считается.
func (c *Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// DefaultPath возвращает путь к файлу учётных данных:
//
//	$AUTHCTL_CREDENTIALS или <home>/.authflow/credentials.json
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvCredentialsPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".authflow", "credentials.json"), nil
}

// Load загружает учётные данные из файла.
//
// Если файла нет, возвращает пустые Credentials без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет учётные данные в JSON.
//
// Директория создаётся с правами 0700, файл пишется с правами 0600.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
