// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — единственная сохраняемая сущность.
//
// Email хранится уже нормализованным (lowercase + trim) и уникален.
// PasswordHash никогда не попадает в ответы API и логи.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
