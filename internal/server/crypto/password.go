// Хэширование паролей
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Поддерживаемые алгоритмы (значение password.hasher в конфиге).
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// ErrEmptyPassword возвращается при попытке захэшировать пустой пароль.
var ErrEmptyPassword = errors.New("empty password")

// Hasher — медленная солёная односторонняя функция для паролей.
//
// Hash каждый раз генерирует новую соль.
// Verify возвращает (true, nil) при совпадении, (false, nil) при несовпадении
// и ошибку, если сохранённый хэш битый.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// NewHasher выбирает реализацию по имени алгоритма.
func NewHasher(kind string, bcryptCost int, argon Argon2Params) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case HasherBcrypt, "":
		return NewBcryptHasher(bcryptCost), nil
	case HasherArgon2id:
		return NewArgon2Hasher(argon), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}

// BcryptHasher — bcrypt с фиксированным cost (соль генерирует сам bcrypt).
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher создаёт BcryptHasher; cost <= 0 означает bcrypt.DefaultCost (10).
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// maxArgon2MemoryKiB — верхняя граница m= в сохранённом хэше (1 GiB).
const maxArgon2MemoryKiB = 1 << 20

type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// Argon2Hasher — argon2id с параметрами из конфига.
type Argon2Hasher struct {
	Params Argon2Params
}

func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{Params: p}
}

// Hash возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
func (h *Argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	p := h.Params

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)

	encoded := fmt.Sprintf(
		"argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.MemoryKiB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

func (h *Argon2Hasher) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != HasherArgon2id {
		return false, errors.New("invalid hash format")
	}

	// parts[1] = v=19
	// parts[2] = m=...,t=...,p=...
	// parts[3] = salt
	// parts[4] = hash

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.New("invalid params format")
	}
	// нули роняют argon2.IDKey, а огромный m из битой строки съест всю память
	if memory == 0 || time == 0 || threads == 0 {
		return false, errors.New("invalid params: zero value")
	}
	if memory > maxArgon2MemoryKiB {
		return false, fmt.Errorf("invalid params: memory %d KiB exceeds limit", memory)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, errors.New("invalid salt")
	}

	wantHash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(wantHash) == 0 {
		return false, errors.New("invalid hash")
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(wantHash)))
	return subtle.ConstantTimeCompare(got, wantHash) == 1, nil
}
