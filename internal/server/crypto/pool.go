package crypto

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"
)

// Операции, которые HashPool сообщает наблюдателю.
const (
	OpHash   = "hash"
	OpVerify = "verify"
)

// HashPool ограничивает число одновременных хэширований.
//
// bcrypt/argon2 намеренно медленные и грузят CPU. Каждый запрос ждёт свободный
// слот только на время своего хэширования, остальные запросы (валидация,
// дубликаты, чтение из БД) идут параллельно и слотов не занимают.
type HashPool struct {
	hasher  Hasher
	sem     *semaphore.Weighted
	observe func(op string, d time.Duration)
}

// NewHashPool создаёт пул на workers слотов (<= 0 — по числу CPU).
// observe может быть nil.
func NewHashPool(h Hasher, workers int, observe func(op string, d time.Duration)) *HashPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &HashPool{
		hasher:  h,
		sem:     semaphore.NewWeighted(int64(workers)),
		observe: observe,
	}
}

// Hash хэширует пароль со свежей солью.
// Ошибка контекста возвращается, если слот так и не освободился.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	start := time.Now()
	hash, err := p.hasher.Hash(password)
	p.record(OpHash, time.Since(start))
	return hash, err
}

// Verify сравнивает пароль с сохранённым хэшем за постоянное время.
func (p *HashPool) Verify(ctx context.Context, password, encoded string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)

	start := time.Now()
	ok, err := p.hasher.Verify(password, encoded)
	p.record(OpVerify, time.Since(start))
	return ok, err
}

func (p *HashPool) record(op string, d time.Duration) {
	if p.observe != nil {
		p.observe(op, d)
	}
}
