package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
)

// userDocument — представление пользователя в MongoDB.
// id храним строкой, чтобы документ было удобно читать руками.
type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// MongoUsersRepository хранит пользователей в коллекции MongoDB.
// Коллекция должна иметь уникальный индекс по email (config.EnsureUserIndexes).
type MongoUsersRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoUsersRepository создаёт репозиторий; timeout (mongo.timeout)
// ограничивает каждую операцию, 0 — без ограничения.
func NewMongoUsersRepository(coll *mongo.Collection, timeout time.Duration) *MongoUsersRepository {
	return &MongoUsersRepository{coll: coll, timeout: timeout}
}

func (r *MongoUsersRepository) Insert(ctx context.Context, u *models.User) (uuid.UUID, error) {
	doc := userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return uuid.Nil, serr.ErrAlreadyExists
		}
		return uuid.Nil, storageError("USER_INSERT_FAILED", "insert user", err)
	}
	return u.ID, nil
}

func (r *MongoUsersRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serr.ErrNotFound
		}
		return nil, storageError("USER_LOOKUP_FAILED", "find user by email", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, storageError("USER_DECODE_FAILED", "parse user id", err)
	}

	return &models.User{
		ID:           id,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
