package repository

import (
	"context"

	"confsite/internal/domain/entity"
)

// UserRepository defines the persistence contract for users.
// Save is an idempotent upsert keyed by login.
//
// FindByEmail takes the plaintext email; implementations match it against
// the stored content hash since ciphertexts are not comparable.
type UserRepository interface {
	FindOne(ctx context.Context, login string) (*entity.User, error)
	FindByLegacyID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	FindByRoles(ctx context.Context, roles ...entity.Role) ([]entity.User, error)
	FindOneByRoles(ctx context.Context, login string, roles ...entity.Role) (*entity.User, error)
	Save(ctx context.Context, u *entity.User) error
}
