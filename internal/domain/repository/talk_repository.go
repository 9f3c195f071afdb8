package repository

import (
	"context"

	"confsite/internal/domain/entity"
)

// TalkRepository exposes the talk lookups the profile pages need.
type TalkRepository interface {
	FindBySpeakerID(ctx context.Context, logins []string) ([]entity.Talk, error)
}
