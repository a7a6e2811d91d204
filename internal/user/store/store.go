package store

import (
	"context"

	"kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
)

// Store persists users. Implementations return sentinel.ErrNotFound on lookup
// misses and sentinel.ErrConflict when a unique constraint (did, or user code
// among pending users) is violated.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByDID(ctx context.Context, did string) (*models.User, error)
	FindByUserCode(ctx context.Context, userCode string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
