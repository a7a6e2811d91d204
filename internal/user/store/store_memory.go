package store

import (
	"context"
	"sync"
	"time"

	"kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
	"kyc-gateway/pkg/platform/sentinel"
)

// InMemory keeps users in a map for development and tests. It enforces the
// same uniqueness rules as the postgres store: one user per DID, one pending
// user per user code.
type InMemory struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[id.UserID]*models.User)}
}

func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if user.DID != "" && existing.DID == user.DID {
			return sentinel.ErrConflict
		}
		if user.UserCode != "" && existing.DID == "" && existing.UserCode == user.UserCode {
			return sentinel.ErrConflict
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = clone(user)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[userID]; ok {
		return clone(user), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByDID(_ context.Context, did string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if did == "" {
		return nil, sentinel.ErrNotFound
	}
	for _, user := range s.users {
		if user.DID == did {
			return clone(user), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByUserCode(_ context.Context, userCode string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userCode == "" {
		return nil, sentinel.ErrNotFound
	}
	for _, user := range s.users {
		if user.UserCode == userCode {
			return clone(user), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if phone == "" {
		return nil, sentinel.ErrNotFound
	}
	for _, user := range s.users {
		if user.ProvePhone == phone {
			return clone(user), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for otherID, other := range s.users {
		if otherID == user.ID {
			continue
		}
		if user.DID != "" && other.DID == user.DID {
			return sentinel.ErrConflict
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	s.users[user.ID] = clone(user)
	return nil
}

func clone(user *models.User) *models.User {
	copied := *user
	return &copied
}
