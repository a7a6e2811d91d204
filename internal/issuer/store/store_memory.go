package store

import (
	"context"
	"sync"
	"time"

	"kyc-gateway/internal/issuer/models"
	id "kyc-gateway/pkg/domain"
	"kyc-gateway/pkg/platform/sentinel"
)

// InMemory keeps issuers in a map for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	issuers map[id.IssuerID]*models.Issuer
}

func NewInMemory() *InMemory {
	return &InMemory{issuers: make(map[id.IssuerID]*models.Issuer)}
}

func (s *InMemory) Create(_ context.Context, issuer *models.Issuer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.issuers {
		if existing.DID == issuer.DID {
			return sentinel.ErrConflict
		}
	}
	now := time.Now()
	issuer.CreatedAt = now
	issuer.UpdatedAt = now
	s.issuers[issuer.ID] = clone(issuer)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, issuerID id.IssuerID) (*models.Issuer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if issuer, ok := s.issuers[issuerID]; ok {
		return clone(issuer), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByDID(_ context.Context, did string) (*models.Issuer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, issuer := range s.issuers {
		if issuer.DID == did {
			return clone(issuer), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) SetAuthToken(_ context.Context, issuerID id.IssuerID, oldToken, newToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	issuer, ok := s.issuers[issuerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if issuer.AuthToken != oldToken {
		return sentinel.ErrConflict
	}
	issuer.AuthToken = newToken
	issuer.UpdatedAt = time.Now()
	return nil
}

func clone(issuer *models.Issuer) *models.Issuer {
	copied := *issuer
	return &copied
}
