package store

import (
	"context"

	"kyc-gateway/internal/issuer/models"
	id "kyc-gateway/pkg/domain"
)

// Store persists issuer identities. Implementations return
// sentinel.ErrNotFound on lookup misses.
type Store interface {
	Create(ctx context.Context, issuer *models.Issuer) error
	FindByID(ctx context.Context, issuerID id.IssuerID) (*models.Issuer, error)
	FindByDID(ctx context.Context, did string) (*models.Issuer, error)
	// SetAuthToken replaces the issuer's bearer token only while it still
	// holds oldToken, returning sentinel.ErrConflict when another writer got
	// there first. The conditional write is what keeps two processes sharing
	// one database from clobbering each other's rotations; the per-issuer
	// mutex in the service only serializes within a single process.
	SetAuthToken(ctx context.Context, issuerID id.IssuerID, oldToken, newToken string) error
}
