package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"kyc-gateway/internal/issuer/models"
	id "kyc-gateway/pkg/domain"
	"kyc-gateway/pkg/platform/sentinel"
)

type IssuerStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestIssuerStoreSuite(t *testing.T) {
	suite.Run(t, new(IssuerStoreSuite))
}

func (s *IssuerStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *IssuerStoreSuite) newIssuer(role models.Role, did string) *models.Issuer {
	return &models.Issuer{
		ID:        id.NewIssuerID(),
		Name:      string(role),
		DID:       did,
		AuthToken: "initial-token",
	}
}

func (s *IssuerStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds issuer by DID", func() {
		issuer := s.newIssuer(models.RolePhone, "did:unum:phone")
		s.Require().NoError(s.store.Create(s.ctx, issuer))

		found, err := s.store.FindByDID(s.ctx, "did:unum:phone")
		s.Require().NoError(err)
		s.Equal(issuer.ID, found.ID)
	})

	s.Run("rejects duplicate DID", func() {
		first := s.newIssuer(models.RolePhone, "did:unum:dup")
		s.Require().NoError(s.store.Create(s.ctx, first))

		second := s.newIssuer(models.RoleDocument, "did:unum:dup")
		s.Require().ErrorIs(s.store.Create(s.ctx, second), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown issuer", func() {
		_, err := s.store.FindByID(s.ctx, id.NewIssuerID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByDID(s.ctx, "did:unum:nobody")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *IssuerStoreSuite) TestSetAuthToken() {
	s.Run("replaces the stored token when the expected one matches", func() {
		issuer := s.newIssuer(models.RolePhone, "did:unum:phone")
		s.Require().NoError(s.store.Create(s.ctx, issuer))

		s.Require().NoError(s.store.SetAuthToken(s.ctx, issuer.ID, "initial-token", "rotated"))

		found, err := s.store.FindByID(s.ctx, issuer.ID)
		s.Require().NoError(err)
		s.Equal("rotated", found.AuthToken)
	})

	s.Run("chained rotations each build on the previous token", func() {
		issuer := s.newIssuer(models.RoleDocument, "did:unum:document")
		s.Require().NoError(s.store.Create(s.ctx, issuer))

		s.Require().NoError(s.store.SetAuthToken(s.ctx, issuer.ID, "initial-token", "first"))
		s.Require().NoError(s.store.SetAuthToken(s.ctx, issuer.ID, "first", "second"))

		found, err := s.store.FindByID(s.ctx, issuer.ID)
		s.Require().NoError(err)
		s.Equal("second", found.AuthToken)
	})

	s.Run("a stale writer cannot overwrite a newer token", func() {
		issuer := s.newIssuer(models.RolePhone, "did:unum:stale")
		s.Require().NoError(s.store.Create(s.ctx, issuer))

		s.Require().NoError(s.store.SetAuthToken(s.ctx, issuer.ID, "initial-token", "fresh"))

		err := s.store.SetAuthToken(s.ctx, issuer.ID, "initial-token", "stale")
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		found, err := s.store.FindByID(s.ctx, issuer.ID)
		s.Require().NoError(err)
		s.Equal("fresh", found.AuthToken)
	})

	s.Run("returns ErrNotFound for unknown issuer", func() {
		err := s.store.SetAuthToken(s.ctx, id.NewIssuerID(), "initial-token", "token")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
