package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"kyc-gateway/internal/issuer/models"
	"kyc-gateway/internal/issuer/store"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
)

const (
	phoneDid    = "did:unum:phone"
	documentDid = "did:unum:document"
)

type IssuerServiceSuite struct {
	suite.Suite
	store *store.InMemory
	svc   *Service
	ctx   context.Context
}

func TestIssuerServiceSuite(t *testing.T) {
	suite.Run(t, new(IssuerServiceSuite))
}

func (s *IssuerServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = New(s.store, logger, nil, nil, phoneDid, documentDid)
	s.ctx = context.Background()
}

func (s *IssuerServiceSuite) register(role models.Role, did string) *models.Issuer {
	issuer := &models.Issuer{
		ID:        id.NewIssuerID(),
		Name:      string(role),
		DID:       did,
		AuthToken: "initial",
	}
	s.Require().NoError(s.store.Create(s.ctx, issuer))
	return issuer
}

func (s *IssuerServiceSuite) TestPair() {
	s.Run("resolves both configured identities", func() {
		s.SetupTest()
		s.register(models.RolePhone, phoneDid)
		s.register(models.RoleDocument, documentDid)

		phone, document, err := s.svc.Pair(s.ctx)
		s.Require().NoError(err)
		s.Equal(phoneDid, phone.DID)
		s.Equal(documentDid, document.DID)
	})

	s.Run("unregistered issuer is an unavailability", func() {
		s.SetupTest()
		s.register(models.RolePhone, phoneDid)
		// document issuer missing

		_, _, err := s.svc.Pair(s.ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("unconfigured DID is an unavailability", func() {
		s.SetupTest()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := New(s.store, logger, nil, nil, "", documentDid)

		_, _, err := svc.Pair(s.ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *IssuerServiceSuite) TestRole() {
	role, ok := s.svc.Role(phoneDid)
	s.True(ok)
	s.Equal(models.RolePhone, role)

	role, ok = s.svc.Role(documentDid)
	s.True(ok)
	s.Equal(models.RoleDocument, role)

	_, ok = s.svc.Role("did:unum:stranger")
	s.False(ok)
}

func (s *IssuerServiceSuite) TestPersistRotatedToken() {
	s.Run("persists a rotation and updates the in-memory issuer", func() {
		s.SetupTest()
		created := s.register(models.RolePhone, phoneDid)
		issuer, _, err := s.svc.Pair(s.ctx)
		s.Require().NoError(err)

		s.Require().NoError(s.svc.PersistRotatedToken(s.ctx, issuer, "rotated"))
		s.Equal("rotated", issuer.AuthToken)

		stored, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("rotated", stored.AuthToken)
	})

	s.Run("empty rotation is a no-op", func() {
		s.SetupTest()
		created := s.register(models.RolePhone, phoneDid)
		issuer, _, err := s.svc.Pair(s.ctx)
		s.Require().NoError(err)

		s.Require().NoError(s.svc.PersistRotatedToken(s.ctx, issuer, ""))

		stored, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("initial", stored.AuthToken)
	})

	s.Run("unchanged token is a no-op", func() {
		s.SetupTest()
		s.register(models.RolePhone, phoneDid)
		issuer, _, err := s.svc.Pair(s.ctx)
		s.Require().NoError(err)

		s.Require().NoError(s.svc.PersistRotatedToken(s.ctx, issuer, "initial"))
	})

	s.Run("store failure surfaces as internal error", func() {
		s.SetupTest()
		ghost := &models.Issuer{ID: id.NewIssuerID(), DID: phoneDid, AuthToken: "initial"}

		err := s.svc.PersistRotatedToken(s.ctx, ghost, "rotated")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("a writer holding a stale token adopts the stored one", func() {
		s.SetupTest()
		created := s.register(models.RolePhone, phoneDid)

		// Two request copies of the same issuer, as two processes would hold.
		first, _, err := s.svc.Pair(s.ctx)
		s.Require().NoError(err)
		second, _, err := s.svc.Pair(s.ctx)
		s.Require().NoError(err)

		s.Require().NoError(s.svc.PersistRotatedToken(s.ctx, first, "fresh"))

		// The second writer still expects "initial"; its rotation must not
		// overwrite the fresher stored token.
		s.Require().NoError(s.svc.PersistRotatedToken(s.ctx, second, "stale"))
		s.Equal("fresh", second.AuthToken)

		stored, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("fresh", stored.AuthToken)
	})

	s.Run("concurrent rotations leave exactly one winner", func() {
		s.SetupTest()
		created := s.register(models.RolePhone, phoneDid)
		issuer, _, err := s.svc.Pair(s.ctx)
		s.Require().NoError(err)

		const writers = 16
		tokens := make([]string, writers)
		for i := range tokens {
			tokens[i] = fmt.Sprintf("rotated-%d", i)
		}

		var wg sync.WaitGroup
		for _, token := range tokens {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				local := *issuer
				s.NoError(s.svc.PersistRotatedToken(s.ctx, &local, token))
			}(token)
		}
		wg.Wait()

		stored, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Contains(tokens, stored.AuthToken)
	})
}
