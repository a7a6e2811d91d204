package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
	"kyc-gateway/pkg/platform/sentinel"
)

type UserStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreSuite))
}

func (s *UserStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *UserStoreSuite) newUser(phone, userCode string) *models.User {
	return &models.User{
		ID:         id.NewUserID(),
		UserCode:   userCode,
		ProvePhone: phone,
	}
}

func (s *UserStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds user by ID", func() {
		user := s.newUser("+15550100", "code-1")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user.ProvePhone, found.ProvePhone)
	})

	s.Run("finds user by user code", func() {
		user := s.newUser("+15550101", "code-2")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindByUserCode(s.ctx, "code-2")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("finds user by phone", func() {
		user := s.newUser("+15550102", "code-3")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindByPhone(s.ctx, "+15550102")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("returns ErrNotFound for unknown lookups", func() {
		_, err := s.store.FindByID(s.ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByDID(s.ctx, "did:unum:nobody")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByUserCode(s.ctx, "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty keys never match", func() {
		user := s.newUser("+15550103", "")
		s.Require().NoError(s.store.Create(s.ctx, user))

		_, err := s.store.FindByDID(s.ctx, "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByUserCode(s.ctx, "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *UserStoreSuite) TestUniqueness() {
	s.Run("rejects duplicate DID on create", func() {
		first := s.newUser("+15550104", "")
		first.DID = "did:unum:dup"
		s.Require().NoError(s.store.Create(s.ctx, first))

		second := s.newUser("+15550105", "")
		second.DID = "did:unum:dup"
		s.Require().ErrorIs(s.store.Create(s.ctx, second), sentinel.ErrConflict)
	})

	s.Run("rejects duplicate pending user code", func() {
		first := s.newUser("+15550106", "same-code")
		s.Require().NoError(s.store.Create(s.ctx, first))

		second := s.newUser("+15550107", "same-code")
		s.Require().ErrorIs(s.store.Create(s.ctx, second), sentinel.ErrConflict)
	})

	s.Run("rejects taking another user's DID on update", func() {
		holder := s.newUser("+15550108", "")
		holder.DID = "did:unum:held"
		s.Require().NoError(s.store.Create(s.ctx, holder))

		other := s.newUser("+15550109", "code-4")
		s.Require().NoError(s.store.Create(s.ctx, other))

		other.DID = "did:unum:held"
		s.Require().ErrorIs(s.store.Update(s.ctx, other), sentinel.ErrConflict)
	})
}

func (s *UserStoreSuite) TestUpdate() {
	s.Run("persists field changes", func() {
		user := s.newUser("+15550110", "code-5")
		s.Require().NoError(s.store.Create(s.ctx, user))

		user.DID = "did:unum:fresh"
		user.UserCode = ""
		s.Require().NoError(s.store.Update(s.ctx, user))

		found, err := s.store.FindByDID(s.ctx, "did:unum:fresh")
		s.Require().NoError(err)
		s.Empty(found.UserCode)
	})

	s.Run("returns ErrNotFound for unknown user", func() {
		ghost := s.newUser("+15550111", "")
		s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	})

	s.Run("returned users are copies", func() {
		user := s.newUser("+15550112", "code-6")
		s.Require().NoError(s.store.Create(s.ctx, user))

		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		found.ProvePhone = "mutated"

		again, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("+15550112", again.ProvePhone)
	})
}
