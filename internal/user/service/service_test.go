package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"kyc-gateway/internal/user/models"
	"kyc-gateway/internal/user/service"
	"kyc-gateway/internal/user/store"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
)

type UserServiceSuite struct {
	suite.Suite

	store   *store.InMemory
	service *service.Service
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = service.New(s.store, logger)
}

func (s *UserServiceSuite) TestRecordPhoneVerification() {
	s.Run("creates a pending user with a user code", func() {
		s.SetupTest()
		user, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{
			Phone:     "+15551234567",
			Dob:       "1990-01-15",
			FirstName: "Ada",
		})

		s.Require().NoError(err)
		s.NotEmpty(user.UserCode)
		s.Empty(user.DID)
		s.Equal("+15551234567", user.ProvePhone)
		s.Equal("1990-01-15", user.ProveDob)
		s.Equal("Ada", user.ProveFirstName)

		found, err := s.service.ByUserCode(context.Background(), user.UserCode)
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("merges a repeat verification into the existing user", func() {
		s.SetupTest()
		first, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{
			Phone: "+15551234567",
			Dob:   "1990-01-15",
		})
		s.Require().NoError(err)

		second, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{
			Phone: "+15551234567",
			Ssn:   "123-45-6789",
		})
		s.Require().NoError(err)

		s.Equal(first.ID, second.ID)
		s.Equal("1990-01-15", second.ProveDob, "earlier facts survive the merge")
		s.Equal("123-45-6789", second.ProveSsn)
		s.NotEqual(first.UserCode, second.UserCode, "repeat verification mints a fresh code")

		_, err = s.service.ByUserCode(context.Background(), first.UserCode)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("rejects a missing phone number", func() {
		s.SetupTest()
		_, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{})
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})
}

func (s *UserServiceSuite) TestRecordDocumentVerification() {
	s.SetupTest()
	user, err := s.service.RecordDocumentVerification(context.Background(), models.DocumentData{
		FullName: "Ada Lovelace",
		Dob:      "1990-01-15",
		DocType:  "passport",
	})

	s.Require().NoError(err)
	s.NotEmpty(user.UserCode)
	s.Equal("Ada Lovelace", user.DocFullName)
	s.Equal("passport", user.DocType)
}

func (s *UserServiceSuite) TestSetDID() {
	s.Run("sets the did and consumes the user code", func() {
		s.SetupTest()
		user, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{Phone: "+15551234567"})
		s.Require().NoError(err)
		code := user.UserCode

		updated, err := s.service.SetDID(context.Background(), user.ID, "did:unum:subject")
		s.Require().NoError(err)
		s.Equal("did:unum:subject", updated.DID)
		s.Empty(updated.UserCode)

		byDid, err := s.service.ByDID(context.Background(), "did:unum:subject")
		s.Require().NoError(err)
		s.Equal(user.ID, byDid.ID)

		_, err = s.service.ByUserCode(context.Background(), code)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("rejects a did already held by another user", func() {
		s.SetupTest()
		first, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{Phone: "+15551230001"})
		s.Require().NoError(err)
		_, err = s.service.SetDID(context.Background(), first.ID, "did:unum:subject")
		s.Require().NoError(err)

		second, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{Phone: "+15551230002"})
		s.Require().NoError(err)

		_, err = s.service.SetDID(context.Background(), second.ID, "did:unum:subject")
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	s.Run("unknown user is not found", func() {
		s.SetupTest()
		_, err := s.service.SetDID(context.Background(), id.NewUserID(), "did:unum:subject")
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func (s *UserServiceSuite) TestClearUserCode() {
	s.Run("consumes the code without touching the did", func() {
		s.SetupTest()
		user, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{Phone: "+15551234567"})
		s.Require().NoError(err)
		_, err = s.service.SetDID(context.Background(), user.ID, "did:unum:subject")
		s.Require().NoError(err)

		// A later provider call re-mints a code for the same user.
		again, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{Phone: "+15551234567"})
		s.Require().NoError(err)
		s.NotEmpty(again.UserCode)

		cleared, err := s.service.ClearUserCode(context.Background(), user.ID)
		s.Require().NoError(err)
		s.Empty(cleared.UserCode)
		s.Equal("did:unum:subject", cleared.DID)
	})

	s.Run("is idempotent when no code is set", func() {
		s.SetupTest()
		user, err := s.service.RecordPhoneVerification(context.Background(), models.PhoneData{Phone: "+15551234567"})
		s.Require().NoError(err)
		_, err = s.service.ClearUserCode(context.Background(), user.ID)
		s.Require().NoError(err)

		cleared, err := s.service.ClearUserCode(context.Background(), user.ID)
		s.Require().NoError(err)
		s.Empty(cleared.UserCode)
	})
}
