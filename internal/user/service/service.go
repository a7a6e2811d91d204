package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"kyc-gateway/internal/user/models"
	"kyc-gateway/internal/user/store"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/sentinel"
)

// Service owns user lifecycle: pending records created by provider results,
// merged on repeat verification, and promoted to durable identities when a
// DID is associated.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func New(store store.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// RecordPhoneVerification persists the result of a phone-verification call.
// An existing user with the same phone number is merged and handed a fresh
// user code; otherwise a new pending user is created. The returned user's
// UserCode is what the wallet presents during DID association.
func (s *Service) RecordPhoneVerification(ctx context.Context, data models.PhoneData) (*models.User, error) {
	if data.Phone == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "phone number required")
	}

	existing, err := s.store.FindByPhone(ctx, data.Phone)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user by phone")
	}
	if err == nil {
		existing.MergePhoneData(data)
		existing.UserCode = newUserCode()
		if err := s.store.Update(ctx, existing); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
		}
		s.logger.InfoContext(ctx, "merged phone verification into existing user",
			"user_id", existing.ID.String(),
		)
		return existing, nil
	}

	user := &models.User{
		ID:       id.NewUserID(),
		UserCode: newUserCode(),
	}
	user.MergePhoneData(data)
	if err := s.store.Create(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.logger.InfoContext(ctx, "created pending user from phone verification",
		"user_id", user.ID.String(),
	)
	return user, nil
}

// RecordDocumentVerification creates a pending user holding the scanned
// document and biometric facts until a DID arrives to issue against.
func (s *Service) RecordDocumentVerification(ctx context.Context, data models.DocumentData) (*models.User, error) {
	user := &models.User{
		ID:       id.NewUserID(),
		UserCode: newUserCode(),
	}
	user.MergeDocumentData(data)
	if err := s.store.Create(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.logger.InfoContext(ctx, "created pending user from document verification",
		"user_id", user.ID.String(),
	)
	return user, nil
}

// ByID resolves a user by UUID.
func (s *Service) ByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find user")
	}
	return user, nil
}

// ByDID resolves a user by their associated DID.
func (s *Service) ByDID(ctx context.Context, did string) (*models.User, error) {
	user, err := s.store.FindByDID(ctx, did)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "no user found with did %s", did)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find user by did")
	}
	return user, nil
}

// ByUserCode resolves a pending user by their one-time code.
func (s *Service) ByUserCode(ctx context.Context, userCode string) (*models.User, error) {
	user, err := s.store.FindByUserCode(ctx, userCode)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user code invalid or already consumed")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find user by code")
	}
	return user, nil
}

// SetDID commits a DID onto the user and consumes the user code in the same
// write. Callers must have completed revocation of the old DID's credentials
// before calling this.
func (s *Service) SetDID(ctx context.Context, userID id.UserID, did string) (*models.User, error) {
	user, err := s.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.DID = did
	user.UserCode = ""
	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "did %s already associated with another user", did)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to set user did")
	}
	return user, nil
}

// ClearUserCode consumes the one-time code without touching the DID. Used for
// the idempotent re-association of an unchanged DID.
func (s *Service) ClearUserCode(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.UserCode == "" {
		return user, nil
	}
	user.UserCode = ""
	if err := s.store.Update(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear user code")
	}
	return user, nil
}

func newUserCode() string {
	return uuid.NewString()
}
