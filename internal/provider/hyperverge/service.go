package hyperverge

import (
	"context"
	"log/slog"

	usermodels "kyc-gateway/internal/user/models"
)

// Vendor is the client surface the service consumes.
type Vendor interface {
	Login(ctx context.Context) (LoginToken, error)
}

// Users is the slice of the user service this workflow consumes.
type Users interface {
	RecordDocumentVerification(ctx context.Context, data usermodels.DocumentData) (*usermodels.User, error)
}

// Service turns finished document/biometric scans into pending users.
type Service struct {
	vendor Vendor
	users  Users
	logger *slog.Logger
}

func NewService(vendor Vendor, users Users, logger *slog.Logger) *Service {
	return &Service{vendor: vendor, users: users, logger: logger}
}

// SDKToken fetches a fresh vendor token for the mobile SDK.
func (s *Service) SDKToken(ctx context.Context) (LoginToken, error) {
	return s.vendor.Login(ctx)
}

// KYCResult is the consumed slice of a finished scan: the extracted document
// attributes plus the biometric checks.
type KYCResult struct {
	Dob                 string
	Gender              string
	FullName            string
	Address             string
	Country             string
	DocType             string
	DocImage            string
	FaceImage           string
	LiveFace            string
	LiveFaceConfidence  string
	FaceMatch           string
	FaceMatchConfidence string
}

// IntakeResult carries the one-time user code minted for the pending user.
type IntakeResult struct {
	UserCode string
}

// RecordKYC persists a finished scan as a pending user. The one-time user
// code in the result is what the wallet presents during DID association.
func (s *Service) RecordKYC(ctx context.Context, result KYCResult) (IntakeResult, error) {
	user, err := s.users.RecordDocumentVerification(ctx, usermodels.DocumentData{
		Dob:                 result.Dob,
		Gender:              result.Gender,
		FullName:            result.FullName,
		Address:             result.Address,
		Country:             result.Country,
		DocType:             result.DocType,
		DocImage:            result.DocImage,
		FaceImage:           result.FaceImage,
		LiveFace:            result.LiveFace,
		LiveFaceConfidence:  result.LiveFaceConfidence,
		FaceMatch:           result.FaceMatch,
		FaceMatchConfidence: result.FaceMatchConfidence,
	})
	if err != nil {
		return IntakeResult{}, err
	}

	s.logger.InfoContext(ctx, "document kyc recorded",
		"user_id", user.ID.String(),
	)
	return IntakeResult{UserCode: user.UserCode}, nil
}
