// Package credentialrequests orchestrates the two wallet-facing workflows:
// associating a subject DID with a pending user, and fulfilling signed
// credential requests against one of the configured issuer identities.
package credentialrequests

import (
	"context"
	"log/slog"

	"kyc-gateway/internal/audit"
	"kyc-gateway/internal/credential"
	"kyc-gateway/internal/gateway"
	issuermodels "kyc-gateway/internal/issuer/models"
	"kyc-gateway/internal/platform/metrics"
	usermodels "kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
)

// UserDirectory is the slice of the user service this workflow consumes.
type UserDirectory interface {
	ByDID(ctx context.Context, did string) (*usermodels.User, error)
	ByUserCode(ctx context.Context, userCode string) (*usermodels.User, error)
	SetDID(ctx context.Context, userID id.UserID, did string) (*usermodels.User, error)
	ClearUserCode(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// IssuerDirectory resolves the two issuer identities and persists the token
// rotations that ride along on every gateway response.
type IssuerDirectory interface {
	Pair(ctx context.Context) (phone *issuermodels.Issuer, document *issuermodels.Issuer, err error)
	PersistRotatedToken(ctx context.Context, issuer *issuermodels.Issuer, rotated string) error
}

// AuditSink receives workflow events. Emit must never block the request path.
type AuditSink interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service implements the userCredentialRequests workflow end to end.
type Service struct {
	users   UserDirectory
	issuers IssuerDirectory
	gateway gateway.Gateway
	audit   AuditSink
	logger  *slog.Logger
	met     *metrics.Metrics

	issueOnAssociation bool
	phoneProfile       credential.Profile
	documentProfile    credential.Profile
}

func NewService(
	users UserDirectory,
	issuers IssuerDirectory,
	gw gateway.Gateway,
	auditSink AuditSink,
	logger *slog.Logger,
	met *metrics.Metrics,
	issueOnAssociation bool,
) *Service {
	return &Service{
		users:              users,
		issuers:            issuers,
		gateway:            gw,
		audit:              auditSink,
		logger:             logger,
		met:                met,
		issueOnAssociation: issueOnAssociation,
		phoneProfile:       credential.PhoneProfile(),
		documentProfile:    credential.DocumentProfile(),
	}
}

// Handle processes one request. Association, when present, runs first; a
// credential-requests payload is then fulfilled against the (possibly just
// associated) user. The response unions every type made available by this
// call.
func (s *Service) Handle(ctx context.Context, req Request) (Response, error) {
	if err := validate(req); err != nil {
		return Response{}, err
	}

	phone, document, err := s.issuers.Pair(ctx)
	if err != nil {
		return Response{}, err
	}

	user, eagerlyIssued, err := s.associate(ctx, req, phone, document)
	if err != nil {
		return Response{}, err
	}

	if req.CredentialRequestsInfo == nil {
		return response(eagerlyIssued), nil
	}

	info := *req.CredentialRequestsInfo
	var issuer *issuermodels.Issuer
	var profile credential.Profile
	switch info.IssuerDid {
	case phone.DID:
		issuer, profile = phone, s.phoneProfile
	case document.DID:
		issuer, profile = document, s.documentProfile
	default:
		return Response{}, dErrors.Newf(dErrors.CodeBadRequest,
			"issuerDid %s does not match a configured issuer", info.IssuerDid)
	}

	if user == nil || user.DID != info.SubjectDid {
		user, err = s.users.ByDID(ctx, info.SubjectDid)
		if err != nil {
			return Response{}, err
		}
	}

	fulfilled, err := s.dispatch(ctx, user, info, issuer, profile)
	if err != nil {
		return Response{}, err
	}

	return response(append(fulfilled, eagerlyIssued...)), nil
}

// response normalizes a nil tag list so the wire shape is always an array.
func response(types []string) Response {
	if types == nil {
		types = []string{}
	}
	return Response{CredentialTypesIssued: types}
}

func validate(req Request) error {
	if req.CredentialRequestsInfo == nil && req.UserDidAssociation == nil {
		return dErrors.New(dErrors.CodeBadRequest,
			"at least one of credentialRequestsInfo or userDidAssociation is required")
	}
	if assoc := req.UserDidAssociation; assoc != nil {
		if assoc.UserCode == "" {
			return dErrors.New(dErrors.CodeBadRequest, "userDidAssociation.userCode is required")
		}
		if assoc.Did.ID == "" {
			return dErrors.New(dErrors.CodeBadRequest, "userDidAssociation.did must carry an id")
		}
		if assoc.IssuerDid == "" {
			return dErrors.New(dErrors.CodeBadRequest, "userDidAssociation.issuerDid is required")
		}
	}
	if info := req.CredentialRequestsInfo; info != nil {
		if info.SubjectDid == "" {
			return dErrors.New(dErrors.CodeBadRequest, "credentialRequestsInfo.subjectDid is required")
		}
		if info.IssuerDid == "" {
			return dErrors.New(dErrors.CodeBadRequest, "credentialRequestsInfo.issuerDid is required")
		}
	}
	return nil
}
