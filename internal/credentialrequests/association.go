package credentialrequests

import (
	"context"

	"kyc-gateway/internal/audit"
	"kyc-gateway/internal/credential"
	"kyc-gateway/internal/gateway"
	issuermodels "kyc-gateway/internal/issuer/models"
	usermodels "kyc-gateway/internal/user/models"
	dErrors "kyc-gateway/pkg/domain-errors"
)

// associate runs the DID-association workflow when the request carries one.
// It returns the resolved user (nil when no association was requested) and
// the type tags of any credentials eagerly issued to the fresh DID.
//
// Every gateway call can rotate the issuer's auth token, and each rotation is
// persisted immediately after the call returns, before the call's own outcome
// is inspected. A verification failure or a later revocation error must not
// discard a rotation that the SaaS has already applied.
func (s *Service) associate(ctx context.Context, req Request, phone, document *issuermodels.Issuer) (*usermodels.User, []string, error) {
	assoc := req.UserDidAssociation
	if assoc == nil {
		return nil, nil, nil
	}

	if assoc.IssuerDid != phone.DID && assoc.IssuerDid != document.DID {
		return nil, nil, dErrors.Newf(dErrors.CodeBadRequest,
			"issuerDid %s does not match a configured issuer", assoc.IssuerDid)
	}

	user, err := s.users.ByUserCode(ctx, assoc.UserCode)
	if err != nil {
		return nil, nil, err
	}

	status, rotated, verifyErr := s.gateway.VerifySignedDid(ctx, phone.AuthToken, phone.DID, assoc.Did)
	if err := s.issuers.PersistRotatedToken(ctx, phone, rotated); err != nil {
		return nil, nil, err
	}
	if verifyErr != nil {
		return nil, nil, verifyErr
	}
	if !status.IsVerified {
		return nil, nil, dErrors.Newf(dErrors.CodeVerification,
			"signed DID document %s failed verification: %s", assoc.Did.ID, status.Message)
	}

	newDid := assoc.Did.ID
	if user.DID == newDid {
		// Re-submission of the DID already on file: consume the code, keep
		// everything previously issued.
		user, err = s.users.ClearUserCode(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}
		s.logger.InfoContext(ctx, "did association repeated with same did",
			"user_id", user.ID.String(),
			"subject_did", newDid,
		)
		return user, nil, nil
	}

	if user.DID != "" {
		// The user is replacing their wallet identity. Credentials held by the
		// old DID must die before the new DID is committed, on both issuers.
		if err := s.revokeAll(ctx, phone, issuermodels.RolePhone, user.DID); err != nil {
			return nil, nil, err
		}
		if err := s.revokeAll(ctx, document, issuermodels.RoleDocument, user.DID); err != nil {
			return nil, nil, err
		}
		s.emitAudit(ctx, audit.Event{
			UserID:     user.ID.String(),
			SubjectDid: user.DID,
			Action:     audit.ActionCredentialsRevoked,
			Reason:     "did re-association",
		})
	}

	user, err = s.users.SetDID(ctx, user.ID, newDid)
	if err != nil {
		return nil, nil, err
	}
	s.met.ObserveDidAssociation()
	s.emitAudit(ctx, audit.Event{
		UserID:     user.ID.String(),
		SubjectDid: newDid,
		Action:     audit.ActionDidAssociated,
	})
	s.logger.InfoContext(ctx, "did associated",
		"user_id", user.ID.String(),
		"subject_did", newDid,
	)

	if !s.issueOnAssociation {
		return user, nil, nil
	}

	issued, err := s.issueAllKnown(ctx, user, newDid, phone, document)
	if err != nil {
		return nil, nil, err
	}
	return user, issued, nil
}

// issueAllKnown eagerly issues every credential each issuer has backing data
// for, so a fresh wallet starts populated without a follow-up request.
func (s *Service) issueAllKnown(ctx context.Context, user *usermodels.User, subjectDid string, phone, document *issuermodels.Issuer) ([]string, error) {
	var issued []string
	for _, target := range []struct {
		issuer  *issuermodels.Issuer
		profile credential.Profile
	}{
		{phone, s.phoneProfile},
		{document, s.documentProfile},
	} {
		subjects := target.profile.AllKnownSubjects(user)
		if len(subjects) == 0 {
			continue
		}
		tags, err := s.issue(ctx, target.issuer, target.profile, subjectDid, subjects)
		if err != nil {
			return nil, err
		}
		s.emitAudit(ctx, audit.Event{
			UserID:          user.ID.String(),
			SubjectDid:      subjectDid,
			IssuerRole:      string(target.profile.Role),
			Action:          audit.ActionCredentialsIssued,
			CredentialTypes: tags,
			Reason:          "did association",
		})
		issued = append(issued, tags...)
	}
	return issued, nil
}

// issue mints credentials for the prepared subjects and persists the rotated
// token before surfacing the call's outcome.
func (s *Service) issue(ctx context.Context, issuer *issuermodels.Issuer, profile credential.Profile, subjectDid string, subjects []credential.Subject) ([]string, error) {
	credentials, rotated, issueErr := s.gateway.IssueCredentials(
		ctx, issuer.AuthToken, issuer.DID, subjectDid, subjects, issuer.SigningPrivateKey)
	if err := s.issuers.PersistRotatedToken(ctx, issuer, rotated); err != nil {
		return nil, err
	}
	if issueErr != nil {
		return nil, issueErr
	}
	tags := gateway.TypeTagsOf(credentials)
	for _, tag := range tags {
		s.met.ObserveIssued(string(profile.Role), tag)
	}
	return tags, nil
}

func (s *Service) revokeAll(ctx context.Context, issuer *issuermodels.Issuer, role issuermodels.Role, subjectDid string) error {
	rotated, revokeErr := s.gateway.RevokeAllCredentials(
		ctx, issuer.AuthToken, issuer.DID, issuer.SigningPrivateKey, subjectDid)
	if err := s.issuers.PersistRotatedToken(ctx, issuer, rotated); err != nil {
		return err
	}
	if revokeErr != nil {
		return revokeErr
	}
	s.met.ObserveRevocation(string(role))
	return nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
