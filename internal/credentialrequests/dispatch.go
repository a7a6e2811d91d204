package credentialrequests

import (
	"context"

	"kyc-gateway/internal/audit"
	"kyc-gateway/internal/credential"
	"kyc-gateway/internal/gateway"
	issuermodels "kyc-gateway/internal/issuer/models"
	usermodels "kyc-gateway/internal/user/models"
)

// dispatch fulfills a signed credential-requests bundle against one issuer.
// Re-encryption of previously issued credentials is the preferred path; only
// requested types the SaaS could not re-encrypt are minted fresh, and of
// those only the ones the user actually has backing data for. Requested types
// with no backing field are skipped silently: under-fulfillment is the
// wallet's concern, not an error here.
func (s *Service) dispatch(ctx context.Context, user *usermodels.User, info CredentialRequestsInfo, issuer *issuermodels.Issuer, profile credential.Profile) ([]string, error) {
	reEncrypted, rotated, handleErr := s.gateway.HandleSubjectCredentialRequests(ctx, gateway.HandleSubjectCredentialRequestsParams{
		AuthToken:                 issuer.AuthToken,
		IssuerDid:                 issuer.DID,
		SubjectDid:                info.SubjectDid,
		SubjectCredentialRequests: info.SubjectCredentialRequests,
		ReEncryptKeys: gateway.ReEncryptKeys{
			SigningPrivateKey:    issuer.SigningPrivateKey,
			EncryptionPrivateKey: issuer.EncryptionPrivateKey,
			EncryptionKeyID:      issuer.EncryptionKeyID,
		},
	})
	if err := s.issuers.PersistRotatedToken(ctx, issuer, rotated); err != nil {
		return nil, err
	}
	if handleErr != nil {
		return nil, handleErr
	}

	reEncryptedTags := gateway.TypeTagsOf(reEncrypted)
	s.met.ObserveReEncrypted(string(profile.Role), len(reEncryptedTags))

	toIssue := missingTypes(info.SubjectCredentialRequests.RequestedTypes(), reEncryptedTags)
	subjects := profile.SubjectsFor(user, toIssue)
	if len(subjects) < len(toIssue) {
		s.logger.DebugContext(ctx, "skipping requested types without backing data",
			"user_id", user.ID.String(),
			"buildable", credential.TypeTags(subjects),
			"requested", len(toIssue),
		)
	}

	fulfilled := reEncryptedTags
	if len(subjects) > 0 {
		issuedTags, err := s.issue(ctx, issuer, profile, info.SubjectDid, subjects)
		if err != nil {
			return nil, err
		}
		fulfilled = append(fulfilled, issuedTags...)
	}

	s.emitAudit(ctx, audit.Event{
		UserID:          user.ID.String(),
		SubjectDid:      info.SubjectDid,
		IssuerRole:      string(profile.Role),
		Action:          audit.ActionCredentialsIssued,
		CredentialTypes: fulfilled,
		Reason:          "credential request",
	})
	s.logger.InfoContext(ctx, "credential requests fulfilled",
		"user_id", user.ID.String(),
		"subject_did", info.SubjectDid,
		"issuer_role", string(profile.Role),
		"re_encrypted", len(reEncryptedTags),
		"issued", len(fulfilled)-len(reEncryptedTags),
	)
	return fulfilled, nil
}

// missingTypes returns the requested types not covered by re-encryption, as
// credential types. Tags this service does not recognize are dropped.
func missingTypes(requested, covered []string) []credential.Type {
	coveredSet := make(map[string]struct{}, len(covered))
	for _, tag := range covered {
		coveredSet[tag] = struct{}{}
	}
	missing := make([]credential.Type, 0, len(requested))
	for _, tag := range requested {
		if _, ok := coveredSet[tag]; ok {
			continue
		}
		if t := credential.Type(tag); credential.Known(t) {
			missing = append(missing, t)
		}
	}
	return missing
}
