package handler

import (
	"strings"

	"kyc-gateway/internal/credentialrequests"
	dErrors "kyc-gateway/pkg/domain-errors"
)

// CredentialRequestsRequest is the HTTP request body for
// POST /userCredentialRequests.
type CredentialRequestsRequest struct {
	credentialrequests.Request
}

// Validate performs the structural checks the service cannot express: at
// least one sub-object present and identifiers non-blank after trimming.
// Semantic validation stays in the service.
func (r *CredentialRequestsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.CredentialRequestsInfo == nil && r.UserDidAssociation == nil {
		return dErrors.New(dErrors.CodeBadRequest,
			"at least one of credentialRequestsInfo or userDidAssociation is required")
	}
	if assoc := r.UserDidAssociation; assoc != nil {
		assoc.UserCode = strings.TrimSpace(assoc.UserCode)
		assoc.IssuerDid = strings.TrimSpace(assoc.IssuerDid)
	}
	if info := r.CredentialRequestsInfo; info != nil {
		info.SubjectDid = strings.TrimSpace(info.SubjectDid)
		info.IssuerDid = strings.TrimSpace(info.IssuerDid)
		if len(info.SubjectCredentialRequests.CredentialRequests) == 0 {
			return dErrors.New(dErrors.CodeBadRequest,
				"credentialRequestsInfo.subjectCredentialRequests must request at least one type")
		}
	}
	return nil
}
