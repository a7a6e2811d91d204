package credentialrequests

import "kyc-gateway/internal/gateway"

// UserDidAssociation links a freshly wallet-generated DID to the pending user
// record identified by the one-time user code.
type UserDidAssociation struct {
	UserCode  string              `json:"userCode"`
	Did       gateway.DidDocument `json:"did"`
	IssuerDid string              `json:"issuerDid"`
}

// CredentialRequestsInfo asks for credentials on behalf of a DID the wallet
// already controls. A request targets exactly one issuer at a time.
type CredentialRequestsInfo struct {
	SubjectDid                string                            `json:"subjectDid"`
	IssuerDid                 string                            `json:"issuerDid"`
	SubjectCredentialRequests gateway.SubjectCredentialRequests `json:"subjectCredentialRequests"`
}

// Request is the inbound payload of POST /userCredentialRequests. At least
// one of the two sub-objects must be present.
type Request struct {
	CredentialRequestsInfo *CredentialRequestsInfo `json:"credentialRequestsInfo,omitempty"`
	UserDidAssociation     *UserDidAssociation     `json:"userDidAssociation,omitempty"`
}

// Response lists every credential type now available to the subject as a
// result of this request: re-encrypted, freshly issued, and eagerly issued
// during DID association.
type Response struct {
	CredentialTypesIssued []string `json:"credentialTypesIssued"`
}
