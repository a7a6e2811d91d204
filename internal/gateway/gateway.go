// Package gateway wraps the external credential-issuance SaaS. Every call may
// silently reissue the caller's bearer token; the rotated token is therefore
// part of every method's return signature so the persistence obligation is
// visible at compile time rather than buried in a convention.
package gateway

import (
	"context"
	"encoding/json"

	"kyc-gateway/internal/credential"
)

// DidDocument is a signed DID document supplied by the wallet. The payload is
// forwarded to the SaaS verbatim for verification; only the id is read
// locally.
type DidDocument struct {
	ID  string
	raw json.RawMessage
}

// NewDidDocument builds a document from just an id, for tests and internal
// callers that never forward a full signed payload.
func NewDidDocument(didID string) DidDocument {
	return DidDocument{ID: didID}
}

func (d *DidDocument) UnmarshalJSON(data []byte) error {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	d.ID = probe.ID
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (d DidDocument) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	return json.Marshal(struct {
		ID string `json:"id"`
	}{ID: d.ID})
}

// VerifiedStatus is the outcome of a signed-DID verification.
type VerifiedStatus struct {
	IsVerified bool   `json:"isVerified"`
	Message    string `json:"message,omitempty"`
}

// Credential is the SaaS's view of an issued credential. Type carries the
// W3C-style type array, usually ["VerifiableCredential", "<tag>"].
type Credential struct {
	ID      string          `json:"id"`
	Type    []string        `json:"type"`
	Subject json.RawMessage `json:"credentialSubject,omitempty"`
}

// TypeTag extracts the credential-type tag, skipping the generic
// VerifiableCredential marker.
func (c Credential) TypeTag() string {
	for _, t := range c.Type {
		if t != "VerifiableCredential" {
			return t
		}
	}
	return ""
}

// TypeTagsOf flattens credentials to their type tags, dropping any without
// one.
func TypeTagsOf(credentials []Credential) []string {
	tags := make([]string, 0, len(credentials))
	for _, c := range credentials {
		if tag := c.TypeTag(); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CredentialRequest is one requested credential type from the wallet.
type CredentialRequest struct {
	Type     string   `json:"type"`
	Issuers  []string `json:"issuers,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// SubjectCredentialRequests is the signed request bundle from the wallet. The
// proof is opaque to this service and forwarded for upstream verification.
type SubjectCredentialRequests struct {
	CredentialRequests []CredentialRequest `json:"credentialRequests"`
	Proof              json.RawMessage     `json:"proof,omitempty"`
}

// RequestedTypes lists the requested type tags.
func (r SubjectCredentialRequests) RequestedTypes() []string {
	types := make([]string, 0, len(r.CredentialRequests))
	for _, req := range r.CredentialRequests {
		types = append(types, req.Type)
	}
	return types
}

// ReEncryptKeys is the issuer key material the SaaS needs to re-wrap
// previously issued credentials under the issuer's current keys.
type ReEncryptKeys struct {
	SigningPrivateKey    string
	EncryptionPrivateKey string
	EncryptionKeyID      string
}

// HandleSubjectCredentialRequestsParams collects the inputs of the combined
// verify-and-re-encrypt primitive.
type HandleSubjectCredentialRequestsParams struct {
	AuthToken                 string
	IssuerDid                 string
	SubjectDid                string
	SubjectCredentialRequests SubjectCredentialRequests
	ReEncryptKeys             ReEncryptKeys
}

// Gateway is the external SDK boundary. The second return of every method is
// the possibly-rotated auth token ("" means unchanged); callers MUST hand it
// to the issuer service for persistence, including on verification failures.
type Gateway interface {
	// VerifySignedDid checks the wallet's signed DID document against the
	// issuer identity.
	VerifySignedDid(ctx context.Context, authToken, issuerDid string, doc DidDocument) (VerifiedStatus, string, error)

	// RevokeAllCredentials revokes everything the issuer ever issued to the
	// subject DID.
	RevokeAllCredentials(ctx context.Context, authToken, issuerDid, signingPrivateKey, subjectDid string) (string, error)

	// HandleSubjectCredentialRequests verifies the signed request bundle and
	// re-encrypts any credential the issuer previously issued to this subject
	// under the issuer's current keys. The preferred fulfillment path: no
	// local field lookup needed.
	HandleSubjectCredentialRequests(ctx context.Context, params HandleSubjectCredentialRequestsParams) ([]Credential, string, error)

	// IssueCredentials mints fresh credentials from local raw values.
	IssueCredentials(ctx context.Context, authToken, issuerDid, subjectDid string, subjects []credential.Subject, signingPrivateKey string) ([]Credential, string, error)
}
