package models

import (
	"time"

	id "kyc-gateway/pkg/domain"
)

// Role distinguishes the two issuer identities this deployment operates.
// Selection is always by configured DID, never by row order.
type Role string

const (
	// RolePhone issues credentials backed by phone/SSN/DOB verification.
	RolePhone Role = "phone-verification"
	// RoleDocument issues credentials backed by document and biometric scans.
	RoleDocument Role = "document-verification"
)

// Issuer is one cryptographic identity this system issues credentials under.
// Everything is immutable after out-of-band registration except AuthToken,
// which the issuance SaaS may silently reissue on any call; callers must
// persist the rotated value or subsequent calls will be rejected upstream.
type Issuer struct {
	ID           id.IssuerID
	Name         string
	DID          string
	CustomerUUID string
	IssuerUUID   string
	APIKey       string

	SigningPrivateKey    string
	EncryptionPrivateKey string
	SigningKeyID         string
	EncryptionKeyID      string

	AuthToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}
