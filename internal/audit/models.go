package audit

import "time"

// Action enumerates the auditable moments of the issuance workflow.
type Action string

const (
	ActionDidAssociated      Action = "did_associated"
	ActionCredentialsRevoked Action = "credentials_revoked"
	ActionCredentialsIssued  Action = "credentials_issued"
	ActionTokenRotated       Action = "auth_token_rotated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp       time.Time `json:"timestamp"`
	UserID          string    `json:"userId,omitempty"`
	SubjectDid      string    `json:"subjectDid,omitempty"`
	IssuerRole      string    `json:"issuerRole,omitempty"`
	Action          Action    `json:"action"`
	CredentialTypes []string  `json:"credentialTypes,omitempty"`
	Reason          string    `json:"reason,omitempty"`
}
