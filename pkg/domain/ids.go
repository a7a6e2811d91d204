package domain

import (
	"github.com/google/uuid"

	dErrors "kyc-gateway/pkg/domain-errors"
)

// Typed identifiers keep store keys from being mixed up at call sites. Stores
// convert to uuid.UUID at the persistence boundary.

type UserID uuid.UUID

func NewUserID() UserID {
	return UserID(uuid.New())
}

func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID(uuid.Nil), dErrors.New(dErrors.CodeBadRequest, "id must be a valid UUID")
	}
	return UserID(u), nil
}

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

func (id UserID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

type IssuerID uuid.UUID

func NewIssuerID() IssuerID {
	return IssuerID(uuid.New())
}

func ParseIssuerID(s string) (IssuerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return IssuerID(uuid.Nil), dErrors.New(dErrors.CodeBadRequest, "id must be a valid UUID")
	}
	return IssuerID(u), nil
}

func (id IssuerID) String() string {
	return uuid.UUID(id).String()
}

func (id IssuerID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
