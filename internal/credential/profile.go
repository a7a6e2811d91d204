package credential

import (
	issuermodels "kyc-gateway/internal/issuer/models"
	usermodels "kyc-gateway/internal/user/models"
)

// Profile binds an issuer role to its credential catalog: which types that
// issuer offers and which user field backs each one. The two issuer workflows
// are structurally identical, so everything downstream is parameterized over
// a Profile instead of branching per issuer.
type Profile struct {
	Role  issuermodels.Role
	types []Type
	value func(u *usermodels.User, t Type) string
}

// PhoneProfile covers the types backed by phone-verification fields.
func PhoneProfile() Profile {
	return Profile{
		Role: issuermodels.RolePhone,
		types: []Type{
			TypeDob, TypeSsn, TypePhone, TypeFirstName, TypeLastName,
		},
		value: func(u *usermodels.User, t Type) string {
			switch t {
			case TypeDob:
				return u.ProveDob
			case TypeSsn:
				return u.ProveSsn
			case TypePhone:
				return u.ProvePhone
			case TypeFirstName:
				return u.ProveFirstName
			case TypeLastName:
				return u.ProveLastName
			default:
				return ""
			}
		},
	}
}

// DocumentProfile covers the types backed by document and biometric fields.
func DocumentProfile() Profile {
	return Profile{
		Role: issuermodels.RoleDocument,
		types: []Type{
			TypeDob, TypeGender, TypeFullName, TypeAddress,
			TypeCountryResidence, TypeGovernmentIdType,
			TypeGovernmentIdDocumentImage, TypeFacialImage,
			TypeLiveliness, TypeLivelinessConfidence,
			TypeFacialMatch, TypeFacialMatchConfidence,
		},
		value: func(u *usermodels.User, t Type) string {
			switch t {
			case TypeDob:
				return u.DocDob
			case TypeGender:
				return u.DocGender
			case TypeFullName:
				return u.DocFullName
			case TypeAddress:
				return u.DocAddress
			case TypeCountryResidence:
				return u.DocCountry
			case TypeGovernmentIdType:
				return u.DocType
			case TypeGovernmentIdDocumentImage:
				return u.DocImage
			case TypeFacialImage:
				return u.FaceImage
			case TypeLiveliness:
				return u.LiveFace
			case TypeLivelinessConfidence:
				return u.LiveFaceConfidence
			case TypeFacialMatch:
				return u.FaceMatch
			case TypeFacialMatchConfidence:
				return u.FaceMatchConfidence
			default:
				return ""
			}
		},
	}
}

// Value returns the raw user value backing t under this profile, and whether
// it is present. Types outside the profile's catalog are simply absent.
func (p Profile) Value(u *usermodels.User, t Type) (string, bool) {
	v := p.value(u, t)
	return v, v != ""
}

// SubjectsFor builds subjects for the requested types whose backing field is
// present on the user. Missing fields are skipped, never an error: a request
// for a type the user never provided data for is the expected case.
func (p Profile) SubjectsFor(u *usermodels.User, requested []Type) []Subject {
	subjects := make([]Subject, 0, len(requested))
	for _, t := range requested {
		if v, ok := p.Value(u, t); ok {
			if subject, built := Build(t, v); built {
				subjects = append(subjects, subject)
			}
		}
	}
	return subjects
}

// AllKnownSubjects builds a subject for every catalog type the user has data
// for. This backs eager issuance on DID association.
func (p Profile) AllKnownSubjects(u *usermodels.User) []Subject {
	return p.SubjectsFor(u, p.types)
}
