package credential

import "encoding/json"

// Type is one credential-type tag. The set is closed: making it an explicit
// enum keeps "which types exist" statically enumerable instead of scattering
// string comparisons through the issuance paths.
type Type string

const (
	TypeDob                       Type = "DobCredential"
	TypeSsn                       Type = "SsnCredential"
	TypePhone                     Type = "PhoneCredential"
	TypeFirstName                 Type = "FirstNameCredential"
	TypeLastName                  Type = "LastNameCredential"
	TypeGender                    Type = "GenderCredential"
	TypeFullName                  Type = "FullNameCredential"
	TypeAddress                   Type = "AddressCredential"
	TypeGovernmentIdDocumentImage Type = "GovernmentIdDocumentImageCredential"
	TypeCountryResidence          Type = "CountryResidenceCredential"
	TypeGovernmentIdType          Type = "GovernmentIdTypeCredential"
	TypeFacialImage               Type = "FacialImageCredential"
	TypeLiveliness                Type = "LivelinessCredential"
	TypeLivelinessConfidence      Type = "LivelinessConfidenceCredential"
	TypeFacialMatch               Type = "FacialMatchCredential"
	TypeFacialMatchConfidence     Type = "FacialMatchConfidenceCredential"
)

// attributeName maps each type to the claim key it carries on the wire, e.g.
// DobCredential marshals as {"type":"DobCredential","dob":"..."}.
var attributeName = map[Type]string{
	TypeDob:                       "dob",
	TypeSsn:                       "ssn",
	TypePhone:                     "phone",
	TypeFirstName:                 "firstName",
	TypeLastName:                  "lastName",
	TypeGender:                    "gender",
	TypeFullName:                  "fullName",
	TypeAddress:                   "address",
	TypeGovernmentIdDocumentImage: "image",
	TypeCountryResidence:          "country",
	TypeGovernmentIdType:          "documentType",
	TypeFacialImage:               "image",
	TypeLiveliness:                "liveliness",
	TypeLivelinessConfidence:      "confidence",
	TypeFacialMatch:               "match",
	TypeFacialMatchConfidence:     "confidence",
}

// Known reports whether t is a credential type this service can issue.
func Known(t Type) bool {
	_, ok := attributeName[t]
	return ok
}

// Subject is one credential-subject payload: a type tag plus the single raw
// value backing it. Building one is pure; whether the value exists for a
// given user is the profile's concern.
type Subject struct {
	Type  Type
	Value string
}

// Build returns the subject for a (type, value) pair, or false for a type
// this service does not recognize.
func Build(t Type, value string) (Subject, bool) {
	if !Known(t) {
		return Subject{}, false
	}
	return Subject{Type: t, Value: value}, true
}

// MarshalJSON emits the SaaS wire shape, {"type": ..., "<attribute>": ...}.
func (s Subject) MarshalJSON() ([]byte, error) {
	payload := map[string]string{"type": string(s.Type)}
	payload[attributeName[s.Type]] = s.Value
	return json.Marshal(payload)
}

// TypeTags flattens subjects to their type tags, preserving order.
func TypeTags(subjects []Subject) []string {
	tags := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		tags = append(tags, string(subject.Type))
	}
	return tags
}
