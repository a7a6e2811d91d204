package models

import (
	"time"

	id "kyc-gateway/pkg/domain"
)

// User is one verification subject. A user starts out pending: created with a
// single-use UserCode and whichever fields a provider call supplied, no DID.
// DID association sets DID and clears UserCode; users are never deleted in the
// normal flow.
//
// The two field namespaces are populated independently: phone verification
// (Prove*) by the phone/SSN/DOB provider, document verification (Doc*/Face*/
// Live*) by the document-and-biometric provider. Every field is optional and
// an empty string means "this fact is not known"; presence is the sole
// signal that a credential of the matching type is issuable.
type User struct {
	ID       id.UserID
	DID      string
	UserCode string

	ProvePhone     string
	ProveDob       string
	ProveSsn       string
	ProveFirstName string
	ProveLastName  string

	DocDob              string
	DocGender           string
	DocFullName         string
	DocAddress          string
	DocCountry          string
	DocType             string
	DocImage            string
	FaceImage           string
	LiveFace            string
	LiveFaceConfidence  string
	FaceMatch           string
	FaceMatchConfidence string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhoneData is the field set learned from one phone-verification result.
type PhoneData struct {
	Phone     string
	Dob       string
	Ssn       string
	FirstName string
	LastName  string
}

// DocumentData is the field set learned from one document/biometric scan.
type DocumentData struct {
	Dob                 string
	Gender              string
	FullName            string
	Address             string
	Country             string
	DocType             string
	DocImage            string
	FaceImage           string
	LiveFace            string
	LiveFaceConfidence  string
	FaceMatch           string
	FaceMatchConfidence string
}

// MergePhoneData copies every non-empty field onto the user. Later provider
// calls only ever add or refresh facts, never erase them.
func (u *User) MergePhoneData(data PhoneData) {
	setIfPresent(&u.ProvePhone, data.Phone)
	setIfPresent(&u.ProveDob, data.Dob)
	setIfPresent(&u.ProveSsn, data.Ssn)
	setIfPresent(&u.ProveFirstName, data.FirstName)
	setIfPresent(&u.ProveLastName, data.LastName)
}

// MergeDocumentData copies every non-empty field onto the user.
func (u *User) MergeDocumentData(data DocumentData) {
	setIfPresent(&u.DocDob, data.Dob)
	setIfPresent(&u.DocGender, data.Gender)
	setIfPresent(&u.DocFullName, data.FullName)
	setIfPresent(&u.DocAddress, data.Address)
	setIfPresent(&u.DocCountry, data.Country)
	setIfPresent(&u.DocType, data.DocType)
	setIfPresent(&u.DocImage, data.DocImage)
	setIfPresent(&u.FaceImage, data.FaceImage)
	setIfPresent(&u.LiveFace, data.LiveFace)
	setIfPresent(&u.LiveFaceConfidence, data.LiveFaceConfidence)
	setIfPresent(&u.FaceMatch, data.FaceMatch)
	setIfPresent(&u.FaceMatchConfidence, data.FaceMatchConfidence)
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
