package models

// IdentityCredential is a known-good identity/phone/passcode triple.
type IdentityCredential struct {
	IdentityNumber string `json:"identity_number"`
	PhoneNumber    string `json:"phone_number"`
	Passcode       string `json:"passcode,omitempty"`
}

// TaxIDCredential is a known-good tax id/name/birth date triple.
type TaxIDCredential struct {
	TaxID     string `json:"tax_id"`
	FullName  string `json:"full_name"`
	BirthDate string `json:"birth_date"`
}

// CredentialSnapshot is a copy of the fixture lists, safe to hand out.
type CredentialSnapshot struct {
	Identity []IdentityCredential `json:"identity_otp"`
	TaxID    []TaxIDCredential    `json:"tax_id_details"`
}
