package models

import "time"

// RegistrationStatusApproved is the only status the mock registry issues.
const RegistrationStatusApproved = "APPROVED"

// ChallengeSent is returned by send-challenge.
type ChallengeSent struct {
	// DebugPasscode is set only when the service runs with debug passcodes
	// enabled; it is never populated in production.
	DebugPasscode string `json:"debug_passcode,omitempty"`
}

// ChallengeVerification is returned by verify-challenge.
type ChallengeVerification struct {
	IdentityVerified bool `json:"identity_verified"`
	PhoneVerified    bool `json:"phone_verified"`
}

// TaxIDVerification is returned by verify-tax-id.
type TaxIDVerification struct {
	TaxIDVerified     bool `json:"tax_id_verified"`
	NameVerified      bool `json:"name_verified"`
	BirthDateVerified bool `json:"birth_date_verified"`
}

// RegistrationRecord is created once per successful submission and returned
// to the caller. It is never stored.
type RegistrationRecord struct {
	RegistrationNumber   string    `json:"registration_number" example:"UDYAM-1760523000000"`
	Status               string    `json:"status" example:"APPROVED"`
	RegisteredDate       time.Time `json:"registered_date"`
	MaskedIdentityNumber string    `json:"masked_identity_number" example:"XXXXXXXX9012"`
	PhoneNumber          string    `json:"phone_number" example:"9876543210"`
	PhoneE164            string    `json:"phone_e164,omitempty" example:"+919876543210"`
	TaxID                string    `json:"tax_id" example:"ABCDE1234F"`
	FullName             string    `json:"full_name" example:"John Doe"`
	BirthDate            string    `json:"birth_date" example:"1990-01-01"`
}
