package models

// IdentitySubmission is the first-step input: the identity number and the
// mobile number it is registered against.
type IdentitySubmission struct {
	IdentityNumber string `json:"identity_number" example:"123456789012"`
	PhoneNumber    string `json:"phone_number" example:"9876543210"`
}

// OtpSubmission adds the one-time passcode received on the phone.
type OtpSubmission struct {
	IdentitySubmission
	Passcode string `json:"passcode" example:"123456"`
}

// TaxIDSubmission is the second-step input.
type TaxIDSubmission struct {
	TaxID     string `json:"tax_id" example:"ABCDE1234F"`
	FullName  string `json:"full_name" example:"John Doe"`
	BirthDate string `json:"birth_date" example:"1990-01-01"`
}

// CompleteRegistration is the final submission carrying every field gathered
// by the wizard.
type CompleteRegistration struct {
	OtpSubmission
	TaxIDSubmission
}

// NewCompleteRegistration assembles the final submission from both steps.
func NewCompleteRegistration(otp OtpSubmission, tax TaxIDSubmission) CompleteRegistration {
	return CompleteRegistration{OtpSubmission: otp, TaxIDSubmission: tax}
}
