package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/udyam-portal/app-udyam/internal/models"
)

var (
	identityNumberRegex = regexp.MustCompile(`^\d{12}$`)
	taxIDRegex          = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	passcodeRegex       = regexp.MustCompile(`^\d{6}$`)
	phoneNumberRegex    = regexp.MustCompile(`^[6-9]\d{9}$`)
	nameRegex           = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)
	emailRegex          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalCodeRegex     = regexp.MustCompile(`^\d{6}$`)
)

// Birth dates are accepted as a calendar date or a full RFC 3339 timestamp
var birthDateLayouts = []string{"2006-01-02", time.RFC3339}

const (
	minApplicantAge = 18
	maxApplicantAge = 100
)

// Field error messages
const (
	MsgInvalidIdentityNumber = "Invalid identity number format. Must be 12 digits."
	MsgInvalidPhoneNumber    = "Invalid phone number. Must be 10 digits starting with 6-9."
	MsgInvalidPasscode       = "Invalid passcode format. Must be 6 digits."
	MsgInvalidTaxID          = "Invalid tax ID format. Must be 5 letters + 4 digits + 1 letter (e.g., ABCDE1234F)."
	MsgInvalidName           = "Invalid name format. Must be 2-50 characters, letters and spaces only."
	MsgInvalidBirthDate      = "Invalid date of birth. Must be between 18-100 years old."
)

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  map[string]string{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors[field] = message
}

// Merge copies every error of other into vr. A field present in both keeps
// the message from other.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	for field, message := range other.Errors {
		vr.AddError(field, message)
	}
}

// NormalizeIdentityNumber removes every whitespace character
func NormalizeIdentityNumber(identityNumber string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, identityNumber)
}

// ValidIdentityNumber reports whether the identity number is exactly 12
// digits once whitespace is stripped
func ValidIdentityNumber(identityNumber string) bool {
	return identityNumberRegex.MatchString(NormalizeIdentityNumber(identityNumber))
}

// ValidPhoneNumber reports whether phone is a 10-digit mobile starting with 6-9
func ValidPhoneNumber(phone string) bool {
	return phoneNumberRegex.MatchString(phone)
}

// ValidPasscode reports whether passcode is exactly 6 digits
func ValidPasscode(passcode string) bool {
	return passcodeRegex.MatchString(passcode)
}

// ValidTaxID reports whether the tax ID matches AAAAA9999A, ignoring case
func ValidTaxID(taxID string) bool {
	return taxIDRegex.MatchString(strings.ToUpper(taxID))
}

// ValidName reports whether the trimmed name is 2-50 letters and spaces
func ValidName(name string) bool {
	return nameRegex.MatchString(strings.TrimSpace(name))
}

// ValidEmail reports whether email looks like local@domain.tld
func ValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidPostalCode reports whether the postal code is exactly 6 digits
func ValidPostalCode(postalCode string) bool {
	return postalCodeRegex.MatchString(postalCode)
}

// ParseBirthDate parses a birth date in any accepted layout
func ParseBirthDate(birthDate string) (time.Time, bool) {
	for _, layout := range birthDateLayouts {
		if parsed, err := time.Parse(layout, birthDate); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ValidBirthDate reports whether the applicant is between 18 and 100 years
// old at now. Age is the difference of calendar years only; whether the
// birthday has already passed this year is not considered.
func ValidBirthDate(birthDate string, now time.Time) bool {
	if birthDate == "" {
		return false
	}

	parsed, ok := ParseBirthDate(birthDate)
	if !ok {
		return false
	}

	age := now.Year() - parsed.Year()
	return age >= minApplicantAge && age <= maxApplicantAge && !parsed.After(now)
}

// ValidateIdentityStep validates the identity number and phone number
func ValidateIdentityStep(sub models.IdentitySubmission) *ValidationResult {
	result := NewValidationResult()

	if !ValidIdentityNumber(sub.IdentityNumber) {
		result.AddError("identity_number", MsgInvalidIdentityNumber)
	}
	if !ValidPhoneNumber(sub.PhoneNumber) {
		result.AddError("phone_number", MsgInvalidPhoneNumber)
	}

	return result
}

// ValidateOtpStep validates the identity fields and the passcode format.
// Whether the passcode is correct is decided by the credential store.
func ValidateOtpStep(sub models.OtpSubmission) *ValidationResult {
	result := ValidateIdentityStep(sub.IdentitySubmission)

	if !ValidPasscode(sub.Passcode) {
		result.AddError("passcode", MsgInvalidPasscode)
	}

	return result
}

// ValidateTaxIDStep validates the tax ID, name and birth date
func ValidateTaxIDStep(sub models.TaxIDSubmission, now time.Time) *ValidationResult {
	result := NewValidationResult()

	if !ValidTaxID(sub.TaxID) {
		result.AddError("tax_id", MsgInvalidTaxID)
	}
	if !ValidName(sub.FullName) {
		result.AddError("full_name", MsgInvalidName)
	}
	if !ValidBirthDate(sub.BirthDate, now) {
		result.AddError("birth_date", MsgInvalidBirthDate)
	}

	return result
}

// ValidateCompleteForm runs every step validator and merges their errors
func ValidateCompleteForm(sub models.CompleteRegistration, now time.Time) *ValidationResult {
	result := NewValidationResult()

	result.Merge(ValidateIdentityStep(sub.IdentitySubmission))
	result.Merge(ValidateOtpStep(sub.OtpSubmission))
	result.Merge(ValidateTaxIDStep(sub.TaxIDSubmission, now))

	return result
}

// MaskIdentityNumber replaces every digit except the last four with X
func MaskIdentityNumber(identityNumber string) string {
	normalized := []rune(NormalizeIdentityNumber(identityNumber))
	for i := 0; i < len(normalized)-4; i++ {
		normalized[i] = 'X'
	}
	return string(normalized)
}
