package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region assumed for numbers typed without a
// country code.
const DefaultPhoneRegion = "IN"

// PhoneComponents represents the parsed components of a phone number
type PhoneComponents struct {
	CountryCode    string `json:"country_code"`
	NationalNumber string `json:"national_number"`
	E164           string `json:"e164"`
	International  string `json:"international"`
}

// ParsePhoneNumber parses a phone number string and returns its components.
// Numbers without a leading + are read in DefaultPhoneRegion.
func ParsePhoneNumber(phoneString string) (*PhoneComponents, error) {
	cleanPhone := strings.TrimSpace(phoneString)
	if cleanPhone == "" {
		return nil, fmt.Errorf("empty phone number")
	}

	num, err := phonenumbers.Parse(cleanPhone, DefaultPhoneRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	return &PhoneComponents{
		CountryCode:    fmt.Sprintf("%d", num.GetCountryCode()),
		NationalNumber: phonenumbers.GetNationalSignificantNumber(num),
		E164:           phonenumbers.Format(num, phonenumbers.E164),
		International:  phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
	}, nil
}

// FormatPhoneE164 returns the E.164 rendering of phone, or "" when it
// cannot be parsed
func FormatPhoneE164(phone string) string {
	components, err := ParsePhoneNumber(phone)
	if err != nil {
		return ""
	}
	return components.E164
}
