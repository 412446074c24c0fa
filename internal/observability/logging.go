package observability

import (
	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/utils"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskIdentityNumber masks an identity number for logging, keeping the last 4 digits
func MaskIdentityNumber(identityNumber string) string {
	masked := utils.MaskIdentityNumber(identityNumber)
	if masked == "" {
		return "************"
	}
	return masked
}

// MaskPhoneNumber keeps the first 2 and last 2 digits of a phone number
func MaskPhoneNumber(phone string) string {
	if len(phone) < 6 {
		return "**********"
	}
	return phone[:2] + "******" + phone[len(phone)-2:]
}

// MaskSensitiveData masks sensitive data in a map
func MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	sensitiveFields := []string{"identity_number", "phone_number", "passcode", "tax_id", "birth_date"}
	masked := make(map[string]interface{})

	for k, v := range data {
		if contains(sensitiveFields, k) {
			masked[k] = "********"
		} else {
			masked[k] = v
		}
	}

	return masked
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
