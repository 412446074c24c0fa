package services

import "strings"

// nameMatch compares names ignoring case and surrounding whitespace.
// Partial or fuzzy matches are not accepted.
func nameMatch(providedName, knownName string) bool {
	if knownName == "" {
		return false
	}

	provided := strings.TrimSpace(providedName)
	known := strings.TrimSpace(knownName)

	return strings.EqualFold(provided, known)
}

// birthDateMatch requires the exact string on record. A timestamp for the
// same day does not match a plain date.
func birthDateMatch(providedDate, knownDate string) bool {
	if knownDate == "" {
		return false
	}
	return providedDate == knownDate
}
