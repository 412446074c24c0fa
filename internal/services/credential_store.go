package services

import (
	"strings"

	"github.com/udyam-portal/app-udyam/internal/models"
	"github.com/udyam-portal/app-udyam/internal/utils"
)

// CredentialStore answers whether submitted details match a known record
type CredentialStore interface {
	FindIdentityMatch(identityNumber, phoneNumber string) (models.IdentityCredential, bool)
	FindOtpMatch(identityNumber, phoneNumber, passcode string) (models.IdentityCredential, bool)
	FindTaxIDMatch(taxID, fullName, birthDate string) (models.TaxIDCredential, bool)
	Snapshot() models.CredentialSnapshot
}

var defaultIdentityCredentials = []models.IdentityCredential{
	{IdentityNumber: "123456789012", PhoneNumber: "9876543210", Passcode: "123456"},
	{IdentityNumber: "987654321098", PhoneNumber: "8765432109", Passcode: "654321"},
}

var defaultTaxIDCredentials = []models.TaxIDCredential{
	{TaxID: "ABCDE1234F", FullName: "John Doe", BirthDate: "1990-01-01"},
	{TaxID: "FGHIJ5678K", FullName: "Jane Smith", BirthDate: "1985-05-15"},
}

// MockCredentialStore is an immutable in-memory credential list. It is safe
// for concurrent use since nothing mutates it after construction.
type MockCredentialStore struct {
	identities []models.IdentityCredential
	taxIDs     []models.TaxIDCredential
}

// NewMockCredentialStore returns a store holding the built-in fixtures
func NewMockCredentialStore() *MockCredentialStore {
	return NewMockCredentialStoreWith(defaultIdentityCredentials, defaultTaxIDCredentials)
}

// NewMockCredentialStoreWith returns a store over copies of the given records
func NewMockCredentialStoreWith(identities []models.IdentityCredential, taxIDs []models.TaxIDCredential) *MockCredentialStore {
	return &MockCredentialStore{
		identities: append([]models.IdentityCredential(nil), identities...),
		taxIDs:     append([]models.TaxIDCredential(nil), taxIDs...),
	}
}

// FindIdentityMatch finds the record whose identity number and phone number
// both equal the submitted ones. Whitespace in the identity number is ignored.
func (s *MockCredentialStore) FindIdentityMatch(identityNumber, phoneNumber string) (models.IdentityCredential, bool) {
	identityNumber = utils.NormalizeIdentityNumber(identityNumber)
	for _, c := range s.identities {
		if c.IdentityNumber == identityNumber && c.PhoneNumber == phoneNumber {
			return c, true
		}
	}
	return models.IdentityCredential{}, false
}

// FindOtpMatch is FindIdentityMatch with the passcode also required to match
func (s *MockCredentialStore) FindOtpMatch(identityNumber, phoneNumber, passcode string) (models.IdentityCredential, bool) {
	c, ok := s.FindIdentityMatch(identityNumber, phoneNumber)
	if !ok || c.Passcode != passcode {
		return models.IdentityCredential{}, false
	}
	return c, true
}

// FindTaxIDMatch finds the record matching all three tax details
func (s *MockCredentialStore) FindTaxIDMatch(taxID, fullName, birthDate string) (models.TaxIDCredential, bool) {
	for _, c := range s.taxIDs {
		if taxIDMatch(taxID, c.TaxID) && nameMatch(fullName, c.FullName) && birthDateMatch(birthDate, c.BirthDate) {
			return c, true
		}
	}
	return models.TaxIDCredential{}, false
}

// Snapshot returns copies of both fixture lists
func (s *MockCredentialStore) Snapshot() models.CredentialSnapshot {
	return models.CredentialSnapshot{
		Identity: append([]models.IdentityCredential(nil), s.identities...),
		TaxID:    append([]models.TaxIDCredential(nil), s.taxIDs...),
	}
}

// WithoutPasscodes strips the passcodes from a snapshot
func WithoutPasscodes(snapshot models.CredentialSnapshot) models.CredentialSnapshot {
	identities := make([]models.IdentityCredential, len(snapshot.Identity))
	for i, c := range snapshot.Identity {
		c.Passcode = ""
		identities[i] = c
	}
	snapshot.Identity = identities
	return snapshot
}

func taxIDMatch(provided, known string) bool {
	return strings.EqualFold(strings.TrimSpace(provided), known)
}
