package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/models"
	"github.com/udyam-portal/app-udyam/internal/observability"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

// recordingSleeper records requested delays without waiting
type recordingSleeper struct {
	mu    sync.Mutex
	calls []time.Duration
	err   error
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, d)
	return r.err
}

func (r *recordingSleeper) Calls() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.calls...)
}

// countingStore counts lookups made against the wrapped store
type countingStore struct {
	CredentialStore
	mu      sync.Mutex
	lookups int
}

func (c *countingStore) count() {
	c.mu.Lock()
	c.lookups++
	c.mu.Unlock()
}

func (c *countingStore) FindIdentityMatch(identity, phone string) (models.IdentityCredential, bool) {
	c.count()
	return c.CredentialStore.FindIdentityMatch(identity, phone)
}

func (c *countingStore) FindOtpMatch(identity, phone, passcode string) (models.IdentityCredential, bool) {
	c.count()
	return c.CredentialStore.FindOtpMatch(identity, phone, passcode)
}

func (c *countingStore) FindTaxIDMatch(taxID, name, birthDate string) (models.TaxIDCredential, bool) {
	c.count()
	return c.CredentialStore.FindTaxIDMatch(taxID, name, birthDate)
}

func testDelays() Delays {
	return Delays{
		SendChallenge:      time.Second,
		VerifyChallenge:    800 * time.Millisecond,
		VerifyTaxID:        1500 * time.Millisecond,
		SubmitRegistration: 2 * time.Second,
	}
}

func newTestService(t *testing.T, opts VerificationOptions) (*VerificationService, *recordingSleeper, *countingStore) {
	t.Helper()
	sleeper := &recordingSleeper{}
	store := &countingStore{CredentialStore: NewMockCredentialStore()}

	if opts.Clock == nil {
		opts.Clock = func() time.Time { return fixedNow }
	}
	opts.Sleep = sleeper.Sleep

	return NewVerificationService(store, opts, logging.Logger), sleeper, store
}

func validOtp() models.OtpSubmission {
	return models.OtpSubmission{
		IdentitySubmission: models.IdentitySubmission{IdentityNumber: "123456789012", PhoneNumber: "9876543210"},
		Passcode:           "123456",
	}
}

func validTaxID() models.TaxIDSubmission {
	return models.TaxIDSubmission{TaxID: "ABCDE1234F", FullName: "John Doe", BirthDate: "1990-01-01"}
}

func requireVerificationError(t *testing.T, err error, kind error) *models.VerificationError {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var verr *models.VerificationError
	require.True(t, errors.As(err, &verr))
	return verr
}

func TestSendChallenge_Success(t *testing.T) {
	svc, sleeper, _ := newTestService(t, VerificationOptions{Delays: testDelays()})

	result, err := svc.SendChallenge(context.Background(), validOtp().IdentitySubmission)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.DebugPasscode)
	assert.Equal(t, []time.Duration{time.Second}, sleeper.Calls())
}

func TestSendChallenge_ExposesPasscode(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{ExposePasscode: true})

	result, err := svc.SendChallenge(context.Background(), models.IdentitySubmission{
		IdentityNumber: "9876 5432 1098",
		PhoneNumber:    "8765432109",
	})

	require.NoError(t, err)
	assert.Equal(t, "654321", result.DebugPasscode)
}

func TestSendChallenge_InvalidFormatSkipsLookup(t *testing.T) {
	svc, sleeper, store := newTestService(t, VerificationOptions{Delays: testDelays()})

	_, err := svc.SendChallenge(context.Background(), models.IdentitySubmission{
		IdentityNumber: "12345",
		PhoneNumber:    "9876543210",
	})

	verr := requireVerificationError(t, err, models.ErrInvalidFormat)
	assert.Contains(t, verr.Fields, "identity_number")
	assert.NotContains(t, verr.Fields, "phone_number")
	assert.Zero(t, store.lookups)
	assert.Empty(t, sleeper.Calls())
}

func TestSendChallenge_AllFieldsInvalid(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})

	_, err := svc.SendChallenge(context.Background(), models.IdentitySubmission{})

	verr := requireVerificationError(t, err, models.ErrInvalidFormat)
	assert.Len(t, verr.Fields, 2)
}

func TestSendChallenge_NoMatch(t *testing.T) {
	svc, sleeper, _ := newTestService(t, VerificationOptions{Delays: testDelays()})

	_, err := svc.SendChallenge(context.Background(), models.IdentitySubmission{
		IdentityNumber: "123456789012",
		PhoneNumber:    "8765432109",
	})

	verr := requireVerificationError(t, err, models.ErrNoMatch)
	assert.Equal(t, map[string]string{"identity_number": MsgIdentityNoMatch}, verr.Fields)
	assert.Empty(t, sleeper.Calls())
}

func TestVerifyChallenge_Success(t *testing.T) {
	svc, sleeper, _ := newTestService(t, VerificationOptions{Delays: testDelays()})

	result, err := svc.VerifyChallenge(context.Background(), validOtp())

	require.NoError(t, err)
	assert.Equal(t, &models.ChallengeVerification{IdentityVerified: true, PhoneVerified: true}, result)
	assert.Equal(t, []time.Duration{800 * time.Millisecond}, sleeper.Calls())
}

func TestVerifyChallenge_WrongPasscode(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})

	sub := validOtp()
	sub.Passcode = "000000"
	_, err := svc.VerifyChallenge(context.Background(), sub)

	verr := requireVerificationError(t, err, models.ErrNoMatch)
	assert.Equal(t, map[string]string{"passcode": MsgPasscodeNoMatch}, verr.Fields)
}

func TestVerifyChallenge_WrongPhoneUsesSameMessage(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})

	sub := validOtp()
	sub.PhoneNumber = "8765432109"
	_, err := svc.VerifyChallenge(context.Background(), sub)

	verr := requireVerificationError(t, err, models.ErrNoMatch)
	assert.Equal(t, map[string]string{"passcode": MsgPasscodeNoMatch}, verr.Fields)
}

func TestVerifyChallenge_InvalidPasscodeFormat(t *testing.T) {
	svc, _, store := newTestService(t, VerificationOptions{})

	sub := validOtp()
	sub.Passcode = "12ab"
	_, err := svc.VerifyChallenge(context.Background(), sub)

	verr := requireVerificationError(t, err, models.ErrInvalidFormat)
	assert.Contains(t, verr.Fields, "passcode")
	assert.Zero(t, store.lookups)
}

func TestVerifyTaxID_Success(t *testing.T) {
	svc, sleeper, _ := newTestService(t, VerificationOptions{Delays: testDelays()})

	result, err := svc.VerifyTaxID(context.Background(), validTaxID())

	require.NoError(t, err)
	assert.Equal(t, &models.TaxIDVerification{TaxIDVerified: true, NameVerified: true, BirthDateVerified: true}, result)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, sleeper.Calls())
}

func TestVerifyTaxID_LowercaseInput(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})

	_, err := svc.VerifyTaxID(context.Background(), models.TaxIDSubmission{
		TaxID:     "fghij5678k",
		FullName:  "jane smith",
		BirthDate: "1985-05-15",
	})

	assert.NoError(t, err)
}

func TestVerifyTaxID_NameMismatch(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})

	sub := validTaxID()
	sub.FullName = "Jane Doe"
	_, err := svc.VerifyTaxID(context.Background(), sub)

	verr := requireVerificationError(t, err, models.ErrNoMatch)
	assert.Equal(t, map[string]string{"tax_id": MsgTaxIDNoMatch}, verr.Fields)
}

func TestVerifyTaxID_InvalidFormat(t *testing.T) {
	svc, _, store := newTestService(t, VerificationOptions{})

	_, err := svc.VerifyTaxID(context.Background(), models.TaxIDSubmission{
		TaxID:     "ABCD1234F",
		FullName:  "J",
		BirthDate: "2015-01-01",
	})

	verr := requireVerificationError(t, err, models.ErrInvalidFormat)
	assert.Len(t, verr.Fields, 3)
	assert.Zero(t, store.lookups)
}

func TestVerifyTaxID_AgeUsesInjectedClock(t *testing.T) {
	// 2008 is 18 calendar years before 2026
	svc, _, _ := newTestService(t, VerificationOptions{})

	_, err := svc.VerifyTaxID(context.Background(), models.TaxIDSubmission{
		TaxID:     "ABCDE1234F",
		FullName:  "John Doe",
		BirthDate: "2008-12-31",
	})

	// format passes, the record does not
	requireVerificationError(t, err, models.ErrNoMatch)
}

func TestSubmitRegistration_Success(t *testing.T) {
	svc, sleeper, store := newTestService(t, VerificationOptions{Delays: testDelays()})

	sub := models.NewCompleteRegistration(validOtp(), validTaxID())
	sub.IdentityNumber = "1234 5678 9012"
	record, err := svc.SubmitRegistration(context.Background(), sub)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(record.RegistrationNumber, RegistrationNumberPrefix))
	assert.Equal(t, models.RegistrationStatusApproved, record.Status)
	assert.Equal(t, fixedNow, record.RegisteredDate)
	assert.Equal(t, "XXXXXXXX9012", record.MaskedIdentityNumber)
	assert.Equal(t, "9876543210", record.PhoneNumber)
	assert.Equal(t, "+919876543210", record.PhoneE164)
	assert.Equal(t, "ABCDE1234F", record.TaxID)
	assert.Equal(t, "John Doe", record.FullName)
	assert.Equal(t, "1990-01-01", record.BirthDate)
	assert.Zero(t, store.lookups)
	assert.Equal(t, []time.Duration{2 * time.Second}, sleeper.Calls())
}

func TestSubmitRegistration_AggregatesErrors(t *testing.T) {
	svc, sleeper, _ := newTestService(t, VerificationOptions{Delays: testDelays()})

	_, err := svc.SubmitRegistration(context.Background(), models.CompleteRegistration{})

	verr := requireVerificationError(t, err, models.ErrInvalidFormat)
	for _, field := range []string{"identity_number", "phone_number", "passcode", "tax_id", "full_name", "birth_date"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Empty(t, sleeper.Calls())
}

func TestSubmitRegistration_UniqueNumbers(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})
	sub := models.NewCompleteRegistration(validOtp(), validTaxID())

	first, err := svc.SubmitRegistration(context.Background(), sub)
	require.NoError(t, err)
	second, err := svc.SubmitRegistration(context.Background(), sub)
	require.NoError(t, err)

	assert.NotEqual(t, first.RegistrationNumber, second.RegistrationNumber)
}

func TestSubmitRegistration_CountsIssued(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})
	before := testutil.ToFloat64(observability.RegistrationsIssued)

	_, err := svc.SubmitRegistration(context.Background(), models.NewCompleteRegistration(validOtp(), validTaxID()))
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(observability.RegistrationsIssued))
}

func TestVerificationService_RecordsOutcomes(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})
	noMatch := observability.VerificationOperations.WithLabelValues(OperationVerifyTaxID, observability.OutcomeNoMatch)
	before := testutil.ToFloat64(noMatch)

	sub := validTaxID()
	sub.BirthDate = "1991-01-01"
	_, err := svc.VerifyTaxID(context.Background(), sub)
	require.Error(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(noMatch))
}

func TestVerificationService_DelayCancelled(t *testing.T) {
	svc := NewVerificationService(NewMockCredentialStore(), VerificationOptions{
		Delays: Delays{SendChallenge: time.Minute},
	}, logging.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SendChallenge(ctx, validOtp().IdentitySubmission)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	var verr *models.VerificationError
	assert.False(t, errors.As(err, &verr))
}

func TestVerificationService_SleepFailureIsInternal(t *testing.T) {
	svc, sleeper, _ := newTestService(t, VerificationOptions{Delays: testDelays()})
	sleeper.err = errors.New("clock stopped")

	_, err := svc.VerifyChallenge(context.Background(), validOtp())

	require.Error(t, err)
	assert.Contains(t, err.Error(), OperationVerifyChallenge)
	assert.False(t, errors.Is(err, models.ErrNoMatch))
}

func TestVerificationService_ZeroDelaySkipsSleep(t *testing.T) {
	svc, sleeper, _ := newTestService(t, VerificationOptions{})

	_, err := svc.SendChallenge(context.Background(), validOtp().IdentitySubmission)
	require.NoError(t, err)
	_, err = svc.VerifyTaxID(context.Background(), validTaxID())
	require.NoError(t, err)

	assert.Empty(t, sleeper.Calls())
}

func TestVerificationService_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{ExposePasscode: true})
	ctx := context.Background()

	sent1, err := svc.SendChallenge(ctx, validOtp().IdentitySubmission)
	require.NoError(t, err)
	sent2, err := svc.SendChallenge(ctx, validOtp().IdentitySubmission)
	require.NoError(t, err)
	assert.Equal(t, sent1, sent2)

	otp1, err := svc.VerifyChallenge(ctx, validOtp())
	require.NoError(t, err)
	otp2, err := svc.VerifyChallenge(ctx, validOtp())
	require.NoError(t, err)
	assert.Equal(t, otp1, otp2)

	tax1, err := svc.VerifyTaxID(ctx, validTaxID())
	require.NoError(t, err)
	tax2, err := svc.VerifyTaxID(ctx, validTaxID())
	require.NoError(t, err)
	assert.Equal(t, tax1, tax2)
}

func TestVerificationService_Concurrent(t *testing.T) {
	svc, _, _ := newTestService(t, VerificationOptions{})
	sub := models.NewCompleteRegistration(validOtp(), validTaxID())

	const requests = 50
	numbers := make([]string, requests)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < requests; i++ {
		i := i
		g.Go(func() error {
			if _, err := svc.VerifyChallenge(ctx, validOtp()); err != nil {
				return err
			}
			record, err := svc.SubmitRegistration(ctx, sub)
			if err != nil {
				return err
			}
			numbers[i] = record.RegistrationNumber
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]bool, requests)
	for _, n := range numbers {
		assert.False(t, seen[n], "duplicate registration number %s", n)
		seen[n] = true
	}
}

func TestVerificationService_LogsMaskedIdentity(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sleeper := &recordingSleeper{}
	svc := NewVerificationService(NewMockCredentialStore(), VerificationOptions{
		Clock: func() time.Time { return fixedNow },
		Sleep: sleeper.Sleep,
	}, logging.New(zap.New(core)))

	_, err := svc.SendChallenge(context.Background(), validOtp().IdentitySubmission)
	require.NoError(t, err)

	entries := logs.FilterMessage("passcode challenge sent").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "XXXXXXXX9012", entries[0].ContextMap()["identity_number"])
	assert.Equal(t, "98******10", entries[0].ContextMap()["phone_number"])
}

func TestVerificationService_Credentials(t *testing.T) {
	hidden, _, _ := newTestService(t, VerificationOptions{})
	for _, c := range hidden.Credentials().Identity {
		assert.Empty(t, c.Passcode)
	}

	shown, _, _ := newTestService(t, VerificationOptions{ExposePasscode: true})
	assert.Equal(t, "123456", shown.Credentials().Identity[0].Passcode)
}
