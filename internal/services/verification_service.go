package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/models"
	"github.com/udyam-portal/app-udyam/internal/observability"
	"github.com/udyam-portal/app-udyam/internal/utils"
	"go.uber.org/zap"
)

// Generic no-match messages. They never say which field was wrong.
const (
	MsgIdentityNoMatch = "Identity number not found or phone number doesn't match"
	MsgPasscodeNoMatch = "Invalid passcode or credentials don't match"
	MsgTaxIDNoMatch    = "Tax ID details don't match our records"
)

// VerificationOptions configures a VerificationService. Zero values are
// usable: no delays, no debug passcode, the wall clock and a time-seeded
// registration sequence.
type VerificationOptions struct {
	// ExposePasscode puts the fixture passcode in the send-challenge result.
	// Must stay off in production.
	ExposePasscode bool
	Delays         Delays
	Clock          func() time.Time
	Sleep          SleepFunc
	Numbers        RegistrationNumberGenerator
}

// VerificationService runs the four registration steps against a
// credential store
type VerificationService struct {
	store          CredentialStore
	exposePasscode bool
	delays         Delays
	clock          func() time.Time
	sleep          SleepFunc
	numbers        RegistrationNumberGenerator
	logger         *logging.SafeLogger
}

// NewVerificationService creates a new verification service
func NewVerificationService(store CredentialStore, opts VerificationOptions, logger *logging.SafeLogger) *VerificationService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = ContextSleep
	}
	if opts.Numbers == nil {
		opts.Numbers = NewSequenceGenerator(opts.Clock)
	}
	if logger == nil {
		logger = logging.Logger
	}

	return &VerificationService{
		store:          store,
		exposePasscode: opts.ExposePasscode,
		delays:         opts.Delays,
		clock:          opts.Clock,
		sleep:          opts.Sleep,
		numbers:        opts.Numbers,
		logger:         logger,
	}
}

// Credentials returns a copy of the known records. Passcodes are dropped
// unless debug passcodes are exposed.
func (s *VerificationService) Credentials() models.CredentialSnapshot {
	snapshot := s.store.Snapshot()
	if !s.exposePasscode {
		return WithoutPasscodes(snapshot)
	}
	return snapshot
}

// SendChallenge checks the identity number and phone pair and, on a match,
// pretends to text the passcode to the phone
func (s *VerificationService) SendChallenge(ctx context.Context, sub models.IdentitySubmission) (*models.ChallengeSent, error) {
	var result *models.ChallengeSent

	err := s.observe(ctx, OperationSendChallenge, func(ctx context.Context) error {
		if err := s.checkFormat(ctx, "identity_step", func() *utils.ValidationResult {
			return utils.ValidateIdentityStep(sub)
		}); err != nil {
			return err
		}

		_, span := utils.TraceCredentialLookup(ctx, "identity")
		cred, ok := s.store.FindIdentityMatch(sub.IdentityNumber, sub.PhoneNumber)
		utils.AddSpanAttribute(span, "lookup.matched", ok)
		span.End()
		if !ok {
			s.logger.Info("identity lookup found no match",
				zap.String("identity_number", observability.MaskIdentityNumber(sub.IdentityNumber)),
				zap.String("phone_number", observability.MaskPhoneNumber(sub.PhoneNumber)))
			return models.NewNoMatchError("identity_number", MsgIdentityNoMatch)
		}

		if err := s.wait(ctx, OperationSendChallenge); err != nil {
			return err
		}

		result = &models.ChallengeSent{}
		if s.exposePasscode {
			result.DebugPasscode = cred.Passcode
		}

		s.logger.Info("passcode challenge sent",
			zap.String("identity_number", observability.MaskIdentityNumber(sub.IdentityNumber)),
			zap.String("phone_number", observability.MaskPhoneNumber(sub.PhoneNumber)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// VerifyChallenge checks the passcode entered for an identity/phone pair
func (s *VerificationService) VerifyChallenge(ctx context.Context, sub models.OtpSubmission) (*models.ChallengeVerification, error) {
	var result *models.ChallengeVerification

	err := s.observe(ctx, OperationVerifyChallenge, func(ctx context.Context) error {
		if err := s.checkFormat(ctx, "otp_step", func() *utils.ValidationResult {
			return utils.ValidateOtpStep(sub)
		}); err != nil {
			return err
		}

		_, span := utils.TraceCredentialLookup(ctx, "otp")
		_, ok := s.store.FindOtpMatch(sub.IdentityNumber, sub.PhoneNumber, sub.Passcode)
		utils.AddSpanAttribute(span, "lookup.matched", ok)
		span.End()
		if !ok {
			s.logger.Info("passcode verification failed",
				zap.String("identity_number", observability.MaskIdentityNumber(sub.IdentityNumber)))
			return models.NewNoMatchError("passcode", MsgPasscodeNoMatch)
		}

		if err := s.wait(ctx, OperationVerifyChallenge); err != nil {
			return err
		}

		result = &models.ChallengeVerification{IdentityVerified: true, PhoneVerified: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// VerifyTaxID checks the tax ID, name and birth date against the records
func (s *VerificationService) VerifyTaxID(ctx context.Context, sub models.TaxIDSubmission) (*models.TaxIDVerification, error) {
	var result *models.TaxIDVerification

	err := s.observe(ctx, OperationVerifyTaxID, func(ctx context.Context) error {
		now := s.clock()
		if err := s.checkFormat(ctx, "tax_id_step", func() *utils.ValidationResult {
			return utils.ValidateTaxIDStep(sub, now)
		}); err != nil {
			return err
		}

		_, span := utils.TraceCredentialLookup(ctx, "tax_id")
		_, ok := s.store.FindTaxIDMatch(sub.TaxID, sub.FullName, sub.BirthDate)
		utils.AddSpanAttribute(span, "lookup.matched", ok)
		span.End()
		if !ok {
			s.logger.Info("tax ID verification failed")
			return models.NewNoMatchError("tax_id", MsgTaxIDNoMatch)
		}

		if err := s.wait(ctx, OperationVerifyTaxID); err != nil {
			return err
		}

		result = &models.TaxIDVerification{TaxIDVerified: true, NameVerified: true, BirthDateVerified: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SubmitRegistration validates the whole form and issues a registration
// record. No credential lookup happens here; each step was verified on its
// own earlier in the flow.
func (s *VerificationService) SubmitRegistration(ctx context.Context, sub models.CompleteRegistration) (*models.RegistrationRecord, error) {
	var result *models.RegistrationRecord

	err := s.observe(ctx, OperationSubmitRegistration, func(ctx context.Context) error {
		now := s.clock()
		if err := s.checkFormat(ctx, "complete_form", func() *utils.ValidationResult {
			return utils.ValidateCompleteForm(sub, now)
		}); err != nil {
			return err
		}

		if err := s.wait(ctx, OperationSubmitRegistration); err != nil {
			return err
		}

		result = &models.RegistrationRecord{
			RegistrationNumber:   s.numbers.Next(),
			Status:               models.RegistrationStatusApproved,
			RegisteredDate:       s.clock().UTC(),
			MaskedIdentityNumber: utils.MaskIdentityNumber(sub.IdentityNumber),
			PhoneNumber:          sub.PhoneNumber,
			PhoneE164:            utils.FormatPhoneE164(sub.PhoneNumber),
			TaxID:                sub.TaxID,
			FullName:             sub.FullName,
			BirthDate:            sub.BirthDate,
		}
		observability.RegistrationsIssued.Inc()

		s.logger.Info("registration issued",
			zap.String("registration_number", result.RegistrationNumber),
			zap.String("identity_number", result.MaskedIdentityNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// observe wraps one operation in a span and records its outcome and duration
func (s *VerificationService) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span, end := utils.TraceOperation(ctx, "verification."+operation, map[string]interface{}{
		"operation": operation,
	})
	defer end()

	start := time.Now()
	err := fn(ctx)
	observability.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	outcome := outcomeOf(err)
	observability.VerificationOperations.WithLabelValues(operation, outcome).Inc()
	utils.AddSpanAttribute(span, "outcome", outcome)

	if outcome == observability.OutcomeError {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"operation": operation})
		s.logger.Error("verification operation failed", zap.String("operation", operation), zap.Error(err))
		return fmt.Errorf("%s: %w", operation, err)
	}
	return err
}

func (s *VerificationService) checkFormat(ctx context.Context, validationType string, validate func() *utils.ValidationResult) error {
	_, span := utils.TraceInputValidation(ctx, validationType)
	defer span.End()

	result := validate()
	utils.AddSpanAttribute(span, "validation.valid", result.IsValid)
	if !result.IsValid {
		utils.AddSpanAttribute(span, "validation.error_count", len(result.Errors))
		return models.NewFormatError(result.Errors)
	}
	return nil
}

func (s *VerificationService) wait(ctx context.Context, operation string) error {
	delay := s.delays.For(operation)
	if delay <= 0 {
		return nil
	}

	ctx, span := utils.TraceSimulatedDelay(ctx, operation, delay)
	defer span.End()

	return s.sleep(ctx, delay)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, models.ErrInvalidFormat):
		return observability.OutcomeInvalidFormat
	case errors.Is(err, models.ErrNoMatch):
		return observability.OutcomeNoMatch
	default:
		return observability.OutcomeError
	}
}
