// Package wizard models the two-step registration flow as a pure state
// machine. Apply never mutates its input; it returns the next state.
package wizard

import (
	"errors"
	"fmt"

	"github.com/udyam-portal/app-udyam/internal/models"
	"github.com/udyam-portal/app-udyam/internal/utils"
)

// ErrInvalidTransition is returned when an event is not allowed in the
// current state
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Step is a stage of the wizard
type Step int

const (
	StepIdentity Step = iota + 1
	StepTaxID
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepTaxID:
		return "tax_id"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Number is the 1-based position of the step shown to the user. Submitted
// reports the last step.
func (s Step) Number() int {
	if s == StepSubmitted {
		return TotalSteps
	}
	return int(s)
}

// TotalSteps is the number of input steps
const TotalSteps = 2

// State is everything the wizard has collected so far
type State struct {
	Step Step

	// ChallengeSent is set once a passcode was sent for the current
	// identity/phone pair. Only meaningful on StepIdentity.
	ChallengeSent bool
	// TaxIDVerified is set once the tax details were verified
	TaxIDVerified bool

	Identity models.IdentitySubmission
	Passcode string
	TaxID    models.TaxIDSubmission
	Record   *models.RegistrationRecord
}

// New returns the initial state
func New() State {
	return State{Step: StepIdentity}
}

// Registration assembles the final submission from the collected fields
func (s State) Registration() models.CompleteRegistration {
	return models.NewCompleteRegistration(s.Otp(), s.TaxID)
}

// Otp returns the identity fields with the passcode
func (s State) Otp() models.OtpSubmission {
	return models.OtpSubmission{IdentitySubmission: s.Identity, Passcode: s.Passcode}
}

// Done reports whether the wizard reached its terminal state
func (s State) Done() bool {
	return s.Step == StepSubmitted
}

// Event is something that happened in the flow
type Event interface {
	name() string
}

// ChallengeSent records a successful send-challenge call
type ChallengeSent struct {
	Identity models.IdentitySubmission
}

// ChangeNumber returns from passcode entry to identity and phone entry
type ChangeNumber struct{}

// ChallengeVerified records a successful verify-challenge call
type ChallengeVerified struct {
	Passcode string
}

// Back returns from the tax ID step to the identity step
type Back struct{}

// TaxIDVerified records a successful verify-tax-id call
type TaxIDVerified struct {
	Details models.TaxIDSubmission
}

// Submitted records the registration issued by submit-registration
type Submitted struct {
	Record models.RegistrationRecord
}

func (ChallengeSent) name() string     { return "challenge_sent" }
func (ChangeNumber) name() string      { return "change_number" }
func (ChallengeVerified) name() string { return "challenge_verified" }
func (Back) name() string              { return "back" }
func (TaxIDVerified) name() string     { return "tax_id_verified" }
func (Submitted) name() string         { return "submitted" }

// Apply returns the state that follows s after e. Fields already collected
// are kept on every transition.
func Apply(s State, e Event) (State, error) {
	next := s

	switch ev := e.(type) {
	case ChallengeSent:
		if s.Step != StepIdentity {
			return s, invalid(s, e)
		}
		next.Identity = models.IdentitySubmission{
			IdentityNumber: utils.NormalizeIdentityNumber(ev.Identity.IdentityNumber),
			PhoneNumber:    ev.Identity.PhoneNumber,
		}
		next.ChallengeSent = true

	case ChangeNumber:
		if s.Step != StepIdentity || !s.ChallengeSent {
			return s, invalid(s, e)
		}
		next.ChallengeSent = false

	case ChallengeVerified:
		if s.Step != StepIdentity || !s.ChallengeSent {
			return s, invalid(s, e)
		}
		next.Passcode = ev.Passcode
		next.ChallengeSent = false
		next.Step = StepTaxID

	case Back:
		if s.Step != StepTaxID {
			return s, invalid(s, e)
		}
		next.Step = StepIdentity
		next.ChallengeSent = false
		next.TaxIDVerified = false

	case TaxIDVerified:
		if s.Step != StepTaxID {
			return s, invalid(s, e)
		}
		next.TaxID = ev.Details
		next.TaxIDVerified = true

	case Submitted:
		if s.Step != StepTaxID || !s.TaxIDVerified {
			return s, invalid(s, e)
		}
		record := ev.Record
		next.Record = &record
		next.Step = StepSubmitted

	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, e)
	}

	return next, nil
}

func invalid(s State, e Event) error {
	return fmt.Errorf("%w: %s in step %s (challenge sent: %t)", ErrInvalidTransition, e.name(), s.Step, s.ChallengeSent)
}
