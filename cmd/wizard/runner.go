package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/udyam-portal/app-udyam/internal/client"
	"github.com/udyam-portal/app-udyam/internal/handlers"
	"github.com/udyam-portal/app-udyam/internal/models"
	"github.com/udyam-portal/app-udyam/internal/utils"
	"github.com/udyam-portal/app-udyam/internal/wizard"
)

// registrationAPI is the subset of client.Client the runner needs
type registrationAPI interface {
	SendChallenge(ctx context.Context, sub models.IdentitySubmission) (*handlers.SendChallengeResponse, error)
	VerifyChallenge(ctx context.Context, sub models.OtpSubmission) (*handlers.VerifyChallengeResponse, error)
	VerifyTaxID(ctx context.Context, sub models.TaxIDSubmission) (*handlers.VerifyTaxIDResponse, error)
	SubmitRegistration(ctx context.Context, sub models.CompleteRegistration) (*handlers.SubmitRegistrationResponse, error)
}

// Commands accepted in place of a value
const (
	cmdChangeNumber = ":change"
	cmdBack         = ":back"
)

var errInputClosed = errors.New("input closed before the registration was completed")

type runner struct {
	api registrationAPI
	in  *bufio.Scanner
	out io.Writer
}

func newRunner(api registrationAPI, in io.Reader, out io.Writer) *runner {
	return &runner{api: api, in: bufio.NewScanner(in), out: out}
}

// run walks the user through the wizard until a registration is issued
func (r *runner) run(ctx context.Context) (wizard.State, error) {
	state := wizard.New()

	for !state.Done() {
		var (
			next wizard.State
			err  error
		)

		switch {
		case state.Step == wizard.StepIdentity && !state.ChallengeSent:
			next, err = r.identityStep(ctx, state)
		case state.Step == wizard.StepIdentity:
			next, err = r.passcodeStep(ctx, state)
		case state.Step == wizard.StepTaxID && !state.TaxIDVerified:
			next, err = r.taxIDStep(ctx, state)
		default:
			next, err = r.submitStep(ctx, state)
		}

		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				r.printErrors(apiErr.Errors)
				continue
			}
			return state, err
		}
		state = next
	}

	r.printSummary(*state.Record)
	return state, nil
}

func (r *runner) identityStep(ctx context.Context, state wizard.State) (wizard.State, error) {
	r.header(state, "Identity verification")

	identityNumber, err := r.prompt("Identity number (12 digits)", state.Identity.IdentityNumber)
	if err != nil {
		return state, err
	}
	phoneNumber, err := r.prompt("Phone number (10 digits)", state.Identity.PhoneNumber)
	if err != nil {
		return state, err
	}

	sub := models.IdentitySubmission{
		IdentityNumber: utils.NormalizeIdentityNumber(identityNumber),
		PhoneNumber:    phoneNumber,
	}
	resp, err := r.api.SendChallenge(ctx, sub)
	if err != nil {
		return state, err
	}

	fmt.Fprintf(r.out, "%s\n", resp.Message)
	if resp.DebugPasscode != "" {
		fmt.Fprintf(r.out, "(debug) passcode: %s\n", resp.DebugPasscode)
	}
	return wizard.Apply(state, wizard.ChallengeSent{Identity: sub})
}

func (r *runner) passcodeStep(ctx context.Context, state wizard.State) (wizard.State, error) {
	passcode, err := r.prompt(fmt.Sprintf("Passcode sent to %s (%s to change number)",
		maskPhone(state.Identity.PhoneNumber), cmdChangeNumber), "")
	if err != nil {
		return state, err
	}
	if passcode == cmdChangeNumber {
		return wizard.Apply(state, wizard.ChangeNumber{})
	}

	otp := state.Otp()
	otp.Passcode = passcode
	resp, err := r.api.VerifyChallenge(ctx, otp)
	if err != nil {
		return state, err
	}

	fmt.Fprintf(r.out, "%s\n", resp.Message)
	return wizard.Apply(state, wizard.ChallengeVerified{Passcode: passcode})
}

func (r *runner) taxIDStep(ctx context.Context, state wizard.State) (wizard.State, error) {
	r.header(state, "Tax ID verification")

	taxID, err := r.prompt(fmt.Sprintf("Tax ID (%s to go back)", cmdBack), state.TaxID.TaxID)
	if err != nil {
		return state, err
	}
	if taxID == cmdBack {
		return wizard.Apply(state, wizard.Back{})
	}
	fullName, err := r.prompt("Full name as on tax ID", state.TaxID.FullName)
	if err != nil {
		return state, err
	}
	birthDate, err := r.prompt("Birth date (YYYY-MM-DD)", state.TaxID.BirthDate)
	if err != nil {
		return state, err
	}

	sub := models.TaxIDSubmission{TaxID: strings.ToUpper(taxID), FullName: fullName, BirthDate: birthDate}
	resp, err := r.api.VerifyTaxID(ctx, sub)
	if err != nil {
		return state, err
	}

	fmt.Fprintf(r.out, "%s\n", resp.Message)
	return wizard.Apply(state, wizard.TaxIDVerified{Details: sub})
}

func (r *runner) submitStep(ctx context.Context, state wizard.State) (wizard.State, error) {
	fmt.Fprintln(r.out, "Submitting registration...")

	resp, err := r.api.SubmitRegistration(ctx, state.Registration())
	if err != nil {
		return state, err
	}
	return wizard.Apply(state, wizard.Submitted{Record: resp.Data})
}

// prompt reads one line. A blank answer keeps current.
func (r *runner) prompt(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(r.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(r.out, "%s: ", label)
	}

	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}

	answer := strings.TrimSpace(r.in.Text())
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

func (r *runner) header(state wizard.State, title string) {
	fmt.Fprintf(r.out, "\nStep %d of %d: %s\n", state.Step.Number(), wizard.TotalSteps, title)
}

func (r *runner) printErrors(errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Fprintf(r.out, "  ! %s: %s\n", field, errs[field])
	}
}

func (r *runner) printSummary(record models.RegistrationRecord) {
	phone := record.PhoneNumber
	if components, err := utils.ParsePhoneNumber(record.PhoneNumber); err == nil {
		phone = components.International
	}

	fmt.Fprintln(r.out, "\nRegistration completed")
	fmt.Fprintf(r.out, "  Registration number: %s\n", record.RegistrationNumber)
	fmt.Fprintf(r.out, "  Status:              %s\n", record.Status)
	fmt.Fprintf(r.out, "  Registered:          %s\n", record.RegisteredDate.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(r.out, "  Identity number:     %s\n", record.MaskedIdentityNumber)
	fmt.Fprintf(r.out, "  Phone:               %s\n", phone)
	fmt.Fprintf(r.out, "  Tax ID:              %s\n", record.TaxID)
	fmt.Fprintf(r.out, "  Name:                %s\n", record.FullName)
	fmt.Fprintf(r.out, "  Birth date:          %s\n", record.BirthDate)
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
