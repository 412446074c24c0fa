package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/models"
	"github.com/udyam-portal/app-udyam/internal/observability"
	"github.com/udyam-portal/app-udyam/internal/services"
	"github.com/udyam-portal/app-udyam/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// VerificationHandlers exposes the registration steps over HTTP
type VerificationHandlers struct {
	service *services.VerificationService
	logger  *logging.SafeLogger
}

// NewVerificationHandlers creates a new VerificationHandlers instance
func NewVerificationHandlers(service *services.VerificationService, logger *logging.SafeLogger) *VerificationHandlers {
	if logger == nil {
		logger = observability.Logger()
	}
	return &VerificationHandlers{
		service: service,
		logger:  logger,
	}
}

// SendChallenge godoc
// @Summary Send passcode challenge
// @Description Checks that the identity number is registered to the phone number and sends a one-time passcode to it. Outside production the passcode is echoed back as debug_passcode.
// @Tags verification
// @Accept json
// @Produce json
// @Param data body models.IdentitySubmission true "Identity number and phone number"
// @Success 200 {object} SendChallengeResponse "Passcode sent"
// @Failure 400 {object} ErrorResponse "Invalid format or no matching record"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /send-challenge [post]
func (h *VerificationHandlers) SendChallenge(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SendChallenge")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", services.OperationSendChallenge),
		attribute.String("service", "verification"),
	)

	var req models.IdentitySubmission
	_, parseSpan := utils.TraceInputParsing(ctx, "identity_submission")
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()
		h.internalError(c, services.OperationSendChallenge, err)
		return
	}
	parseSpan.End()

	result, err := h.service.SendChallenge(ctx, req)
	if err != nil {
		h.writeError(c, services.OperationSendChallenge, err)
		return
	}

	_, responseSpan := utils.TraceResponseSerialization(ctx, "send_challenge")
	c.JSON(http.StatusOK, SendChallengeResponse{
		Success:       true,
		Message:       MsgChallengeSent,
		DebugPasscode: result.DebugPasscode,
	})
	responseSpan.End()

	h.logger.Debug("SendChallenge completed", zap.Duration("total_duration", time.Since(startTime)))
}

// VerifyChallenge godoc
// @Summary Verify passcode
// @Description Verifies the passcode sent to the phone for the given identity number.
// @Tags verification
// @Accept json
// @Produce json
// @Param data body models.OtpSubmission true "Identity number, phone number and passcode"
// @Success 200 {object} VerifyChallengeResponse "Identity and phone verified"
// @Failure 400 {object} ErrorResponse "Invalid format or wrong passcode"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /verify-challenge [post]
func (h *VerificationHandlers) VerifyChallenge(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "VerifyChallenge")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", services.OperationVerifyChallenge),
		attribute.String("service", "verification"),
	)

	var req models.OtpSubmission
	_, parseSpan := utils.TraceInputParsing(ctx, "otp_submission")
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()
		h.internalError(c, services.OperationVerifyChallenge, err)
		return
	}
	parseSpan.End()

	result, err := h.service.VerifyChallenge(ctx, req)
	if err != nil {
		h.writeError(c, services.OperationVerifyChallenge, err)
		return
	}

	_, responseSpan := utils.TraceResponseSerialization(ctx, "verify_challenge")
	c.JSON(http.StatusOK, VerifyChallengeResponse{
		Success: true,
		Message: MsgChallengeVerified,
		Data:    *result,
	})
	responseSpan.End()

	h.logger.Debug("VerifyChallenge completed", zap.Duration("total_duration", time.Since(startTime)))
}

// VerifyTaxID godoc
// @Summary Verify tax ID details
// @Description Verifies the tax ID together with the name and birth date on record.
// @Tags verification
// @Accept json
// @Produce json
// @Param data body models.TaxIDSubmission true "Tax ID, full name and birth date"
// @Success 200 {object} VerifyTaxIDResponse "Tax ID details verified"
// @Failure 400 {object} ErrorResponse "Invalid format or details don't match"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /verify-tax-id [post]
func (h *VerificationHandlers) VerifyTaxID(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "VerifyTaxID")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", services.OperationVerifyTaxID),
		attribute.String("service", "verification"),
	)

	var req models.TaxIDSubmission
	_, parseSpan := utils.TraceInputParsing(ctx, "tax_id_submission")
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()
		h.internalError(c, services.OperationVerifyTaxID, err)
		return
	}
	parseSpan.End()

	result, err := h.service.VerifyTaxID(ctx, req)
	if err != nil {
		h.writeError(c, services.OperationVerifyTaxID, err)
		return
	}

	_, responseSpan := utils.TraceResponseSerialization(ctx, "verify_tax_id")
	c.JSON(http.StatusOK, VerifyTaxIDResponse{
		Success: true,
		Message: MsgTaxIDVerified,
		Data:    *result,
	})
	responseSpan.End()

	h.logger.Debug("VerifyTaxID completed", zap.Duration("total_duration", time.Since(startTime)))
}

// SubmitRegistration godoc
// @Summary Submit registration
// @Description Validates the complete form and issues a registration number. The identity number in the response shows only its last four digits.
// @Tags registration
// @Accept json
// @Produce json
// @Param data body models.CompleteRegistration true "Every field collected by the wizard"
// @Success 200 {object} SubmitRegistrationResponse "Registration issued"
// @Failure 400 {object} ErrorResponse "One or more fields are invalid"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /submit-registration [post]
func (h *VerificationHandlers) SubmitRegistration(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitRegistration")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", services.OperationSubmitRegistration),
		attribute.String("service", "registration"),
	)

	var req models.CompleteRegistration
	_, parseSpan := utils.TraceInputParsing(ctx, "complete_registration")
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()
		h.internalError(c, services.OperationSubmitRegistration, err)
		return
	}
	parseSpan.End()

	record, err := h.service.SubmitRegistration(ctx, req)
	if err != nil {
		h.writeError(c, services.OperationSubmitRegistration, err)
		return
	}

	_, responseSpan := utils.TraceResponseSerialization(ctx, "submit_registration")
	c.JSON(http.StatusOK, SubmitRegistrationResponse{
		Success: true,
		Message: MsgRegistrationCompleted,
		Data:    *record,
	})
	responseSpan.End()

	h.logger.Info("SubmitRegistration completed",
		zap.String("registration_number", record.RegistrationNumber),
		zap.Duration("total_duration", time.Since(startTime)))
}

// writeError turns a service error into a 400 with the field messages, or a
// generic 500 for anything that is not a verification failure
func (h *VerificationHandlers) writeError(c *gin.Context, operation string, err error) {
	var verr *models.VerificationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Errors: verr.Fields})
		return
	}
	h.internalError(c, operation, err)
}

func (h *VerificationHandlers) internalError(c *gin.Context, operation string, err error) {
	h.logger.Error("request failed",
		zap.String("operation", operation),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Errors:  map[string]string{generalErrorKey: MsgInternalServerError},
	})
}
