package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blinno/middleware"
	"blinno/models"
	"blinno/services/onboarding"
	"blinno/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OnboardingHandler serves the seller-facing onboarding wizard.
type OnboardingHandler struct {
	Service onboarding.OnboardingService
}

func NewOnboardingHandler(svc onboarding.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{Service: svc}
}

// StepsResponse is the ordered list of steps the caller should walk through next.
type StepsResponse struct {
	Steps    []models.StepDefinition `json:"steps"`
	NextStep models.StepID           `json:"nextStep,omitempty"`
}

// SubmitStepResponse reports whether a submitted step was recorded.
type SubmitStepResponse struct {
	Saved      bool                     `json:"saved"`
	Validation models.ValidationResult  `json:"validation"`
	Status     *models.OnboardingStatus `json:"status,omitempty"`
}

// GetStatusHandler handles GET /onboarding/status.
func (h *OnboardingHandler) GetStatusHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	c.JSON(http.StatusOK, h.Service.CheckStatus(c.Request.Context(), userID))
}

// GetRedirectHandler handles GET /onboarding/redirect.
func (h *OnboardingHandler) GetRedirectHandler(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	c.JSON(http.StatusOK, gin.H{"redirect": h.Service.ShouldRedirect(c.Request.Context(), userID)})
}

// GetStepsHandler handles GET /onboarding/steps?includeOptional=true.
func (h *OnboardingHandler) GetStepsHandler(c *gin.Context) {
	includeOptional := false
	if raw := c.Query("includeOptional"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid includeOptional value", err.Error())
			return
		}
		includeOptional = v
	}

	userID := c.GetString(middleware.ContextUserID)
	status := h.Service.CheckStatus(c.Request.Context(), userID)
	ids := h.Service.StepsForUser(status, includeOptional)

	steps := make([]models.StepDefinition, 0, len(ids))
	for _, id := range ids {
		steps = append(steps, onboarding.GetStepConfig(id))
	}
	c.JSON(http.StatusOK, StepsResponse{Steps: steps, NextStep: status.NextStep})
}

// GetStepHandler handles GET /onboarding/steps/:stepId.
func (h *OnboardingHandler) GetStepHandler(c *gin.Context) {
	step, ok := onboarding.LookupStep(models.StepID(c.Param("stepId")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Onboarding step not found"})
		return
	}
	c.JSON(http.StatusOK, step)
}

// ValidateStepHandler handles POST /onboarding/steps/:stepId/validate.
// It never records anything.
func (h *OnboardingHandler) ValidateStepHandler(c *gin.Context) {
	stepID := models.StepID(c.Param("stepId"))
	if _, ok := onboarding.LookupStep(stepID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Onboarding step not found"})
		return
	}

	var answers models.StepAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, onboarding.ValidateStep(stepID, answers))
}

// SubmitStepHandler handles POST /onboarding/steps/:stepId.
func (h *OnboardingHandler) SubmitStepHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString(middleware.ContextUserID)
	stepID := models.StepID(c.Param("stepId"))

	var answers models.StepAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.SubmitStep(c.Request.Context(), userID, stepID, answers)
	switch {
	case errors.Is(err, onboarding.ErrUnknownStep):
		c.JSON(http.StatusNotFound, gin.H{"error": "Onboarding step not found"})
		return
	case errors.Is(err, onboarding.ErrStepNotSaved):
		logger.Error("Onboarding step not saved", zap.String("userID", userID), zap.String("step", string(stepID)))
		c.JSON(http.StatusInternalServerError, SubmitStepResponse{Saved: false, Validation: result})
		return
	case err != nil:
		logger.Error("Failed to submit onboarding step", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit onboarding step"})
		return
	}

	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, SubmitStepResponse{Saved: false, Validation: result})
		return
	}

	status := h.Service.CheckStatus(c.Request.Context(), userID)
	c.JSON(http.StatusOK, SubmitStepResponse{Saved: true, Validation: result, Status: &status})
}

// CompleteOnboardingHandler handles POST /onboarding/complete.
func (h *OnboardingHandler) CompleteOnboardingHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString(middleware.ContextUserID)
	ctx := c.Request.Context()

	status := h.Service.CheckStatus(ctx, userID)
	if status.SellerType == "" || status.HasNextStep() {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Required onboarding steps are not complete",
			"status": status,
		})
		return
	}

	if !h.Service.CompleteOnboarding(ctx, userID) {
		logger.Error("Failed to complete onboarding", zap.String("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete onboarding"})
		return
	}
	c.JSON(http.StatusOK, h.Service.CheckStatus(ctx, userID))
}
