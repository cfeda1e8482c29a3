package handlers

import (
	"context"
	"net/http"

	"blinno/models"
	"blinno/services/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sweeper queues version checks for every outdated seller.
type Sweeper interface {
	Sweep(ctx context.Context) (models.SweepResult, error)
}

// AdminHandler encapsulates elevated admin-level onboarding operations.
type AdminHandler struct {
	Service onboarding.OnboardingService
	Sweeper Sweeper
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc onboarding.OnboardingService, sweeper Sweeper) *AdminHandler {
	return &AdminHandler{
		Service: svc,
		Sweeper: sweeper,
	}
}

// ResetRequest is the body of an administrative reset.
type ResetRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ResetOnboardingHandler handles POST /admin/onboarding/:userId/reset.
func (ah *AdminHandler) ResetOnboardingHandler(c *gin.Context) {
	userID := c.Param("userId")

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !ah.Service.ResetOnboarding(c.Request.Context(), userID, req.Reason) {
		getLogger(c).Error("Admin reset failed", zap.String("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset onboarding"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Onboarding reset", "userId": userID})
}

// VersionCheckHandler handles POST /admin/onboarding/:userId/version-check.
func (ah *AdminHandler) VersionCheckHandler(c *gin.Context) {
	userID := c.Param("userId")
	reset := ah.Service.CheckAndForceVersionUpdate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"userId":          userID,
		"reset":           reset,
		"requiredVersion": ah.Service.RequiredVersion(),
	})
}

// VersionSweepHandler handles POST /admin/onboarding/version-sweep.
func (ah *AdminHandler) VersionSweepHandler(c *gin.Context) {
	res, err := ah.Sweeper.Sweep(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Version sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue version checks", "result": res})
		return
	}
	c.JSON(http.StatusAccepted, res)
}

// ResetHistoryHandler handles GET /admin/onboarding/:userId/resets.
func (ah *AdminHandler) ResetHistoryHandler(c *gin.Context) {
	userID := c.Param("userId")
	resets, err := ah.Service.ResetHistory(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to fetch reset history", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reset history"})
		return
	}
	if resets == nil {
		resets = []models.OnboardingReset{}
	}
	c.JSON(http.StatusOK, resets)
}
