package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AdminToken string

	// Onboarding endpoints
	GetOnboardingStatusHandler    gin.HandlerFunc
	GetOnboardingRedirectHandler  gin.HandlerFunc
	GetOnboardingStepsHandler     gin.HandlerFunc
	GetOnboardingStepHandler      gin.HandlerFunc
	ValidateOnboardingStepHandler gin.HandlerFunc
	SubmitOnboardingStepHandler   gin.HandlerFunc
	CompleteOnboardingHandler     gin.HandlerFunc

	// Catalog endpoints
	ListSellerTypesHandler gin.HandlerFunc
	GetSellerTypeHandler   gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler
}

// NewHandlerBundle wires the onboarding, catalog and admin handlers.
func NewHandlerBundle(oh *OnboardingHandler, ah *AdminHandler, adminToken string) *HandlerBundle {
	return &HandlerBundle{
		AdminToken: adminToken,

		GetOnboardingStatusHandler:    oh.GetStatusHandler,
		GetOnboardingRedirectHandler:  oh.GetRedirectHandler,
		GetOnboardingStepsHandler:     oh.GetStepsHandler,
		GetOnboardingStepHandler:      oh.GetStepHandler,
		ValidateOnboardingStepHandler: oh.ValidateStepHandler,
		SubmitOnboardingStepHandler:   oh.SubmitStepHandler,
		CompleteOnboardingHandler:     oh.CompleteOnboardingHandler,

		ListSellerTypesHandler: ListSellerTypesHandler,
		GetSellerTypeHandler:   GetSellerTypeHandler,

		AdminHandler: ah,
	}
}
