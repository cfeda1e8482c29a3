package handlers

import (
	"net/http"

	"blinno/models"
	"blinno/services/onboarding"

	"github.com/gin-gonic/gin"
)

// SellerTypeResponse is a seller type together with its resolved step order.
type SellerTypeResponse struct {
	models.SellerTypeDefinition
	Steps []models.StepDefinition `json:"steps"`
}

// ListSellerTypesHandler handles GET /catalog/seller-types.
func ListSellerTypesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, onboarding.AllSellerTypes())
}

// GetSellerTypeHandler handles GET /catalog/seller-types/:type.
// Unknown types resolve to "other".
func GetSellerTypeHandler(c *gin.Context) {
	def := onboarding.GetSellerTypeConfig(models.SellerType(c.Param("type")))
	c.JSON(http.StatusOK, SellerTypeResponse{
		SellerTypeDefinition: def,
		Steps:                onboarding.GetOrderedSteps(def.ID, true),
	})
}
