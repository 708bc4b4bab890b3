package controllers

import (
	"net/http"

	"barbearia-backend/config"
	"barbearia-backend/models"
	"barbearia-backend/services"
	"barbearia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type UpdateSettingsInput struct {
	// Percent form (0-100), matching what the settings screen shows.
	CommissionRate decimal.Decimal `json:"commissionRate"`
}

// GetSettings returns the global settings with the commission rate in
// percent form. At rest the rate is a fraction; the API boundary converts.
func GetSettings(c *gin.Context) {
	var settings models.Settings
	if err := config.DB.Where("id = ?", models.SettingsRowID).
		Attrs(models.Settings{ID: models.SettingsRowID, CommissionRate: services.DefaultCommissionRate}).
		FirstOrCreate(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commissionRate": settings.CommissionRate.Mul(decimal.NewFromInt(100)),
	})
}

// UpdateSettings changes the global commission rate. Only future sales pick
// it up; existing records keep their snapshot.
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.CommissionRate.IsNegative() || input.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		utils.RespondWithError(c, http.StatusBadRequest, "Commission rate must be between 0 and 100")
		return
	}

	fraction := input.CommissionRate.Div(decimal.NewFromInt(100))

	var settings models.Settings
	if err := config.DB.Where("id = ?", models.SettingsRowID).
		Attrs(models.Settings{ID: models.SettingsRowID, CommissionRate: fraction}).
		FirstOrCreate(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	settings.CommissionRate = fraction
	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commissionRate": settings.CommissionRate.Mul(decimal.NewFromInt(100)),
	})
}
