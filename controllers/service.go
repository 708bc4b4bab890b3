package controllers

import (
	"errors"
	"net/http"

	"barbearia-backend/config"
	"barbearia-backend/models"
	"barbearia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceInput struct {
	Name           string           `json:"name" binding:"required"`
	Price          decimal.Decimal  `json:"price"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
	IsActive       *bool            `json:"isActive"`
}

// validate checks the decimal fields by hand; binding tags do not reach
// into decimal.Decimal.
func (in *ServiceInput) validate() string {
	if in.Price.IsNegative() || in.Price.IsZero() {
		return "Price must be greater than zero"
	}
	if in.CommissionRate != nil {
		rate := *in.CommissionRate
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return "Commission rate must be between 0 and 100"
		}
	}
	return ""
}

func GetServices(c *gin.Context) {
	query := config.DB.Order("name")
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func CreateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	service := models.Service{
		Name:     input.Name,
		Price:    input.Price,
		IsActive: true,
	}
	if input.CommissionRate != nil {
		service.CommissionRate = *input.CommissionRate
	} else {
		service.CommissionRate = decimal.NewFromInt(40)
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func UpdateService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	service.Name = input.Name
	service.Price = input.Price
	if input.CommissionRate != nil {
		service.CommissionRate = *input.CommissionRate
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService soft deletes a catalog entry. Recorded sales keep the id;
// the CSV export falls back to a generic label for it.
func DeleteService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Delete(&models.Service{}, "id = ?", serviceID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
