package controllers

import (
	"errors"
	"net/http"

	"barbearia-backend/config"
	"barbearia-backend/models"
	"barbearia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddBarberInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateBarberInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	IsActive *bool   `json:"isActive"`
}

// GetBarbers lists the roster. By default only active barbers come back
// (that is what the new-sale picker needs); ?all=true includes deactivated
// ones for the team management screen.
func GetBarbers(c *gin.Context) {
	query := config.DB.Where("role = ?", models.RoleBarber)
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var barbers []models.User
	if err := query.Order("name").Find(&barbers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve barbers")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

// AddBarber creates a placeholder roster profile with no login. The barber
// links up later by signing in with a matching email or name.
func AddBarber(c *gin.Context) {
	var input AddBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	barber := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Role:     models.RoleBarber,
		IsActive: true,
	}

	if err := config.DB.Create(&barber).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create barber")
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func UpdateBarber(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	var input UpdateBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var barber models.User
	if err := config.DB.Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		barber.Name = *input.Name
	}
	if input.Email != nil {
		barber.Email = *input.Email
	}
	if input.IsActive != nil {
		barber.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&barber).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update barber")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// DeleteBarber soft deletes a roster profile. Past transactions keep the
// barber id; reports show it raw once the profile is gone.
func DeleteBarber(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	result := config.DB.Where("id = ? AND role = ?", barberID, models.RoleBarber).
		Delete(&models.User{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete barber")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barber deleted successfully"})
}
