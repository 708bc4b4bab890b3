package controllers

import (
	"net/http"
	"time"

	"barbearia-backend/config"
	"barbearia-backend/models"
	"barbearia-backend/services"
	"barbearia-backend/store"
	"barbearia-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboard assembles the admin landing screen: today's, this week's and
// this month's totals plus the month's per-barber ranking. Weeks start on
// Sunday.
func GetDashboard(c *gin.Context) {
	now := time.Now()
	ctx := c.Request.Context()

	monthStart, monthEnd := utils.MonthRange(now)
	monthPage, err := TxStore.QueryRange(ctx, monthStart, monthEnd, store.QueryOptions{})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	weekStart := utils.BeginningOfDay(now.AddDate(0, 0, -int(now.Weekday())))
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)

	var todayTxs, weekTxs []models.Transaction
	for _, tx := range monthPage.Items {
		if !tx.Date.Before(weekStart) {
			weekTxs = append(weekTxs, tx)
		}
		if !tx.Date.Before(dayStart) && !tx.Date.After(dayEnd) {
			todayTxs = append(todayTxs, tx)
		}
	}

	// The current week can start in the previous month; fetch the missing
	// leading days separately.
	if weekStart.Before(monthStart) {
		prevPage, err := TxStore.QueryRange(ctx, weekStart, monthStart.Add(-time.Nanosecond), store.QueryOptions{})
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
			return
		}
		weekTxs = append(weekTxs, prevPage.Items...)
	}

	var roster []models.User
	if err := config.DB.Where("role = ?", models.RoleBarber).Find(&roster).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve barbers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today":      services.Summarize(todayTxs),
		"week":       services.Summarize(weekTxs),
		"month":      services.Summarize(monthPage.Items),
		"topBarbers": services.TopBarbers(monthPage.Items, roster),
	})
}
