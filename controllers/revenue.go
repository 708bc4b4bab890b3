package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"barbearia-backend/config"
	"barbearia-backend/models"
	"barbearia-backend/services"
	"barbearia-backend/store"
	"barbearia-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMonthlyRevenue returns the revenue screen for one month: period totals,
// per-payment-method totals and the weekly breakdown. The requested period
// is echoed back so the client can discard responses from stale requests.
func GetMonthlyRevenue(c *gin.Context) {
	ref, err := parseMonthYear(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := monthTransactions(c, ref)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period": gin.H{
			"month": int(ref.Month()),
			"year":  ref.Year(),
		},
		"summary": services.Summarize(txs),
		"methods": services.PaymentMethodTotals(txs),
		"weeks":   services.WeeklyBreakdown(txs, ref),
	})
}

// ExportMonthlyRevenue streams the month's sales as a semicolon-separated
// CSV download.
func ExportMonthlyRevenue(c *gin.Context) {
	ref, err := parseMonthYear(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := monthTransactions(c, ref)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	// Unscoped: soft-deleted staff and services still label old rows.
	var users []models.User
	if err := config.DB.Unscoped().Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}
	var catalog []models.Service
	if err := config.DB.Unscoped().Find(&catalog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	staffByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		staffByID[u.ID] = u
	}
	servicesByID := make(map[uuid.UUID]models.Service, len(catalog))
	for _, s := range catalog {
		servicesByID[s.ID] = s
	}

	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, txs, staffByID, servicesByID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	filename := services.ExportFilename(ref.Month(), ref.Year())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetCommissionReport shows a barber their own commission for the month,
// bucketed by calendar week, across every roster identity resolved to them.
func GetCommissionReport(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	ref, err := parseMonthYear(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	ids, err := resolvedStaffIDs(c, session)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve staff identity")
		return
	}

	start, end := utils.MonthRange(ref)
	page, err := TxStore.QueryRange(c.Request.Context(), start, end, store.QueryOptions{BarberIDs: ids})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	weekly := services.WeeklyCommission(page.Items)
	weeks := weekly[:utils.WeeksInMonth(ref)]

	c.JSON(http.StatusOK, gin.H{
		"period": gin.H{
			"month": int(ref.Month()),
			"year":  ref.Year(),
		},
		"summary": services.Summarize(page.Items),
		"weekly":  weeks,
	})
}

func monthTransactions(c *gin.Context, ref time.Time) ([]models.Transaction, error) {
	start, end := utils.MonthRange(ref)
	page, err := TxStore.QueryRange(c.Request.Context(), start, end, store.QueryOptions{})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// parseMonthYear reads month (1-12) and year query params, defaulting to the
// current month.
func parseMonthYear(c *gin.Context) (time.Time, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return time.Time{}, errors.New("invalid month, expected 1-12")
		}
		month = parsed
	}
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return time.Time{}, errors.New("invalid year")
		}
		year = parsed
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local), nil
}
