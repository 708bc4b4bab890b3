package controllers

import (
	"errors"
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
	"github.com/shopspring/decimal"
)

type TransactionInput struct {
	BarberID   uuid.UUID        `json:"barberId" binding:"required"`
	ServiceIDs []uuid.UUID      `json:"serviceIds" binding:"required,min=1"`
	Method     string           `json:"method" binding:"required"`
	Total      *decimal.Decimal `json:"total"` // manual override of the catalog sum
}

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	identityCacheTTL = 10 * time.Minute
)

var validMethods = map[string]bool{
	models.MethodDinheiro: true,
	models.MethodPix:      true,
	models.MethodDebito:   true,
	models.MethodCredito:  true,
}

// Database lookups behind package vars so handler tests can swap them for
// fixtures, the same way TxStore is swapped for the memory store.
var (
	findBarber       = findBarberDB
	findSaleServices = findSaleServicesDB
)

func findBarberDB(id uuid.UUID) (models.User, error) {
	var barber models.User
	err := config.DB.Where("id = ? AND role = ?", id, models.RoleBarber).First(&barber).Error
	return barber, err
}

func findSaleServicesDB(ids []uuid.UUID) ([]models.Service, error) {
	var selected []models.Service
	if err := config.DB.Where("id IN ?", ids).Find(&selected).Error; err != nil {
		return nil, errors.New("failed to load services")
	}
	if len(selected) != len(ids) {
		return nil, errors.New("one or more services not found")
	}
	return selected, nil
}

// CreateTransaction records a sale. The commission rate is snapshotted from
// the global settings at this moment; later settings changes never touch
// the record.
func CreateTransaction(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	var input TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !validMethods[input.Method] {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method")
		return
	}

	if _, err := findBarber(input.BarberID); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Barber not found")
		return
	}

	selected, err := findSaleServices(input.ServiceIDs)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	total := decimal.Zero
	for _, svc := range selected {
		total = total.Add(svc.Price)
	}
	if input.Total != nil {
		if input.Total.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Total must not be negative")
			return
		}
		total = *input.Total
	}

	rate := currentCommissionRate()
	split, err := services.ComputeSplit(total, rate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	tx := models.Transaction{
		BarberID:         input.BarberID,
		ServiceIDs:       models.UUIDSlice(input.ServiceIDs),
		Total:            total,
		Method:           input.Method,
		CommissionRate:   rate,
		CommissionAmount: split.Commission,
		RevenueAmount:    split.House,
		RegisteredBy:     session.UserID,
	}

	id, err := TxStore.Create(c.Request.Context(), &tx)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record sale")
		return
	}

	tx.ID = id
	c.JSON(http.StatusCreated, tx)
}

// UpdateTransaction replaces the editable fields of a sale. Commission is
// recomputed from the current catalog, each service's price times its own
// rate, not from the stored snapshot rate. Date and RegisteredBy never
// change.
func UpdateTransaction(c *gin.Context) {
	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	var input TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !validMethods[input.Method] {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method")
		return
	}

	if _, err := findBarber(input.BarberID); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Barber not found")
		return
	}

	selected, err := findSaleServices(input.ServiceIDs)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	total := decimal.Zero
	for _, svc := range selected {
		total = total.Add(svc.Price)
	}
	if input.Total != nil {
		if input.Total.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Total must not be negative")
			return
		}
		total = *input.Total
	}

	commission := services.ServiceCommission(selected)
	revenue := total.Sub(commission)
	serviceIDs := models.UUIDSlice(input.ServiceIDs)

	update := store.TransactionUpdate{
		BarberID:         &input.BarberID,
		ServiceIDs:       &serviceIDs,
		Method:           &input.Method,
		Total:            &total,
		CommissionAmount: &commission,
		RevenueAmount:    &revenue,
	}

	if err := TxStore.Update(c.Request.Context(), txID, update); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update sale")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully"})
}

func DeleteTransaction(c *gin.Context) {
	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	if err := TxStore.Delete(c.Request.Context(), txID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete sale")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetTransactions pages through sale history, newest first. Admins see
// everything (optionally narrowed with ?barberId=); barbers only see sales
// attributed to any of their resolved roster identities.
func GetTransactions(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	opts := store.QueryOptions{
		Cursor:   c.Query("cursor"),
		PageSize: parsePageSize(c),
	}

	if session.Role == models.RoleAdmin {
		if raw := c.Query("barberId"); raw != "" {
			barberID, err := uuid.Parse(raw)
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
				return
			}
			opts.BarberIDs = []uuid.UUID{barberID}
		}
	} else {
		ids, err := resolvedStaffIDs(c, session)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve staff identity")
			return
		}
		opts.BarberIDs = ids
	}

	page, err := TxStore.QueryRange(c.Request.Context(), start, end, opts)
	if err != nil {
		if errors.Is(err, store.ErrBadCursor) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid cursor")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": page.Items,
		"nextCursor":   page.NextCursor,
	})
}

// resolvedStaffIDs returns every roster id that belongs to the session's
// person, consulting the identity cache before rerunning the resolver over
// the roster. The result is never empty: it always includes the session's
// own id.
func resolvedStaffIDs(c *gin.Context, session services.Session) ([]uuid.UUID, error) {
	ctx := c.Request.Context()

	if cached, ok, err := Identities.Get(ctx, session.UserID); err == nil && ok {
		return cached, nil
	}

	var roster []models.User
	if err := config.DB.Where("role = ?", models.RoleBarber).Find(&roster).Error; err != nil {
		return nil, err
	}

	set := Resolver.ResolveStaffIDs(session, roster)
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	// Cache failures are not fatal, the resolver just runs again next time.
	_ = Identities.Set(ctx, session.UserID, ids, identityCacheTTL)
	return ids, nil
}

// currentCommissionRate reads the singleton settings row, creating it with
// the default rate if migrations have not seeded it yet.
func currentCommissionRate() decimal.Decimal {
	var settings models.Settings
	if err := config.DB.Where("id = ?", models.SettingsRowID).
		Attrs(models.Settings{ID: models.SettingsRowID, CommissionRate: services.DefaultCommissionRate}).
		FirstOrCreate(&settings).Error; err != nil {
		return services.DefaultCommissionRate
	}
	if settings.CommissionRate.LessThanOrEqual(decimal.Zero) {
		return services.DefaultCommissionRate
	}
	return settings.CommissionRate
}

// parseRange reads from/to (YYYY-MM-DD, inclusive). Missing bounds default
// to the current month.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	start, end := utils.MonthRange(time.Now())

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
		start = utils.BeginningOfDay(parsed)
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
		end = utils.EndOfDay(parsed)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("'to' must not be before 'from'")
	}
	return start, end, nil
}

func parsePageSize(c *gin.Context) int {
	raw := c.Query("pageSize")
	if raw == "" {
		return defaultPageSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}
