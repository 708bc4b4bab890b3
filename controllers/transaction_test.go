package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"barbearia-backend/models"
	"barbearia-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Editing a sale must recompute commission from the current catalog rates,
// not from the rate snapshotted on the record.
func TestUpdateTransactionRecomputesFromCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	prevStore := TxStore
	prevBarber, prevServices := findBarber, findSaleServices
	defer func() {
		TxStore = prevStore
		findBarber, findSaleServices = prevBarber, prevServices
	}()
	TxStore = mem

	barberID := uuid.New()
	corte := models.Service{ID: uuid.New(), Name: "Corte", Price: decimal.NewFromInt(30), CommissionRate: decimal.NewFromInt(50), IsActive: true}
	barba := models.Service{ID: uuid.New(), Name: "Barba", Price: decimal.NewFromInt(20), CommissionRate: decimal.NewFromInt(20), IsActive: true}
	catalog := map[uuid.UUID]models.Service{corte.ID: corte, barba.ID: barba}

	findBarber = func(id uuid.UUID) (models.User, error) {
		return models.User{ID: id, Role: models.RoleBarber, IsActive: true}, nil
	}
	findSaleServices = func(ids []uuid.UUID) ([]models.Service, error) {
		selected := make([]models.Service, 0, len(ids))
		for _, id := range ids {
			svc, ok := catalog[id]
			require.True(t, ok)
			selected = append(selected, svc)
		}
		return selected, nil
	}

	when := time.Date(2025, time.May, 12, 10, 0, 0, 0, time.Local)
	snapshotRate := decimal.NewFromFloat(0.40)
	txID := mem.Seed(models.Transaction{
		BarberID:         barberID,
		ServiceIDs:       models.UUIDSlice{corte.ID},
		Total:            decimal.NewFromInt(30),
		Method:           models.MethodPix,
		CommissionRate:   snapshotRate,
		CommissionAmount: decimal.NewFromInt(12),
		RevenueAmount:    decimal.NewFromInt(18),
		Date:             when,
	})

	body := fmt.Sprintf(`{"barberId":%q,"serviceIds":[%q,%q],"method":"pix"}`,
		barberID, corte.ID, barba.ID)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/transactions/"+txID.String(), strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: txID.String()}}

	UpdateTransaction(c)
	require.Equal(t, http.StatusOK, w.Code)

	page, err := mem.QueryRange(context.Background(), when.Add(-time.Hour), when.Add(time.Hour), store.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	got := page.Items[0]

	// 30*0.50 + 20*0.20 = 19; the snapshot rate would have given 50*0.40 = 20.
	assert.True(t, got.CommissionAmount.Equal(decimal.NewFromInt(19)), got.CommissionAmount.String())
	assert.True(t, got.Total.Equal(decimal.NewFromInt(50)))
	assert.True(t, got.RevenueAmount.Equal(decimal.NewFromInt(31)))
	assert.True(t, got.CommissionRate.Equal(snapshotRate))
	assert.True(t, got.Date.Equal(when))
}

func TestGetTransactionsRejectsBadCursor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prevStore := TxStore
	defer func() { TxStore = prevStore }()
	TxStore = store.NewMemoryStore()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/transactions?cursor=not-a-cursor", nil)
	c.Set("userId", uuid.New().String())
	c.Set("email", "dono@barbearia.com")
	c.Set("name", "Dono")
	c.Set("role", models.RoleAdmin)

	GetTransactions(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
