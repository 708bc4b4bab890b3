package store

import (
	"context"
	"testing"
	"time"

	"barbearia-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTx(s *MemoryStore, barber uuid.UUID, date time.Time, total float64) uuid.UUID {
	return s.Seed(models.Transaction{
		BarberID:   barber,
		ServiceIDs: models.UUIDSlice{uuid.New()},
		Total:      decimal.NewFromFloat(total),
		Method:     models.MethodPix,
		Date:       date,
	})
}

func TestCreateSetsServerDate(t *testing.T) {
	s := NewMemoryStore()
	tx := models.Transaction{
		BarberID:   uuid.New(),
		ServiceIDs: models.UUIDSlice{uuid.New()},
		Total:      decimal.NewFromInt(50),
		Method:     models.MethodDinheiro,
	}

	id, err := s.Create(context.Background(), &tx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.False(t, tx.Date.IsZero())
}

func TestUpdateNeverTouchesDate(t *testing.T) {
	s := NewMemoryStore()
	when := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local)
	barber := uuid.New()
	id := seedTx(s, barber, when, 80)

	newTotal := decimal.NewFromInt(95)
	method := models.MethodCredito
	err := s.Update(context.Background(), id, TransactionUpdate{
		Total:  &newTotal,
		Method: &method,
	})
	require.NoError(t, err)

	page, err := s.QueryRange(context.Background(), when.Add(-time.Hour), when.Add(time.Hour), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].Date.Equal(when))
	assert.True(t, page.Items[0].Total.Equal(newTotal))
	assert.Equal(t, models.MethodCredito, page.Items[0].Method)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	s := NewMemoryStore()

	total := decimal.NewFromInt(10)
	assert.ErrorIs(t, s.Update(context.Background(), uuid.New(), TransactionUpdate{Total: &total}), ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), uuid.New()), ErrNotFound)
}

func TestQueryRangeOrdersDescending(t *testing.T) {
	s := NewMemoryStore()
	barber := uuid.New()
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		seedTx(s, barber, base.AddDate(0, 0, i), 30)
	}

	page, err := s.QueryRange(context.Background(), base, base.AddDate(0, 0, 10), QueryOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	for i := 1; i < len(page.Items); i++ {
		assert.False(t, page.Items[i].Date.After(page.Items[i-1].Date))
	}
	assert.Empty(t, page.NextCursor)
}

func TestQueryRangePagination(t *testing.T) {
	s := NewMemoryStore()
	barber := uuid.New()
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		seedTx(s, barber, base.Add(time.Duration(i)*time.Hour), 30)
	}

	ctx := context.Background()
	seen := map[uuid.UUID]bool{}

	page, err := s.QueryRange(ctx, base, base.AddDate(0, 0, 1), QueryOptions{PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.NotEmpty(t, page.NextCursor)
	for _, item := range page.Items {
		seen[item.ID] = true
	}

	page, err = s.QueryRange(ctx, base, base.AddDate(0, 0, 1), QueryOptions{PageSize: 3, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.NotEmpty(t, page.NextCursor)
	for _, item := range page.Items {
		assert.False(t, seen[item.ID], "page overlap at %s", item.ID)
		seen[item.ID] = true
	}

	page, err = s.QueryRange(ctx, base, base.AddDate(0, 0, 1), QueryOptions{PageSize: 3, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Empty(t, page.NextCursor)
	for _, item := range page.Items {
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
	assert.Len(t, seen, 7)
}

func TestQueryRangeBarberFilter(t *testing.T) {
	s := NewMemoryStore()
	a, b := uuid.New(), uuid.New()
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.Local)
	seedTx(s, a, base, 30)
	seedTx(s, b, base.Add(time.Minute), 40)
	seedTx(s, a, base.Add(2*time.Minute), 50)

	page, err := s.QueryRange(context.Background(), base, base.Add(time.Hour), QueryOptions{
		BarberIDs: []uuid.UUID{a},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Equal(t, a, item.BarberID)
	}
}

func TestQueryRangeEmptyFilterShortCircuits(t *testing.T) {
	s := NewMemoryStore()
	seedTx(s, uuid.New(), time.Now(), 30)

	page, err := s.QueryRange(context.Background(), time.Now().Add(-time.Hour), time.Now().Add(time.Hour), QueryOptions{
		BarberIDs: []uuid.UUID{},
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextCursor)
	assert.Zero(t, s.QueryCalls, "store must not be queried for an empty identity set")
}

func TestQueryRangeBadCursor(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.QueryRange(context.Background(), time.Now().Add(-time.Hour), time.Now(), QueryOptions{Cursor: "not-a-cursor"})
	assert.Error(t, err)
}

func TestQueryRangeChunkedFilterMerge(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, time.July, 1, 8, 0, 0, 0, time.Local)

	// 23 barbers split the filter into chunks of 10/10/3; the dates
	// interleave so every page draws from more than one chunk.
	barbers := make([]uuid.UUID, 23)
	seeded := map[uuid.UUID]bool{}
	for i := range barbers {
		barbers[i] = uuid.New()
		id := seedTx(s, barbers[i], base.Add(time.Duration(i)*time.Hour), 30)
		seeded[id] = false
	}

	var collected []models.Transaction
	cursor := ""
	pages := 0
	for {
		page, err := s.QueryRange(context.Background(), base, base.AddDate(0, 0, 2), QueryOptions{
			BarberIDs: barbers,
			Cursor:    cursor,
			PageSize:  4,
		})
		require.NoError(t, err)
		collected = append(collected, page.Items...)
		pages++
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	require.Len(t, collected, len(barbers))
	assert.Equal(t, 6, pages)

	for _, tx := range collected {
		already, ok := seeded[tx.ID]
		require.True(t, ok)
		require.False(t, already, "transaction emitted twice across pages")
		seeded[tx.ID] = true
	}
	for i := 1; i < len(collected); i++ {
		assert.True(t, collected[i].Date.Before(collected[i-1].Date))
	}
}
