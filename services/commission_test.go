package services

import (
	"testing"

	"barbearia-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSplitScenario(t *testing.T) {
	split, err := ComputeSplit(decimal.NewFromInt(100), decimal.NewFromFloat(0.40))
	require.NoError(t, err)
	assert.True(t, split.Commission.Equal(decimal.NewFromInt(40)), "commission = %s", split.Commission)
	assert.True(t, split.House.Equal(decimal.NewFromInt(60)), "house = %s", split.House)
}

func TestComputeSplitSumInvariant(t *testing.T) {
	totals := []float64{0, 0.01, 10, 35.5, 99.99, 100, 1234.56}
	rates := []float64{0, 0.1, 0.25, 0.4, 0.5, 0.999, 1}

	for _, total := range totals {
		for _, rate := range rates {
			split, err := ComputeSplit(decimal.NewFromFloat(total), decimal.NewFromFloat(rate))
			require.NoError(t, err)
			sum := split.Commission.Add(split.House)
			assert.True(t, sum.Equal(decimal.NewFromFloat(total)),
				"total=%v rate=%v: %s + %s != %v", total, rate, split.Commission, split.House, total)
		}
	}
}

func TestComputeSplitRejectsBadInput(t *testing.T) {
	_, err := ComputeSplit(decimal.NewFromInt(-1), decimal.NewFromFloat(0.4))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeSplit(decimal.NewFromInt(100), decimal.NewFromFloat(1.5))
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = ComputeSplit(decimal.NewFromInt(100), decimal.NewFromFloat(-0.1))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestRateFromPercent(t *testing.T) {
	assert.True(t, RateFromPercent(decimal.NewFromInt(40)).Equal(decimal.NewFromFloat(0.4)))
	assert.True(t, RateFromPercent(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(1)))
	// unset or nonsense catalog values fall back to the default
	assert.True(t, RateFromPercent(decimal.Zero).Equal(DefaultCommissionRate))
	assert.True(t, RateFromPercent(decimal.NewFromInt(250)).Equal(DefaultCommissionRate))
	assert.True(t, RateFromPercent(decimal.NewFromInt(-5)).Equal(DefaultCommissionRate))
}

func TestServiceCommission(t *testing.T) {
	selected := []models.Service{
		{Name: "Corte", Price: decimal.NewFromInt(30), CommissionRate: decimal.NewFromInt(40)},
		{Name: "Barba", Price: decimal.NewFromInt(20), CommissionRate: decimal.NewFromInt(50)},
		// no rate set: DefaultCommissionRate applies
		{Name: "Pezinho", Price: decimal.NewFromInt(10)},
	}

	// 30*0.40 + 20*0.50 + 10*0.40 = 12 + 10 + 4
	got := ServiceCommission(selected)
	assert.True(t, got.Equal(decimal.NewFromInt(26)), "got %s", got)

	assert.True(t, ServiceCommission(nil).Equal(decimal.Zero))
}
