package services

import (
	"errors"

	"barbearia-backend/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("total must be a non-negative amount")
	ErrInvalidRate   = errors.New("commission rate must be between 0 and 1")
)

// DefaultCommissionRate applies when a record predates commission tracking
// or the catalog entry has no rate of its own.
var DefaultCommissionRate = decimal.NewFromFloat(0.40)

var oneHundred = decimal.NewFromInt(100)

// Split is the outcome of dividing a charged total between the barber and
// the house.
type Split struct {
	Commission decimal.Decimal
	House      decimal.Decimal
}

// ComputeSplit divides total between barber commission and house revenue.
// The rate is always a fraction in [0,1]; callers holding catalog
// percentages convert with RateFromPercent first. No rounding happens
// here, display formatting rounds to 2 decimals.
func ComputeSplit(total, rate decimal.Decimal) (Split, error) {
	if total.IsNegative() {
		return Split{}, ErrInvalidAmount
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Split{}, ErrInvalidRate
	}
	commission := total.Mul(rate)
	return Split{
		Commission: commission,
		House:      total.Sub(commission),
	}, nil
}

// RateFromPercent converts a catalog percentage (0-100) into the canonical
// fraction. Zero or out-of-range values from old catalog entries fall back
// to the default rate.
func RateFromPercent(percent decimal.Decimal) decimal.Decimal {
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThan(oneHundred) {
		return DefaultCommissionRate
	}
	return percent.Div(oneHundred)
}

// ServiceCommission recomputes a sale's commission from the catalog: the
// sum of each selected service's price times its own rate. This is the edit
// path: it deliberately ignores both the sale's stored snapshot rate and
// any manual override of the total, so an overridden total changes what the
// customer paid but not how commission splits.
func ServiceCommission(selected []models.Service) decimal.Decimal {
	total := decimal.Zero
	for _, svc := range selected {
		total = total.Add(svc.Price.Mul(RateFromPercent(svc.CommissionRate)))
	}
	return total
}
