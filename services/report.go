// Pure reductions over a fetched transaction list plus lookup maps. One
// malformed historical record must never break a whole monthly report, so
// missing commission fields fall back to the default split instead of
// erroring.
package services

import (
	"sort"
	"time"

	"barbearia-backend/models"
	"barbearia-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PeriodSummary struct {
	Gross      decimal.Decimal `json:"gross"`
	Commission decimal.Decimal `json:"commission"`
	House      decimal.Decimal `json:"house"`
	Count      int             `json:"count"`
}

// txCommission returns the barber share of one transaction, reconstructing
// it for records written before commission tracking existed.
func txCommission(tx models.Transaction) decimal.Decimal {
	if tx.CommissionAmount.IsZero() && tx.CommissionRate.IsZero() && tx.Total.IsPositive() {
		return tx.Total.Mul(DefaultCommissionRate)
	}
	return tx.CommissionAmount
}

func txHouse(tx models.Transaction) decimal.Decimal {
	if tx.RevenueAmount.IsZero() && tx.Total.IsPositive() {
		return tx.Total.Sub(txCommission(tx))
	}
	return tx.RevenueAmount
}

func Summarize(txs []models.Transaction) PeriodSummary {
	summary := PeriodSummary{
		Gross:      decimal.Zero,
		Commission: decimal.Zero,
		House:      decimal.Zero,
	}
	for _, tx := range txs {
		summary.Gross = summary.Gross.Add(tx.Total)
		summary.Commission = summary.Commission.Add(txCommission(tx))
		summary.House = summary.House.Add(txHouse(tx))
		summary.Count++
	}
	return summary
}

type BarberTotal struct {
	BarberID   uuid.UUID       `json:"barberId"`
	Name       string          `json:"name"`
	Gross      decimal.Decimal `json:"gross"`
	Commission decimal.Decimal `json:"commission"`
}

// TopBarbers builds the pay-run view: per-staff commission subtotals,
// descending. Staff without sales in the period are omitted; sales whose
// barber no longer exists in the roster still count, under their raw id.
func TopBarbers(txs []models.Transaction, roster []models.User) []BarberTotal {
	names := map[uuid.UUID]string{}
	for _, user := range roster {
		name := user.Name
		if name == "" {
			name = user.Email
		}
		names[user.ID] = name
	}

	byBarber := map[uuid.UUID]*BarberTotal{}
	for _, tx := range txs {
		entry, ok := byBarber[tx.BarberID]
		if !ok {
			name, known := names[tx.BarberID]
			if !known {
				name = tx.BarberID.String()
			}
			entry = &BarberTotal{
				BarberID:   tx.BarberID,
				Name:       name,
				Gross:      decimal.Zero,
				Commission: decimal.Zero,
			}
			byBarber[tx.BarberID] = entry
		}
		entry.Gross = entry.Gross.Add(tx.Total)
		entry.Commission = entry.Commission.Add(txCommission(tx))
	}

	totals := make([]BarberTotal, 0, len(byBarber))
	for _, entry := range byBarber {
		totals = append(totals, *entry)
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Commission.Equal(totals[j].Commission) {
			return totals[i].Commission.GreaterThan(totals[j].Commission)
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// WeeklyCommission partitions a month's transactions into the calendar-week
// buckets of the bucketer. The buckets are disjoint and complete: their sum
// equals the month's total commission.
func WeeklyCommission(txs []models.Transaction) [utils.WeekBuckets]decimal.Decimal {
	var buckets [utils.WeekBuckets]decimal.Decimal
	for i := range buckets {
		buckets[i] = decimal.Zero
	}
	for _, tx := range txs {
		buckets[utils.WeekOfMonth(tx.Date)] = buckets[utils.WeekOfMonth(tx.Date)].Add(txCommission(tx))
	}
	return buckets
}

// Payment method buckets of the revenue screen. Legacy "cartao" records and
// anything unknown land in outros.
const MethodOutros = "outros"

var knownMethods = []string{models.MethodDinheiro, models.MethodPix, models.MethodDebito, models.MethodCredito}

type MethodTotals map[string]decimal.Decimal

func newMethodTotals() MethodTotals {
	totals := MethodTotals{MethodOutros: decimal.Zero}
	for _, m := range knownMethods {
		totals[m] = decimal.Zero
	}
	return totals
}

func (m MethodTotals) add(method string, amount decimal.Decimal) {
	key := utils.Normalize(method)
	if _, ok := m[key]; !ok || key == "" {
		key = MethodOutros
	}
	m[key] = m[key].Add(amount)
}

func PaymentMethodTotals(txs []models.Transaction) MethodTotals {
	totals := newMethodTotals()
	for _, tx := range txs {
		totals.add(tx.Method, tx.Total)
	}
	return totals
}

// WeekRevenue is one row of the monthly revenue screen's weekly breakdown.
type WeekRevenue struct {
	Index   int             `json:"week"`
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Total   decimal.Decimal `json:"total"`
	Methods MethodTotals    `json:"methods"`
}

// WeeklyBreakdown buckets a month's gross revenue by calendar week and
// payment method. ref selects the month; transactions are assumed to be
// already range-filtered to it.
func WeeklyBreakdown(txs []models.Transaction, ref time.Time) []WeekRevenue {
	weeks := make([]WeekRevenue, utils.WeeksInMonth(ref))
	for i := range weeks {
		start, end := utils.WeekBounds(ref, i)
		weeks[i] = WeekRevenue{
			Index:   i,
			Start:   start,
			End:     end,
			Total:   decimal.Zero,
			Methods: newMethodTotals(),
		}
	}
	for _, tx := range txs {
		idx := utils.WeekOfMonth(tx.Date)
		if idx >= len(weeks) {
			idx = len(weeks) - 1
		}
		weeks[idx].Total = weeks[idx].Total.Add(tx.Total)
		weeks[idx].Methods.add(tx.Method, tx.Total)
	}
	return weeks
}
