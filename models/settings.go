package models

import (
	"github.com/shopspring/decimal"
)

// Settings is a singleton row (ID is always 1). CommissionRate is the
// system-wide fraction (0-1) snapshotted into every new sale.
type Settings struct {
	ID             uint            `gorm:"primary_key" json:"-"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,4);default:0.4" json:"commissionRate"`
}

const SettingsRowID = 1
