package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods accepted at the counter. Cartao shows up in records that
// predate the debito/credito split and is only ever read, never written.
const (
	MethodDinheiro = "dinheiro"
	MethodPix      = "pix"
	MethodDebito   = "debito"
	MethodCredito  = "credito"
	MethodCartao   = "cartao"
)

// Transaction is one completed sale. CommissionRate and the two amounts are
// snapshots taken at write time: changing the global rate later must not
// rewrite history. Date is set by the server on creation and never updated.
type Transaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BarberID   uuid.UUID `gorm:"type:uuid;index;not null" json:"barberId"`
	ServiceIDs UUIDSlice `gorm:"type:jsonb;not null" json:"serviceIds"`

	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Method           string          `gorm:"type:varchar(20);not null" json:"method"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,4)" json:"commissionRate"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"commissionAmount"`
	RevenueAmount    decimal.Decimal `gorm:"type:decimal(10,2)" json:"revenueAmount"`

	Date         time.Time `gorm:"index;not null" json:"date"`
	RegisteredBy uuid.UUID `gorm:"type:uuid" json:"registeredBy"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// UUIDSlice persists an ordered set of ids as a JSON array column.
type UUIDSlice []uuid.UUID

func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal([]uuid.UUID(s))
}

func (s *UUIDSlice) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(str)
	}
	return json.Unmarshal(b, s)
}

// Contains reports whether id is part of the ordered set.
func (s UUIDSlice) Contains(id uuid.UUID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
