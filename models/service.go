package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a catalog item. CommissionRate is stored as a percentage
// (0-100) the way the catalog screen edits it; everything downstream works
// with fractions and converts once via services.RateFromPercent.
type Service struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"not null" json:"name"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);default:40" json:"commissionRate"`
	IsActive       bool            `gorm:"default:true" json:"isActive"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
