package models

import (
	"time"

	"barbearia-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleBarber = "barber"
	RoleAdmin  = "admin"
)

// User is both an authentication account and a roster entry. Barbers added
// by a manager before they ever log in are placeholder profiles: they have
// a generated ID and no password until the matching account signs up.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"index" json:"email"`
	Password string    `json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;default:'barber'" json:"role"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	gorm.Model
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	// Placeholder profiles have no credentials yet
	if u.Password != "" {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return
}

// HasLogin reports whether this roster entry is linked to a real account.
func (u *User) HasLogin() bool {
	return u.Password != ""
}
