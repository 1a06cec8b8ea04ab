// internal/models/driver.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Driver is a registered ride provider. Email and mobile are both login
// identifiers, so each is unique.
type Driver struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	CarOwnerName string    `gorm:"not null" json:"carOwnerName"`
	Mobile       string    `gorm:"uniqueIndex;not null" json:"mobile"`
	CarType      string    `json:"carType,omitempty"`
	CarNo        string    `json:"carNo,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Posts []Post `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate assigns a random id when none was set.
func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
