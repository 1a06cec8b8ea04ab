// internal/models/post.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is one ride offered by a driver.
type Post struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	DriverID       string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Driver         Driver    `gorm:"foreignKey:DriverID" json:"-"`
	OwnerName      string    `gorm:"not null" json:"ownerName"`
	Mobile         string    `gorm:"not null" json:"mobile"`
	WhatsAppNumber string    `json:"whatsAppNumber,omitempty"`
	From           string    `gorm:"column:from_place;index;not null" json:"from"`
	To             string    `gorm:"column:to_place;index;not null" json:"to"`
	Date           time.Time `gorm:"not null" json:"date"`
	Time           time.Time `gorm:"not null" json:"time"`
	AvailableSeats int       `gorm:"not null" json:"availableSeats"`
	Price          float64   `gorm:"not null;default:0" json:"price"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
