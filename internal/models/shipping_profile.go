package models

import (
	"time"

	"gorm.io/gorm"
)

// ShippingProfile is the shipping form an authenticated customer opted to
// save during checkout. One row per user, upserted on each save.
type ShippingProfile struct {
	ID         uint           `gorm:"primarykey" json:"id"`                          // primary key
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"`           // owning user
	FullName   string         `gorm:"type:varchar(200);not null" json:"full_name"`   // recipient name
	Email      string         `gorm:"type:varchar(200);not null" json:"email"`       // contact email
	Phone      string         `gorm:"type:varchar(40)" json:"phone"`                 // contact phone
	Address1   string         `gorm:"type:varchar(300);not null" json:"address1"`    // street address
	Address2   string         `gorm:"type:varchar(300)" json:"address2"`             // apartment, suite
	City       string         `gorm:"type:varchar(120);not null" json:"city"`        // city
	Region     string         `gorm:"type:varchar(120)" json:"region"`               // state or province
	PostalCode string         `gorm:"type:varchar(40);not null" json:"postal_code"`  // postal code
	Country    string         `gorm:"type:varchar(120);not null" json:"country"`     // country
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                       // creation time
	UpdatedAt  time.Time      `json:"updated_at"`                                    // update time
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                // soft delete time
}

// TableName sets the table name.
func (ShippingProfile) TableName() string {
	return "shipping_profiles"
}
