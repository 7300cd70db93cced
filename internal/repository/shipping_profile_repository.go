package repository

import (
	"errors"

	"github.com/aurelia-jewelry/aurelia/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShippingProfileRepository stores the per-user saved shipping address.
type ShippingProfileRepository interface {
	GetByUserID(userID uint) (*models.ShippingProfile, error)
	Upsert(profile *models.ShippingProfile) error
}

// GormShippingProfileRepository is the GORM implementation.
type GormShippingProfileRepository struct {
	db *gorm.DB
}

// NewShippingProfileRepository creates a shipping profile repository.
func NewShippingProfileRepository(db *gorm.DB) *GormShippingProfileRepository {
	return &GormShippingProfileRepository{db: db}
}

// GetByUserID loads the saved profile for a user. Returns (nil, nil) when
// the user has never saved one.
func (r *GormShippingProfileRepository) GetByUserID(userID uint) (*models.ShippingProfile, error) {
	var profile models.ShippingProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts or replaces the single profile row for the user.
func (r *GormShippingProfileRepository) Upsert(profile *models.ShippingProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "email", "phone", "address1", "address2",
			"city", "region", "postal_code", "country", "updated_at",
		}),
	}).Create(profile).Error
}
