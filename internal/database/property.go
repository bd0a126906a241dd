package database

import (
	"errors"

	"findabode-backend/internal/models"

	"gorm.io/gorm"
)

// BrowseParams are the public listing filters
type BrowseParams struct {
	City         string
	PropertyType string
	ListingType  string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Page         int
	Limit        int
}

// BrowseProperties lists eligible properties with filters and pagination,
// newest first. Returns the page and the total match count.
func (gdb *GormDB) BrowseProperties(params BrowseParams) ([]models.Property, int64, error) {
	query := gdb.db.Model(&models.Property{}).
		Where("is_active = ? AND approval_status = ? AND is_sold = ?",
			true, models.ApprovalApproved, false)

	if params.City != "" {
		query = query.Where("city LIKE ?", "%"+params.City+"%")
	}
	if params.PropertyType != "" {
		query = query.Where("property_type = ?", params.PropertyType)
	}
	if params.ListingType != "" {
		query = query.Where("listing_type = ?", params.ListingType)
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if params.Bedrooms != nil {
		query = query.Where("bedrooms = ?", *params.Bedrooms)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Limit <= 0 {
		params.Limit = 12
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	offset := (params.Page - 1) * params.Limit

	var properties []models.Property
	err := query.Order("created_at DESC").Limit(params.Limit).Offset(offset).Find(&properties).Error
	return properties, total, err
}

// GetEligibleProperties returns every publicly visible listing. Used to seed
// the search index on startup.
func (gdb *GormDB) GetEligibleProperties() ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.
		Where("is_active = ? AND approval_status = ? AND is_sold = ?",
			true, models.ApprovalApproved, false).
		Find(&properties).Error
	return properties, err
}

// GetPropertyByID retrieves a property by ID. Returns gorm.ErrRecordNotFound
// when no row matches.
func (gdb *GormDB) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	if err := gdb.db.Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// GetUserProperties retrieves all properties owned by a user, newest first
func (gdb *GormDB) GetUserProperties(userID string) ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// IncrementViews atomically bumps the view counter
func (gdb *GormDB) IncrementViews(id string) error {
	return gdb.db.Model(&models.Property{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// IncrementContacts atomically bumps the inquiry counter
func (gdb *GormDB) IncrementContacts(id string) error {
	return gdb.db.Model(&models.Property{}).
		Where("id = ?", id).
		UpdateColumn("contacts", gorm.Expr("contacts + ?", 1)).Error
}

// AdjustWishlistCount atomically moves the wishlist counter by delta.
// The counter never goes below zero.
func (gdb *GormDB) AdjustWishlistCount(id string, delta int) error {
	if delta >= 0 {
		return gdb.db.Model(&models.Property{}).
			Where("id = ?", id).
			UpdateColumn("wishlist_count", gorm.Expr("wishlist_count + ?", delta)).Error
	}
	return gdb.db.Model(&models.Property{}).
		Where("id = ? AND wishlist_count >= ?", id, -delta).
		UpdateColumn("wishlist_count", gorm.Expr("wishlist_count + ?", delta)).Error
}

// IsNotFound reports whether err is the record-not-found condition
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
