package database

import (
	"fmt"
	"testing"
	"time"

	"findabode-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *GormDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	gdb := NewGormDBFromDB(db)
	require.NoError(t, gdb.InitSchema())
	return gdb
}

func eligibleProperty(city string) models.Property {
	return models.Property{
		ID:             uuid.NewString(),
		UserID:         uuid.NewString(),
		Title:          "Test listing",
		PropertyType:   models.PropertyApartment,
		ListingType:    models.ListingSale,
		City:           city,
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
	}
}

func TestBrowsePropertiesFiltersAndPaginates(t *testing.T) {
	gdb := setupDB(t)

	for i := 0; i < 5; i++ {
		p := eligibleProperty("Pune")
		price := float64(1000 * (i + 1))
		p.Price = &price
		p.CreatedAt = time.Now().Add(-time.Duration(i) * time.Hour)
		require.NoError(t, gdb.DB().Create(&p).Error)
	}
	// Ineligible rows never appear
	pending := eligibleProperty("Pune")
	pending.ApprovalStatus = models.ApprovalPending
	require.NoError(t, gdb.DB().Create(&pending).Error)
	other := eligibleProperty("Mumbai")
	require.NoError(t, gdb.DB().Create(&other).Error)

	properties, total, err := gdb.BrowseProperties(BrowseParams{City: "Pune", Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, properties, 3)

	properties, _, err = gdb.BrowseProperties(BrowseParams{City: "Pune", Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, properties, 2)

	min, max := 1500.0, 3500.0
	properties, total, err = gdb.BrowseProperties(BrowseParams{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, properties, 2)
}

func TestCounters(t *testing.T) {
	gdb := setupDB(t)

	p := eligibleProperty("Pune")
	require.NoError(t, gdb.DB().Create(&p).Error)

	require.NoError(t, gdb.IncrementViews(p.ID))
	require.NoError(t, gdb.IncrementViews(p.ID))
	require.NoError(t, gdb.IncrementContacts(p.ID))
	require.NoError(t, gdb.AdjustWishlistCount(p.ID, 1))

	stored, err := gdb.GetPropertyByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Views)
	assert.Equal(t, 1, stored.Contacts)
	assert.Equal(t, 1, stored.WishlistCount)
}

func TestAdjustWishlistCountNeverGoesNegative(t *testing.T) {
	gdb := setupDB(t)

	p := eligibleProperty("Pune")
	require.NoError(t, gdb.DB().Create(&p).Error)

	require.NoError(t, gdb.AdjustWishlistCount(p.ID, -1))

	stored, err := gdb.GetPropertyByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.WishlistCount)
}

func TestGetUserProperties(t *testing.T) {
	gdb := setupDB(t)

	userID := uuid.NewString()
	for i := 0; i < 3; i++ {
		p := eligibleProperty(fmt.Sprintf("City%d", i))
		p.UserID = userID
		require.NoError(t, gdb.DB().Create(&p).Error)
	}
	require.NoError(t, gdb.DB().Create(&models.Property{
		ID:           uuid.NewString(),
		UserID:       uuid.NewString(),
		Title:        "someone else's",
		PropertyType: models.PropertyHouse,
		ListingType:  models.ListingRent,
	}).Error)

	properties, err := gdb.GetUserProperties(userID)
	require.NoError(t, err)
	assert.Len(t, properties, 3)
}

func TestGetEligibleProperties(t *testing.T) {
	gdb := setupDB(t)

	visible := eligibleProperty("Pune")
	require.NoError(t, gdb.DB().Create(&visible).Error)

	sold := eligibleProperty("Pune")
	sold.IsSold = true
	require.NoError(t, gdb.DB().Create(&sold).Error)

	pending := eligibleProperty("Pune")
	pending.ApprovalStatus = models.ApprovalPending
	require.NoError(t, gdb.DB().Create(&pending).Error)

	properties, err := gdb.GetEligibleProperties()
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, visible.ID, properties[0].ID)
}

func TestGetPropertyByIDNotFound(t *testing.T) {
	gdb := setupDB(t)

	_, err := gdb.GetPropertyByID("missing")
	assert.True(t, IsNotFound(err))
}
