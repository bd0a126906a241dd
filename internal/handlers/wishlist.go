package handlers

import (
	"log"
	"net/http"

	"findabode-backend/internal/database"
	"findabode-backend/internal/featured"
	"findabode-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// WishlistHandler handles seeker wishlist requests
type WishlistHandler struct {
	db       *database.GormDB
	featured *featured.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(db *database.GormDB, svc *featured.Service) *WishlistHandler {
	return &WishlistHandler{db: db, featured: svc}
}

// GetWishlist lists the user's saved properties, newest first
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var items []models.WishlistItem
	err := h.db.DB().Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.PropertyID)
	}

	var properties []models.Property
	if len(ids) > 0 {
		if err := h.db.DB().Where("id IN ?", ids).Find(&properties).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// AddToWishlist saves a property for the user and bumps its wishlist
// counter, which feeds the featured score
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		PropertyID string `json:"property_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.GetPropertyByID(req.PropertyID); err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var existing models.WishlistItem
	err := h.db.DB().Where("user_id = ? AND property_id = ?", userID, req.PropertyID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property already in wishlist"})
		return
	}
	if !database.IsNotFound(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	item := models.WishlistItem{UserID: userID, PropertyID: req.PropertyID}
	if err := h.db.DB().Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.adjustAndRecompute(req.PropertyID, 1)

	c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist"})
}

// RemoveFromWishlist drops a saved property and decrements the counter
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	propertyID := c.Param("propertyId")

	result := h.db.DB().Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in wishlist"})
		return
	}

	h.adjustAndRecompute(propertyID, -1)

	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}

// CheckWishlist reports whether a property is in the user's wishlist
func (h *WishlistHandler) CheckWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	propertyID := c.Param("propertyId")

	var count int64
	err := h.db.DB().Model(&models.WishlistItem{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"in_wishlist": count > 0})
}

func (h *WishlistHandler) adjustAndRecompute(propertyID string, delta int) {
	if err := h.db.AdjustWishlistCount(propertyID, delta); err != nil {
		log.Printf("Wishlist: Failed to adjust counter for %s: %v", propertyID, err)
		return
	}
	if _, err := h.featured.RecomputeStatus(propertyID); err != nil {
		log.Printf("Wishlist: Failed to recompute featured status for %s: %v", propertyID, err)
	}
}
