package handlers

import (
	"log"
	"net/http"
	"strconv"

	"findabode-backend/internal/cache"
	"findabode-backend/internal/database"
	"findabode-backend/internal/featured"
	"findabode-backend/internal/models"
	"findabode-backend/internal/notify"
	"findabode-backend/internal/ratelimit"
	"findabode-backend/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PropertyHandler handles property listing requests
type PropertyHandler struct {
	db       *database.GormDB
	featured *featured.Service
	search   *search.SearchClient
	cache    *cache.Cache
	mailer   *notify.Mailer
	limiter  *ratelimit.RateLimiter
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(db *database.GormDB, svc *featured.Service, sc *search.SearchClient,
	ca *cache.Cache, mailer *notify.Mailer, limiter *ratelimit.RateLimiter) *PropertyHandler {
	return &PropertyHandler{
		db:       db,
		featured: svc,
		search:   sc,
		cache:    ca,
		mailer:   mailer,
		limiter:  limiter,
	}
}

// ListProperties returns eligible properties with filters and pagination.
// A free-text q parameter goes through the search index when available.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	params := database.BrowseParams{
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
		ListingType:  c.Query("listing_type"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		params.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		params.MaxPrice = &v
	}
	if v, err := strconv.Atoi(c.Query("bedrooms")); err == nil {
		params.Bedrooms = &v
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))

	if query := c.Query("q"); query != "" && h.search != nil {
		properties, err := h.search.FilterSearch(search.FilterParams{
			Query:        query,
			City:         params.City,
			PropertyType: params.PropertyType,
			ListingType:  params.ListingType,
			MinPrice:     params.MinPrice,
			MaxPrice:     params.MaxPrice,
			Bedrooms:     params.Bedrooms,
			Limit:        int64(params.Limit),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"properties": properties,
			"count":      len(properties),
		})
		return
	}

	properties, total, err := h.db.BrowseProperties(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pages := total / int64(params.Limit)
	if total%int64(params.Limit) != 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"pagination": gin.H{
			"total": total,
			"page":  params.Page,
			"pages": pages,
		},
	})
}

// GetProperty returns one property and records the view. The view bump
// feeds back into the featured score immediately.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id := c.Param("id")

	property, err := h.db.GetPropertyByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.IncrementViews(id); err != nil {
		log.Printf("Properties: Failed to increment views for %s: %v", id, err)
	} else {
		property.Views++
		if _, err := h.featured.RecomputeStatus(id); err != nil {
			log.Printf("Properties: Failed to recompute featured status for %s: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, property)
}

// GetFeatured returns the composed featured list, cached when Redis is on
func (h *PropertyHandler) GetFeatured(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached featured.FeaturedList
		if hit, err := h.cache.Get(ctx, cache.FeaturedListKey, &cached); err == nil && hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	list, err := h.featured.ComposeList()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cache.FeaturedListKey, list); err != nil {
			log.Printf("Properties: Failed to cache featured list: %v", err)
		}
	}

	c.JSON(http.StatusOK, list)
}

// propertyPayload is the owner-editable subset of a property
type propertyPayload struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	PropertyType models.PropertyType `json:"property_type" binding:"required"`
	ListingType  models.ListingType  `json:"listing_type" binding:"required"`
	Images       []string            `json:"images"`
	VideoURL     string              `json:"video_url"`
	Amenities    []string            `json:"amenities"`
	Price        *float64            `json:"price"`
	RentPerMonth *float64            `json:"rent_per_month"`
	Bedrooms     int                 `json:"bedrooms"`
	Bathrooms    int                 `json:"bathrooms"`
	Area         *float64            `json:"area"`
	Address      string              `json:"address"`
	City         string              `json:"city" binding:"required"`
	State        string              `json:"state"`
	Pincode      string              `json:"pincode"`
}

func (p *propertyPayload) apply(property *models.Property) {
	property.Title = p.Title
	property.Description = p.Description
	property.PropertyType = p.PropertyType
	property.ListingType = p.ListingType
	property.Images = p.Images
	property.VideoURL = p.VideoURL
	property.Amenities = p.Amenities
	property.Price = p.Price
	property.RentPerMonth = p.RentPerMonth
	property.Bedrooms = p.Bedrooms
	property.Bathrooms = p.Bathrooms
	property.Area = p.Area
	property.Address = p.Address
	property.City = p.City
	property.State = p.State
	property.Pincode = p.Pincode
}

// CreateProperty creates a listing for the authenticated provider.
// Owner listings are approved immediately; agent and builder listings wait
// for admin review.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID := c.GetString("user_id")

	var payload propertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	property := models.Property{
		ID:             uuid.NewString(),
		UserID:         userID,
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
	}
	if user.NeedsApproval() || user.ApprovalStatus != models.ApprovalApproved {
		property.ApprovalStatus = models.ApprovalPending
	}
	payload.apply(&property)

	if err := h.db.DB().Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.featured.RecomputeStatus(property.ID); err != nil {
		log.Printf("Properties: Failed to recompute featured status for %s: %v", property.ID, err)
	}
	h.indexProperty(&property)
	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusCreated, property)
}

// UpdateProperty lets the owner edit listing content, then recomputes the
// featured status from the new attributes
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("user_id")

	property, err := h.db.GetPropertyByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if property.UserID != userID && c.GetString("user_role") != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this property"})
		return
	}

	var payload propertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payload.apply(property)

	if err := h.db.DB().Save(property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.featured.RecomputeStatus(id); err != nil {
		log.Printf("Properties: Failed to recompute featured status for %s: %v", id, err)
	}
	h.indexProperty(property)
	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusOK, property)
}

// DeleteProperty removes a listing; deletion drops it from all featured
// consideration implicitly
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("user_id")

	property, err := h.db.GetPropertyByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if property.UserID != userID && c.GetString("user_role") != string(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this property"})
		return
	}

	if err := h.db.DB().Delete(property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.search != nil {
		if err := h.search.DeleteProperty(id); err != nil {
			log.Printf("Properties: Failed to remove %s from search index: %v", id, err)
		}
	}
	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// GetUserProperties lists the authenticated user's own listings
func (h *PropertyHandler) GetUserProperties(c *gin.Context) {
	userID := c.GetString("user_id")

	properties, err := h.db.GetUserProperties(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// CreateInquiry records a contact request for a property and bumps its
// inquiry counter. Rate limited to keep providers from being flooded.
func (h *PropertyHandler) CreateInquiry(c *gin.Context) {
	if h.limiter != nil && !h.limiter.AllowRequest() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many inquiries, try again later"})
		return
	}

	id := c.Param("id")
	userID := c.GetString("user_id")

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.db.GetPropertyByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !property.IsEligible() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Property is no longer available"})
		return
	}

	contact := models.ContactRequest{
		UserID:     userID,
		PropertyID: id,
		Message:    req.Message,
	}
	if err := h.db.DB().Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.IncrementContacts(id); err != nil {
		log.Printf("Properties: Failed to increment contacts for %s: %v", id, err)
	} else if _, err := h.featured.RecomputeStatus(id); err != nil {
		log.Printf("Properties: Failed to recompute featured status for %s: %v", id, err)
	}

	if owner, err := h.db.GetUserByID(property.UserID); err == nil {
		h.mailer.SendInquiry(owner, property, req.Message)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Inquiry sent"})
}

func (h *PropertyHandler) indexProperty(property *models.Property) {
	if h.search == nil {
		return
	}
	if err := h.search.IndexProperty(property); err != nil {
		log.Printf("Properties: Failed to index %s: %v", property.ID, err)
	}
}

func (h *PropertyHandler) invalidateFeaturedCache(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(c.Request.Context(), cache.FeaturedListKey); err != nil {
		log.Printf("Properties: Failed to invalidate featured cache: %v", err)
	}
}
