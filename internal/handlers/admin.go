package handlers

import (
	"errors"
	"log"
	"net/http"

	"findabode-backend/internal/cache"
	"findabode-backend/internal/database"
	"findabode-backend/internal/featured"
	"findabode-backend/internal/models"
	"findabode-backend/internal/notify"
	"findabode-backend/internal/scheduler"
	"findabode-backend/internal/search"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin curation requests
type AdminHandler struct {
	db        *database.GormDB
	featured  *featured.Service
	scheduler *scheduler.Scheduler
	search    *search.SearchClient
	cache     *cache.Cache
	mailer    *notify.Mailer
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *database.GormDB, svc *featured.Service, sched *scheduler.Scheduler,
	sc *search.SearchClient, ca *cache.Cache, mailer *notify.Mailer) *AdminHandler {
	return &AdminHandler{
		db:        db,
		featured:  svc,
		scheduler: sched,
		search:    sc,
		cache:     ca,
		mailer:    mailer,
	}
}

// ApproveProperty marks a pending property approved and recomputes its
// featured status now that it is eligible
func (h *AdminHandler) ApproveProperty(c *gin.Context) {
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

	property.ApprovalStatus = models.ApprovalApproved
	if err := h.db.DB().Save(property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.featured.RecomputeStatus(id); err != nil {
		log.Printf("Admin: Failed to recompute featured status for %s: %v", id, err)
	}
	if h.search != nil {
		if err := h.search.IndexProperty(property); err != nil {
			log.Printf("Admin: Failed to index %s: %v", id, err)
		}
	}
	// Approval can flip is_auto_featured on immediately
	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusOK, gin.H{"message": "Property approved", "property": property})
}

// RejectProperty marks a property rejected. Rejection overrides curation:
// both featured flags are cleared.
func (h *AdminHandler) RejectProperty(c *gin.Context) {
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

	property.ApprovalStatus = models.ApprovalRejected
	if err := h.db.DB().Save(property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.featured.ClearFeatured(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if h.search != nil {
		if err := h.search.DeleteProperty(id); err != nil {
			log.Printf("Admin: Failed to remove %s from search index: %v", id, err)
		}
	}
	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusOK, gin.H{"message": "Property rejected"})
}

// ToggleFeatured flips the manual featured flag of a property
func (h *AdminHandler) ToggleFeatured(c *gin.Context) {
	id := c.Param("id")

	featuredNow, err := h.featured.ToggleManual(id)
	if err != nil {
		switch {
		case errors.Is(err, featured.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Featured capacity exceeded, unfeature another property first",
			})
		case errors.Is(err, featured.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusOK, gin.H{"featured": featuredNow})
}

// MarkSold flags a property as sold and recomputes its status, which
// disqualifies it from auto-featuring. The search document is refreshed so
// the sold listing drops out of free-text results.
func (h *AdminHandler) MarkSold(c *gin.Context) {
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

	property.IsSold = true
	if err := h.db.DB().Save(property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.featured.RecomputeStatus(id); err != nil {
		log.Printf("Admin: Failed to recompute featured status for %s: %v", id, err)
	}
	if h.search != nil {
		if err := h.search.IndexProperty(property); err != nil {
			log.Printf("Admin: Failed to reindex %s: %v", id, err)
		}
	}
	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusOK, gin.H{"message": "Property marked as sold"})
}

// RunReconciliation triggers the daily reconciliation pass on demand and
// returns its counts
func (h *AdminHandler) RunReconciliation(c *gin.Context) {
	log.Println("Admin: Manual reconciliation trigger requested")

	result, err := h.scheduler.RunNow()
	if err != nil {
		log.Printf("Admin: Manual reconciliation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.invalidateFeaturedCache(c)

	c.JSON(http.StatusOK, result)
}

// GetStats returns marketplace statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})
	db := h.db.DB()

	var pending, approved, rejected int64
	db.Model(&models.Property{}).Where("approval_status = ?", models.ApprovalPending).Count(&pending)
	db.Model(&models.Property{}).Where("approval_status = ?", models.ApprovalApproved).Count(&approved)
	db.Model(&models.Property{}).Where("approval_status = ?", models.ApprovalRejected).Count(&rejected)
	stats["properties"] = map[string]interface{}{
		"pending":  pending,
		"approved": approved,
		"rejected": rejected,
		"total":    pending + approved + rejected,
	}

	var manual, auto int64
	db.Model(&models.Property{}).Where("is_featured = ?", true).Count(&manual)
	db.Model(&models.Property{}).Where("is_auto_featured = ? AND is_featured = ?", true, false).Count(&auto)
	stats["featured"] = map[string]interface{}{
		"manual":     manual,
		"auto":       auto,
		"manual_cap": featured.ManualCap,
		"list_size":  featured.ListSize,
	}

	var sold int64
	db.Model(&models.Property{}).Where("is_sold = ?", true).Count(&sold)
	stats["sold"] = sold

	var pendingProviders int64
	db.Model(&models.User{}).
		Where("role = ? AND approval_status = ?", models.RoleProvider, models.ApprovalPending).
		Count(&pendingProviders)
	stats["pending_providers"] = pendingProviders

	c.JSON(http.StatusOK, stats)
}

// GetPendingProviders lists provider accounts awaiting review
func (h *AdminHandler) GetPendingProviders(c *gin.Context) {
	users, err := h.db.GetPendingProviders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// ApproveUser approves a pending provider account
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.db.GetUserByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user.ApprovalStatus = models.ApprovalApproved
	user.RejectionReason = ""
	if err := h.db.DB().Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.mailer.SendAccountApproved(user)

	c.JSON(http.StatusOK, gin.H{"message": "User approved", "user": user})
}

// RejectUser rejects a pending provider account
func (h *AdminHandler) RejectUser(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = "Your account was rejected by admin"
	}

	user, err := h.db.GetUserByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user.ApprovalStatus = models.ApprovalRejected
	user.RejectionReason = req.Reason
	if err := h.db.DB().Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.mailer.SendAccountRejected(user, req.Reason)

	c.JSON(http.StatusOK, gin.H{"message": "User rejected"})
}

func (h *AdminHandler) invalidateFeaturedCache(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(c.Request.Context(), cache.FeaturedListKey); err != nil {
		log.Printf("Admin: Failed to invalidate featured cache: %v", err)
	}
}
