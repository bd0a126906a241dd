package handlers

import (
	"net/http"

	"findabode-backend/internal/database"
	"findabode-backend/internal/middleware"
	"findabode-backend/internal/models"
	"findabode-backend/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles registration and login
type UserHandler struct {
	db     *database.GormDB
	auth   *middleware.Auth
	mailer *notify.Mailer
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *database.GormDB, auth *middleware.Auth, mailer *notify.Mailer) *UserHandler {
	return &UserHandler{db: db, auth: auth, mailer: mailer}
}

// Register creates an account. Seekers and owners are usable immediately;
// agent and builder accounts start pending admin approval.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email        string              `json:"email" binding:"required,email"`
		Password     string              `json:"password" binding:"required,min=8"`
		Name         string              `json:"name" binding:"required"`
		Phone        string              `json:"phone"`
		Role         models.UserRole     `json:"role"`
		ProviderType models.ProviderType `json:"provider_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.db.GetUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if !database.IsNotFound(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		ProviderType: req.ProviderType,
		IsActive:     true,
	}
	if user.Role == "" {
		user.Role = models.RoleSeeker
	}
	if user.Role == models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot self-register as admin"})
		return
	}

	user.ApprovalStatus = models.ApprovalApproved
	if user.NeedsApproval() {
		user.ApprovalStatus = models.ApprovalPending
	}

	if err := h.db.CreateUser(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.mailer.SendWelcome(&user)

	token, err := h.auth.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

// Login authenticates by email and password
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated user's own record
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.db.GetUserByID(c.GetString("user_id"))
	if err != nil {
		if database.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
