package database

import (
	"findabode-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GetUserByID retrieves a user by ID
func (gdb *GormDB) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := gdb.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (gdb *GormDB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := gdb.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user
func (gdb *GormDB) CreateUser(user *models.User) error {
	return gdb.db.Create(user).Error
}

// EnsureAdminUser creates the default admin account on first startup.
// Self-registration as admin is blocked, so this is the only way an admin
// comes into existence. No-op when credentials are unset or an admin row
// already exists. Reports whether an account was created.
func (gdb *GormDB) EnsureAdminUser(email, password, name string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	var count int64
	if err := gdb.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := models.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		Name:           name,
		Role:           models.RoleAdmin,
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
	}
	if err := gdb.db.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GetPendingProviders lists provider accounts awaiting admin review
func (gdb *GormDB) GetPendingProviders() ([]models.User, error) {
	var users []models.User
	err := gdb.db.
		Where("role = ? AND approval_status = ?", models.RoleProvider, models.ApprovalPending).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}
