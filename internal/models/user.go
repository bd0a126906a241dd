package models

import "time"

// UserRole separates seekers (browse/wishlist) from providers (list properties)
type UserRole string

const (
	RoleSeeker   UserRole = "seeker"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

// ProviderType is the subtype of a provider account
type ProviderType string

const (
	ProviderOwner   ProviderType = "owner"
	ProviderAgent   ProviderType = "agent"
	ProviderBuilder ProviderType = "builder"
)

type User struct {
	ID           string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string       `gorm:"type:varchar(100);not null" json:"-"`
	Name         string       `gorm:"type:varchar(100);not null" json:"name"`
	Phone        string       `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         UserRole     `gorm:"type:varchar(20);not null;default:'seeker';index" json:"role"`
	ProviderType ProviderType `gorm:"type:varchar(20)" json:"provider_type,omitempty"`

	// Agent/builder accounts need admin approval before listing
	ApprovalStatus  ApprovalStatus `gorm:"type:varchar(20);not null;default:'approved';index" json:"approval_status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	IsActive        bool           `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// NeedsApproval reports whether this account type requires admin review
// before it can list properties. Owners self-list and are auto-approved.
func (u *User) NeedsApproval() bool {
	return u.Role == RoleProvider && (u.ProviderType == ProviderAgent || u.ProviderType == ProviderBuilder)
}
