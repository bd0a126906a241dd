package models

import "time"

// ContactRequest is a seeker inquiry about a property. Creating one bumps
// the contacts counter on the property row.
type ContactRequest struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"property_id"`
	Message    string    `gorm:"type:text" json:"message"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}
