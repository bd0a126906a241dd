package models

import "time"

// WishlistItem is one saved property for one seeker. Membership changes
// also move the counter cached on the property row.
type WishlistItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_property" json:"user_id"`
	PropertyID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_property;index" json:"property_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
