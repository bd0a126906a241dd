package models

import (
	"time"

	"gorm.io/datatypes"
)

// ApprovalStatus is the admin review state of a property or provider account
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// PropertyType is the kind of real estate being listed
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyVilla      PropertyType = "villa"
	PropertyHouse      PropertyType = "house"
	PropertyPlot       PropertyType = "plot"
	PropertyCommercial PropertyType = "commercial"
)

// ListingType is whether a property is offered for sale or rent (never both)
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

type Property struct {
	// Identity
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title  string `gorm:"type:varchar(255);not null" json:"title"`

	// Content
	Description  string                      `gorm:"type:text" json:"description"`
	PropertyType PropertyType                `gorm:"type:varchar(20);not null;index" json:"property_type"`
	ListingType  ListingType                 `gorm:"type:varchar(10);not null;index" json:"listing_type"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	VideoURL     string                      `gorm:"type:varchar(500)" json:"video_url,omitempty"`
	Amenities    datatypes.JSONSlice[string] `json:"amenities"`

	// Pricing and layout
	Price        *float64 `gorm:"type:decimal(15,2);index" json:"price,omitempty"`
	RentPerMonth *float64 `gorm:"type:decimal(10,2)" json:"rent_per_month,omitempty"`
	Bedrooms     int      `gorm:"type:int;default:0;index" json:"bedrooms"`
	Bathrooms    int      `gorm:"type:int;default:0" json:"bathrooms"`
	Area         *float64 `gorm:"type:decimal(10,2)" json:"area,omitempty"`

	// Location
	Address string `gorm:"type:text" json:"address"`
	City    string `gorm:"type:varchar(100);index" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	Pincode string `gorm:"type:varchar(10)" json:"pincode"`

	// Status
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"approval_status"`
	IsActive       bool           `gorm:"not null" json:"is_active"`
	IsSold         bool           `gorm:"not null;default:false" json:"is_sold"`
	IsPremium      bool           `gorm:"not null;default:false" json:"is_premium"`

	// Engagement stats
	Views         int `gorm:"type:int;not null;default:0" json:"views"`
	WishlistCount int `gorm:"type:int;not null;default:0" json:"wishlist_count"`
	Contacts      int `gorm:"type:int;not null;default:0" json:"contacts"`

	// Featured status (owned by the featured engine)
	IsFeatured     bool       `gorm:"not null;default:false;index" json:"is_featured"`
	IsAutoFeatured bool       `gorm:"not null;default:false;index" json:"is_auto_featured"`
	FeaturedScore  int        `gorm:"type:int;not null;default:0;index:idx_featured_score,sort:desc" json:"featured_score"`
	FeaturedUntil  *time.Time `json:"featured_until,omitempty"`

	// Timestamps
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name explicitly
func (Property) TableName() string {
	return "properties"
}

// IsEligible reports whether the property may appear in public listings:
// approved by an admin, not deactivated, not sold.
func (p *Property) IsEligible() bool {
	return p.ApprovalStatus == ApprovalApproved && p.IsActive && !p.IsSold
}
