package featured

import (
	"time"

	"findabode-backend/internal/models"
)

// Snapshot is an immutable view of the property attributes the featured
// engine computes over. Taking a copy keeps Score and Qualifies pure and
// independent of the persisted row.
type Snapshot struct {
	Views          int
	WishlistCount  int
	Contacts       int
	ImageCount     int
	AmenityCount   int
	DescriptionLen int
	HasVideo       bool
	IsPremium      bool
	CreatedAt      time.Time

	ApprovalStatus models.ApprovalStatus
	IsActive       bool
	IsSold         bool
}

// SnapshotOf captures the scoring-relevant attributes of a property.
func SnapshotOf(p *models.Property) Snapshot {
	return Snapshot{
		Views:          p.Views,
		WishlistCount:  p.WishlistCount,
		Contacts:       p.Contacts,
		ImageCount:     len(p.Images),
		AmenityCount:   len(p.Amenities),
		DescriptionLen: len(p.Description),
		HasVideo:       p.VideoURL != "",
		IsPremium:      p.IsPremium,
		CreatedAt:      p.CreatedAt,
		ApprovalStatus: p.ApprovalStatus,
		IsActive:       p.IsActive,
		IsSold:         p.IsSold,
	}
}

// ageInDays is the whole number of days between creation and now.
func ageInDays(createdAt, now time.Time) int {
	return int(now.Sub(createdAt).Hours() / 24)
}

// Score computes the featured score for a snapshot at the given time.
// The recency bonus depends on now, so the same snapshot scores lower as
// it ages.
func Score(s Snapshot, now time.Time) int {
	score := s.Views
	score += s.WishlistCount * 5
	score += s.Contacts * 3

	if s.HasVideo {
		score += 15
	}

	if s.ImageCount >= 5 {
		score += 10
	} else {
		score += s.ImageCount * 2
	}

	score += s.AmenityCount * 2

	if s.DescriptionLen >= 200 {
		score += 10
	} else if s.DescriptionLen >= 100 {
		score += 5
	}

	switch age := ageInDays(s.CreatedAt, now); {
	case age < 7:
		score += 25
	case age < 14:
		score += 15
	case age < 30:
		score += 10
	}

	if s.IsPremium {
		score += 50
	}

	return score
}

// Qualifies decides whether a property is eligible for automatic featuring.
// It is evaluated from scratch on every call and is independent of the
// score and of the currently stored featured flags.
func Qualifies(s Snapshot, now time.Time) bool {
	if s.ApprovalStatus != models.ApprovalApproved || !s.IsActive || s.IsSold {
		return false
	}

	// Premium listings bypass the engagement criteria entirely
	if s.IsPremium {
		return true
	}

	if ageInDays(s.CreatedAt, now) > 30 {
		return false
	}
	if s.ImageCount < 5 {
		return false
	}
	if s.Views < 50 && s.WishlistCount < 5 {
		return false
	}
	return s.DescriptionLen >= 100 && s.AmenityCount >= 3
}
