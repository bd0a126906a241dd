package featured

import (
	"strings"
	"testing"
	"time"

	"findabode-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func baseSnapshot(now time.Time) Snapshot {
	return Snapshot{
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
		CreatedAt:      now,
	}
}

func TestScoreScenario(t *testing.T) {
	now := time.Now()
	snap := Snapshot{
		Views:          60,
		WishlistCount:  6,
		Contacts:       2,
		ImageCount:     5,
		AmenityCount:   4,
		DescriptionLen: 150,
		CreatedAt:      now.AddDate(0, 0, -3),
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
	}

	// 60 views + 30 wishlist + 6 contacts + 10 images + 8 amenities
	// + 5 description + 25 recency = 144
	assert.Equal(t, 144, Score(snap, now))
	assert.True(t, Qualifies(snap, now))
}

func TestScoreComponents(t *testing.T) {
	now := time.Now()

	t.Run("empty property scores only the recency bonus", func(t *testing.T) {
		assert.Equal(t, 25, Score(baseSnapshot(now), now))
	})

	t.Run("video adds a flat bonus", func(t *testing.T) {
		snap := baseSnapshot(now)
		snap.HasVideo = true
		assert.Equal(t, 25+15, Score(snap, now))
	})

	t.Run("few images score per image", func(t *testing.T) {
		snap := baseSnapshot(now)
		snap.ImageCount = 4
		assert.Equal(t, 25+8, Score(snap, now))
	})

	t.Run("five or more images score a flat bonus", func(t *testing.T) {
		snap := baseSnapshot(now)
		snap.ImageCount = 12
		assert.Equal(t, 25+10, Score(snap, now))
	})

	t.Run("description length tiers", func(t *testing.T) {
		snap := baseSnapshot(now)
		snap.DescriptionLen = 99
		assert.Equal(t, 25, Score(snap, now))
		snap.DescriptionLen = 100
		assert.Equal(t, 25+5, Score(snap, now))
		snap.DescriptionLen = 200
		assert.Equal(t, 25+10, Score(snap, now))
	})

	t.Run("recency bonus decays with age", func(t *testing.T) {
		cases := []struct {
			ageDays int
			bonus   int
		}{
			{0, 25},
			{6, 25},
			{7, 15},
			{13, 15},
			{14, 10},
			{29, 10},
			{30, 0},
			{365, 0},
		}
		for _, tc := range cases {
			snap := baseSnapshot(now)
			snap.CreatedAt = now.AddDate(0, 0, -tc.ageDays)
			assert.Equal(t, tc.bonus, Score(snap, now), "age %d days", tc.ageDays)
		}
	})

	t.Run("premium adds a flat bonus", func(t *testing.T) {
		snap := baseSnapshot(now)
		snap.IsPremium = true
		assert.Equal(t, 25+50, Score(snap, now))
	})

	t.Run("score is unaffected by sold or rejection state", func(t *testing.T) {
		snap := baseSnapshot(now)
		snap.Views = 10
		base := Score(snap, now)
		snap.IsSold = true
		snap.ApprovalStatus = models.ApprovalRejected
		assert.Equal(t, base, Score(snap, now))
	})
}

func qualifyingSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Views:          60,
		WishlistCount:  6,
		ImageCount:     5,
		AmenityCount:   3,
		DescriptionLen: 150,
		CreatedAt:      now.AddDate(0, 0, -3),
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
	}
}

func TestQualifies(t *testing.T) {
	now := time.Now()

	t.Run("fully qualifying snapshot passes", func(t *testing.T) {
		assert.True(t, Qualifies(qualifyingSnapshot(now), now))
	})

	t.Run("hard gates fail regardless of engagement", func(t *testing.T) {
		snap := qualifyingSnapshot(now)
		snap.ApprovalStatus = models.ApprovalPending
		assert.False(t, Qualifies(snap, now))

		snap = qualifyingSnapshot(now)
		snap.IsActive = false
		assert.False(t, Qualifies(snap, now))

		snap = qualifyingSnapshot(now)
		snap.IsSold = true
		assert.False(t, Qualifies(snap, now))
	})

	t.Run("sold disqualifies even a premium listing", func(t *testing.T) {
		snap := qualifyingSnapshot(now)
		snap.IsPremium = true
		snap.IsSold = true
		assert.False(t, Qualifies(snap, now))
	})

	t.Run("premium bypasses all engagement criteria", func(t *testing.T) {
		snap := Snapshot{
			IsPremium:      true,
			CreatedAt:      now.AddDate(0, 0, -90),
			ApprovalStatus: models.ApprovalApproved,
			IsActive:       true,
		}
		assert.True(t, Qualifies(snap, now))
	})

	t.Run("older than thirty days fails", func(t *testing.T) {
		snap := qualifyingSnapshot(now)
		snap.CreatedAt = now.AddDate(0, 0, -31)
		assert.False(t, Qualifies(snap, now))
	})

	t.Run("needs at least five images", func(t *testing.T) {
		snap := qualifyingSnapshot(now)
		snap.ImageCount = 4
		assert.False(t, Qualifies(snap, now))
	})

	t.Run("views or wishlist threshold", func(t *testing.T) {
		snap := qualifyingSnapshot(now)
		snap.Views = 49
		snap.WishlistCount = 4
		assert.False(t, Qualifies(snap, now))

		snap.Views = 50
		assert.True(t, Qualifies(snap, now))

		snap.Views = 0
		snap.WishlistCount = 5
		assert.True(t, Qualifies(snap, now))
	})

	t.Run("needs description and amenities together", func(t *testing.T) {
		snap := qualifyingSnapshot(now)
		snap.DescriptionLen = 99
		assert.False(t, Qualifies(snap, now))

		snap = qualifyingSnapshot(now)
		snap.AmenityCount = 2
		assert.False(t, Qualifies(snap, now))
	})
}

func TestSnapshotOf(t *testing.T) {
	created := time.Now().AddDate(0, 0, -2)
	p := models.Property{
		Views:          7,
		WishlistCount:  3,
		Contacts:       1,
		Images:         []string{"a.jpg", "b.jpg"},
		Amenities:      []string{"parking", "gym", "pool"},
		Description:    strings.Repeat("x", 120),
		VideoURL:       "https://example.com/tour.mp4",
		IsPremium:      true,
		CreatedAt:      created,
		ApprovalStatus: models.ApprovalApproved,
		IsActive:       true,
		IsSold:         false,
	}

	snap := SnapshotOf(&p)
	assert.Equal(t, 7, snap.Views)
	assert.Equal(t, 3, snap.WishlistCount)
	assert.Equal(t, 1, snap.Contacts)
	assert.Equal(t, 2, snap.ImageCount)
	assert.Equal(t, 3, snap.AmenityCount)
	assert.Equal(t, 120, snap.DescriptionLen)
	assert.True(t, snap.HasVideo)
	assert.True(t, snap.IsPremium)
	assert.Equal(t, created, snap.CreatedAt)
}
