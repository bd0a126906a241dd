package featured

import (
	"errors"
	"fmt"
	"log"
	"time"

	"findabode-backend/internal/models"

	"gorm.io/gorm"
)

const (
	// ManualCap is the maximum number of concurrently admin-featured properties
	ManualCap = 10
	// ManualTTLDays is how long a manual featured slot lasts before the
	// reconciliation pass expires it
	ManualTTLDays = 30
	// ListSize is the total length of the public featured list
	ListSize = 8
)

var (
	// ErrCapacityExceeded is returned when all manual featured slots are taken
	ErrCapacityExceeded = errors.New("featured capacity exceeded")
	// ErrNotFound is returned when the referenced property does not exist
	ErrNotFound = errors.New("property not found")
)

// Service applies the scoring and qualification rules to persisted properties
type Service struct {
	db *gorm.DB
}

// NewService creates a new featured service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// StatusResult is the outcome of one recomputation
type StatusResult struct {
	Qualifies bool `json:"qualifies"`
	Score     int  `json:"score"`
}

// RecomputeStatus recomputes and persists the auto-featured flag and score
// for one property. Callers invoke it after any mutation that touches the
// scored attributes: creation, approval, view increment, wishlist changes,
// content updates. Idempotent for an unchanged property.
func (s *Service) RecomputeStatus(id string) (StatusResult, error) {
	var p models.Property
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResult{}, ErrNotFound
		}
		return StatusResult{}, fmt.Errorf("failed to load property %s: %w", id, err)
	}
	return s.recompute(&p, time.Now())
}

func (s *Service) recompute(p *models.Property, now time.Time) (StatusResult, error) {
	snap := SnapshotOf(p)
	result := StatusResult{
		Qualifies: Qualifies(snap, now),
		Score:     Score(snap, now),
	}

	err := s.db.Model(&models.Property{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"is_auto_featured": result.Qualifies,
			"featured_score":   result.Score,
		}).Error
	if err != nil {
		return StatusResult{}, fmt.Errorf("failed to save featured status for property %s: %w", p.ID, err)
	}

	p.IsAutoFeatured = result.Qualifies
	p.FeaturedScore = result.Score
	return result, nil
}

// ToggleManual flips the manual featured flag of a property. Turning it on
// is rejected with ErrCapacityExceeded when all slots are taken, and
// otherwise grants a slot that expires after ManualTTLDays. Turning it off
// always succeeds and clears the expiry.
//
// The count-then-set here is not serialized against concurrent toggles;
// under racing admin requests the cap is best-effort (see DESIGN.md).
func (s *Service) ToggleManual(id string) (bool, error) {
	var p models.Property
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to load property %s: %w", id, err)
	}

	if p.IsFeatured {
		err := s.db.Model(&models.Property{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_featured":    false,
				"featured_until": nil,
			}).Error
		if err != nil {
			return false, fmt.Errorf("failed to unfeature property %s: %w", id, err)
		}
		return false, nil
	}

	var count int64
	if err := s.db.Model(&models.Property{}).Where("is_featured = ?", true).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count featured properties: %w", err)
	}
	if count >= ManualCap {
		return false, ErrCapacityExceeded
	}

	until := time.Now().AddDate(0, 0, ManualTTLDays)
	err := s.db.Model(&models.Property{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_featured":    true,
			"featured_until": until,
		}).Error
	if err != nil {
		return false, fmt.Errorf("failed to feature property %s: %w", id, err)
	}
	return true, nil
}

// ClearFeatured removes a property from both manual and auto featured sets.
// Used when an admin rejects a property: rejection overrides curation.
func (s *Service) ClearFeatured(id string) error {
	err := s.db.Model(&models.Property{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_featured":      false,
			"is_auto_featured": false,
			"featured_until":   nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to clear featured flags for property %s: %w", id, err)
	}
	return nil
}

// ReconcileResult holds the aggregate counts of one reconciliation pass
type ReconcileResult struct {
	Checked       int `json:"checked"`
	Qualified     int `json:"qualified"`
	Disqualified  int `json:"disqualified"`
	ExpiredManual int `json:"expired_manual"`
	Errors        int `json:"errors"`
}

// Reconcile sweeps all eligible properties, recomputing featured status for
// each, then expires stale manual featured slots. Manually featured
// properties are never recomputed by the sweep; once their slot expires here
// they fall back into the sweep on the next pass. A failure on one property
// is logged and counted, never fatal; only a bulk fetch failure aborts.
func (s *Service) Reconcile() (ReconcileResult, error) {
	now := time.Now()
	var result ReconcileResult

	var properties []models.Property
	err := s.db.
		Where("is_active = ? AND approval_status = ? AND is_sold = ?", true, models.ApprovalApproved, false).
		Find(&properties).Error
	if err != nil {
		return result, fmt.Errorf("failed to fetch eligible properties: %w", err)
	}

	log.Printf("Featured: Reconciling %d eligible properties", len(properties))

	for i := range properties {
		p := &properties[i]
		// Manual curation is never overwritten by the sweep
		if p.IsFeatured {
			continue
		}

		wasAuto := p.IsAutoFeatured
		r, err := s.recompute(p, now)
		if err != nil {
			log.Printf("Featured: Failed to recompute property %s: %v", p.ID, err)
			result.Errors++
			continue
		}

		result.Checked++
		if r.Qualifies && !wasAuto {
			result.Qualified++
		} else if !r.Qualifies && wasAuto {
			result.Disqualified++
		}
	}

	var expired []models.Property
	err = s.db.
		Where("is_featured = ? AND featured_until IS NOT NULL AND featured_until < ?", true, now).
		Find(&expired).Error
	if err != nil {
		return result, fmt.Errorf("failed to fetch expired featured properties: %w", err)
	}

	for i := range expired {
		p := &expired[i]
		err := s.db.Model(&models.Property{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"is_featured":    false,
				"featured_until": nil,
			}).Error
		if err != nil {
			log.Printf("Featured: Failed to expire manual slot for property %s: %v", p.ID, err)
			result.Errors++
			continue
		}
		result.ExpiredManual++
	}

	log.Printf("Featured: Reconciliation completed. Checked: %d, Qualified: %d, Disqualified: %d, Expired: %d, Errors: %d",
		result.Checked, result.Qualified, result.Disqualified, result.ExpiredManual, result.Errors)

	return result, nil
}

// FeaturedList is the composed public featured selection
type FeaturedList struct {
	Properties  []models.Property `json:"properties"`
	ManualCount int               `json:"manual_count"`
	AutoCount   int               `json:"auto_count"`
	Total       int               `json:"total"`
}

// ComposeList merges manually featured properties (newest first) with
// auto-featured ones (score order) into a list of at most ListSize entries.
// Manual entries always come first regardless of score.
func (s *Service) ComposeList() (FeaturedList, error) {
	var list FeaturedList

	var manual []models.Property
	err := s.db.
		Where("is_featured = ? AND is_active = ? AND approval_status = ? AND is_sold = ?",
			true, true, models.ApprovalApproved, false).
		Order("created_at DESC").
		Limit(ManualCap).
		Find(&manual).Error
	if err != nil {
		return list, fmt.Errorf("failed to fetch manually featured properties: %w", err)
	}

	var auto []models.Property
	if autoLimit := ListSize - len(manual); autoLimit > 0 {
		err := s.db.
			Where("is_auto_featured = ? AND is_featured = ? AND is_active = ? AND approval_status = ? AND is_sold = ?",
				true, false, true, models.ApprovalApproved, false).
			Order("featured_score DESC, created_at DESC").
			Limit(autoLimit).
			Find(&auto).Error
		if err != nil {
			return list, fmt.Errorf("failed to fetch auto-featured properties: %w", err)
		}
	}

	combined := append(manual, auto...)
	if len(combined) > ListSize {
		combined = combined[:ListSize]
	}

	list.Properties = combined
	list.ManualCount = len(manual)
	if list.ManualCount > len(combined) {
		list.ManualCount = len(combined)
	}
	list.AutoCount = len(combined) - list.ManualCount
	list.Total = len(combined)
	return list, nil
}
