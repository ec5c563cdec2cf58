package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/truant/internal/models"
)

// TruantRequest holds the data needed to create or replace a truant
type TruantRequest struct {
	Title       string
	Description string
	CategoryID  uint
	PriorityID  uint
	StatusID    uint
	Link        string
}

// TruantFilter narrows ListTruants by equality on the foreign keys
type TruantFilter struct {
	CategoryID *uint
	PriorityID *uint
	StatusID   *uint
}

// withRelations preloads everything a truant references
func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Category").Preload("Priority").Preload("Status")
}

// CreateTruant validates the references and stores a new truant
func CreateTruant(req TruantRequest) (*models.Truant, error) {
	if err := validateTruant(&req); err != nil {
		return nil, err
	}

	truant := models.Truant{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PriorityID:  req.PriorityID,
		StatusID:    req.StatusID,
		Link:        req.Link,
	}

	if err := DB.Omit(clause.Associations).Create(&truant).Error; err != nil {
		return nil, fmt.Errorf("failed to create truant: %w", err)
	}

	return GetTruantByID(truant.ID)
}

// UpdateTruant replaces every field of an existing truant
func UpdateTruant(id uint, req TruantRequest) (*models.Truant, error) {
	truant, err := GetTruantByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateTruant(&req); err != nil {
		return nil, err
	}

	err = DB.Model(&models.Truant{}).Where("id = ?", truant.ID).Updates(map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"category_id": req.CategoryID,
		"priority_id": req.PriorityID,
		"status_id":   req.StatusID,
		"link":        req.Link,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update truant #%d: %w", id, err)
	}

	return GetTruantByID(id)
}

// validateTruant trims the title and checks that every reference exists,
// so callers get ErrNotFound instead of a raw constraint failure
func validateTruant(req *TruantRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fmt.Errorf("truant title is required: %w", ErrInvalidValue)
	}
	if _, err := GetCategory(req.CategoryID); err != nil {
		return err
	}
	if _, err := GetPriority(req.PriorityID); err != nil {
		return err
	}
	if _, err := GetStatus(req.StatusID); err != nil {
		return err
	}
	return nil
}

// GetTruantByID retrieves a truant with its category, priority and status
func GetTruantByID(id uint) (*models.Truant, error) {
	var truant models.Truant
	if err := withRelations(DB).First(&truant, id).Error; err != nil {
		return nil, notFound(err, "truant", id)
	}
	return &truant, nil
}

// ListTruants retrieves truants matching the filter
func ListTruants(filter TruantFilter) ([]models.Truant, error) {
	query := withRelations(DB).Order("id ASC")
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.PriorityID != nil {
		query = query.Where("priority_id = ?", *filter.PriorityID)
	}
	if filter.StatusID != nil {
		query = query.Where("status_id = ?", *filter.StatusID)
	}

	var truants []models.Truant
	if err := query.Find(&truants).Error; err != nil {
		return nil, err
	}
	return truants, nil
}

// TruantsByID loads the given truants keyed by ID. Unknown IDs are absent.
func TruantsByID(ids []uint) (map[uint]models.Truant, error) {
	result := make(map[uint]models.Truant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var truants []models.Truant
	if err := withRelations(DB).Where("id IN ?", ids).Find(&truants).Error; err != nil {
		return nil, err
	}
	for _, t := range truants {
		result[t.ID] = t
	}
	return result, nil
}

// DeleteTruant removes a truant and, by cascade, its event links
func DeleteTruant(id uint) error {
	if _, err := GetTruantByID(id); err != nil {
		return err
	}
	if err := DB.Delete(&models.Truant{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete truant #%d: %w", id, err)
	}
	return nil
}
