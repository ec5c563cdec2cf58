package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/truant/internal/models"
)

var seedCategories = map[string][]string{
	"Work":     {"Projects", "Meetings"},
	"Personal": {"Shopping", "Family"},
}

// Seed fills the lookup tables and a couple of sample truants. Running it
// again leaves existing rows alone.
func Seed() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		for _, value := range models.PriorityValues {
			if err := tx.Where(models.Priority{Value: value}).FirstOrCreate(&models.Priority{}).Error; err != nil {
				return fmt.Errorf("seed priority %q: %w", value, err)
			}
		}
		for _, value := range models.StatusValues {
			if err := tx.Where(models.Status{Value: value}).FirstOrCreate(&models.Status{}).Error; err != nil {
				return fmt.Errorf("seed status %q: %w", value, err)
			}
		}

		for _, parentTitle := range []string{"Work", "Personal"} {
			parent, err := seedCategory(tx, parentTitle, nil)
			if err != nil {
				return err
			}
			for _, childTitle := range seedCategories[parentTitle] {
				if _, err := seedCategory(tx, childTitle, &parent.ID); err != nil {
					return err
				}
			}
		}

		var priority models.Priority
		var status models.Status
		var category models.Category
		if err := tx.Where("value = ?", "very-high").First(&priority).Error; err != nil {
			return err
		}
		if err := tx.Where("value = ?", "new").First(&status).Error; err != nil {
			return err
		}
		if err := tx.Where("title = ?", "Projects").First(&category).Error; err != nil {
			return err
		}

		samples := []models.Truant{
			{
				Title:       "Launch Marketing Campaign",
				Description: "Finalize and launch Q3 marketing campaign",
				Link:        "https://example.com/campaign",
			},
			{
				Title:       "Update Client Contracts",
				Description: "Review and update expiring client contracts",
			},
		}
		for _, sample := range samples {
			var count int64
			if err := tx.Model(&models.Truant{}).Where("title = ?", sample.Title).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			sample.CategoryID = category.ID
			sample.PriorityID = priority.ID
			sample.StatusID = status.ID
			if err := tx.Omit(clause.Associations).Create(&sample).Error; err != nil {
				return fmt.Errorf("seed truant %q: %w", sample.Title, err)
			}
		}
		return nil
	})
}

func seedCategory(tx *gorm.DB, title string, parentID *uint) (*models.Category, error) {
	var category models.Category
	query := tx.Where("title = ?", title)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	err := query.First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = models.Category{Title: title, ParentID: parentID}
	if err := tx.Omit("Parent").Create(&category).Error; err != nil {
		return nil, fmt.Errorf("seed category %q: %w", title, err)
	}
	return &category, nil
}
