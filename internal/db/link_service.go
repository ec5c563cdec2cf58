package db

import (
	"fmt"

	"github.com/balkashynov/truant/internal/models"
)

// LinkEvent records that the remote event page belongs to a truant
func LinkEvent(eventPageID string, truantID uint, statusID *uint) (*models.EventLink, error) {
	if eventPageID == "" {
		return nil, fmt.Errorf("event page id is required: %w", ErrInvalidValue)
	}
	if _, err := GetTruantByID(truantID); err != nil {
		return nil, err
	}

	link := models.EventLink{
		EventPageID: eventPageID,
		TruantID:    truantID,
		StatusID:    statusID,
	}
	if err := DB.Omit("Truant").Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to link event %s: %w", eventPageID, err)
	}
	return &link, nil
}

// UnlinkEvent removes the local reference to a remote event page. Removing
// a link that does not exist is not an error.
func UnlinkEvent(eventPageID string) error {
	if err := DB.Where("event_page_id = ?", eventPageID).Delete(&models.EventLink{}).Error; err != nil {
		return fmt.Errorf("failed to unlink event %s: %w", eventPageID, err)
	}
	return nil
}

// EventLinksForTruant returns the event links of a truant, oldest first
func EventLinksForTruant(truantID uint) ([]models.EventLink, error) {
	var links []models.EventLink
	err := DB.Where("truant_id = ?", truantID).Order("created_at ASC, id ASC").Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
