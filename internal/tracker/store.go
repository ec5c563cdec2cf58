package tracker

import (
	"github.com/balkashynov/truant/internal/db"
	"github.com/balkashynov/truant/internal/models"
)

// Store is the Local implementation backed by the package-level database
type Store struct{}

func (Store) StatusesByID(ids []uint) (map[uint]models.Status, error) {
	return db.StatusesByID(ids)
}

func (Store) TruantsByID(ids []uint) (map[uint]models.Truant, error) {
	return db.TruantsByID(ids)
}

func (Store) LinkEvent(eventPageID string, truantID uint, statusID *uint) (*models.EventLink, error) {
	return db.LinkEvent(eventPageID, truantID, statusID)
}

func (Store) UnlinkEvent(eventPageID string) error {
	return db.UnlinkEvent(eventPageID)
}

func (Store) EventLinksForTruant(truantID uint) ([]models.EventLink, error) {
	return db.EventLinksForTruant(truantID)
}
