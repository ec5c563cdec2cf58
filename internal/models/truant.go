package models

import "time"

// Category groups truants; ParentID forms a tree of any depth
type Category struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	ParentID *uint  `gorm:"column:parent_id" json:"parent_id"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
}

// Priority is one of PriorityValues
type Priority struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Value string `gorm:"unique;not null" json:"value"`
}

// Status is one of StatusValues
type Status struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Value string `gorm:"unique;not null" json:"value"`
}

var (
	PriorityValues = []string{"very-high", "high", "medium", "low"}
	StatusValues   = []string{"done", "in-progress", "new"}
)

// Truant represents a tracked task classified by category, priority and status
type Truant struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	CategoryID  uint   `gorm:"not null" json:"category_id"`
	PriorityID  uint   `gorm:"not null" json:"priority_id"`
	StatusID    uint   `gorm:"not null" json:"status_id"`
	Link        string `json:"link"`

	// Relationships
	Category Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Priority Priority `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"priority"`
	Status   Status   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"status"`
}

// EventLink is the local reference to a remote event page that was created
// for a truant. It is written after the remote page exists.
type EventLink struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	EventPageID string    `gorm:"uniqueIndex;not null" json:"event_page_id"`
	TruantID    uint      `gorm:"not null;index" json:"truant_id"`
	StatusID    *uint     `json:"status_id"`

	Truant Truant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
