package db

import (
	"fmt"
	"slices"
	"strings"

	"github.com/balkashynov/truant/internal/models"
)

// CategoryNode is a category with its depth in the tree
type CategoryNode struct {
	models.Category
	Depth int
}

// ListCategories returns all categories ordered by ID
func ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := DB.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory retrieves a category by ID
func GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := DB.First(&category, id).Error; err != nil {
		return nil, notFound(err, "category", id)
	}
	return &category, nil
}

// CreateCategory adds a category under parentID (nil for a root)
func CreateCategory(title string, parentID *uint) (*models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("category title is required: %w", ErrInvalidValue)
	}
	if parentID != nil {
		if _, err := GetCategory(*parentID); err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
	}

	category := models.Category{Title: title, ParentID: parentID}
	if err := DB.Omit("Parent").Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames and re-parents a category. Moving a category under
// one of its own descendants is rejected with ErrCategoryCycle.
func UpdateCategory(id uint, title string, parentID *uint) (*models.Category, error) {
	category, err := GetCategory(id)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("category title is required: %w", ErrInvalidValue)
	}

	if parentID != nil {
		if err := checkAncestry(id, *parentID); err != nil {
			return nil, err
		}
	}

	category.Title = title
	category.ParentID = parentID
	if err := DB.Omit("Parent").Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// checkAncestry walks up from parentID and fails if it reaches id
func checkAncestry(id, parentID uint) error {
	seen := map[uint]bool{}
	current := &parentID
	for current != nil {
		if *current == id {
			return fmt.Errorf("category #%d under #%d: %w", id, parentID, ErrCategoryCycle)
		}
		if seen[*current] {
			// Existing data already loops; stop walking
			return nil
		}
		seen[*current] = true

		parent, err := GetCategory(*current)
		if err != nil {
			return fmt.Errorf("parent: %w", err)
		}
		current = parent.ParentID
	}
	return nil
}

// DeleteCategory removes a category. Fails while truants or child
// categories still reference it.
func DeleteCategory(id uint) error {
	if _, err := GetCategory(id); err != nil {
		return err
	}
	if err := DB.Delete(&models.Category{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete category #%d: %w", id, err)
	}
	return nil
}

// CategoryTree returns categories in depth-first order with their depth.
// Categories whose parent is missing are treated as roots.
func CategoryTree() ([]CategoryNode, error) {
	categories, err := ListCategories()
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]bool, len(categories))
	children := make(map[uint][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		byID[c.ID] = true
	}
	for _, c := range categories {
		if c.ParentID == nil || !byID[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[uint]bool, len(categories))
	nodes := make([]CategoryNode, 0, len(categories))
	var walk func(c models.Category, depth int)
	walk = func(c models.Category, depth int) {
		if visited[c.ID] {
			return
		}
		visited[c.ID] = true
		nodes = append(nodes, CategoryNode{Category: c, Depth: depth})
		for _, child := range children[c.ID] {
			walk(child, depth+1)
		}
	}

	for _, root := range roots {
		walk(root, 0)
	}
	// Anything left sits on a cycle that no root reaches
	for _, c := range categories {
		walk(c, 0)
	}

	return nodes, nil
}

// ListPriorities returns all priorities ordered by ID
func ListPriorities() ([]models.Priority, error) {
	var priorities []models.Priority
	if err := DB.Order("id ASC").Find(&priorities).Error; err != nil {
		return nil, err
	}
	return priorities, nil
}

// GetPriority retrieves a priority by ID
func GetPriority(id uint) (*models.Priority, error) {
	var priority models.Priority
	if err := DB.First(&priority, id).Error; err != nil {
		return nil, notFound(err, "priority", id)
	}
	return &priority, nil
}

// CreatePriority adds a priority; value must be one of models.PriorityValues
func CreatePriority(value string) (*models.Priority, error) {
	value, err := validateValue(value, models.PriorityValues)
	if err != nil {
		return nil, err
	}
	priority := models.Priority{Value: value}
	if err := DB.Create(&priority).Error; err != nil {
		return nil, fmt.Errorf("failed to create priority %q: %w", value, err)
	}
	return &priority, nil
}

// UpdatePriority changes the value of a priority
func UpdatePriority(id uint, value string) (*models.Priority, error) {
	priority, err := GetPriority(id)
	if err != nil {
		return nil, err
	}
	if priority.Value, err = validateValue(value, models.PriorityValues); err != nil {
		return nil, err
	}
	if err := DB.Save(priority).Error; err != nil {
		return nil, fmt.Errorf("failed to update priority #%d: %w", id, err)
	}
	return priority, nil
}

// DeletePriority removes a priority that no truant references
func DeletePriority(id uint) error {
	if _, err := GetPriority(id); err != nil {
		return err
	}
	if err := DB.Delete(&models.Priority{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete priority #%d: %w", id, err)
	}
	return nil
}

// ListStatuses returns all statuses ordered by ID
func ListStatuses() ([]models.Status, error) {
	var statuses []models.Status
	if err := DB.Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// GetStatus retrieves a status by ID
func GetStatus(id uint) (*models.Status, error) {
	var status models.Status
	if err := DB.First(&status, id).Error; err != nil {
		return nil, notFound(err, "status", id)
	}
	return &status, nil
}

// CreateStatus adds a status; value must be one of models.StatusValues
func CreateStatus(value string) (*models.Status, error) {
	value, err := validateValue(value, models.StatusValues)
	if err != nil {
		return nil, err
	}
	status := models.Status{Value: value}
	if err := DB.Create(&status).Error; err != nil {
		return nil, fmt.Errorf("failed to create status %q: %w", value, err)
	}
	return &status, nil
}

// UpdateStatus changes the value of a status
func UpdateStatus(id uint, value string) (*models.Status, error) {
	status, err := GetStatus(id)
	if err != nil {
		return nil, err
	}
	if status.Value, err = validateValue(value, models.StatusValues); err != nil {
		return nil, err
	}
	if err := DB.Save(status).Error; err != nil {
		return nil, fmt.Errorf("failed to update status #%d: %w", id, err)
	}
	return status, nil
}

// DeleteStatus removes a status that no truant references
func DeleteStatus(id uint) error {
	if _, err := GetStatus(id); err != nil {
		return err
	}
	if err := DB.Delete(&models.Status{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete status #%d: %w", id, err)
	}
	return nil
}

// StatusesByID loads the given statuses keyed by ID. Unknown IDs are
// simply absent from the result.
func StatusesByID(ids []uint) (map[uint]models.Status, error) {
	result := make(map[uint]models.Status, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var statuses []models.Status
	if err := DB.Where("id IN ?", ids).Find(&statuses).Error; err != nil {
		return nil, err
	}
	for _, s := range statuses {
		result[s.ID] = s
	}
	return result, nil
}

// validateValue normalizes value and checks it against the allowed set
func validateValue(value string, allowed []string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if !slices.Contains(allowed, value) {
		return "", fmt.Errorf("%q (use one of: %s): %w", value, strings.Join(allowed, ", "), ErrInvalidValue)
	}
	return value, nil
}
