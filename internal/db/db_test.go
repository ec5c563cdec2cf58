package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/truant/internal/models"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "truant.db")))
	t.Cleanup(func() { _ = Close() })
}

func seededIDs(t *testing.T) (category, priority, status uint) {
	t.Helper()
	require.NoError(t, Seed())

	var c models.Category
	require.NoError(t, DB.Where("title = ?", "Projects").First(&c).Error)
	var p models.Priority
	require.NoError(t, DB.Where("value = ?", "high").First(&p).Error)
	var s models.Status
	require.NoError(t, DB.Where("value = ?", "in-progress").First(&s).Error)
	return c.ID, p.ID, s.ID
}

func TestInitializeRequiresPath(t *testing.T) {
	assert.Error(t, Initialize(""))
}

func TestSeedIsIdempotent(t *testing.T) {
	setupDB(t)

	require.NoError(t, Seed())
	require.NoError(t, Seed())

	priorities, err := ListPriorities()
	require.NoError(t, err)
	assert.Len(t, priorities, 4)

	statuses, err := ListStatuses()
	require.NoError(t, err)
	assert.Len(t, statuses, 3)

	categories, err := ListCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 6)

	truants, err := ListTruants(TruantFilter{})
	require.NoError(t, err)
	require.Len(t, truants, 2)
	assert.Equal(t, "Launch Marketing Campaign", truants[0].Title)
	assert.Equal(t, "Projects", truants[0].Category.Title)
	assert.Equal(t, "very-high", truants[0].Priority.Value)
	assert.Equal(t, "new", truants[0].Status.Value)
}

func TestCategoryTree(t *testing.T) {
	setupDB(t)
	require.NoError(t, Seed())

	nodes, err := CategoryTree()
	require.NoError(t, err)

	var got []string
	for _, n := range nodes {
		got = append(got, n.Title)
		if n.Title == "Work" || n.Title == "Personal" {
			assert.Equal(t, 0, n.Depth)
		} else {
			assert.Equal(t, 1, n.Depth)
		}
	}
	assert.Equal(t, []string{"Work", "Projects", "Meetings", "Personal", "Shopping", "Family"}, got)
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	setupDB(t)

	root, err := CreateCategory("Root", nil)
	require.NoError(t, err)
	child, err := CreateCategory("Child", &root.ID)
	require.NoError(t, err)
	grandchild, err := CreateCategory("Grandchild", &child.ID)
	require.NoError(t, err)

	_, err = UpdateCategory(root.ID, "Root", &grandchild.ID)
	assert.ErrorIs(t, err, ErrCategoryCycle)

	_, err = UpdateCategory(root.ID, "Root", &root.ID)
	assert.ErrorIs(t, err, ErrCategoryCycle)

	// Moving a leaf elsewhere is fine
	moved, err := UpdateCategory(grandchild.ID, "Moved", &root.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, *moved.ParentID)
	assert.Equal(t, "Moved", moved.Title)

	// And back to the top level
	moved, err = UpdateCategory(grandchild.ID, "Moved", nil)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)
}

func TestCreateCategoryValidation(t *testing.T) {
	setupDB(t)

	_, err := CreateCategory("   ", nil)
	assert.ErrorIs(t, err, ErrInvalidValue)

	missing := uint(999)
	_, err = CreateCategory("Orphan", &missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReferencedCategoryFails(t *testing.T) {
	setupDB(t)
	categoryID, _, _ := seededIDs(t)

	// Projects is referenced by the sample truants
	assert.Error(t, DeleteCategory(categoryID))

	_, err := GetCategory(categoryID)
	assert.NoError(t, err)

	assert.ErrorIs(t, DeleteCategory(12345), ErrNotFound)
}

func TestPriorityAndStatusValidation(t *testing.T) {
	setupDB(t)

	_, err := CreatePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidValue)

	p, err := CreatePriority(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, "high", p.Value)

	// Unique constraint
	_, err = CreatePriority("high")
	assert.Error(t, err)

	s, err := CreateStatus("new")
	require.NoError(t, err)

	s, err = UpdateStatus(s.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, "done", s.Value)

	_, err = UpdateStatus(s.ID, "blocked")
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, DeleteStatus(s.ID))
	_, err = GetStatus(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusesByIDSkipsUnknown(t *testing.T) {
	setupDB(t)
	_, _, statusID := seededIDs(t)

	got, err := StatusesByID([]uint{statusID, 404})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "in-progress", got[statusID].Value)

	empty, err := StatusesByID(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTruantLifecycle(t *testing.T) {
	setupDB(t)
	categoryID, priorityID, statusID := seededIDs(t)

	created, err := CreateTruant(TruantRequest{
		Title:      "  Renew passport ",
		CategoryID: categoryID,
		PriorityID: priorityID,
		StatusID:   statusID,
		Link:       "https://gov.example/passport",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", created.Title)
	assert.Equal(t, "high", created.Priority.Value)
	assert.Equal(t, "in-progress", created.Status.Value)

	_, err = CreateTruant(TruantRequest{Title: "Bad", CategoryID: 999, PriorityID: priorityID, StatusID: statusID})
	assert.ErrorIs(t, err, ErrNotFound)

	filtered, err := ListTruants(TruantFilter{PriorityID: &priorityID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, created.ID, filtered[0].ID)

	updated, err := UpdateTruant(created.ID, TruantRequest{
		Title:       "Renew passport",
		Description: "before summer",
		CategoryID:  categoryID,
		PriorityID:  priorityID,
		StatusID:    statusID,
	})
	require.NoError(t, err)
	assert.Equal(t, "before summer", updated.Description)
	assert.Empty(t, updated.Link)

	byID, err := TruantsByID([]uint{created.ID, 777})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	require.NoError(t, DeleteTruant(created.ID))
	_, err = GetTruantByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventLinks(t *testing.T) {
	setupDB(t)
	require.NoError(t, Seed())

	truants, err := ListTruants(TruantFilter{})
	require.NoError(t, err)
	truantID := truants[0].ID

	_, err = LinkEvent("page-1", truantID, nil)
	require.NoError(t, err)
	_, err = LinkEvent("page-2", truantID, nil)
	require.NoError(t, err)

	// One link per remote page
	_, err = LinkEvent("page-1", truantID, nil)
	assert.Error(t, err)

	_, err = LinkEvent("page-3", 999, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	links, err := EventLinksForTruant(truantID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "page-1", links[0].EventPageID)

	require.NoError(t, UnlinkEvent("page-1"))
	require.NoError(t, UnlinkEvent("page-1"))

	links, err = EventLinksForTruant(truantID)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	// Deleting the truant cascades to its links
	require.NoError(t, DeleteTruant(truantID))
	links, err = EventLinksForTruant(truantID)
	require.NoError(t, err)
	assert.Empty(t, links)
}
