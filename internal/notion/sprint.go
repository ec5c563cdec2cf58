package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/balkashynov/truant/internal/logger"
)

// ListSprints returns every sprint in the collection in remote order.
// Days are not expanded.
func (m *Mapper) ListSprints(ctx context.Context) ([]Sprint, error) {
	pages, err := m.queryAll(ctx, m.cfg.SprintsDB, nil)
	if err != nil {
		logger.Error("Notion: failed to list sprints", err)
		return nil, fmt.Errorf("failed to list sprints: %w", err)
	}

	sprints := make([]Sprint, 0, len(pages))
	for i := range pages {
		sprints = append(sprints, toSprint(&pages[i]))
	}
	return sprints, nil
}

// ListSprintsWithDetails returns every sprint with its days and their
// events expanded
func (m *Mapper) ListSprintsWithDetails(ctx context.Context) ([]Sprint, error) {
	sprints, err := m.ListSprints(ctx)
	if err != nil {
		return nil, err
	}

	return fanOut(ctx, m.cfg.FanOut, sprints, func(ctx context.Context, s Sprint) (Sprint, error) {
		return m.expandSprint(ctx, s)
	})
}

// GetSprint fetches one sprint with days and events expanded
func (m *Mapper) GetSprint(ctx context.Context, id string) (*Sprint, error) {
	sprint, err := m.GetSprintRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	expanded, err := m.expandSprint(ctx, *sprint)
	if err != nil {
		return nil, err
	}
	return &expanded, nil
}

// GetSprintRecord fetches the sprint page alone; Days stays empty and only
// DayIDs are filled
func (m *Mapper) GetSprintRecord(ctx context.Context, id string) (*Sprint, error) {
	if id == "" {
		return nil, fmt.Errorf("sprint: %w", ErrMissingID)
	}

	page, err := m.get(ctx, id)
	if err != nil {
		logger.Error("Notion: failed to fetch sprint", err, zap.String("page_id", id))
		return nil, fmt.Errorf("failed to fetch sprint %s: %w", id, err)
	}

	sprint := toSprint(page)
	return &sprint, nil
}

func (m *Mapper) CreateSprint(ctx context.Context, in SprintInput) (*Sprint, error) {
	if err := m.requireCollection(m.cfg.SprintsDB); err != nil {
		return nil, err
	}
	props, err := in.properties()
	if err != nil {
		return nil, err
	}

	page, err := m.create(ctx, m.cfg.SprintsDB, props)
	if err != nil {
		logger.Error("Notion: failed to create sprint", err, zap.String("title", in.Title))
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}

	sprint := toSprint(page)
	return &sprint, nil
}

// UpdateSprint overwrites every property, including the days relation
func (m *Mapper) UpdateSprint(ctx context.Context, id string, in SprintInput) (*Sprint, error) {
	if id == "" {
		return nil, fmt.Errorf("sprint: %w", ErrMissingID)
	}
	props, err := in.properties()
	if err != nil {
		return nil, err
	}

	page, err := m.update(ctx, id, &notionapi.PageUpdateRequest{Properties: props})
	if err != nil {
		logger.Error("Notion: failed to update sprint", err, zap.String("page_id", id))
		return nil, fmt.Errorf("failed to update sprint %s: %w", id, err)
	}

	sprint := toSprint(page)
	return &sprint, nil
}

func (m *Mapper) ArchiveSprint(ctx context.Context, id string) error {
	return m.archive(ctx, "sprint", id, true)
}

// expandSprint fetches every referenced day, then every day's events.
// Day order follows the relation order.
func (m *Mapper) expandSprint(ctx context.Context, s Sprint) (Sprint, error) {
	days, err := fanOut(ctx, m.cfg.FanOut, s.DayIDs, func(ctx context.Context, dayID string) (Day, error) {
		page, err := m.get(ctx, dayID)
		if err != nil {
			logger.Error("Notion: failed to fetch day", err,
				zap.String("sprint_id", s.ID), zap.String("page_id", dayID))
			return Day{}, fmt.Errorf("failed to fetch day %s: %w", dayID, err)
		}

		day := toDay(page)
		if day.Events, err = m.EventsForDay(ctx, day.ID); err != nil {
			return Day{}, err
		}
		return day, nil
	})
	if err != nil {
		return Sprint{}, err
	}

	s.Days = days
	return s, nil
}
