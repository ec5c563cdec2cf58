package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/balkashynov/truant/internal/logger"
)

// ListDays returns one page of days. With q.WithEvents set every day on the
// page gets its events attached.
func (m *Mapper) ListDays(ctx context.Context, q DayQuery) (*DayPage, error) {
	resp, err := m.queryPage(ctx, m.cfg.DaysDB, &notionapi.DatabaseQueryRequest{
		Filter:      textFilter(q.Filter),
		StartCursor: notionapi.Cursor(q.Cursor),
		PageSize:    clampPageSize(q.PageSize),
	})
	if err != nil {
		logger.Error("Notion: failed to list days", err, zap.String("cursor", q.Cursor))
		return nil, fmt.Errorf("failed to list days: %w", err)
	}

	days := make([]Day, 0, len(resp.Results))
	for i := range resp.Results {
		days = append(days, toDay(&resp.Results[i]))
	}

	if q.WithEvents {
		days, err = fanOut(ctx, m.cfg.FanOut, days, func(ctx context.Context, d Day) (Day, error) {
			events, err := m.EventsForDay(ctx, d.ID)
			if err != nil {
				return Day{}, err
			}
			d.Events = events
			return d, nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &DayPage{Days: days, NextCursor: nextCursor(resp)}, nil
}

// GetDay fetches one day with its events
func (m *Mapper) GetDay(ctx context.Context, id string) (*Day, error) {
	if id == "" {
		return nil, fmt.Errorf("day: %w", ErrMissingID)
	}

	page, err := m.get(ctx, id)
	if err != nil {
		logger.Error("Notion: failed to fetch day", err, zap.String("page_id", id))
		return nil, fmt.Errorf("failed to fetch day %s: %w", id, err)
	}

	day := toDay(page)
	if day.Events, err = m.EventsForDay(ctx, day.ID); err != nil {
		return nil, err
	}
	return &day, nil
}

func (m *Mapper) CreateDay(ctx context.Context, in DayInput) (*Day, error) {
	if err := m.requireCollection(m.cfg.DaysDB); err != nil {
		return nil, err
	}
	props, err := in.properties()
	if err != nil {
		return nil, err
	}

	page, err := m.create(ctx, m.cfg.DaysDB, props)
	if err != nil {
		logger.Error("Notion: failed to create day", err, zap.String("title", in.Title))
		return nil, fmt.Errorf("failed to create day: %w", err)
	}

	day := toDay(page)
	return &day, nil
}

func (m *Mapper) UpdateDay(ctx context.Context, id string, in DayInput) (*Day, error) {
	if id == "" {
		return nil, fmt.Errorf("day: %w", ErrMissingID)
	}
	props, err := in.properties()
	if err != nil {
		return nil, err
	}

	page, err := m.update(ctx, id, &notionapi.PageUpdateRequest{Properties: props})
	if err != nil {
		logger.Error("Notion: failed to update day", err, zap.String("page_id", id))
		return nil, fmt.Errorf("failed to update day %s: %w", id, err)
	}

	day := toDay(page)
	return &day, nil
}

func (m *Mapper) ArchiveDay(ctx context.Context, id string) error {
	return m.archive(ctx, "day", id, true)
}

func nextCursor(resp *notionapi.DatabaseQueryResponse) string {
	if !resp.HasMore {
		return ""
	}
	return string(resp.NextCursor)
}
