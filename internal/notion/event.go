package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/balkashynov/truant/internal/logger"
)

func (m *Mapper) ListEvents(ctx context.Context, q EventQuery) (*EventPage, error) {
	resp, err := m.queryPage(ctx, m.cfg.EventsDB, &notionapi.DatabaseQueryRequest{
		Filter:      textFilter(q.Filter),
		StartCursor: notionapi.Cursor(q.Cursor),
		PageSize:    clampPageSize(q.PageSize),
	})
	if err != nil {
		logger.Error("Notion: failed to list events", err, zap.String("cursor", q.Cursor))
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]Event, 0, len(resp.Results))
	for i := range resp.Results {
		events = append(events, toEvent(&resp.Results[i]))
	}
	return &EventPage{Events: events, NextCursor: nextCursor(resp)}, nil
}

// EventsForDay returns every event whose day relation contains dayID
func (m *Mapper) EventsForDay(ctx context.Context, dayID string) ([]Event, error) {
	if dayID == "" {
		return nil, fmt.Errorf("day: %w", ErrMissingID)
	}

	pages, err := m.queryAll(ctx, m.cfg.EventsDB, relationFilter(eventDay, dayID))
	if err != nil {
		logger.Error("Notion: failed to fetch events for day", err, zap.String("day_id", dayID))
		return nil, fmt.Errorf("failed to fetch events for day %s: %w", dayID, err)
	}

	events := make([]Event, 0, len(pages))
	for i := range pages {
		events = append(events, toEvent(&pages[i]))
	}
	return events, nil
}

func (m *Mapper) GetEvent(ctx context.Context, id string) (*Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event: %w", ErrMissingID)
	}

	page, err := m.get(ctx, id)
	if err != nil {
		logger.Error("Notion: failed to fetch event", err, zap.String("page_id", id))
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}

	event := toEvent(page)
	return &event, nil
}

func (m *Mapper) CreateEvent(ctx context.Context, in EventInput) (*Event, error) {
	if err := m.requireCollection(m.cfg.EventsDB); err != nil {
		return nil, err
	}

	page, err := m.create(ctx, m.cfg.EventsDB, in.properties())
	if err != nil {
		logger.Error("Notion: failed to create event", err, zap.String("title", in.Title))
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	event := toEvent(page)
	return &event, nil
}

func (m *Mapper) UpdateEvent(ctx context.Context, id string, in EventInput) (*Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event: %w", ErrMissingID)
	}

	page, err := m.update(ctx, id, &notionapi.PageUpdateRequest{Properties: in.properties()})
	if err != nil {
		logger.Error("Notion: failed to update event", err, zap.String("page_id", id))
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}

	event := toEvent(page)
	return &event, nil
}

func (m *Mapper) ArchiveEvent(ctx context.Context, id string) error {
	return m.archive(ctx, "event", id, true)
}

// RestoreEvent un-archives an event page
func (m *Mapper) RestoreEvent(ctx context.Context, id string) error {
	return m.archive(ctx, "event", id, false)
}
