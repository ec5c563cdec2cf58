package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/balkashynov/truant/internal/logger"
	"github.com/balkashynov/truant/internal/models"
	"github.com/balkashynov/truant/internal/notion"
)

// Remote is the part of the Notion mapper the tracker coordinates
type Remote interface {
	ListSprintsWithDetails(ctx context.Context) ([]notion.Sprint, error)
	GetSprint(ctx context.Context, id string) (*notion.Sprint, error)
	ListDays(ctx context.Context, q notion.DayQuery) (*notion.DayPage, error)
	GetDay(ctx context.Context, id string) (*notion.Day, error)
	ListEvents(ctx context.Context, q notion.EventQuery) (*notion.EventPage, error)
	GetEvent(ctx context.Context, id string) (*notion.Event, error)
	CreateEvent(ctx context.Context, in notion.EventInput) (*notion.Event, error)
	UpdateEvent(ctx context.Context, id string, in notion.EventInput) (*notion.Event, error)
	ArchiveEvent(ctx context.Context, id string) error
	RestoreEvent(ctx context.Context, id string) error
}

// Local is the part of the SQLite store the tracker reads and writes
type Local interface {
	StatusesByID(ids []uint) (map[uint]models.Status, error)
	TruantsByID(ids []uint) (map[uint]models.Truant, error)
	LinkEvent(eventPageID string, truantID uint, statusID *uint) (*models.EventLink, error)
	UnlinkEvent(eventPageID string) error
	EventLinksForTruant(truantID uint) ([]models.EventLink, error)
}

// EventView is an event with its local references resolved. Status and
// Truant are nil when the event has no reference or it does not resolve.
type EventView struct {
	notion.Event
	Status *models.Status `json:"status"`
	Truant *models.Truant `json:"truant"`
}

type DayView struct {
	notion.Day
	Status *models.Status `json:"status"`
	Events []EventView    `json:"events"`
}

type SprintView struct {
	notion.Sprint
	Days []DayView `json:"days"`
}

// Service joins remote records with the local lookup tables
type Service struct {
	remote Remote
	local  Local
	fanOut int
}

// NewService builds a Service. fanOut caps concurrent remote reads started
// by the service; zero or less means no cap.
func NewService(remote Remote, local Local, fanOut int) *Service {
	return &Service{remote: remote, local: local, fanOut: fanOut}
}

// Sprints returns every sprint with days and events resolved
func (s *Service) Sprints(ctx context.Context) ([]SprintView, error) {
	sprints, err := s.remote.ListSprintsWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return s.sprintViews(sprints)
}

func (s *Service) Sprint(ctx context.Context, id string) (*SprintView, error) {
	sprint, err := s.remote.GetSprint(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.sprintViews([]notion.Sprint{*sprint})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Days returns one page of days and the cursor of the next one
func (s *Service) Days(ctx context.Context, q notion.DayQuery) ([]DayView, string, error) {
	page, err := s.remote.ListDays(ctx, q)
	if err != nil {
		return nil, "", err
	}

	r := newResolver()
	for i := range page.Days {
		r.addDay(&page.Days[i])
	}
	if err := r.load(s.local); err != nil {
		return nil, "", err
	}

	views := make([]DayView, 0, len(page.Days))
	for _, d := range page.Days {
		views = append(views, r.day(d))
	}
	return views, page.NextCursor, nil
}

func (s *Service) Day(ctx context.Context, id string) (*DayView, error) {
	day, err := s.remote.GetDay(ctx, id)
	if err != nil {
		return nil, err
	}

	r := newResolver()
	r.addDay(day)
	if err := r.load(s.local); err != nil {
		return nil, err
	}
	view := r.day(*day)
	return &view, nil
}

// Events returns one page of events and the cursor of the next one
func (s *Service) Events(ctx context.Context, q notion.EventQuery) ([]EventView, string, error) {
	page, err := s.remote.ListEvents(ctx, q)
	if err != nil {
		return nil, "", err
	}
	views, err := s.eventViews(page.Events)
	if err != nil {
		return nil, "", err
	}
	return views, page.NextCursor, nil
}

func (s *Service) Event(ctx context.Context, id string) (*EventView, error) {
	event, err := s.remote.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.eventView(event)
}

// CreateEvent writes the remote event and then, when it references a
// truant, the local link. A failed local write archives the remote event
// again and returns the local error.
func (s *Service) CreateEvent(ctx context.Context, in notion.EventInput) (*EventView, error) {
	event, err := s.remote.CreateEvent(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.TruantID != nil {
		if _, err := s.local.LinkEvent(event.ID, *in.TruantID, in.StatusID); err != nil {
			logger.Error("Failed to link event, archiving it", err,
				zap.String("page_id", event.ID), zap.Uint("truant_id", *in.TruantID))
			if cerr := s.remote.ArchiveEvent(ctx, event.ID); cerr != nil {
				logger.Error("Failed to archive unlinked event", cerr, zap.String("page_id", event.ID))
			}
			return nil, fmt.Errorf("failed to link event to truant %d: %w", *in.TruantID, err)
		}
	}

	return s.eventView(event)
}

// UpdateEvent overwrites the remote event and moves its local link to the
// referenced truant. The remote write is not undone when relinking fails.
func (s *Service) UpdateEvent(ctx context.Context, id string, in notion.EventInput) (*EventView, error) {
	event, err := s.remote.UpdateEvent(ctx, id, in)
	if err != nil {
		return nil, err
	}

	if err := s.local.UnlinkEvent(event.ID); err != nil {
		return nil, err
	}
	if in.TruantID != nil {
		if _, err := s.local.LinkEvent(event.ID, *in.TruantID, in.StatusID); err != nil {
			logger.Error("Failed to relink updated event", err,
				zap.String("page_id", event.ID), zap.Uint("truant_id", *in.TruantID))
			return nil, fmt.Errorf("event updated but not linked to truant %d: %w", *in.TruantID, err)
		}
	}

	return s.eventView(event)
}

// ArchiveEvent archives the remote event and drops its local link. When the
// link cannot be removed the event is restored.
func (s *Service) ArchiveEvent(ctx context.Context, id string) error {
	if err := s.remote.ArchiveEvent(ctx, id); err != nil {
		return err
	}

	if err := s.local.UnlinkEvent(id); err != nil {
		logger.Error("Failed to unlink archived event, restoring it", err, zap.String("page_id", id))
		if cerr := s.remote.RestoreEvent(ctx, id); cerr != nil {
			logger.Error("Failed to restore event", cerr, zap.String("page_id", id))
		}
		return err
	}
	return nil
}

// TruantEvents returns the remote events linked to a truant, oldest link
// first
func (s *Service) TruantEvents(ctx context.Context, truantID uint) ([]EventView, error) {
	links, err := s.local.EventLinksForTruant(truantID)
	if err != nil {
		return nil, err
	}

	events := make([]notion.Event, len(links))
	g, ctx := errgroup.WithContext(ctx)
	if s.fanOut > 0 {
		g.SetLimit(s.fanOut)
	}
	for i, link := range links {
		g.Go(func() error {
			event, err := s.remote.GetEvent(ctx, link.EventPageID)
			if err != nil {
				return err
			}
			events[i] = *event
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.eventViews(events)
}

func (s *Service) eventViews(events []notion.Event) ([]EventView, error) {
	r := newResolver()
	for i := range events {
		r.addEvent(&events[i])
	}
	if err := r.load(s.local); err != nil {
		return nil, err
	}

	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, r.event(e))
	}
	return views, nil
}

func (s *Service) eventView(event *notion.Event) (*EventView, error) {
	r := newResolver()
	r.addEvent(event)
	if err := r.load(s.local); err != nil {
		return nil, err
	}
	view := r.event(*event)
	return &view, nil
}

func (s *Service) sprintViews(sprints []notion.Sprint) ([]SprintView, error) {
	r := newResolver()
	for i := range sprints {
		for j := range sprints[i].Days {
			r.addDay(&sprints[i].Days[j])
		}
	}
	if err := r.load(s.local); err != nil {
		return nil, err
	}

	views := make([]SprintView, 0, len(sprints))
	for _, sprint := range sprints {
		days := make([]DayView, 0, len(sprint.Days))
		for _, d := range sprint.Days {
			days = append(days, r.day(d))
		}
		views = append(views, SprintView{Sprint: sprint, Days: days})
	}
	return views, nil
}
