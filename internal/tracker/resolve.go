package tracker

import (
	"github.com/balkashynov/truant/internal/models"
	"github.com/balkashynov/truant/internal/notion"
)

// resolver collects the local ids referenced by a batch of records and
// looks them up with one query per table
type resolver struct {
	statusIDs map[uint]struct{}
	truantIDs map[uint]struct{}
	statuses  map[uint]models.Status
	truants   map[uint]models.Truant
}

func newResolver() *resolver {
	return &resolver{
		statusIDs: map[uint]struct{}{},
		truantIDs: map[uint]struct{}{},
	}
}

func (r *resolver) addDay(d *notion.Day) {
	if d.StatusID != nil {
		r.statusIDs[*d.StatusID] = struct{}{}
	}
	for i := range d.Events {
		r.addEvent(&d.Events[i])
	}
}

func (r *resolver) addEvent(e *notion.Event) {
	if e.StatusID != nil {
		r.statusIDs[*e.StatusID] = struct{}{}
	}
	if e.TruantID != nil {
		r.truantIDs[*e.TruantID] = struct{}{}
	}
}

func (r *resolver) load(local Local) error {
	var err error
	if r.statuses, err = local.StatusesByID(keys(r.statusIDs)); err != nil {
		return err
	}
	if r.truants, err = local.TruantsByID(keys(r.truantIDs)); err != nil {
		return err
	}
	return nil
}

func (r *resolver) status(id *uint) *models.Status {
	if id == nil {
		return nil
	}
	if s, ok := r.statuses[*id]; ok {
		return &s
	}
	return nil
}

func (r *resolver) truant(id *uint) *models.Truant {
	if id == nil {
		return nil
	}
	if t, ok := r.truants[*id]; ok {
		return &t
	}
	return nil
}

func (r *resolver) event(e notion.Event) EventView {
	return EventView{Event: e, Status: r.status(e.StatusID), Truant: r.truant(e.TruantID)}
}

func (r *resolver) day(d notion.Day) DayView {
	events := make([]EventView, 0, len(d.Events))
	for _, e := range d.Events {
		events = append(events, r.event(e))
	}
	return DayView{Day: d, Status: r.status(d.StatusID), Events: events}
}

func keys(set map[uint]struct{}) []uint {
	ids := make([]uint, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
