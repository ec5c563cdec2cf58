package notion

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jomei/notionapi"
)

// memPages is an in-memory Pages implementation. Pages live in insertion
// order per database; cursors are offsets into the filtered result.
type memPages struct {
	mu      sync.Mutex
	order   map[string][]string
	pages   map[string]*notionapi.Page
	nextID  int
	delay   func(pageID string) time.Duration
	failGet map[string]error
	failUpd error
	failQry error

	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newMemPages() *memPages {
	return &memPages{
		order:   map[string][]string{},
		pages:   map[string]*notionapi.Page{},
		failGet: map[string]error{},
	}
}

// add stores a page directly, bypassing Create
func (f *memPages) add(databaseID string, props notionapi.Properties) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("page-%03d", f.nextID)
	f.pages[id] = &notionapi.Page{ID: notionapi.ObjectID(id), Properties: stored(props)}
	f.order[databaseID] = append(f.order[databaseID], id)
	return id
}

// stored mirrors what Notion keeps for written properties: date-only
// values come back as date properties
func stored(props notionapi.Properties) notionapi.Properties {
	out := notionapi.Properties{}
	for name, prop := range props {
		if d, ok := prop.(dateOnly); ok {
			t, _ := time.Parse(dateLayout, string(d))
			start := notionapi.Date(t)
			prop = &notionapi.DateProperty{Type: notionapi.PropertyTypeDate, Date: &notionapi.DateObject{Start: &start}}
		}
		out[name] = prop
	}
	return out
}

func (f *memPages) enter(pageID string) func() {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	if f.delay != nil {
		time.Sleep(f.delay(pageID))
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *memPages) Query(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	defer f.enter(databaseID)()
	if f.failQry != nil {
		return nil, f.failQry
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []notionapi.Page
	for _, id := range f.order[databaseID] {
		page := f.pages[id]
		if page.Archived || !matches(page, req.Filter) {
			continue
		}
		matched = append(matched, *page)
	}

	offset := 0
	if req.StartCursor != "" {
		n, err := strconv.Atoi(string(req.StartCursor))
		if err != nil {
			return nil, fmt.Errorf("bad cursor %q", req.StartCursor)
		}
		offset = n
	}
	size := req.PageSize
	if size <= 0 || size > maxPageSize {
		return nil, fmt.Errorf("bad page size %d", size)
	}

	end := min(offset+size, len(matched))
	resp := &notionapi.DatabaseQueryResponse{Results: matched[offset:end]}
	if end < len(matched) {
		resp.HasMore = true
		resp.NextCursor = notionapi.Cursor(strconv.Itoa(end))
	}
	return resp, nil
}

func matches(page *notionapi.Page, filter notionapi.Filter) bool {
	if filter == nil {
		return true
	}
	pf, ok := filter.(*notionapi.PropertyFilter)
	if !ok {
		return false
	}
	switch {
	case pf.RichText != nil:
		return readText(page.Properties, pf.Property) == pf.RichText.Equals
	case pf.Relation != nil:
		return slices.Contains(readRelation(page.Properties, pf.Property), pf.Relation.Contains)
	}
	return false
}

func (f *memPages) Get(ctx context.Context, pageID string) (*notionapi.Page, error) {
	defer f.enter(pageID)()
	if err := f.failGet[pageID]; err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	page, ok := f.pages[pageID]
	if !ok {
		return nil, errors.New("Could not find page with ID: " + pageID)
	}
	cp := *page
	return &cp, nil
}

func (f *memPages) Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	defer f.enter("")()
	id := f.add(string(req.Parent.DatabaseID), req.Properties)

	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.pages[id]
	return &cp, nil
}

func (f *memPages) Update(ctx context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	defer f.enter(pageID)()
	if f.failUpd != nil {
		return nil, f.failUpd
	}

	f.mu.Lock()
	page, ok := f.pages[pageID]
	if !ok {
		f.mu.Unlock()
		return nil, errors.New("Could not find page with ID: " + pageID)
	}
	page.Archived = req.Archived
	for name, prop := range stored(req.Properties) {
		page.Properties[name] = prop
	}
	cp := *page
	f.mu.Unlock()
	return &cp, nil
}
