package notion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/balkashynov/truant/internal/logger"
)

var (
	ErrMissingID     = errors.New("missing id")
	ErrMissingConfig = errors.New("missing Notion secret or database ID")
	ErrInvalidDate   = errors.New("invalid date")
)

const slowRequest = 2 * time.Second

// Config names the three remote collections. FanOut caps how many requests
// the mapper keeps in flight at once; zero or less means no cap.
type Config struct {
	Token     string
	SprintsDB string
	DaysDB    string
	EventsDB  string
	FanOut    int
}

// Mapper translates between Notion pages and Sprint/Day/Event records.
// It keeps no state between calls besides the request limiter.
type Mapper struct {
	pages Pages
	cfg   Config
	sem   *semaphore.Weighted
}

func New(pages Pages, cfg Config) *Mapper {
	m := &Mapper{pages: pages, cfg: cfg}
	if cfg.FanOut > 0 {
		m.sem = semaphore.NewWeighted(int64(cfg.FanOut))
	}
	return m
}

// requireCollection fails fast when a create cannot possibly succeed
func (m *Mapper) requireCollection(databaseID string) error {
	if m.cfg.Token == "" || databaseID == "" {
		return ErrMissingConfig
	}
	return nil
}

// do runs one remote call under the request limiter and logs slow ones
func (m *Mapper) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if m.sem != nil {
		if err := m.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		defer m.sem.Release(1)
	}

	start := time.Now()
	err := fn(ctx)
	if elapsed := time.Since(start); elapsed > slowRequest {
		logger.Warn("Notion: slow request", zap.String("op", op), zap.Duration("ms", elapsed))
	}
	return err
}

func (m *Mapper) get(ctx context.Context, pageID string) (*notionapi.Page, error) {
	var page *notionapi.Page
	err := m.do(ctx, "get", func(ctx context.Context) (err error) {
		page, err = m.pages.Get(ctx, pageID)
		return err
	})
	return page, err
}

func (m *Mapper) create(ctx context.Context, databaseID string, props notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: props,
	}

	var page *notionapi.Page
	err := m.do(ctx, "create", func(ctx context.Context) (err error) {
		page, err = m.pages.Create(ctx, req)
		return err
	})
	return page, err
}

func (m *Mapper) update(ctx context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	var page *notionapi.Page
	err := m.do(ctx, "update", func(ctx context.Context) (err error) {
		page, err = m.pages.Update(ctx, pageID, req)
		return err
	})
	return page, err
}

// queryPage fetches a single page of results
func (m *Mapper) queryPage(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	var resp *notionapi.DatabaseQueryResponse
	err := m.do(ctx, "query", func(ctx context.Context) (err error) {
		resp, err = m.pages.Query(ctx, databaseID, req)
		return err
	})
	return resp, err
}

// queryAll follows cursors until the collection is exhausted
func (m *Mapper) queryAll(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
	var results []notionapi.Page
	var cursor notionapi.Cursor
	for {
		resp, err := m.queryPage(ctx, databaseID, &notionapi.DatabaseQueryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    maxPageSize,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return results, nil
		}
		cursor = resp.NextCursor
	}
}

// archive marks a page archived (or restores it). Archiving an already
// archived page is left to the remote store to judge.
func (m *Mapper) archive(ctx context.Context, kind, pageID string, archived bool) error {
	if pageID == "" {
		return fmt.Errorf("%s: %w", kind, ErrMissingID)
	}
	if _, err := m.update(ctx, pageID, &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{},
		Archived:   archived,
	}); err != nil {
		verb := "remove"
		if !archived {
			verb = "restore"
		}
		logger.Error("Notion: failed to "+verb+" "+kind, err, zap.String("page_id", pageID))
		return fmt.Errorf("could not %s %s: %w", verb, kind, err)
	}
	return nil
}

// fanOut runs fn for every item concurrently and returns the results in
// input order. The first failure cancels the rest and no partial result is
// returned.
func fanOut[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func textFilter(f *Filter) notionapi.Filter {
	if f == nil || f.Property == "" {
		return nil
	}
	return &notionapi.PropertyFilter{
		Property: f.Property,
		RichText: &notionapi.TextFilterCondition{Equals: f.Value},
	}
}

func relationFilter(property, pageID string) notionapi.Filter {
	return &notionapi.PropertyFilter{
		Property: property,
		Relation: &notionapi.RelationFilterCondition{Contains: pageID},
	}
}
