package notion

import (
	"context"
	"net/http"
	"time"

	"github.com/jomei/notionapi"
)

// Pages is the slice of the Notion API the mapper needs. Databases are the
// remote collections; pages are the documents inside them.
type Pages interface {
	Query(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	Get(ctx context.Context, pageID string) (*notionapi.Page, error)
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

// Client implements Pages over the official REST API
type Client struct {
	api *notionapi.Client
}

// NewClient creates a Notion client. timeout bounds every HTTP request;
// zero means no timeout.
func NewClient(token string, timeout time.Duration, opts ...notionapi.ClientOption) *Client {
	httpClient := &http.Client{Timeout: timeout}
	opts = append([]notionapi.ClientOption{notionapi.WithHTTPClient(httpClient)}, opts...)
	return &Client{api: notionapi.NewClient(notionapi.Token(token), opts...)}
}

func (c *Client) Query(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
}

func (c *Client) Get(ctx context.Context, pageID string) (*notionapi.Page, error) {
	return c.api.Page.Get(ctx, notionapi.PageID(pageID))
}

func (c *Client) Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return c.api.Page.Create(ctx, req)
}

func (c *Client) Update(ctx context.Context, pageID string, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	return c.api.Page.Update(ctx, notionapi.PageID(pageID), req)
}
