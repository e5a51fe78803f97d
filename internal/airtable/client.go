package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dataset-catalog-api/internal/config"
	"github.com/rs/zerolog"
)

// ErrRecordNotFound is returned by GetRecord when the upstream store
// has no record with the requested id.
var ErrRecordNotFound = errors.New("record not found")

// maxPages bounds pagination loops. The upstream terminates a listing by
// omitting the offset token; an upstream that keeps handing out tokens
// would otherwise loop forever.
const maxPages = 1000

// Record is a single row from the backing store.
type Record struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// ListOptions narrows a ListRecords call.
type ListOptions struct {
	View    string
	Formula string
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a read-only client for the backing record store.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	baseID     string
	pageSize   int
	log        zerolog.Logger
}

// NewClient creates a new backing-store client
func NewClient(cfg *config.StoreConfig, log zerolog.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		baseID:     cfg.BaseID,
		pageSize:   pageSize,
		log:        log.With().Str("component", "airtable").Logger(),
	}
}

// ListRecords fetches every record of a table, following the opaque
// offset token until the upstream stops returning one.
func (c *Client) ListRecords(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var records []Record
	offset := ""

	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("listing %s: upstream did not terminate pagination after %d pages", table, maxPages)
		}

		resp, err := c.listPage(ctx, table, opts, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, resp.Records...)

		if resp.Offset == "" {
			break
		}
		offset = resp.Offset
	}

	c.log.Debug().Str("table", table).Int("count", len(records)).Msg("Listed records")
	return records, nil
}

func (c *Client) listPage(ctx context.Context, table string, opts ListOptions, offset string) (*listResponse, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	if opts.View != "" {
		q.Set("view", opts.View)
	}
	if opts.Formula != "" {
		q.Set("filterByFormula", opts.Formula)
	}
	if offset != "" {
		q.Set("offset", offset)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(table), q.Encode())

	var resp listResponse
	if err := c.do(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	return &resp, nil
}

// GetRecord fetches a single record by table and id.
func (c *Client) GetRecord(ctx context.Context, table, id string) (*Record, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(table), url.PathEscape(id))

	var rec Record
	if err := c.do(ctx, endpoint, &rec); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("fetching %s/%s: %w", table, id, err)
	}
	return &rec, nil
}

func (c *Client) do(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var upstream errorResponse
		if json.Unmarshal(body, &upstream) == nil && upstream.Error.Message != "" {
			return fmt.Errorf("upstream status %d: %s", resp.StatusCode, upstream.Error.Message)
		}
		return fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding upstream response: %w", err)
	}
	return nil
}
