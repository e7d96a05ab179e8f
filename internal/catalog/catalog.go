// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog fetches candidate book records from the Gutendex API,
// page by page, until the selection pool is large enough or the catalog
// is exhausted.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/gutenfetch/internal/httputil"
	"github.com/pdiddy/gutenfetch/pkg/types"
)

// APIBase is the Gutendex books endpoint. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://gutendex.com/books"

// SortMode names one of the supported orderings.
type SortMode string

const (
	SortPopular    SortMode = "popular"
	SortAscending  SortMode = "ascending"
	SortDescending SortMode = "descending"
	SortTitle      SortMode = "title"
	SortAuthor     SortMode = "author"
	SortRandom     SortMode = "random"
)

// poolCap bounds the over-fetched pool regardless of the requested count.
const poolCap = 1000

// ParseSortMode validates a user-supplied sort name.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(s); m {
	case SortPopular, SortAscending, SortDescending, SortTitle, SortAuthor, SortRandom:
		return m, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want popular, ascending, descending, title, author, or random)", s)
	}
}

// ServerSide reports whether the API orders results natively for this mode.
// Title, author, and random ordering are applied client-side by the
// selector over a popularity-ordered pool.
func (m SortMode) ServerSide() bool {
	switch m {
	case SortPopular, SortAscending, SortDescending:
		return true
	}
	return false
}

// apiSort returns the sort parameter sent to the API for this mode.
func (m SortMode) apiSort() string {
	if m.ServerSide() {
		return string(m)
	}
	return string(SortPopular)
}

// PoolTarget returns how many records to accumulate before stopping.
// Server-side modes need exactly count; title/author over-fetch 3x to give
// the selector material; random draws from a pool of up to 10x. All modes
// are capped at poolCap.
func (m SortMode) PoolTarget(count int) int {
	var target int
	switch m {
	case SortTitle, SortAuthor:
		target = max(3*count, 100)
	case SortRandom:
		target = max(10*count, 100)
	default:
		return count
	}
	return min(target, poolCap)
}

// Client queries the Gutendex API.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// page mirrors one Gutendex response page. Results are kept raw so each
// record's full bytes survive into the metadata sidecar.
type page struct {
	Count   int               `json:"count"`
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

// FetchPool accumulates book records for the given mode until the pool
// target is reached or the catalog reports no further pages. Any page
// failure is fatal for the run; there is no page-level retry.
func (c *Client) FetchPool(ctx context.Context, mode SortMode, count int, w io.Writer) ([]types.Book, error) {
	target := mode.PoolTarget(count)
	url := fmt.Sprintf("%s?sort=%s", APIBase, mode.apiSort())

	var books []types.Book
	for url != "" && len(books) < target {
		fmt.Fprintf(w, "  fetching page... (%d/%d books so far)\n", len(books), target)

		pg, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetching catalog page: %w", err)
		}

		for _, raw := range pg.Results {
			var b types.Book
			if err := json.Unmarshal(raw, &b); err != nil {
				return nil, fmt.Errorf("decoding catalog record: %w", err)
			}
			b.Raw = raw
			books = append(books, b)
		}

		url = ""
		if pg.Next != nil {
			url = *pg.Next
		}
	}

	if len(books) > target {
		books = books[:target]
	}
	return books, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) (*page, error) {
	resp, err := httputil.Get(ctx, c.HTTP, url, c.UserAgent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var pg page
	if err := json.NewDecoder(resp.Body).Decode(&pg); err != nil {
		return nil, fmt.Errorf("parsing catalog response: %w", err)
	}
	return &pg, nil
}
