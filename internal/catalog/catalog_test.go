// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGutendex serves a paginated catalog of n generated books, perPage at
// a time, in Gutendex's response shape. It records the sort parameter of
// the first request and counts page requests.
type fakeGutendex struct {
	ts       *httptest.Server
	sortSeen string
	pages    int32
}

func newFakeGutendex(t *testing.T, n, perPage int) *fakeGutendex {
	t.Helper()
	f := &fakeGutendex{}
	f.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.pages, 1)
		if f.sortSeen == "" {
			f.sortSeen = r.URL.Query().Get("sort")
		}

		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			var err error
			page, err = strconv.Atoi(p)
			require.NoError(t, err)
		}

		start := (page - 1) * perPage
		end := min(start+perPage, n)
		results := make([]json.RawMessage, 0, perPage)
		for i := start; i < end; i++ {
			results = append(results, json.RawMessage(fmt.Sprintf(
				`{"id":%d,"title":"Book %03d","authors":[{"name":"Author %d","birth_year":1800}],
				  "formats":{"application/epub+zip":"%s/files/%d.epub.noimages"},
				  "download_count":%d,"media_type":"Text","copyright":false}`,
				i+1, i+1, i+1, f.ts.URL, i+1, n-i)))
		}

		resp := map[string]any{"count": n, "next": nil, "results": results}
		if end < n {
			resp["next"] = fmt.Sprintf("%s?sort=%s&page=%d", f.ts.URL, f.sortSeen, page+1)
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(f.ts.Close)
	return f
}

func (f *fakeGutendex) client() *Client {
	return &Client{HTTP: f.ts.Client(), UserAgent: "gutenfetch-test/0.1"}
}

func withAPIBase(t *testing.T, url string) {
	t.Helper()
	orig := APIBase
	APIBase = url
	t.Cleanup(func() { APIBase = orig })
}

func TestFetchPoolDecodesRecords(t *testing.T) {
	f := newFakeGutendex(t, 5, 32)
	withAPIBase(t, f.ts.URL)

	books, err := f.client().FetchPool(context.Background(), SortPopular, 3, io.Discard)
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, 1, books[0].ID)
	assert.Equal(t, "Book 001", books[0].Title)
	assert.Equal(t, "Author 1", books[0].FirstAuthor())
	assert.Contains(t, books[0].Formats, "application/epub+zip")
	assert.Equal(t, 5, books[0].DownloadCount)

	// Raw bytes are retained, including fields Book does not model.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(books[0].Raw, &raw))
	assert.Equal(t, "Text", raw["media_type"])
}

func TestFetchPoolFollowsPagination(t *testing.T) {
	f := newFakeGutendex(t, 5, 2)
	withAPIBase(t, f.ts.URL)

	books, err := f.client().FetchPool(context.Background(), SortPopular, 5, io.Discard)
	require.NoError(t, err)
	assert.Len(t, books, 5)
	assert.EqualValues(t, 3, atomic.LoadInt32(&f.pages))
}

func TestFetchPoolStopsAtTarget(t *testing.T) {
	f := newFakeGutendex(t, 100, 10)
	withAPIBase(t, f.ts.URL)

	books, err := f.client().FetchPool(context.Background(), SortPopular, 10, io.Discard)
	require.NoError(t, err)
	assert.Len(t, books, 10)
	assert.EqualValues(t, 1, atomic.LoadInt32(&f.pages), "should stop after the first page")
}

func TestFetchPoolCatalogExhausted(t *testing.T) {
	f := newFakeGutendex(t, 4, 2)
	withAPIBase(t, f.ts.URL)

	books, err := f.client().FetchPool(context.Background(), SortPopular, 10, io.Discard)
	require.NoError(t, err)
	assert.Len(t, books, 4, "fewer books than requested is not an error")
}

func TestFetchPoolServerErrorIsFatal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()
	withAPIBase(t, ts.URL)

	c := &Client{HTTP: ts.Client(), UserAgent: "ua"}
	_, err := c.FetchPool(context.Background(), SortPopular, 3, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchPoolSortParameter(t *testing.T) {
	tests := []struct {
		mode     SortMode
		wantSort string
	}{
		{SortPopular, "popular"},
		{SortAscending, "ascending"},
		{SortDescending, "descending"},
		{SortTitle, "popular"},
		{SortAuthor, "popular"},
		{SortRandom, "popular"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			f := newFakeGutendex(t, 3, 32)
			withAPIBase(t, f.ts.URL)

			_, err := f.client().FetchPool(context.Background(), tt.mode, 2, io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSort, f.sortSeen)
		})
	}
}

func TestPoolTarget(t *testing.T) {
	tests := []struct {
		mode  SortMode
		count int
		want  int
	}{
		{SortPopular, 10, 10},
		{SortAscending, 7, 7},
		{SortDescending, 1, 1},
		{SortTitle, 10, 100},
		{SortTitle, 50, 150},
		{SortTitle, 500, 1000},
		{SortAuthor, 40, 120},
		{SortRandom, 5, 100},
		{SortRandom, 50, 500},
		{SortRandom, 200, 1000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.mode, tt.count), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.PoolTarget(tt.count))
		})
	}
}

func TestParseSortMode(t *testing.T) {
	for _, s := range []string{"popular", "ascending", "descending", "title", "author", "random"} {
		mode, err := ParseSortMode(s)
		require.NoError(t, err)
		assert.Equal(t, SortMode(s), mode)
	}

	_, err := ParseSortMode("newest")
	assert.Error(t, err)
}
