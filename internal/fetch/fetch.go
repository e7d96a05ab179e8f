// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads selected books as EPUB files and writes
// metadata sidecars. Books already present on disk are skipped, so
// re-running with the same arguments is idempotent.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/gutenfetch/internal/catalog"
	"github.com/pdiddy/gutenfetch/internal/selector"
	"github.com/pdiddy/gutenfetch/pkg/types"
)

// BatchResult holds the outcome of one run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Outcomes   []types.BookOutcome
}

// Total returns the total number of books processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any books failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchBook ensures the book's EPUB exists and is complete on disk, and
// writes the JSON sidecar when enabled. If the target file already exists
// and is non-empty the book is skipped without a network request. An
// existing empty file means a different book with the same title was
// interrupted mid-run, so the download diverts to an id-suffixed name.
func FetchBook(client *http.Client, book types.Book, cfg types.FetchConfig, w io.Writer) (dest string, skipped bool, err error) {
	url := BestEPUB(book.Formats)
	if url == "" {
		return "", false, fmt.Errorf("no EPUB variant available")
	}

	slug := Slugify(book.Title)
	destPath := filepath.Join(cfg.OutputDir, slug+".epub")

	if info, statErr := os.Stat(destPath); statErr == nil {
		if info.Size() > 0 {
			if cfg.SaveMetadata {
				if err := writeSidecar(book, sidecarPath(destPath)); err != nil {
					return destPath, true, fmt.Errorf("writing metadata for %s: %w", slug, err)
				}
			}
			return destPath, true, nil
		}
		destPath = filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%d.epub", slug, book.ID))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating directory %s: %w", cfg.OutputDir, err)
	}

	fmt.Fprintf(w, "downloading: %s -> %s\n", book.Title, filepath.Base(destPath))
	if err := downloadWithRetry(client, url, destPath, cfg, w); err != nil {
		return "", false, err
	}

	if cfg.SaveMetadata {
		if err := writeSidecar(book, sidecarPath(destPath)); err != nil {
			return destPath, false, fmt.Errorf("writing metadata for %s: %w", slug, err)
		}
	}
	return destPath, false, nil
}

// sidecarPath maps an EPUB target path to its JSON sidecar path.
func sidecarPath(epubPath string) string {
	return strings.TrimSuffix(epubPath, ".epub") + ".json"
}

// Run executes a whole fetch: accumulate the pool, select the final set,
// then download each book in sequence. It returns an error only for
// run-level failures (catalog unreachable, empty catalog); per-book
// failures are counted in the result and the run continues.
func Run(ctx context.Context, client *http.Client, mode catalog.SortMode, count int, cfg types.FetchConfig, w io.Writer) (BatchResult, error) {
	cat := &catalog.Client{HTTP: client, UserAgent: cfg.UserAgent}

	fmt.Fprintf(w, "Fetching metadata (sort=%s)...\n", mode)
	pool, err := cat.FetchPool(ctx, mode, count, w)
	if err != nil {
		return BatchResult{}, err
	}
	if len(pool) == 0 {
		return BatchResult{}, fmt.Errorf("catalog returned no books")
	}

	books := selector.Select(pool, mode, count)
	fmt.Fprintf(w, "\nDownloading %d books to %s/\n", len(books), cfg.OutputDir)

	var result BatchResult
	for i, book := range books {
		if i > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}

		outcome := types.BookOutcome{ID: book.ID, Title: book.Title}
		dest, wasSkipped, err := FetchBook(client, book, cfg, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  [%d/%d] %s (%v)\n", i+1, len(books), book.Title, err)
			result.Failed++
			outcome.Status = types.StatusFailed
			outcome.Error = err.Error()
		case wasSkipped:
			fmt.Fprintf(w, "skipped: [%d/%d] %s (already exists)\n", i+1, len(books), book.Title)
			result.Skipped++
			outcome.Status = types.StatusSkipped
			outcome.File = filepath.Base(dest)
		default:
			fmt.Fprintf(w, "done:    [%d/%d] %s\n", i+1, len(books), book.Title)
			result.Downloaded++
			outcome.Status = types.StatusDownloaded
			outcome.File = filepath.Base(dest)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	fmt.Fprintf(w, "\nRun summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())

	if cfg.ReportPath != "" {
		report := types.RunReport{
			Sort:       string(mode),
			Requested:  count,
			Downloaded: result.Downloaded,
			Skipped:    result.Skipped,
			Failed:     result.Failed,
			Books:      result.Outcomes,
		}
		if err := writeReport(report, cfg.ReportPath); err != nil {
			fmt.Fprintf(w, "warning: could not write report: %v\n", err)
		}
	}
	return result, nil
}
