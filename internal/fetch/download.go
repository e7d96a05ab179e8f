// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/gutenfetch/internal/httputil"
	"github.com/pdiddy/gutenfetch/pkg/types"
)

// retryDelay is the pause between download attempts. Tests override this
// to avoid real sleeps.
var retryDelay = 2 * time.Second

const defaultChunkSize = 64 * 1024

// downloadWithRetry streams url to destPath, making up to cfg.MaxRetries
// attempts. Each attempt restarts from byte zero; there is no byte-range
// resume. After exhausting attempts the last error is returned and no
// file exists at destPath.
func downloadWithRetry(client *http.Client, url, destPath string, cfg types.FetchConfig, w io.Writer) error {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		if attempt > 1 {
			time.Sleep(retryDelay)
		}
		if err := downloadFile(client, url, destPath, cfg, w); err != nil {
			lastErr = err
			fmt.Fprintf(w, "  warning: attempt %d/%d failed for %s: %v\n", attempt, retries, url, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("giving up after %d attempts: %w", retries, lastErr)
}

// downloadFile fetches url to destPath in one attempt, streaming the body
// through a fixed-size buffer into a temporary file that is renamed on
// success. A failed attempt removes the temporary file, so a partial
// transfer never occupies the final target path.
func downloadFile(client *http.Client, url, destPath string, cfg types.FetchConfig, w io.Writer) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/epub+zip")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &httputil.StatusError{Code: resp.StatusCode, URL: url}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".gutenfetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetDescription(filepath.Base(destPath)),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	written, copyErr := io.CopyBuffer(io.MultiWriter(tmpFile, bar), resp.Body, make([]byte, chunk))
	closeErr := tmpFile.Close()
	bar.Finish()

	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		os.Remove(tmpPath)
		return fmt.Errorf("truncated transfer: got %d of %d bytes", written, resp.ContentLength)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
