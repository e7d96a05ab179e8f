// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "gutenfetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for a fetch run.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the directory that receives EPUB files and sidecars.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// SaveMetadata controls whether a JSON sidecar is written per book.
	SaveMetadata bool `json:"save_metadata" yaml:"save_metadata"`

	// MaxRetries is the total number of download attempts per file.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// ChunkSize is the buffer size in bytes for streamed downloads.
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// DownloadDelay is the pause between consecutive downloads.
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// ReportPath, when non-empty, is where the YAML run report is written.
	ReportPath string `json:"report_path" yaml:"report_path"`
}
