// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BookStatus records the outcome of one book in a run report.
type BookStatus string

const (
	StatusDownloaded BookStatus = "downloaded"
	StatusSkipped    BookStatus = "skipped"
	StatusFailed     BookStatus = "failed"
)

// BookOutcome is one per-book entry in the run report.
type BookOutcome struct {
	ID     int        `yaml:"id"`
	Title  string     `yaml:"title"`
	File   string     `yaml:"file,omitempty"`
	Status BookStatus `yaml:"status"`
	Error  string     `yaml:"error,omitempty"`
}

// RunReport is the YAML document written when a report path is configured.
type RunReport struct {
	Sort       string        `yaml:"sort"`
	Requested  int           `yaml:"requested"`
	Downloaded int           `yaml:"downloaded"`
	Skipped    int           `yaml:"skipped"`
	Failed     int           `yaml:"failed"`
	Books      []BookOutcome `yaml:"books"`
}
