// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"
	"strings"
)

// unsafeRuns matches runs of characters that are not safe in a filename
// component on common filesystems.
var unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9]+`)

// maxSlugLen bounds slug length to stay clear of path-length limits.
const maxSlugLen = 120

// Slugify returns a filesystem-friendly slug for a book title. Runs of
// unsafe characters collapse to a single underscore, the result is
// trimmed and truncated, and an empty title yields "untitled". The
// mapping is deterministic, so re-runs derive the same target paths.
func Slugify(title string) string {
	slug := strings.Trim(unsafeRuns.ReplaceAllString(title, "_"), "_")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}
