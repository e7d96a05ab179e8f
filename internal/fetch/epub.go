// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"sort"
	"strings"
)

// BestEPUB returns the preferred EPUB URL from a record's format map, or
// "" when the record exposes no EPUB variant. Preference is an ordered
// lookup over the URL shape: noimages, then plain, then images. Ties
// break on the URL itself so the choice is stable across map iteration
// order.
func BestEPUB(formats map[string]string) string {
	var candidates []string
	for mime, url := range formats {
		if strings.HasPrefix(mime, "application/epub") {
			candidates = append(candidates, url)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := epubScore(candidates[i]), epubScore(candidates[j])
		if si != sj {
			return si < sj
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0]
}

func epubScore(url string) int {
	switch {
	case strings.Contains(url, ".noimages"):
		return 0
	case strings.Contains(url, ".images"):
		return 2
	default:
		return 1
	}
}
