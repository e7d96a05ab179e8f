// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selector orders and trims the fetched pool into the final set
// of books to download.
package selector

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/pdiddy/gutenfetch/internal/catalog"
	"github.com/pdiddy/gutenfetch/pkg/types"
)

// Select returns exactly min(count, len(pool)) books in final order.
// Server-side modes arrive already ordered and are only truncated. Title
// and author sort client-side (case-insensitive, stable); records without
// an author sort last. Random draws a uniform sample without replacement;
// no seed is exposed, so runs are not reproducible.
func Select(pool []types.Book, mode catalog.SortMode, count int) []types.Book {
	books := make([]types.Book, len(pool))
	copy(books, pool)

	switch mode {
	case catalog.SortTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		})
	case catalog.SortAuthor:
		sort.SliceStable(books, func(i, j int) bool {
			return authorKey(books[i]) < authorKey(books[j])
		})
	case catalog.SortRandom:
		rand.Shuffle(len(books), func(i, j int) {
			books[i], books[j] = books[j], books[i]
		})
	}

	if count < len(books) {
		books = books[:count]
	}
	return books
}

// authorKey sorts authorless records after every named author.
func authorKey(b types.Book) string {
	name := b.FirstAuthor()
	if name == "" {
		return "\xff"
	}
	return strings.ToLower(name)
}
