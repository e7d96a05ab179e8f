// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/gutenfetch/pkg/types"
)

// writeSidecar writes the book's full catalog record as JSON next to the
// EPUB. An existing sidecar is left alone; the skip counts as success.
// The raw record bytes are preserved so fields the Book struct does not
// model survive into the sidecar.
func writeSidecar(book types.Book, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	var data []byte
	if len(book.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, book.Raw, "", "  "); err != nil {
			return fmt.Errorf("formatting metadata: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(book, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling metadata: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
