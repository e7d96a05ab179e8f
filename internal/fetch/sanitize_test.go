// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Frankenstein", "Frankenstein"},
		{"spaces", "Pride and Prejudice", "Pride_and_Prejudice"},
		{"punctuation", "Alice's Adventures in Wonderland", "Alice_s_Adventures_in_Wonderland"},
		{"subtitle", "Frankenstein; Or, The Modern Prometheus", "Frankenstein_Or_The_Modern_Prometheus"},
		{"unicode stripped", "Les Misérables", "Les_Mis_rables"},
		{"leading trailing junk", "  --Moby Dick--  ", "Moby_Dick"},
		{"collapsed runs", "A///B???C", "A_B_C"},
		{"empty", "", "untitled"},
		{"only junk", "???", "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if got != Slugify(tt.title) {
				t.Errorf("Slugify(%q) not deterministic", tt.title)
			}
		})
	}
}

func TestSlugifyBoundedLength(t *testing.T) {
	long := strings.Repeat("War and Peace ", 50)
	got := Slugify(long)
	if len(got) > 120 {
		t.Errorf("len(Slugify(long)) = %d, want <= 120", len(got))
	}
	if got == "" {
		t.Error("Slugify(long) is empty")
	}
}

func TestSlugifySafeOutput(t *testing.T) {
	for _, title := range []string{"a/b\\c:d*e?f\"g<h>i|j", "\x00\x01\x02", "日本語のタイトル"} {
		got := Slugify(title)
		if got == "" {
			t.Errorf("Slugify(%q) is empty", title)
		}
		if strings.ContainsAny(got, `/\:*?"<>| `) {
			t.Errorf("Slugify(%q) = %q contains unsafe characters", title, got)
		}
	}
}
