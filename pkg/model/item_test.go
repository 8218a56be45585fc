package model

import (
	"strings"
	"testing"
)

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr string
	}{
		{"valid top-level", Item{Slug: "inbox", FilePath: "inbox.md"}, ""},
		{"valid nested", Item{Slug: "bulbs", FilePath: "garden/spring/bulbs.md"}, ""},
		{"empty slug", Item{FilePath: "a.md"}, "empty slug"},
		{"empty path", Item{Slug: "a"}, "empty file_path"},
		{"absolute path", Item{Slug: "a", FilePath: "/etc/a.md"}, "must be relative"},
		{"empty segment", Item{Slug: "a", FilePath: "garden//a.md"}, "empty path segment"},
		{"dot segment", Item{Slug: "a", FilePath: "./a.md"}, "path traversal"},
		{"dotdot segment", Item{Slug: "a", FilePath: "garden/../a.md"}, "path traversal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestItemFolderPath(t *testing.T) {
	it := Item{Slug: "bulbs", FilePath: "garden/spring/bulbs.md"}
	got := it.FolderPath()
	if len(got) != 2 || got[0] != "garden" || got[1] != "spring" {
		t.Errorf("unexpected folder path: %v", got)
	}

	top := Item{Slug: "inbox", FilePath: "inbox.md"}
	if fp := top.FolderPath(); fp != nil {
		t.Errorf("top-level item should have no folder path, got %v", fp)
	}
}

func TestItemDisplayTitle(t *testing.T) {
	if got := (&Item{Slug: "inbox", Title: "Inbox"}).DisplayTitle(); got != "Inbox" {
		t.Errorf("expected title, got %q", got)
	}
	if got := (&Item{Slug: "inbox"}).DisplayTitle(); got != "inbox" {
		t.Errorf("expected slug fallback, got %q", got)
	}
}
