// Package model defines the value types shared across listfold: the Item
// record as stored by the ListHub backend, and the flattened outline Node
// consumed by the visibility controller.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Visibility of an item as stored by the backend.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Item is one ListHub note. Fields mirror the backend's item table; the
// folder hierarchy is encoded in FilePath as slash-separated segments
// (e.g. "projects/garden/spring-planting.md").
type Item struct {
	ID         string     `json:"id" yaml:"id"`
	Slug       string     `json:"slug" yaml:"slug"`
	Title      string     `json:"title" yaml:"title"`
	Content    string     `json:"content,omitempty" yaml:"content,omitempty"`
	FilePath   string     `json:"file_path" yaml:"file_path"`
	ItemType   string     `json:"item_type,omitempty" yaml:"item_type,omitempty"`
	Visibility Visibility `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Revision   int        `json:"revision,omitempty" yaml:"revision,omitempty"`
	Tags       []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt  time.Time  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Validate checks the fields the viewer depends on.
func (it *Item) Validate() error {
	if it.Slug == "" {
		return fmt.Errorf("item %q: empty slug", it.ID)
	}
	if it.FilePath == "" {
		return fmt.Errorf("item %s: empty file_path", it.Slug)
	}
	if strings.HasPrefix(it.FilePath, "/") {
		return fmt.Errorf("item %s: file_path must be relative, got %q", it.Slug, it.FilePath)
	}
	for _, seg := range strings.Split(it.FilePath, "/") {
		if seg == "" {
			return fmt.Errorf("item %s: empty path segment in %q", it.Slug, it.FilePath)
		}
		if seg == "." || seg == ".." {
			return fmt.Errorf("item %s: path traversal segment in %q", it.Slug, it.FilePath)
		}
	}
	return nil
}

// FolderPath returns the folder segments of FilePath (everything before the
// final segment). Empty for top-level items.
func (it *Item) FolderPath() []string {
	segs := strings.Split(it.FilePath, "/")
	if len(segs) <= 1 {
		return nil
	}
	return segs[:len(segs)-1]
}

// DisplayTitle returns the title, falling back to the slug.
func (it *Item) DisplayTitle() string {
	if it.Title != "" {
		return it.Title
	}
	return it.Slug
}
