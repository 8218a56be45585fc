// Package testutil provides deterministic fixture generators for outline
// tests. All generators take an explicit seed so failures reproduce.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/listfold/pkg/model"
)

var folderWords = []string{
	"garden", "inbox", "projects", "archive", "recipes",
	"travel", "reading", "spring", "drafts", "journal",
}

// GenerateItems produces count items spread across a random folder tree of
// at most maxDepth levels. Output is deterministic for a given seed.
func GenerateItems(count int, maxDepth int, seed int64) []model.Item {
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	items := make([]model.Item, 0, count)
	for i := 0; i < count; i++ {
		depth := rng.Intn(maxDepth + 1)
		segs := make([]string, 0, depth+1)
		for d := 0; d < depth; d++ {
			segs = append(segs, folderWords[rng.Intn(len(folderWords))])
		}
		name := fmt.Sprintf("note-%03d.md", i)
		segs = append(segs, name)

		items = append(items, model.Item{
			ID:        fmt.Sprintf("itm-%03d", i+1),
			Slug:      fmt.Sprintf("note-%03d", i),
			Title:     fmt.Sprintf("Note %d", i),
			Content:   fmt.Sprintf("# Note %d\n\nbody text\n", i),
			FilePath:  strings.Join(segs, "/"),
			ItemType:  "note",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return items
}

// WriteJSONLFixture writes items to a .jsonl file under dir and returns its
// path. Intended for loader and datasource tests.
func WriteJSONLFixture(t *testing.T, dir string, items []model.Item) string {
	t.Helper()
	path := filepath.Join(dir, "items.jsonl")
	var sb strings.Builder
	for _, it := range items {
		line, err := json.Marshal(it)
		if err != nil {
			t.Fatalf("marshal item %s: %v", it.Slug, err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
