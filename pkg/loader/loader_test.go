package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleJSONL = `{"id":"1","slug":"welcome","title":"Welcome","file_path":"welcome.md"}

{"id":"2","slug":"pasta","title":"Pasta","file_path":"recipes/pasta.md","tags":["food"]}
`

func TestLoadItemsFromJSONL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "items.jsonl", sampleJSONL)

	items, err := LoadItemsFromJSONL(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[1].FilePath != "recipes/pasta.md" {
		t.Errorf("file_path = %q", items[1].FilePath)
	}
	if len(items[1].Tags) != 1 || items[1].Tags[0] != "food" {
		t.Errorf("tags = %v", items[1].Tags)
	}
}

func TestLoadItemsFromJSONLReportsLineNumber(t *testing.T) {
	path := writeFile(t, t.TempDir(), "items.jsonl", "{\"slug\":\"ok\",\"file_path\":\"a.md\"}\nnot json\n")

	_, err := LoadItemsFromJSONL(path)
	if err == nil || !strings.Contains(err.Error(), ":2:") {
		t.Errorf("want error naming line 2, got %v", err)
	}
}

func TestLoadItemsFromYAML(t *testing.T) {
	body := `
items:
  - slug: welcome
    title: Welcome
    file_path: welcome.md
  - slug: tokyo
    title: Tokyo Trip Notes
    file_path: travel/tokyo.md
`
	path := writeFile(t, t.TempDir(), "outline.yaml", body)

	items, err := LoadItemsFromYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[1].Slug != "tokyo" {
		t.Errorf("slug = %q", items[1].Slug)
	}
}

func TestFindDataPathPrefersCanonicalJSONL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "outline.yaml", "items: []\n")
	writeFile(t, dir, "zz-export.jsonl", "")
	want := writeFile(t, dir, "items.jsonl", "")

	got, err := FindDataPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("FindDataPath = %q, want %q", got, want)
	}
}

func TestFindDataPathFallsBackToYAML(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "outline.yaml", "items: []\n")

	got, err := FindDataPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("FindDataPath = %q, want %q", got, want)
	}
}

func TestFindDataPathEmptyDir(t *testing.T) {
	if _, err := FindDataPath(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestGetDataDirEnvOverride(t *testing.T) {
	t.Setenv(DirEnvVar, "/custom/data")
	dir, err := GetDataDir("/ignored")
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/custom/data" {
		t.Errorf("dir = %q", dir)
	}
}

func TestLoadShardsMergesOrdered(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"slug":"z","file_path":"travel/z.md"}`+"\n")
	b := writeFile(t, dir, "b.jsonl", `{"slug":"a","file_path":"recipes/a.md"}`+"\n")

	items, err := LoadShards([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Slug != "a" || items[1].Slug != "z" {
		t.Errorf("merge order wrong: %q, %q", items[0].Slug, items[1].Slug)
	}
}
