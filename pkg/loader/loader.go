// Package loader reads ListHub items from exported data files: JSONL (one
// item per line, the canonical export format) and YAML outlines. SQLite
// databases are handled by internal/datasource.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/listfold/pkg/debug"
	"github.com/vanderheijden86/listfold/pkg/model"
)

// DirEnvVar names the environment variable overriding the data directory.
const DirEnvVar = "LISTFOLD_DIR"

// PreferredJSONLNames defines the priority order for item export files.
var PreferredJSONLNames = []string{"items.jsonl", "listhub.jsonl"}

// GetDataDir returns the data directory, respecting LISTFOLD_DIR.
// Falls back to the given path, or the current working directory.
func GetDataDir(path string) (string, error) {
	if envDir := os.Getenv(DirEnvVar); envDir != "" {
		return envDir, nil
	}
	if path != "" {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return cwd, nil
}

// FindDataPath locates an item export in dir, preferring the canonical JSONL
// names, then any other .jsonl file, then outline.yaml.
func FindDataPath(dir string) (string, error) {
	for _, name := range PreferredJSONLNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read data directory: %w", err)
	}
	var jsonl []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".jsonl") && !strings.Contains(name, ".bak") {
			jsonl = append(jsonl, filepath.Join(dir, name))
		}
	}
	sort.Strings(jsonl)
	if len(jsonl) > 0 {
		return jsonl[0], nil
	}

	for _, name := range []string{"outline.yaml", "outline.yml"} {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no items file found in %s", dir)
}

// LoadItems reads items from path, dispatching on extension.
func LoadItems(path string) ([]model.Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return LoadItemsFromJSONL(path)
	case ".yaml", ".yml":
		return LoadItemsFromYAML(path)
	default:
		return nil, fmt.Errorf("unsupported items file %q (want .jsonl or .yaml)", path)
	}
}

// LoadItemsFromJSONL reads one JSON item per line. Blank lines are skipped;
// a malformed line fails the load with its line number.
func LoadItemsFromJSONL(path string) ([]model.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var items []model.Item
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024) // long note bodies

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var it model.Item
		if err := json.Unmarshal([]byte(line), &it); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		items = append(items, it)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	debug.Log("loaded %d items from %s", len(items), path)
	return items, nil
}

// yamlOutline is the on-disk shape of outline.yaml.
type yamlOutline struct {
	Items []model.Item `yaml:"items"`
}

// LoadItemsFromYAML reads an outline.yaml document with a top-level items list.
func LoadItemsFromYAML(path string) ([]model.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc yamlOutline
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	debug.Log("loaded %d items from %s", len(doc.Items), path)
	return doc.Items, nil
}

// LoadShards loads several JSONL exports concurrently and merges the results
// ordered by file path, so multi-user exports flatten deterministically.
func LoadShards(paths []string) ([]model.Item, error) {
	results := make([][]model.Item, len(paths))

	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			items, err := LoadItemsFromJSONL(p)
			if err != nil {
				return err
			}
			results[i] = items // distinct index per goroutine
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []model.Item
	for _, items := range results {
		merged = append(merged, items...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].FilePath < merged[j].FilePath
	})
	return merged, nil
}
