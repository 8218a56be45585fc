// Package datasource detects and loads ListHub item sources: a listhub.db
// SQLite database (the backend's native store) or exported JSONL/YAML files.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/listfold/pkg/loader"
)

// SourceType identifies the type of data source.
type SourceType string

const (
	// SourceTypeSQLite is a ListHub SQLite database (listhub.db)
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSONL is an exported items.jsonl file
	SourceTypeJSONL SourceType = "jsonl"
	// SourceTypeYAML is an outline.yaml file
	SourceTypeYAML SourceType = "yaml"
)

// DataSource represents a resolved source of items.
type DataSource struct {
	Type SourceType
	Path string
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	return fmt.Sprintf("%s (%s)", s.Path, s.Type)
}

// Detect resolves a path to a typed source. A directory is searched for a
// database first, then for exported files via the loader's lookup order.
func Detect(path string) (DataSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	if info.IsDir() {
		db := filepath.Join(path, "listhub.db")
		if fi, err := os.Stat(db); err == nil && !fi.IsDir() {
			return DataSource{Type: SourceTypeSQLite, Path: db}, nil
		}
		found, err := loader.FindDataPath(path)
		if err != nil {
			return DataSource{}, err
		}
		return Detect(found)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return DataSource{Type: SourceTypeSQLite, Path: path}, nil
	case ".jsonl":
		return DataSource{Type: SourceTypeJSONL, Path: path}, nil
	case ".yaml", ".yml":
		return DataSource{Type: SourceTypeYAML, Path: path}, nil
	default:
		return DataSource{}, fmt.Errorf("unrecognized source %q", path)
	}
}
