package datasource

import (
	"fmt"

	"github.com/vanderheijden86/listfold/pkg/debug"
	"github.com/vanderheijden86/listfold/pkg/loader"
	"github.com/vanderheijden86/listfold/pkg/model"
)

// LoadItems detects the source at path (file or directory) and loads items
// from it. This is the single entry point cmd/lv uses.
func LoadItems(path string) ([]model.Item, DataSource, error) {
	source, err := Detect(path)
	if err != nil {
		return nil, DataSource{}, err
	}
	debug.Log("loading items from %s", source)

	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, source, err
		}
		defer reader.Close()
		items, err := reader.LoadItems("")
		return items, source, err
	case SourceTypeJSONL, SourceTypeYAML:
		items, err := loader.LoadItems(source.Path)
		return items, source, err
	default:
		return nil, source, fmt.Errorf("unhandled source type %q", source.Type)
	}
}
